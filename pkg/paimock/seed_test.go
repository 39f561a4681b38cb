package paimock_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opst/paikit/pkg/api/types/datasets"
	"github.com/opst/paikit/pkg/paimock"
	"github.com/opst/paikit/pkg/utils/try"
)

func TestSeed(t *testing.T) {
	t.Run("datasets in seed are put into the store", func(t *testing.T) {
		seed := try.To(paimock.LoadSeed("./testdata/seed.yaml")).OrFatal(t)

		store := paimock.NewStore()
		store.PutDataset(datasets.Dataset{DatasetId: "d-123", Name: "old"})
		seed.Apply(store)

		for _, expected := range []datasets.Dataset{
			{DatasetId: "d-123", Name: "images", Provider: "pai"},
			{
				DatasetId: "d-456", Name: "texts",
				Uri:            "oss://bucket.oss-cn-hangzhou.aliyuncs.com/texts/",
				DataSourceType: "OSS",
				Labels:         map[string]string{"team": "nlp"},
			},
		} {
			actual, ok := store.Dataset(expected.DatasetId)
			if !ok {
				t.Errorf("dataset %s is not found", expected.DatasetId)
				continue
			}
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("dataset %s (-want +got):\n%s", expected.DatasetId, diff)
			}
		}
	})

	t.Run("a dataset without id is error", func(t *testing.T) {
		if _, err := paimock.LoadSeed("./testdata/broken-seed.yaml"); err == nil {
			t.Error("expected error, but nil")
		}
	})

	t.Run("missing file is error", func(t *testing.T) {
		if _, err := paimock.LoadSeed("./testdata/not-exist.yaml"); err == nil {
			t.Error("expected error, but nil")
		}
	})
}
