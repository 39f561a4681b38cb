package paimock

import (
	"fmt"
	"os"

	"github.com/opst/paikit/pkg/api/types/datasets"
	"gopkg.in/yaml.v3"
)

// Seed is the initial content of a Store, written in yaml:
//
//	datasets:
//	  - id: d-123
//	    name: images
//	    provider: pai
//	    uri: oss://bucket.oss-cn-hangzhou.aliyuncs.com/images/
type Seed struct {
	Datasets []SeedDataset `yaml:"datasets"`
}

type SeedDataset struct {
	Id             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Provider       string            `yaml:"provider,omitempty"`
	Uri            string            `yaml:"uri,omitempty"`
	DataSourceType string            `yaml:"dataSourceType,omitempty"`
	DataType       string            `yaml:"dataType,omitempty"`
	WorkspaceId    string            `yaml:"workspaceId,omitempty"`
	Labels         map[string]string `yaml:"labels,omitempty"`
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (Seed, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	seed := Seed{}
	if err := yaml.Unmarshal(buf, &seed); err != nil {
		return Seed{}, fmt.Errorf("seed file %s is broken: %w", path, err)
	}
	for i, d := range seed.Datasets {
		if d.Id == "" {
			return Seed{}, fmt.Errorf("seed file %s is broken: datasets[%d] has no id", path, i)
		}
	}
	return seed, nil
}

// Apply puts datasets in the seed into store. Datasets with the same id are replaced.
func (s Seed) Apply(store *Store) {
	for _, d := range s.Datasets {
		store.PutDataset(datasets.Dataset{
			DatasetId:      d.Id,
			Name:           d.Name,
			Provider:       d.Provider,
			Uri:            d.Uri,
			DataSourceType: d.DataSourceType,
			DataType:       d.DataType,
			WorkspaceId:    d.WorkspaceId,
			Labels:         d.Labels,
		})
	}
}
