package jobenv_test

import (
	"testing"

	"github.com/opst/paikit/pkg/jobenv"
)

func envOf(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv(t *testing.T) {
	t.Run("inside the managed runtime", func(t *testing.T) {
		testee := jobenv.FromEnv(envOf(map[string]string{
			jobenv.EnvJobId:            "dlc-1a2b3c",
			jobenv.EnvWorkspaceId:      "ws-42",
			jobenv.EnvRegionId:         "cn-hangzhou",
			jobenv.EnvDatasourceConfig: "/tmp/datasource.json",
			jobenv.EnvApiRoot:          "https://pai.cn-hangzhou.example.com",
			jobenv.EnvProfile:          "prod",
		}))

		expected := jobenv.Env{
			JobId:            "dlc-1a2b3c",
			WorkspaceId:      "ws-42",
			RegionId:         "cn-hangzhou",
			DatasourceConfig: "/tmp/datasource.json",
			ApiRoot:          "https://pai.cn-hangzhou.example.com",
			Profile:          "prod",
		}
		if testee != expected {
			t.Errorf("(actual, expected) = (%+v, %+v)", testee, expected)
		}
		if !testee.InManagedJob() {
			t.Error("it is not in managed job")
		}
	})

	t.Run("outside the managed runtime", func(t *testing.T) {
		testee := jobenv.FromEnv(envOf(map[string]string{}))

		if testee.InManagedJob() {
			t.Error("it is in managed job")
		}
		if testee.DatasourceConfig != jobenv.DefaultDatasourceConfig {
			t.Errorf("unexpected datasource config path: %s", testee.DatasourceConfig)
		}
		if testee.Profile != jobenv.DefaultProfile {
			t.Errorf("unexpected profile: %s", testee.Profile)
		}
	})
}
