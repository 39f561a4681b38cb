// Package jobenv tells whether the process runs as a job of the managed training runtime (DLC),
// and which job it is.
package jobenv

import "os"

const (
	// set by the managed runtime for each job. Its presence marks the runtime.
	EnvJobId = "DLC_JOB_ID"

	EnvWorkspaceId      = "PAI_WORKSPACE_ID"
	EnvRegionId         = "PAI_REGION_ID"
	EnvDatasourceConfig = "PAI_DATASOURCE_CONFIG"

	// endpoint of the platform API. When set, it takes precedence over the profile store.
	EnvApiRoot = "PAI_API_ROOT"

	// name of the profile to use. "default" if empty.
	EnvProfile = "PAI_PROFILE"
)

const DefaultProfile = "default"

// DefaultDatasourceConfig is where the managed runtime writes mount information for the job.
const DefaultDatasourceConfig = "/ml/input/config/datasource.json"

type Env struct {
	JobId       string
	WorkspaceId string
	RegionId    string

	// path to the datasource config file.
	DatasourceConfig string

	ApiRoot string
	Profile string
}

// FromEnv reads job markers with getenv.
func FromEnv(getenv func(string) string) Env {
	e := Env{
		JobId:            getenv(EnvJobId),
		WorkspaceId:      getenv(EnvWorkspaceId),
		RegionId:         getenv(EnvRegionId),
		DatasourceConfig: getenv(EnvDatasourceConfig),
		ApiRoot:          getenv(EnvApiRoot),
		Profile:          getenv(EnvProfile),
	}
	if e.DatasourceConfig == "" {
		e.DatasourceConfig = DefaultDatasourceConfig
	}
	if e.Profile == "" {
		e.Profile = DefaultProfile
	}
	return e
}

// Current reads job markers of this process.
func Current() Env {
	return FromEnv(os.Getenv)
}

// InManagedJob is true when the process is a job of the managed runtime.
func (e Env) InManagedJob() bool {
	return e.JobId != ""
}
