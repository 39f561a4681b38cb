// Package datasource reads mount information of a training job
// and maps local paths back to the storage behind them.
package datasource

import (
	"encoding/json"
	"fmt"
	"os"
)

type Type string

const (
	NAS  Type = "nas"
	CPFS Type = "cpfs"
	PVC  Type = "pvc"
	OSS  Type = "oss"
)

// Config is the datasource config file written by the managed runtime before a job starts.
type Config struct {
	RegionId    string       `json:"DLC_REGION_ID"`
	DataSources []DataSource `json:"DATA_SOURCES"`
}

// DataSource describes a storage mounted into the job container.
type DataSource struct {
	Type      Type   `json:"DataSourceType"`
	MountPath string `json:"MountPath"`

	// for nas and cpfs
	FileSystemId string `json:"FileSystemId,omitempty"`

	// for nas, cpfs and pvc
	Path string `json:"Path,omitempty"`

	// for pvc
	PvcType   string `json:"PvcType,omitempty"`
	PvcName   string `json:"PvcName,omitempty"`
	ClusterId string `json:"ClusterId,omitempty"`
	NameSpace string `json:"NameSpace,omitempty"`

	// for oss
	Uri string `json:"Uri,omitempty"`
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(buf)
}

func Unmarshal(buf []byte) (*Config, error) {
	conf := new(Config)
	if err := json.Unmarshal(buf, conf); err != nil {
		return nil, fmt.Errorf("datasource config is broken: %w", err)
	}
	return conf, nil
}
