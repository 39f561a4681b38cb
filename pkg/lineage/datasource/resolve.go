package datasource

import "strings"

// Location is where a local path is backed by.
//
// It is one of OSSLocation, NASLocation or PVCLocation.
type Location interface {
	location()
}

// OSSLocation is object storage. Uri points the object for the local path.
type OSSLocation struct {
	Uri      string
	RegionId string
}

// NASLocation is a NAS or CPFS file system.
//
// Path is the directory of the file system which is mounted, not the path of the file.
type NASLocation struct {
	RegionId     string
	FileSystemId string
	Path         string
}

// PVCLocation is a persistent volume claim of a kubernetes cluster.
type PVCLocation struct {
	RegionId  string
	ClusterId string
	Namespace string
	PvcName   string
	Path      string
	PvcType   string
}

func (OSSLocation) location() {}
func (NASLocation) location() {}
func (PVCLocation) location() {}

// Match finds the datasource whose mount path is the longest prefix of path.
//
// Mount paths are compared as plain strings after trailing "/" is removed,
// so "/mnt/data" covers "/mnt/database/f.txt" too.
// When some datasources have the same mount path, the first one wins.
//
// # Returns
//
// - DataSource: matched datasource
//
// - string: rest of path under the mount path, without leading "/"
//
// - bool: false if nothing matches.
func Match(path string, conf *Config) (DataSource, string, bool) {
	if conf == nil {
		return DataSource{}, "", false
	}

	found := -1
	longest := -1
	for i, ds := range conf.DataSources {
		if ds.MountPath == "" {
			continue
		}
		prefix := strings.TrimRight(ds.MountPath, "/")
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if longest < len(prefix) {
			found, longest = i, len(prefix)
		}
	}
	if found < 0 {
		return DataSource{}, "", false
	}
	return conf.DataSources[found], strings.TrimLeft(path[longest:], "/"), true
}

// Resolve maps a local path to the storage location behind it.
//
// It returns nil when no datasource covers path, or the covering one has unknown type.
func Resolve(path string, conf *Config) Location {
	ds, remaining, ok := Match(path, conf)
	if !ok {
		return nil
	}

	switch ds.Type {
	case OSS:
		u := ds.Uri
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		return OSSLocation{Uri: u + remaining, RegionId: conf.RegionId}
	case NAS, CPFS:
		return NASLocation{
			RegionId:     conf.RegionId,
			FileSystemId: ds.FileSystemId,
			Path:         ds.Path,
		}
	case PVC:
		return PVCLocation{
			RegionId:  conf.RegionId,
			ClusterId: ds.ClusterId,
			Namespace: ds.NameSpace,
			PvcName:   ds.PvcName,
			Path:      ds.Path,
			PvcType:   ds.PvcType,
		}
	default:
		return nil
	}
}
