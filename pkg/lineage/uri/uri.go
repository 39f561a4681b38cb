// Package uri recognizes the storage URI grammars which lineage entities may have.
//
// Each Parse function is total: for a string out of its grammar, it returns false
// and the zero value, never a partially filled one.
package uri

import "strings"

const (
	SchemeLocal   = "file://"
	SchemeOSS     = "oss://"
	SchemeDataset = "pai://datasets/"
	SchemeTable   = "odps://"
)

// LocalFile is a file in the filesystem of the job container.
type LocalFile struct {
	// absolute path
	Path string
}

// ParseLocal parses `file://<absolute path>`.
func ParseLocal(s string) (LocalFile, bool) {
	rest, ok := strings.CutPrefix(s, SchemeLocal)
	if !ok || !strings.HasPrefix(rest, "/") {
		return LocalFile{}, false
	}
	return LocalFile{Path: rest}, true
}

// OSSObject is an object (or a prefix of objects) in object storage.
type OSSObject struct {
	Bucket string

	// region code, like "cn-hangzhou"
	Region string

	// endpoint host without bucket, like "oss-cn-hangzhou.aliyuncs.com"
	Endpoint string

	// object key or prefix. Empty for the bucket root.
	Path string
}

// ParseOSS parses `oss://<bucket>.<endpoint>/<path>`,
// where endpoint is `<region>.<host-suffix>`.
//
// Region may be written as `oss-<region>` or `oss-<region>-internal`;
// both are normalized to the bare region code.
func ParseOSS(s string) (OSSObject, bool) {
	rest, ok := strings.CutPrefix(s, SchemeOSS)
	if !ok {
		return OSSObject{}, false
	}
	host, path, ok := strings.Cut(rest, "/")
	if !ok {
		return OSSObject{}, false
	}
	bucket, endpoint, ok := strings.Cut(host, ".")
	if !ok || bucket == "" {
		return OSSObject{}, false
	}
	region, suffix, ok := strings.Cut(endpoint, ".")
	if !ok || region == "" || suffix == "" || strings.HasPrefix(suffix, ".") || strings.HasSuffix(suffix, ".") {
		return OSSObject{}, false
	}
	region = strings.TrimSuffix(strings.TrimPrefix(region, "oss-"), "-internal")
	if region == "" {
		return OSSObject{}, false
	}

	return OSSObject{
		Bucket:   bucket,
		Region:   region,
		Endpoint: endpoint,
		Path:     path,
	}, true
}

func (o OSSObject) String() string {
	return SchemeOSS + o.Bucket + "." + o.Endpoint + "/" + o.Path
}

// DatasetRef points a version of a dataset managed by the platform.
type DatasetRef struct {
	Id      string
	Version string
}

// ParseDataset parses `pai://datasets/<dataset id>/<version>`.
func ParseDataset(s string) (DatasetRef, bool) {
	rest, ok := strings.CutPrefix(s, SchemeDataset)
	if !ok {
		return DatasetRef{}, false
	}
	segs := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	if len(segs) != 2 || segs[0] == "" || segs[1] == "" {
		return DatasetRef{}, false
	}
	return DatasetRef{Id: segs[0], Version: segs[1]}, true
}

// QualifiedName is `pai-dataset.<id>_<version>`.
func (d DatasetRef) QualifiedName() string {
	return "pai-dataset." + d.Id + "_" + d.Version
}

// TableRef is a table in the data warehouse (MaxCompute).
type TableRef struct {
	Project string

	// optional. Empty when the URI does not have schema segment.
	Schema string

	Table string
}

// ParseTable parses `odps://<project>/[<schema>/]tables/<table>`.
func ParseTable(s string) (TableRef, bool) {
	rest, ok := strings.CutPrefix(s, SchemeTable)
	if !ok {
		return TableRef{}, false
	}
	segs := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	for _, seg := range segs {
		if seg == "" {
			return TableRef{}, false
		}
	}

	switch {
	case len(segs) == 3 && segs[1] == "tables":
		return TableRef{Project: segs[0], Table: segs[2]}, true
	case len(segs) == 4 && segs[2] == "tables":
		return TableRef{Project: segs[0], Schema: segs[1], Table: segs[3]}, true
	default:
		return TableRef{}, false
	}
}

// QualifiedName is `maxcompute-table.<project>[.<schema>].<table>`.
//
// Names containing "." are not escaped, so qualified names of such tables may collide.
func (t TableRef) QualifiedName() string {
	parts := []string{"maxcompute-table", t.Project}
	if t.Schema != "" {
		parts = append(parts, t.Schema)
	}
	parts = append(parts, t.Table)
	return strings.Join(parts, ".")
}
