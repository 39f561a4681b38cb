// Package lineage resolves storage URIs used by a training job into lineage entities,
// and registers lineage between inputs and outputs of the job.
package lineage

const (
	DefaultResourceType = "dataset"
	DefaultResourceUse  = "train"
)

// Entity is an artifact which a job reads or writes.
type Entity struct {
	// URI of the artifact. One of:
	//
	// - file:///abs/path
	//
	// - oss://bucket.region.host/path
	//
	// - pai://datasets/id/version
	//
	// - odps://project/[schema/]tables/table
	Uri string

	ResourceType string
	ResourceUse  string
}

type EntityOption func(*Entity)

func WithResourceType(rt string) EntityOption {
	return func(e *Entity) {
		e.ResourceType = rt
	}
}

func WithResourceUse(ru string) EntityOption {
	return func(e *Entity) {
		e.ResourceUse = ru
	}
}

// NewEntity builds an Entity for uri.
//
// Without options, ResourceType is "dataset" and ResourceUse is "train".
func NewEntity(uri string, opts ...EntityOption) Entity {
	e := Entity{
		Uri:          uri,
		ResourceType: DefaultResourceType,
		ResourceUse:  DefaultResourceUse,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Entities builds Entities for each uri with the same options.
func Entities(uris []string, opts ...EntityOption) []Entity {
	ret := make([]Entity, 0, len(uris))
	for _, u := range uris {
		ret = append(ret, NewEntity(u, opts...))
	}
	return ret
}
