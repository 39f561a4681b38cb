package lineage

// Entity is a lineage entity on the wire.
//
// File entities (nas-file, pvc-file, oss-file) are identified with EntityType and Attributes.
// Datasets and tables are identified with QualifiedName.
type Entity struct {
	EntityType    string            `json:"EntityType,omitempty"`
	Name          string            `json:"Name,omitempty"`
	QualifiedName string            `json:"QualifiedName,omitempty"`
	Attributes    map[string]string `json:"Attributes"`
}

// RegisterRequest is the payload of `POST /api/v1/lineages`.
type RegisterRequest struct {
	InputEntities  []Entity `json:"InputEntities"`
	OutputEntities []Entity `json:"OutputEntities"`
	JobId          string   `json:"JobId"`
	WorkspaceId    string   `json:"WorkspaceId,omitempty"`
}

type RegisterResponse struct {
	RequestId string `json:"RequestId"`
}
