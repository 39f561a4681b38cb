package datasets

// ProviderPAI is the provider of datasets managed by the platform itself.
const ProviderPAI = "pai"

// Dataset is a response of `GET /api/v1/datasets/:id`.
type Dataset struct {
	DatasetId      string            `json:"DatasetId"`
	Name           string            `json:"Name"`
	Provider       string            `json:"Provider,omitempty"`
	Uri            string            `json:"Uri,omitempty"`
	DataSourceType string            `json:"DataSourceType,omitempty"`
	DataType       string            `json:"DataType,omitempty"`
	WorkspaceId    string            `json:"WorkspaceId,omitempty"`
	Labels         map[string]string `json:"Labels,omitempty"`
}
