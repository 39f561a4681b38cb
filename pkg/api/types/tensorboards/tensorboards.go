package tensorboards

type Status string

const (
	Creating Status = "Creating"
	Running  Status = "Running"
	Stopping Status = "Stopping"
	Stopped  Status = "Stopped"
	Failed   Status = "Failed"
	Deleted  Status = "Deleted"
)

// Terminal reports whether the status never changes without a request.
func (s Status) Terminal() bool {
	switch s {
	case Stopped, Failed, Deleted:
		return true
	default:
		return false
	}
}

// TensorBoard is an instance of TensorBoard visualizing summaries of a job.
type TensorBoard struct {
	TensorboardId         string `json:"TensorboardId"`
	DisplayName           string `json:"DisplayName,omitempty"`
	Status                Status `json:"Status"`
	ReasonMessage         string `json:"ReasonMessage,omitempty"`
	SourceType            string `json:"SourceType,omitempty"`
	SourceId              string `json:"SourceId,omitempty"`
	Uri                   string `json:"Uri,omitempty"`
	SummaryRelativePath   string `json:"SummaryRelativePath,omitempty"`
	DataSourceType        string `json:"DataSourceType,omitempty"`
	DataSourceId          string `json:"DataSourceId,omitempty"`
	TensorboardUrl        string `json:"TensorboardUrl,omitempty"`
	MaxRunningTimeMinutes int64  `json:"MaxRunningTimeMinutes,omitempty"`
	WorkspaceId           string `json:"WorkspaceId,omitempty"`
	GmtCreateTime         string `json:"GmtCreateTime,omitempty"`
}

// CreateRequest is the payload of `POST /api/v1/tensorboards`.
type CreateRequest struct {
	DisplayName           string `json:"DisplayName,omitempty"`
	SourceType            string `json:"SourceType,omitempty"`
	SourceId              string `json:"SourceId,omitempty"`
	Uri                   string `json:"Uri,omitempty"`
	SummaryRelativePath   string `json:"SummaryRelativePath,omitempty"`
	DataSourceType        string `json:"DataSourceType,omitempty"`
	DataSourceId          string `json:"DataSourceId,omitempty"`
	MaxRunningTimeMinutes int64  `json:"MaxRunningTimeMinutes,omitempty"`
	WorkspaceId           string `json:"WorkspaceId,omitempty"`
}

type CreateResponse struct {
	TensorboardId string `json:"TensorboardId"`
	RequestId     string `json:"RequestId,omitempty"`
}

// ListResponse is a page of `GET /api/v1/tensorboards`.
type ListResponse struct {
	Tensorboards []TensorBoard `json:"Tensorboards"`
	TotalCount   int           `json:"TotalCount"`
	RequestId    string        `json:"RequestId,omitempty"`
}
