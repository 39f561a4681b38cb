package mock

import (
	"context"
	"testing"

	"github.com/opst/paikit/pkg/api/types/datasets"
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/rest"
)

func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

type MockClient struct {
	t    *testing.T
	Impl struct {
		RegisterLineage   func(ctx context.Context, req apilineage.RegisterRequest) (apilineage.RegisterResponse, error)
		GetDataset        func(ctx context.Context, datasetId string) (datasets.Dataset, error)
		CreateTensorBoard func(ctx context.Context, req tensorboards.CreateRequest) (tensorboards.CreateResponse, error)
		GetTensorBoard    func(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)
		ListTensorBoards  func(ctx context.Context, query rest.ListTensorBoardsQuery) (tensorboards.ListResponse, error)
		StartTensorBoard  func(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)
		StopTensorBoard   func(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)
		DeleteTensorBoard func(ctx context.Context, tensorboardId string) error
	}
	Calls struct {
		RegisterLineage   []apilineage.RegisterRequest
		GetDataset        []string
		CreateTensorBoard []tensorboards.CreateRequest
		GetTensorBoard    []string
		ListTensorBoards  []rest.ListTensorBoardsQuery
		StartTensorBoard  []string
		StopTensorBoard   []string
		DeleteTensorBoard []string
	}

	Region    string
	Workspace string
}

var _ rest.Client = &MockClient{}

func (m *MockClient) RegisterLineage(ctx context.Context, req apilineage.RegisterRequest) (apilineage.RegisterResponse, error) {
	m.t.Helper()
	m.Calls.RegisterLineage = append(m.Calls.RegisterLineage, req)
	if m.Impl.RegisterLineage == nil {
		m.t.Fatal("RegisterLineage is not ready to be called")
	}
	return m.Impl.RegisterLineage(ctx, req)
}

func (m *MockClient) GetDataset(ctx context.Context, datasetId string) (datasets.Dataset, error) {
	m.t.Helper()
	m.Calls.GetDataset = append(m.Calls.GetDataset, datasetId)
	if m.Impl.GetDataset == nil {
		m.t.Fatal("GetDataset is not ready to be called")
	}
	return m.Impl.GetDataset(ctx, datasetId)
}

func (m *MockClient) CreateTensorBoard(ctx context.Context, req tensorboards.CreateRequest) (tensorboards.CreateResponse, error) {
	m.t.Helper()
	m.Calls.CreateTensorBoard = append(m.Calls.CreateTensorBoard, req)
	if m.Impl.CreateTensorBoard == nil {
		m.t.Fatal("CreateTensorBoard is not ready to be called")
	}
	return m.Impl.CreateTensorBoard(ctx, req)
}

func (m *MockClient) GetTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
	m.t.Helper()
	m.Calls.GetTensorBoard = append(m.Calls.GetTensorBoard, tensorboardId)
	if m.Impl.GetTensorBoard == nil {
		m.t.Fatal("GetTensorBoard is not ready to be called")
	}
	return m.Impl.GetTensorBoard(ctx, tensorboardId)
}

func (m *MockClient) ListTensorBoards(ctx context.Context, query rest.ListTensorBoardsQuery) (tensorboards.ListResponse, error) {
	m.t.Helper()
	m.Calls.ListTensorBoards = append(m.Calls.ListTensorBoards, query)
	if m.Impl.ListTensorBoards == nil {
		m.t.Fatal("ListTensorBoards is not ready to be called")
	}
	return m.Impl.ListTensorBoards(ctx, query)
}

func (m *MockClient) StartTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
	m.t.Helper()
	m.Calls.StartTensorBoard = append(m.Calls.StartTensorBoard, tensorboardId)
	if m.Impl.StartTensorBoard == nil {
		m.t.Fatal("StartTensorBoard is not ready to be called")
	}
	return m.Impl.StartTensorBoard(ctx, tensorboardId)
}

func (m *MockClient) StopTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
	m.t.Helper()
	m.Calls.StopTensorBoard = append(m.Calls.StopTensorBoard, tensorboardId)
	if m.Impl.StopTensorBoard == nil {
		m.t.Fatal("StopTensorBoard is not ready to be called")
	}
	return m.Impl.StopTensorBoard(ctx, tensorboardId)
}

func (m *MockClient) DeleteTensorBoard(ctx context.Context, tensorboardId string) error {
	m.t.Helper()
	m.Calls.DeleteTensorBoard = append(m.Calls.DeleteTensorBoard, tensorboardId)
	if m.Impl.DeleteTensorBoard == nil {
		m.t.Fatal("DeleteTensorBoard is not ready to be called")
	}
	return m.Impl.DeleteTensorBoard(ctx, tensorboardId)
}

func (m *MockClient) RegionId() string {
	return m.Region
}

func (m *MockClient) WorkspaceId() string {
	return m.Workspace
}
