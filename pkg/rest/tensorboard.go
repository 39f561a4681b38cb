package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/errors"
)

// ListTensorBoardsQuery filters TensorBoard instances.
//
// Zero values mean "not specified".
type ListTensorBoardsQuery struct {
	// kind of the source, e.g. "job"
	SourceType string
	SourceId   string

	// 1-origin page number
	PageNumber int
	PageSize   int
}

func (q ListTensorBoardsQuery) values() url.Values {
	v := url.Values{}
	if q.SourceType != "" {
		v.Set("SourceType", q.SourceType)
	}
	if q.SourceId != "" {
		v.Set("SourceId", q.SourceId)
	}
	if q.PageNumber > 0 {
		v.Set("PageNumber", strconv.Itoa(q.PageNumber))
	}
	if q.PageSize > 0 {
		v.Set("PageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

func (c *client) CreateTensorBoard(ctx context.Context, payload tensorboards.CreateRequest) (tensorboards.CreateResponse, error) {
	if payload.WorkspaceId == "" {
		payload.WorkspaceId = c.workspaceId
	}
	req, err := c.newRequest(ctx, http.MethodPost, []string{"api", "v1", "tensorboards"}, nil, payload)
	if err != nil {
		return tensorboards.CreateResponse{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return tensorboards.CreateResponse{}, errors.WrapWithNote("POST tensorboards", err)
	}
	defer resp.Body.Close()

	ret := tensorboards.CreateResponse{}
	if err := unmarshalJsonResponse(
		resp, &ret,
		MessageFor{
			Status4xx: "cannot create tensorboard",
			Status5xx: "server error",
		},
	); err != nil {
		return tensorboards.CreateResponse{}, err
	}
	return ret, nil
}

func (c *client) GetTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
	return c.tensorboard(
		ctx, http.MethodGet, []string{"api", "v1", "tensorboards", tensorboardId},
		fmt.Sprintf("tensorboard %s is not found", tensorboardId),
	)
}

func (c *client) StartTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
	return c.tensorboard(
		ctx, http.MethodPut, []string{"api", "v1", "tensorboards", tensorboardId, "start"},
		fmt.Sprintf("cannot start tensorboard %s", tensorboardId),
	)
}

func (c *client) StopTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
	return c.tensorboard(
		ctx, http.MethodPut, []string{"api", "v1", "tensorboards", tensorboardId, "stop"},
		fmt.Sprintf("cannot stop tensorboard %s", tensorboardId),
	)
}

func (c *client) tensorboard(ctx context.Context, method string, path []string, message4xx string) (tensorboards.TensorBoard, error) {
	req, err := c.newRequest(ctx, method, path, nil, nil)
	if err != nil {
		return tensorboards.TensorBoard{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return tensorboards.TensorBoard{}, errors.WrapWithNote(method+" tensorboard", err)
	}
	defer resp.Body.Close()

	ret := tensorboards.TensorBoard{}
	if err := unmarshalJsonResponse(
		resp, &ret,
		MessageFor{
			Status4xx: message4xx,
			Status5xx: "server error",
		},
	); err != nil {
		return tensorboards.TensorBoard{}, err
	}
	return ret, nil
}

func (c *client) ListTensorBoards(ctx context.Context, query ListTensorBoardsQuery) (tensorboards.ListResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, []string{"api", "v1", "tensorboards"}, query.values(), nil)
	if err != nil {
		return tensorboards.ListResponse{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return tensorboards.ListResponse{}, errors.WrapWithNote("GET tensorboards", err)
	}
	defer resp.Body.Close()

	ret := tensorboards.ListResponse{}
	if err := unmarshalJsonResponse(
		resp, &ret,
		MessageFor{
			Status4xx: "cannot list tensorboards",
			Status5xx: "server error",
		},
	); err != nil {
		return tensorboards.ListResponse{}, err
	}
	return ret, nil
}

func (c *client) DeleteTensorBoard(ctx context.Context, tensorboardId string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, []string{"api", "v1", "tensorboards", tensorboardId}, nil, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return errors.WrapWithNote("DELETE tensorboard", err)
	}
	defer resp.Body.Close()

	return unmarshalJsonResponse[struct{}](
		resp, nil,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete tensorboard %s", tensorboardId),
			Status5xx: "server error",
		},
	)
}

// DefaultPageSize is the page size of ListAllTensorBoards when query does not set it.
const DefaultPageSize = 50

// ListAllTensorBoards walks all pages of ListTensorBoards from query.PageNumber (or the first page).
//
// It stops when TotalCount is reached or a page is empty.
func ListAllTensorBoards(ctx context.Context, client Client, query ListTensorBoardsQuery) ([]tensorboards.TensorBoard, error) {
	if query.PageNumber <= 0 {
		query.PageNumber = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = DefaultPageSize
	}

	ret := []tensorboards.TensorBoard{}
	for {
		page, err := client.ListTensorBoards(ctx, query)
		if err != nil {
			return nil, err
		}
		ret = append(ret, page.Tensorboards...)

		if len(page.Tensorboards) == 0 || page.TotalCount <= len(ret) {
			return ret, nil
		}
		query.PageNumber += 1
	}
}
