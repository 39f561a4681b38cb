package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opst/paikit/pkg/api/types/datasets"
	apierr "github.com/opst/paikit/pkg/api/types/errors"
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/configs/profiles"
	"github.com/opst/paikit/pkg/rest"
	"github.com/opst/paikit/pkg/utils/try"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// server responds with status and body, and records requests.
func server(t *testing.T, status int, body string) (*httptest.Server, *[]recorded) {
	t.Helper()
	reqs := []recorded{}
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}
		reqs = append(reqs, recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(b)})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(svr.Close)
	return svr, &reqs
}

func TestNewClient(t *testing.T) {
	t.Run("it rejects invalid profile", func(t *testing.T) {
		_, err := rest.NewClient(&profiles.Profile{ApiRoot: "no url"})
		if !errors.Is(err, profiles.ErrProfileInvalid) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it tells region and workspace of the profile", func(t *testing.T) {
		testee := try.To(rest.NewClient(&profiles.Profile{
			ApiRoot: "https://pai.example.com/", RegionId: "cn-hangzhou", WorkspaceId: "ws-1",
		})).OrFatal(t)
		if testee.RegionId() != "cn-hangzhou" || testee.WorkspaceId() != "ws-1" {
			t.Errorf("unexpected session: %s, %s", testee.RegionId(), testee.WorkspaceId())
		}
	})
}

func TestRegisterLineage(t *testing.T) {
	t.Run("it posts the request as JSON", func(t *testing.T) {
		svr, reqs := server(t, http.StatusOK, `{"RequestId": "req-1"}`)
		testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL})).OrFatal(t)

		payload := apilineage.RegisterRequest{
			InputEntities: []apilineage.Entity{
				{QualifiedName: "maxcompute-table.p.t", Attributes: map[string]string{"ResourceUse": "train"}},
			},
			OutputEntities: []apilineage.Entity{
				{EntityType: "oss-file", Attributes: map[string]string{"Bucket": "b"}},
			},
			JobId:       "dlc-1",
			WorkspaceId: "ws-1",
		}
		resp, err := testee.RegisterLineage(context.Background(), payload)
		if err != nil {
			t.Fatal(err)
		}
		if resp.RequestId != "req-1" {
			t.Errorf("unexpected response: %+v", resp)
		}

		if len(*reqs) != 1 {
			t.Fatalf("unexpected requests: %+v", *reqs)
		}
		req := (*reqs)[0]
		if req.Method != http.MethodPost || req.Path != "/api/v1/lineages" {
			t.Errorf("unexpected request: %s %s", req.Method, req.Path)
		}
		sent := apilineage.RegisterRequest{}
		if err := json.Unmarshal([]byte(req.Body), &sent); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(payload, sent); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("when server rejects, it returns APIError with server message", func(t *testing.T) {
		svr, _ := server(t, http.StatusBadRequest, `{"Code": "InvalidParameter", "Message": "no job", "RequestId": "req-2"}`)
		testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL})).OrFatal(t)

		_, err := testee.RegisterLineage(context.Background(), apilineage.RegisterRequest{})

		aerr := new(rest.APIError)
		if !errors.As(err, &aerr) {
			t.Fatalf("unexpected error: %v", err)
		}
		if aerr.StatusCode != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", aerr.StatusCode)
		}
		expected := &apierr.ErrorMessage{Code: "InvalidParameter", Message: "no job", RequestId: "req-2"}
		if diff := cmp.Diff(expected, aerr.Detail); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("when server fails without message, it returns APIError with body", func(t *testing.T) {
		svr, _ := server(t, http.StatusBadGateway, `upstream is down`)
		testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL})).OrFatal(t)

		_, err := testee.RegisterLineage(context.Background(), apilineage.RegisterRequest{})

		aerr := new(rest.APIError)
		if !errors.As(err, &aerr) {
			t.Fatalf("unexpected error: %v", err)
		}
		if aerr.StatusCode != http.StatusBadGateway || aerr.Detail != nil || aerr.Body != "upstream is down" {
			t.Errorf("unexpected error: %+v", aerr)
		}
	})

	t.Run("when server is unreachable, it returns transport error", func(t *testing.T) {
		svr, _ := server(t, http.StatusOK, `{}`)
		testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL})).OrFatal(t)
		svr.Close()

		_, err := testee.RegisterLineage(context.Background(), apilineage.RegisterRequest{})
		if err == nil {
			t.Fatal("no error")
		}
		if errors.As(err, new(*rest.APIError)) {
			t.Errorf("transport error is APIError: %v", err)
		}
	})
}

func TestGetDataset(t *testing.T) {
	t.Run("it gets dataset by id", func(t *testing.T) {
		svr, reqs := server(t, http.StatusOK, `{
			"DatasetId": "d-abc123", "Name": "foo", "Provider": "pai",
			"Uri": "oss://bucket1.cn-hangzhou.aliyuncs.com/foo/"
		}`)
		testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL + "/"})).OrFatal(t)

		ds, err := testee.GetDataset(context.Background(), "d-abc123")
		if err != nil {
			t.Fatal(err)
		}
		expected := datasets.Dataset{
			DatasetId: "d-abc123", Name: "foo", Provider: "pai",
			Uri: "oss://bucket1.cn-hangzhou.aliyuncs.com/foo/",
		}
		if diff := cmp.Diff(expected, ds); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]recorded{{Method: http.MethodGet, Path: "/api/v1/datasets/d-abc123"}}, *reqs); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})

	t.Run("when it is not found, it is APIError of 404", func(t *testing.T) {
		svr, _ := server(t, http.StatusNotFound, `{"Code": "EntityNotFound", "Message": "no such dataset"}`)
		testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL})).OrFatal(t)

		_, err := testee.GetDataset(context.Background(), "d-missing")
		if !rest.IsNotFound(err) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestTensorBoards(t *testing.T) {
	tb := `{"TensorboardId": "tb-1", "Status": "Running", "DisplayName": "run-1"}`
	expectedTb := tensorboards.TensorBoard{TensorboardId: "tb-1", Status: tensorboards.Running, DisplayName: "run-1"}

	type When struct {
		call func(rest.Client) (any, error)
		body string
	}
	type Then struct {
		result  any
		request recorded
	}
	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			svr, reqs := server(t, http.StatusOK, when.body)
			testee := try.To(rest.NewClient(&profiles.Profile{ApiRoot: svr.URL, WorkspaceId: "ws-9"})).OrFatal(t)

			actual, err := when.call(testee)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(then.result, actual); diff != "" {
				t.Errorf("result (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]recorded{then.request}, *reqs); diff != "" {
				t.Errorf("request (-want +got):\n%s", diff)
			}
		}
	}

	ctx := context.Background()

	t.Run("create fills workspace of the profile", theory(
		When{
			call: func(c rest.Client) (any, error) {
				return c.CreateTensorBoard(ctx, tensorboards.CreateRequest{DisplayName: "tb", SourceType: "job", SourceId: "dlc-1"})
			},
			body: `{"TensorboardId": "tb-1", "RequestId": "req-1"}`,
		},
		Then{
			result: tensorboards.CreateResponse{TensorboardId: "tb-1", RequestId: "req-1"},
			request: recorded{
				Method: http.MethodPost, Path: "/api/v1/tensorboards",
				Body: `{"DisplayName":"tb","SourceType":"job","SourceId":"dlc-1","WorkspaceId":"ws-9"}`,
			},
		},
	))
	t.Run("get", theory(
		When{
			call: func(c rest.Client) (any, error) { return c.GetTensorBoard(ctx, "tb-1") },
			body: tb,
		},
		Then{result: expectedTb, request: recorded{Method: http.MethodGet, Path: "/api/v1/tensorboards/tb-1"}},
	))
	t.Run("start", theory(
		When{
			call: func(c rest.Client) (any, error) { return c.StartTensorBoard(ctx, "tb-1") },
			body: tb,
		},
		Then{result: expectedTb, request: recorded{Method: http.MethodPut, Path: "/api/v1/tensorboards/tb-1/start"}},
	))
	t.Run("stop", theory(
		When{
			call: func(c rest.Client) (any, error) { return c.StopTensorBoard(ctx, "tb-1") },
			body: tb,
		},
		Then{result: expectedTb, request: recorded{Method: http.MethodPut, Path: "/api/v1/tensorboards/tb-1/stop"}},
	))
	t.Run("delete", theory(
		When{
			call: func(c rest.Client) (any, error) { return nil, c.DeleteTensorBoard(ctx, "tb-1") },
			body: `{"RequestId": "req-1"}`,
		},
		Then{result: nil, request: recorded{Method: http.MethodDelete, Path: "/api/v1/tensorboards/tb-1"}},
	))
	t.Run("list sends query", theory(
		When{
			call: func(c rest.Client) (any, error) {
				return c.ListTensorBoards(ctx, rest.ListTensorBoardsQuery{
					SourceType: "job", SourceId: "dlc-1", PageNumber: 2, PageSize: 10,
				})
			},
			body: `{"Tensorboards": [` + tb + `], "TotalCount": 11}`,
		},
		Then{
			result: tensorboards.ListResponse{Tensorboards: []tensorboards.TensorBoard{expectedTb}, TotalCount: 11},
			request: recorded{
				Method: http.MethodGet, Path: "/api/v1/tensorboards",
				Query: "PageNumber=2&PageSize=10&SourceId=dlc-1&SourceType=job",
			},
		},
	))
}
