// Package rest is a client of the platform API.
package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/opst/paikit/pkg/api/types/datasets"
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/configs/profiles"
)

type Client interface {
	// RegisterLineage records lineage between input and output entities of a job.
	//
	// Args
	//
	// - context.Context
	//
	// - apilineage.RegisterRequest: entities and the job
	//
	// Returns
	//
	// - apilineage.RegisterResponse: it has request id, which is only for logging.
	//
	// - error
	RegisterLineage(ctx context.Context, req apilineage.RegisterRequest) (apilineage.RegisterResponse, error)

	// GetDataset gets a dataset with given id.
	//
	// Args
	//
	// - context.Context
	//
	// - string: dataset id
	//
	// Returns
	//
	// - datasets.Dataset
	//
	// - error: *APIError with status 404 when it is not found.
	GetDataset(ctx context.Context, datasetId string) (datasets.Dataset, error)

	// CreateTensorBoard creates a new TensorBoard instance.
	//
	// When WorkspaceId of the request is empty, the workspace of the profile is used.
	CreateTensorBoard(ctx context.Context, req tensorboards.CreateRequest) (tensorboards.CreateResponse, error)

	// GetTensorBoard gets a TensorBoard instance with given id.
	GetTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)

	// ListTensorBoards gets a page of TensorBoard instances.
	ListTensorBoards(ctx context.Context, query ListTensorBoardsQuery) (tensorboards.ListResponse, error)

	// StartTensorBoard starts a stopped TensorBoard instance.
	StartTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)

	// StopTensorBoard stops a running TensorBoard instance.
	StopTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)

	// DeleteTensorBoard deletes a TensorBoard instance.
	DeleteTensorBoard(ctx context.Context, tensorboardId string) error

	// RegionId is the region of this session.
	RegionId() string

	// WorkspaceId is the default workspace of this session.
	WorkspaceId() string
}

type client struct {
	httpclient  *http.Client
	api         string
	regionId    string
	workspaceId string
}

// create new client for Profile
//
// # Args
//
// - *profiles.Profile
//
// # Return
//
// - Client: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *profiles.Profile) (Client, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	return &client{
		httpclient:  httpclient,
		api:         strings.TrimSuffix(prof.ApiRoot, "/"),
		regionId:    prof.RegionId,
		workspaceId: prof.WorkspaceId,
	}, nil
}

func (c *client) RegionId() string {
	return c.regionId
}

func (c *client) WorkspaceId() string {
	return c.workspaceId
}

// build URL with path
func (c *client) apipath(path ...string) string {
	segs := []string{c.api}
	for _, p := range path {
		segs = append(segs, strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/"))
	}
	return strings.Join(segs, "/")
}

// newRequest builds a request to the API. When payload is not nil, it is sent as JSON.
func (c *client) newRequest(ctx context.Context, method string, path []string, query url.Values, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apipath(path...), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if len(query) != 0 {
		req.URL.RawQuery = query.Encode()
	}
	return req, nil
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
