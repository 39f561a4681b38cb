package rest

import (
	"context"
	"fmt"
	"net/http"

	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/errors"
)

func (c *client) RegisterLineage(ctx context.Context, payload apilineage.RegisterRequest) (apilineage.RegisterResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, []string{"api", "v1", "lineages"}, nil, payload)
	if err != nil {
		return apilineage.RegisterResponse{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apilineage.RegisterResponse{}, errors.WrapWithNote("POST lineages", err)
	}
	defer resp.Body.Close()

	ret := apilineage.RegisterResponse{}
	if err := unmarshalJsonResponse(
		resp, &ret,
		MessageFor{
			Status4xx: fmt.Sprintf("lineage of job %s is rejected", payload.JobId),
			Status5xx: "server error",
		},
	); err != nil {
		return apilineage.RegisterResponse{}, err
	}
	return ret, nil
}
