package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opst/paikit/pkg/api/types/datasets"
	"github.com/opst/paikit/pkg/errors"
)

func (c *client) GetDataset(ctx context.Context, datasetId string) (datasets.Dataset, error) {
	req, err := c.newRequest(ctx, http.MethodGet, []string{"api", "v1", "datasets", datasetId}, nil, nil)
	if err != nil {
		return datasets.Dataset{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return datasets.Dataset{}, errors.WrapWithNote("GET dataset", err)
	}
	defer resp.Body.Close()

	ds := datasets.Dataset{}
	if err := unmarshalJsonResponse(
		resp, &ds,
		MessageFor{
			Status4xx: fmt.Sprintf("dataset %s is not found", datasetId),
			Status5xx: "server error",
		},
	); err != nil {
		return datasets.Dataset{}, err
	}
	return ds, nil
}
