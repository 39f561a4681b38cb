package paimock

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/opst/paikit/pkg/api/types/errors"
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
)

var ErrStatus = errors.New("unexpected status")

func RegisterLineageHandler(store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqId := store.RequestId()
		req := apilineage.RegisterRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("request body should be lineage", apierr.WithRequestId(reqId), apierr.WithError(err))
		}
		if req.JobId == "" {
			return apierr.BadRequest(`"JobId" is required`, apierr.WithRequestId(reqId))
		}
		if len(req.InputEntities) == 0 || len(req.OutputEntities) == 0 {
			return apierr.BadRequest("both of input and output entities are required", apierr.WithRequestId(reqId))
		}
		store.AddLineage(req)
		return c.JSON(http.StatusOK, apilineage.RegisterResponse{RequestId: reqId})
	}
}

func GetDatasetHandler(store *Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		ds, ok := store.Dataset(id)
		if !ok {
			return apierr.NotFound("dataset "+id+" is not found", apierr.WithRequestId(store.RequestId()))
		}
		return c.JSON(http.StatusOK, ds)
	}
}

func CreateTensorBoardHandler(store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqId := store.RequestId()
		req := tensorboards.CreateRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("request body should be tensorboard", apierr.WithRequestId(reqId), apierr.WithError(err))
		}
		if req.Uri == "" && req.SourceId == "" && req.DataSourceId == "" {
			return apierr.BadRequest(`one of "Uri", "SourceId" or "DataSourceId" is required`, apierr.WithRequestId(reqId))
		}
		tb := store.CreateTensorBoard(req)
		return c.JSON(http.StatusOK, tensorboards.CreateResponse{TensorboardId: tb.TensorboardId, RequestId: reqId})
	}
}

func GetTensorBoardHandler(store *Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		tb, ok := store.TensorBoard(id)
		if !ok {
			return apierr.NotFound("tensorboard "+id+" is not found", apierr.WithRequestId(store.RequestId()))
		}
		return c.JSON(http.StatusOK, tb)
	}
}

func ListTensorBoardsHandler(store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqId := store.RequestId()
		page, err := positiveInt(c.QueryParam("PageNumber"), 1)
		if err != nil {
			return apierr.BadRequest(`"PageNumber" should be positive integer`, apierr.WithRequestId(reqId))
		}
		size, err := positiveInt(c.QueryParam("PageSize"), 50)
		if err != nil {
			return apierr.BadRequest(`"PageSize" should be positive integer`, apierr.WithRequestId(reqId))
		}

		tbs, total := store.ListTensorBoards(c.QueryParam("SourceType"), c.QueryParam("SourceId"), page, size)
		return c.JSON(http.StatusOK, tensorboards.ListResponse{Tensorboards: tbs, TotalCount: total, RequestId: reqId})
	}
}

// TransitTensorBoardHandler changes status of the instance into to, if it is in one of from.
func TransitTensorBoardHandler(store *Store, param string, to tensorboards.Status, from ...tensorboards.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		tb, ok, err := store.Transit(id, to, from...)
		if !ok {
			return apierr.NotFound("tensorboard "+id+" is not found", apierr.WithRequestId(store.RequestId()))
		}
		if err != nil {
			return apierr.Conflict(err.Error(), apierr.WithRequestId(store.RequestId()))
		}
		return c.JSON(http.StatusOK, tb)
	}
}

func DeleteTensorBoardHandler(store *Store, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		reqId := store.RequestId()
		if !store.DeleteTensorBoard(id) {
			return apierr.NotFound("tensorboard "+id+" is not found", apierr.WithRequestId(reqId))
		}
		return c.JSON(http.StatusOK, map[string]string{"RequestId": reqId})
	}
}

func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("not positive")
	}
	return n, nil
}
