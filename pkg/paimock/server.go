package paimock

import (
	"github.com/labstack/echo/v4"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/utils/echoutil"
)

// New builds an echo server serving the platform API backed by store.
//
// loglevel is one of debug, info, warn, error or off.
func New(store *Store, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = echoutil.ErrorHandler(e)
	e.Use(echoutil.LogHandlerFunc)

	api := e.Group("/api/v1")

	api.POST("/lineages", RegisterLineageHandler(store))
	api.GET("/datasets/:datasetId", GetDatasetHandler(store, "datasetId"))

	{
		const id = "tensorboardId"
		api.POST("/tensorboards", CreateTensorBoardHandler(store))
		api.GET("/tensorboards", ListTensorBoardsHandler(store))
		api.GET("/tensorboards/:"+id, GetTensorBoardHandler(store, id))
		api.PUT(
			"/tensorboards/:"+id+"/start",
			TransitTensorBoardHandler(store, id, tensorboards.Running, tensorboards.Stopped, tensorboards.Failed),
		)
		api.PUT(
			"/tensorboards/:"+id+"/stop",
			TransitTensorBoardHandler(store, id, tensorboards.Stopped, tensorboards.Creating, tensorboards.Running),
		)
		api.DELETE("/tensorboards/:"+id, DeleteTensorBoardHandler(store, id))
	}

	return e
}
