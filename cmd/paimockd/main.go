package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opst/paikit/pkg/logger"
	"github.com/opst/paikit/pkg/paimock"
	"github.com/opst/paikit/pkg/utils/filewatch"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	port := flag.Int("port", 8080, "port to listen")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	seedPath := flag.String("seed", "", "yaml file of datasets to be served. It is reloaded on change.")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	z := logger.New(os.Stderr, logger.ParseLevel(*loglevel)).Named("paimockd")
	logger.SetDefault(z)
	defer z.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store := paimock.NewStore()
	if *seedPath != "" {
		seed, err := paimock.LoadSeed(*seedPath)
		if err != nil {
			z.Fatal("can not read seed", zap.Error(err))
		}
		seed.Apply(store)
		go reseed(ctx, z, store, *seedPath)
	}

	e := paimock.New(store, *loglevel)
	e.StdLogger = logger.Std(z, "")
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		<-ctx.Done()
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			z.Warn("error on shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", *port)
	var err error
	if *pcert != "" && *pkey != "" {
		err = e.StartTLS(addr, *pcert, *pkey)
	} else {
		err = e.Start(addr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		z.Fatal("server stopped", zap.Error(err))
	}
}

// reseed applies the seed file each time it is modified, until ctx is done.
func reseed(ctx context.Context, z *zap.Logger, store *paimock.Store, path string) {
	for {
		modified, stop, err := filewatch.UntilModified(ctx, path)
		if err != nil {
			z.Warn("seed file is not watched", zap.Error(err))
			return
		}
		<-modified.Done()
		stop()
		if ctx.Err() != nil {
			return
		}

		// editors may replace the file; wait for it to settle.
		time.Sleep(100 * time.Millisecond)
		seed, err := paimock.LoadSeed(path)
		if err != nil {
			z.Warn("seed is not reloaded", zap.Error(err))
			continue
		}
		seed.Apply(store)
		z.Info("seed is reloaded", zap.Int("datasets", len(seed.Datasets)))
	}
}
