package lineage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opst/paikit/pkg/configs/profiles"
	"github.com/opst/paikit/pkg/jobenv"
	"github.com/opst/paikit/pkg/lineage/datasource"
	"github.com/opst/paikit/pkg/logger"
	"github.com/opst/paikit/pkg/rest"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var ErrProfileNotFound = errors.New("profile is not found")

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
	stopDefault   func()
)

// Default returns the process-wide Logger, building it at the first call
// from environment variables of the job and the profile store.
//
// Outside of a managed job, the Logger does nothing but warning.
//
// Building runs without any lock held. When calls race, one Logger is kept
// and the others are discarded.
func Default() (*Logger, error) {
	defaultMu.Lock()
	l := defaultLogger
	defaultMu.Unlock()
	if l != nil {
		return l, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	built, err := newDefault(ctx, jobenv.Current(), logger.Default())
	if err != nil {
		cancel()
		return nil, err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		cancel()
		return defaultLogger, nil
	}
	defaultLogger, stopDefault = built, cancel
	return built, nil
}

// ResetDefault drops the process-wide Logger. The next Default builds a new one.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if stopDefault != nil {
		stopDefault()
	}
	defaultLogger, stopDefault = nil, nil
}

// LogLineage records lineage with the default Logger.
//
// See (*Logger).Log for detail.
func LogLineage(ctx context.Context, inputs []Entity, outputs []Entity) error {
	l, err := Default()
	if err != nil {
		return err
	}
	return l.Log(ctx, inputs, outputs)
}

func newDefault(ctx context.Context, env jobenv.Env, z *zap.Logger) (*Logger, error) {
	if !env.InManagedJob() {
		return NewLogger(nil, nil, env, WithZap(z)), nil
	}

	prof, err := profileFor(env)
	if err != nil {
		return nil, err
	}
	client, err := rest.NewClient(prof)
	if err != nil {
		return nil, err
	}
	if env.WorkspaceId == "" {
		env.WorkspaceId = client.WorkspaceId()
	}

	metrics, err := NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, err
	}

	opts := []ResolverOption{WithLogger(z), WithMetrics(metrics)}
	if inspector, err := datasource.InClusterPVCInspector(z); err == nil {
		opts = append(opts, WithPVCInspector(inspector))
	} else {
		z.Debug("persistent volume claims are not inspected", zap.Error(err))
	}

	resolver := NewResolver(
		datasource.NewCachedReader(ctx, env.DatasourceConfig, z),
		client, client.RegionId(), opts...,
	)
	return NewLogger(resolver, client, env, WithZap(z), WithLoggerMetrics(metrics)), nil
}

// profileFor finds the profile for the job.
//
// The API root in the environment wins over the profile store.
// Region and workspace missing in the profile are taken from the environment.
func profileFor(env jobenv.Env) (*profiles.Profile, error) {
	prof := &profiles.Profile{ApiRoot: env.ApiRoot}
	if env.ApiRoot == "" {
		store, err := profiles.LoadProfileStore(profiles.DefaultStorePath())
		if err != nil {
			return nil, err
		}
		p, ok := store[env.Profile]
		if !ok || p == nil {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, env.Profile)
		}
		copied := *p
		prof = &copied
	}
	if prof.RegionId == "" {
		prof.RegionId = env.RegionId
	}
	if prof.WorkspaceId == "" {
		prof.WorkspaceId = env.WorkspaceId
	}
	return prof, nil
}
