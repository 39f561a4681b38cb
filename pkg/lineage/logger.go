package lineage

import (
	"context"

	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/jobenv"
	"go.uber.org/zap"
)

// Registrar sends lineage to the metadata service.
type Registrar interface {
	RegisterLineage(ctx context.Context, req apilineage.RegisterRequest) (apilineage.RegisterResponse, error)
}

// Logger records lineage of the running job: which entities the job reads and writes.
type Logger struct {
	resolver  *Resolver
	registrar Registrar
	env       jobenv.Env
	metrics   *Metrics
	logger    *zap.Logger
}

type LoggerOption func(*Logger)

// WithLoggerMetrics counts registration outcomes with m.
func WithLoggerMetrics(m *Metrics) LoggerOption {
	return func(l *Logger) {
		l.metrics = m
	}
}

// WithZap sets the logger to write warnings into.
func WithZap(z *zap.Logger) LoggerOption {
	return func(l *Logger) {
		l.logger = z
	}
}

// NewLogger builds a Logger for the job described by env.
func NewLogger(resolver *Resolver, registrar Registrar, env jobenv.Env, opts ...LoggerOption) *Logger {
	l := &Logger{
		resolver:  resolver,
		registrar: registrar,
		env:       env,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log resolves inputs and outputs, then registers lineage between them.
//
// Lineage is registered only when both of inputs and outputs have resolved entities.
// Otherwise, or when the process is not a job of the managed runtime,
// it does nothing but warning.
//
// # Returns
//
// error from the registrar. Problems in resolution are not errors.
func (l *Logger) Log(ctx context.Context, inputs []Entity, outputs []Entity) error {
	if !l.env.InManagedJob() {
		l.logger.Warn("lineage is not logged: not running in a managed training job")
		l.metrics.registration(outcomeSkipped)
		return nil
	}

	in := l.resolver.ResolveAll(ctx, inputs)
	out := l.resolver.ResolveAll(ctx, outputs)
	if len(in) == 0 || len(out) == 0 {
		l.logger.Warn(
			"lineage is not logged: inputs or outputs have no resolved entity",
			zap.Int("inputs", len(in)), zap.Int("outputs", len(out)),
		)
		l.metrics.registration(outcomeSkipped)
		return nil
	}

	resp, err := l.registrar.RegisterLineage(ctx, apilineage.RegisterRequest{
		InputEntities:  Wire(in),
		OutputEntities: Wire(out),
		JobId:          l.env.JobId,
		WorkspaceId:    l.env.WorkspaceId,
	})
	if err != nil {
		l.metrics.registration(outcomeFailed)
		return err
	}
	l.metrics.registration(outcomeRegistered)
	l.logger.Info(
		"lineage is registered",
		zap.String("jobId", l.env.JobId), zap.String("requestId", resp.RequestId),
	)
	return nil
}
