package datasource

import (
	"context"
	"sync"

	"github.com/opst/paikit/pkg/utils/filewatch"
	"go.uber.org/zap"
)

// Reader provides the datasource config.
type Reader interface {
	// Read returns the config.
	//
	// When the config is missing or broken, it returns (nil, false).
	Read() (*Config, bool)
}

type fileReader struct {
	path   string
	logger *zap.Logger
}

// NewFileReader returns a Reader which reads the file at path on each Read.
func NewFileReader(path string, logger *zap.Logger) Reader {
	return &fileReader{path: path, logger: logger}
}

func (r *fileReader) Read() (*Config, bool) {
	conf, err := Load(r.path)
	if err != nil {
		r.logger.Warn(
			"datasource config is unavailable",
			zap.String("path", r.path), zap.Error(err),
		)
		return nil, false
	}
	return conf, true
}

// Static is a Reader always returning the Config.
//
// nil Config means unavailable.
type Static struct {
	Config *Config
}

func (s Static) Read() (*Config, bool) {
	return s.Config, s.Config != nil
}

type cachedReader struct {
	base   *fileReader
	parent context.Context

	mu     sync.Mutex
	cached *Config
	valid  context.Context
	stop   func()
}

// NewCachedReader returns a Reader which keeps the parsed config
// until the file is modified or ctx is done.
//
// While the file cannot be watched (e.g. it does not exist yet), every Read goes to the file.
func NewCachedReader(ctx context.Context, path string, logger *zap.Logger) Reader {
	return &cachedReader{
		base:   &fileReader{path: path, logger: logger},
		parent: ctx,
	}
}

func (r *cachedReader) Read() (*Config, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.valid != nil && r.valid.Err() == nil {
		return r.cached, true
	}
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
	r.cached = nil
	r.valid = nil

	// start watching before reading, not to miss a change between them.
	valid, stop, werr := filewatch.UntilModified(r.parent, r.base.path)

	conf, ok := r.base.Read()
	if werr != nil {
		r.base.logger.Debug(
			"datasource config is not cached",
			zap.String("path", r.base.path), zap.Error(werr),
		)
		return conf, ok
	}
	if !ok {
		stop()
		return nil, false
	}

	r.cached, r.valid, r.stop = conf, valid, stop
	return conf, true
}
