package lineage

import (
	"context"

	"github.com/opst/paikit/pkg/api/types/datasets"
	"github.com/opst/paikit/pkg/lineage/datasource"
	"github.com/opst/paikit/pkg/lineage/uri"
	"go.uber.org/zap"
)

// DatasetGetter looks up datasets registered in the platform.
type DatasetGetter interface {
	GetDataset(ctx context.Context, id string) (datasets.Dataset, error)
}

// stage tries to resolve u, which is the current URI of ent.
//
// It returns a Normalized to finish resolution,
// or nil and the URI which the next stage should try.
// When the URI returned is empty, resolution stops without entity.
type stage func(ctx context.Context, u string, ent Entity) (Normalized, string)

// Resolver resolves Entities into Normalized entities.
//
// URI grammars are tried in order: local file, OSS, dataset and table.
// The first grammar matching the URI decides the entity.
type Resolver struct {
	datasources datasource.Reader
	datasets    DatasetGetter
	regionId    string

	pvc     datasource.PVCInspector
	metrics *Metrics
	logger  *zap.Logger

	stages []stage
}

type ResolverOption func(*Resolver)

// WithPVCInspector completes PVC locations with inspector.
func WithPVCInspector(inspector datasource.PVCInspector) ResolverOption {
	return func(r *Resolver) {
		r.pvc = inspector
	}
}

func WithMetrics(m *Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver builds a Resolver.
//
// # Args
//
// - datasources: mount information of the job, for local files.
//
// - getter: dataset lookup, for `pai://datasets/...`.
//
// - regionId: region of the session. It is recorded in entities of datasets not managed by the platform.
func NewResolver(datasources datasource.Reader, getter DatasetGetter, regionId string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		datasources: datasources,
		datasets:    getter,
		regionId:    regionId,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.stages = []stage{
		r.localFile,
		r.ossObject,
		r.dataset,
		r.table,
	}
	return r
}

// Resolve resolves ent.
//
// It returns false when ent cannot be resolved. It never fails otherwise.
func (r *Resolver) Resolve(ctx context.Context, ent Entity) (Normalized, bool) {
	u := ent.Uri
	for _, s := range r.stages {
		n, next := s(ctx, u, ent)
		if n != nil {
			r.metrics.resolved(n.EntityType())
			return n, true
		}
		if next == "" {
			return nil, false
		}
		u = next
	}

	r.logger.Debug("uri matches no grammar", zap.String("uri", ent.Uri), zap.String("tried", u))
	r.metrics.dropped(dropNoMatch)
	return nil, false
}

// ResolveAll resolves each entity, keeping the order.
//
// Entities which cannot be resolved are left out.
func (r *Resolver) ResolveAll(ctx context.Context, ents []Entity) []Normalized {
	ret := make([]Normalized, 0, len(ents))
	for _, ent := range ents {
		if n, ok := r.Resolve(ctx, ent); ok {
			ret = append(ret, n)
		}
	}
	return ret
}

func (r *Resolver) localFile(ctx context.Context, u string, ent Entity) (Normalized, string) {
	lf, ok := uri.ParseLocal(u)
	if !ok {
		return nil, u
	}

	var conf *datasource.Config
	if r.datasources != nil {
		conf, _ = r.datasources.Read()
	}

	switch loc := datasource.Resolve(lf.Path, conf).(type) {
	case datasource.NASLocation:
		return NASFile{
			ResourceType: ent.ResourceType,
			ResourceUse:  ent.ResourceUse,
			RegionId:     loc.RegionId,
			FileSystemId: loc.FileSystemId,
			Path:         loc.Path,
		}, ""
	case datasource.PVCLocation:
		if r.pvc != nil {
			loc = r.pvc.Inspect(ctx, loc)
		}
		return PVCFile{
			ResourceType: ent.ResourceType,
			ResourceUse:  ent.ResourceUse,
			RegionId:     loc.RegionId,
			ClusterId:    loc.ClusterId,
			NameSpace:    loc.Namespace,
			PvcName:      loc.PvcName,
			Path:         loc.Path,
			PvcType:      loc.PvcType,
		}, ""
	case datasource.OSSLocation:
		// resolved as if the OSS URI was given.
		// RegionId of the entity is the one in the endpoint, not loc.RegionId of the job.
		// The OSS grammar requires a region, so the endpoint always has one.
		return nil, loc.Uri
	default:
		r.logger.Warn("can not find uri by mount path", zap.String("uri", u))
		return nil, u
	}
}

func (r *Resolver) ossObject(_ context.Context, u string, ent Entity) (Normalized, string) {
	obj, ok := uri.ParseOSS(u)
	if !ok {
		return nil, u
	}
	return OSSFile{
		Bucket:       obj.Bucket,
		Path:         obj.Path,
		ResourceType: ent.ResourceType,
		ResourceUse:  ent.ResourceUse,
		RegionId:     obj.Region,
	}, ""
}

func (r *Resolver) dataset(ctx context.Context, u string, ent Entity) (Normalized, string) {
	ref, ok := uri.ParseDataset(u)
	if !ok {
		return nil, u
	}
	if r.datasets == nil {
		r.logger.Warn("dataset lookup is not available", zap.String("uri", u))
		r.metrics.dropped(dropDatasetLookup)
		return nil, ""
	}

	ds, err := r.datasets.GetDataset(ctx, ref.Id)
	if err != nil {
		r.logger.Warn(
			"failed to get dataset",
			zap.String("uri", u), zap.String("datasetId", ref.Id), zap.Error(err),
		)
		r.metrics.dropped(dropDatasetLookup)
		return nil, ""
	}

	if ds.Provider == datasets.ProviderPAI {
		return PAIDataset{
			QualifiedName: ref.QualifiedName(),
			Name:          ds.Name,
			ResourceUse:   ent.ResourceUse,
			Provider:      datasets.ProviderPAI,
		}, ""
	}
	return PAIDataset{
		QualifiedName: ref.QualifiedName(),
		Name:          ds.Name,
		ResourceType:  ent.ResourceType,
		ResourceUse:   ent.ResourceUse,
		RegionId:      r.regionId,
		Uri:           ds.Uri,
		VersionName:   ref.Version,
	}, ""
}

func (r *Resolver) table(_ context.Context, u string, ent Entity) (Normalized, string) {
	tbl, ok := uri.ParseTable(u)
	if !ok {
		return nil, u
	}
	return MaxComputeTable{
		QualifiedName: tbl.QualifiedName(),
		ResourceType:  ent.ResourceType,
		ResourceUse:   ent.ResourceUse,
	}, ""
}
