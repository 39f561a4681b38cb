package resolve

import (
	"context"
	"strings"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/jobenv"
	"github.com/opst/paikit/pkg/lineage"
	"github.com/opst/paikit/pkg/lineage/datasource"
	"github.com/opst/paikit/pkg/lineage/uri"
	"github.com/opst/paikit/pkg/rest"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flags struct {
	Datasource   string `flag:"datasource" metavar:"PATH" help:"datasource config file describing mounts of the job."`
	ResourceType string `flag:"resource-type" help:"resource type recorded in entities."`
	ResourceUse  string `flag:"resource-use" help:"resource use recorded in entities."`
	Region       string `flag:"region" help:"region recorded in entities of datasets. Region of the profile if empty."`
}

const ARG_URI = "URI"

// Resolution is an output record for a URI.
type Resolution struct {
	Uri      string             `json:"uri"`
	Resolved bool               `json:"resolved"`
	Entity   *apilineage.Entity `json:"entity,omitempty"`
}

type Option struct {
	pvc func(*zap.Logger) (datasource.PVCInspector, error)
}

// WithPVCInspector replaces the way to get the PVCInspector.
func WithPVCInspector(pvc func(*zap.Logger) (datasource.PVCInspector, error)) func(*Option) *Option {
	return func(o *Option) *Option {
		o.pvc = pvc
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{pvc: datasource.InClusterPVCInspector}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Resolve URIs into lineage entities.",
		Flags{
			Datasource:   jobenv.Current().DatasourceConfig,
			ResourceType: lineage.DefaultResourceType,
			ResourceUse:  lineage.DefaultResourceUse,
		},
		flarc.Args{
			{
				Name: ARG_URI, Required: true, Repeatable: true,
				Help: "URI or local path to be resolved.",
			},
		},
		common.NewTask(Task(option)),
		flarc.WithDescription(`
Resolve URIs into lineage entities, as lineage logging does, and print them as JSON.

Supported forms are:

    file:///path/in/the/job  (file on a mounted NAS, CPFS, PVC or OSS)
    oss://BUCKET.ENDPOINT/PATH
    pai://datasets/ID/VERSION
    odps://PROJECT/[SCHEMA/]tables/TABLE

An absolute path without scheme is taken as a file:// URI.
URIs which cannot be resolved are printed with "resolved": false.
`),
	)
}

func Task(option *Option) common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *zap.Logger,
		client rest.Client,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()

		region := flags.Region
		if region == "" {
			region = client.RegionId()
		}

		opts := []lineage.ResolverOption{lineage.WithLogger(logger)}
		if option.pvc != nil {
			if inspector, err := option.pvc(logger); err == nil {
				opts = append(opts, lineage.WithPVCInspector(inspector))
			} else {
				logger.Debug("persistent volume claims are not inspected", zap.Error(err))
			}
		}

		resolver := lineage.NewResolver(
			datasource.NewFileReader(flags.Datasource, logger),
			client, region, opts...,
		)

		uris := cl.Args()[ARG_URI]
		result := make([]Resolution, 0, len(uris))
		for _, u := range uris {
			r := Resolution{Uri: u}
			if strings.HasPrefix(u, "/") {
				u = uri.SchemeLocal + u
			}
			if n, ok := resolver.Resolve(ctx, lineage.NewEntity(
				u,
				lineage.WithResourceType(flags.ResourceType),
				lineage.WithResourceUse(flags.ResourceUse),
			)); ok {
				wire := n.Wire()
				r.Resolved = true
				r.Entity = &wire
			}
			result = append(result, r)
		}

		return common.Dump(cl.Stdout(), result)
	}
}
