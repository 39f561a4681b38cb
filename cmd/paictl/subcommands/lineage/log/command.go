package log

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/pkg/jobenv"
	"github.com/opst/paikit/pkg/lineage"
	"github.com/opst/paikit/pkg/lineage/datasource"
	"github.com/opst/paikit/pkg/lineage/uri"
	"github.com/opst/paikit/pkg/rest"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flags struct {
	Input  []string `flag:"input" alias:"i" metavar:"URI" help:"URI read by the job. Repeatable."`
	Output []string `flag:"output" alias:"o" metavar:"URI" help:"URI written by the job. Repeatable."`

	JobId       string `flag:"job-id" help:"job which lineage is recorded for. $DLC_JOB_ID if empty."`
	WorkspaceId string `flag:"workspace" help:"workspace of the job. $PAI_WORKSPACE_ID or workspace of the profile if empty."`

	Datasource   string `flag:"datasource" metavar:"PATH" help:"datasource config file describing mounts of the job."`
	ResourceType string `flag:"resource-type" help:"resource type recorded in entities."`
	ResourceUse  string `flag:"resource-use" help:"resource use recorded in entities."`
}

type Option struct {
	env func() jobenv.Env
	pvc func(*zap.Logger) (datasource.PVCInspector, error)
}

// WithEnv replaces the source of job markers.
func WithEnv(env func() jobenv.Env) func(*Option) *Option {
	return func(o *Option) *Option {
		o.env = env
		return o
	}
}

// WithPVCInspector replaces the way to get the PVCInspector.
func WithPVCInspector(pvc func(*zap.Logger) (datasource.PVCInspector, error)) func(*Option) *Option {
	return func(o *Option) *Option {
		o.pvc = pvc
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{
		env: jobenv.Current,
		pvc: datasource.InClusterPVCInspector,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Record lineage between inputs and outputs of a job.",
		Flags{
			Datasource:   option.env().DatasourceConfig,
			ResourceType: lineage.DefaultResourceType,
			ResourceUse:  lineage.DefaultResourceUse,
		},
		flarc.Args{},
		common.NewTask(Task(option)),
		flarc.WithDescription(`
Record lineage between inputs and outputs of a job.

    {{ .Command }} --input file:///mnt/data/train --input pai://datasets/d-123/v1 \
        --output oss://bucket.oss-cn-hangzhou.aliyuncs.com/model/

URIs are resolved as "lineage resolve" does. URIs which cannot be resolved are skipped.
When no inputs or no outputs are resolved, nothing is recorded.
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
		if len(flags.Input) == 0 || len(flags.Output) == 0 {
			return fmt.Errorf("%w: both of --input and --output are required", flarc.ErrUsage)
		}

		env := option.env()
		if flags.JobId != "" {
			env.JobId = flags.JobId
		}
		if flags.WorkspaceId != "" {
			env.WorkspaceId = flags.WorkspaceId
		}
		if env.WorkspaceId == "" {
			env.WorkspaceId = client.WorkspaceId()
		}
		if !env.InManagedJob() {
			return errors.Join(
				flarc.ErrUsage,
				fmt.Errorf("--job-id is required outside of a job ($%s is empty)", jobenv.EnvJobId),
			)
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
			client, client.RegionId(), opts...,
		)

		entities := func(uris []string) []lineage.Entity {
			ents := make([]lineage.Entity, 0, len(uris))
			for _, u := range uris {
				if strings.HasPrefix(u, "/") {
					u = uri.SchemeLocal + u
				}
				ents = append(ents, lineage.NewEntity(
					u,
					lineage.WithResourceType(flags.ResourceType),
					lineage.WithResourceUse(flags.ResourceUse),
				))
			}
			return ents
		}

		l := lineage.NewLogger(resolver, client, env, lineage.WithZap(logger))
		return l.Log(ctx, entities(flags.Input), entities(flags.Output))
	}
}
