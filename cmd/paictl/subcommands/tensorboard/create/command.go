package create

import (
	"context"
	"fmt"
	"time"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/internal/await"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/rest"
	"github.com/opst/paikit/pkg/utils/retry"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flags struct {
	Name           string        `flag:"name" alias:"n" help:"display name of the TensorBoard."`
	SourceType     string        `flag:"source-type" help:"kind of the source, e.g. job."`
	SourceId       string        `flag:"source-id" help:"id of the source, e.g. id of a job."`
	Uri            string        `flag:"uri" help:"OSS URI or path holding summaries."`
	SummaryPath    string        `flag:"summary-path" help:"path of summaries relative to the source."`
	DataSourceType string        `flag:"datasource-type" help:"kind of the datasource holding summaries."`
	DataSourceId   string        `flag:"datasource-id" help:"id of the datasource holding summaries."`
	MaxRunning     time.Duration `flag:"max-running" help:"stop the TensorBoard after running for this duration. Rounded up to minutes."`
	Workspace      string        `flag:"workspace" help:"workspace of the TensorBoard. Workspace of the profile if empty."`
	Wait           bool          `flag:"wait" alias:"w" help:"wait until the TensorBoard gets Running."`
	Timeout        time.Duration `flag:"timeout" help:"give up waiting after this duration."`
}

type Option struct {
	backoff func() retry.Backoff
}

// WithBackoff replaces the interval of polling while waiting.
func WithBackoff(backoff func() retry.Backoff) func(*Option) *Option {
	return func(o *Option) *Option {
		o.backoff = backoff
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{backoff: await.DefaultBackoff}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Create a TensorBoard.",
		Flags{Timeout: 10 * time.Minute},
		flarc.Args{},
		common.NewTask(Task(option)),
		flarc.WithDescription(`
Create a TensorBoard visualizing summaries, and print it as JSON.

Summaries are specified by one of --uri, --source-id or --datasource-id.

    {{ .Command }} --source-type job --source-id dlc-1234 --summary-path logs/ --wait
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
		if flags.Uri == "" && flags.SourceId == "" && flags.DataSourceId == "" {
			return fmt.Errorf("%w: one of --uri, --source-id or --datasource-id is required", flarc.ErrUsage)
		}
		if flags.MaxRunning < 0 {
			return fmt.Errorf("%w: --max-running should not be negative", flarc.ErrUsage)
		}

		created, err := client.CreateTensorBoard(ctx, tensorboards.CreateRequest{
			DisplayName:           flags.Name,
			SourceType:            flags.SourceType,
			SourceId:              flags.SourceId,
			Uri:                   flags.Uri,
			SummaryRelativePath:   flags.SummaryPath,
			DataSourceType:        flags.DataSourceType,
			DataSourceId:          flags.DataSourceId,
			MaxRunningTimeMinutes: int64((flags.MaxRunning + time.Minute - 1) / time.Minute),
			WorkspaceId:           flags.Workspace,
		})
		if err != nil {
			return err
		}
		logger.Info("tensorboard is created", zap.String("tensorboardId", created.TensorboardId))

		var tb tensorboards.TensorBoard
		if flags.Wait {
			tb, err = await.Running(ctx, logger, client, created.TensorboardId, flags.Timeout, option.backoff())
		} else {
			tb, err = client.GetTensorBoard(ctx, created.TensorboardId)
		}
		if err != nil {
			return err
		}
		return common.Dump(cl.Stdout(), tb)
	}
}
