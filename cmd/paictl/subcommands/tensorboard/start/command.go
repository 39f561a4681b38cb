package start

import (
	"context"
	"time"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/internal/await"
	"github.com/opst/paikit/pkg/rest"
	"github.com/opst/paikit/pkg/utils/retry"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flags struct {
	Wait    bool          `flag:"wait" alias:"w" help:"wait until the TensorBoard gets Running."`
	Timeout time.Duration `flag:"timeout" help:"give up waiting after this duration."`
}

const ARG_TENSORBOARD_ID = "TENSORBOARD_ID"

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
		"Start a stopped TensorBoard.",
		Flags{Timeout: 10 * time.Minute},
		flarc.Args{
			{
				Name: ARG_TENSORBOARD_ID, Required: true,
				Help: "Id of the TensorBoard to be started",
			},
		},
		common.NewTask(Task(option)),
		flarc.WithDescription(`
Start a Stopped or Failed TensorBoard, and print it as JSON.
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
		tensorboardId := cl.Args()[ARG_TENSORBOARD_ID][0]
		flags := cl.Flags()

		tb, err := client.StartTensorBoard(ctx, tensorboardId)
		if err != nil {
			return err
		}
		if flags.Wait {
			tb, err = await.Running(ctx, logger, client, tensorboardId, flags.Timeout, option.backoff())
			if err != nil {
				return err
			}
		}
		return common.Dump(cl.Stdout(), tb)
	}
}
