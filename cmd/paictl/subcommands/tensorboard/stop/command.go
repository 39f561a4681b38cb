package stop

import (
	"context"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/pkg/rest"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

const ARG_TENSORBOARD_ID = "TENSORBOARD_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Stop a TensorBoard.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_TENSORBOARD_ID, Required: true,
				Help: "Id of the TensorBoard to be stopped",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Stop a Creating or Running TensorBoard, and print it as JSON.
Stopped TensorBoards can be started again with "start".
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *zap.Logger,
		client rest.Client,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		tb, err := client.StopTensorBoard(ctx, cl.Args()[ARG_TENSORBOARD_ID][0])
		if err != nil {
			return err
		}
		return common.Dump(cl.Stdout(), tb)
	}
}
