package show

import (
	"context"
	"fmt"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/pkg/rest"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

const ARG_TENSORBOARD_ID = "TENSORBOARD_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show a TensorBoard.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_TENSORBOARD_ID, Required: true,
				Help: "Id of the TensorBoard to be shown",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Print the TensorBoard for the specified id as JSON.
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
		tensorboardId := cl.Args()[ARG_TENSORBOARD_ID][0]
		tb, err := client.GetTensorBoard(ctx, tensorboardId)
		if err != nil {
			return fmt.Errorf("%w: TensorBoard Id:%s", err, tensorboardId)
		}
		return common.Dump(cl.Stdout(), tb)
	}
}
