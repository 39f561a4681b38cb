package rm

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
		"Delete TensorBoards.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_TENSORBOARD_ID, Required: true, Repeatable: true,
				Help: "Id of the TensorBoard to be deleted",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Delete TensorBoards. Deletion stops at the first failure.
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
		for _, id := range cl.Args()[ARG_TENSORBOARD_ID] {
			if err := client.DeleteTensorBoard(ctx, id); err != nil {
				return err
			}
			logger.Info("tensorboard is deleted", zap.String("tensorboardId", id))
		}
		return nil
	}
}
