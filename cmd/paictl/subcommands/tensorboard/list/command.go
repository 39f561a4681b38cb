package list

import (
	"context"
	"fmt"
	"strconv"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/rest"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type Flags struct {
	SourceType string `flag:"source-type" help:"list TensorBoards of this kind of source."`
	SourceId   string `flag:"source-id" help:"list TensorBoards of this source."`
	Page       string `flag:"page" metavar:"NUMBER" help:"show only this page (1-origin). All pages if empty."`
	PageSize   string `flag:"page-size" metavar:"NUMBER" help:"number of TensorBoards in a page."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List TensorBoards.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Print TensorBoards as a JSON array.

Without --page, all TensorBoards are fetched page by page.
`),
	)
}

func positive(name string, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s should be a positive integer: %s", flarc.ErrUsage, name, value)
	}
	return n, nil
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *zap.Logger,
		client rest.Client,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		page, err := positive("--page", flags.Page)
		if err != nil {
			return err
		}
		size, err := positive("--page-size", flags.PageSize)
		if err != nil {
			return err
		}

		query := rest.ListTensorBoardsQuery{
			SourceType: flags.SourceType,
			SourceId:   flags.SourceId,
			PageNumber: page,
			PageSize:   size,
		}

		var found []tensorboards.TensorBoard
		if page == 0 {
			found, err = rest.ListAllTensorBoards(ctx, client, query)
		} else {
			var resp tensorboards.ListResponse
			resp, err = client.ListTensorBoards(ctx, query)
			found = resp.Tensorboards
			logger.Debug("page is fetched", zap.Int("page", page), zap.Int("total", resp.TotalCount))
		}
		if err != nil {
			return err
		}
		if found == nil {
			found = []tensorboards.TensorBoard{}
		}
		return common.Dump(cl.Stdout(), found)
	}
}
