package tensorboard

import (
	tb_create "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/create"
	tb_list "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/list"
	tb_rm "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/rm"
	tb_show "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/show"
	tb_start "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/start"
	tb_stop "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/stop"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	create, err := tb_create.New()
	if err != nil {
		return nil, err
	}
	show, err := tb_show.New()
	if err != nil {
		return nil, err
	}
	list, err := tb_list.New()
	if err != nil {
		return nil, err
	}
	start, err := tb_start.New()
	if err != nil {
		return nil, err
	}
	stop, err := tb_stop.New()
	if err != nil {
		return nil, err
	}
	rm, err := tb_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate TensorBoards.",
		struct{}{},
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("start", start),
		flarc.WithSubcommand("stop", stop),
		flarc.WithSubcommand("rm", rm),
	)
}
