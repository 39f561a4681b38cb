package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	subgit "github.com/opst/paikit/cmd/paictl/subcommands/git"
	sublineage "github.com/opst/paikit/cmd/paictl/subcommands/lineage"
	subtb "github.com/opst/paikit/cmd/paictl/subcommands/tensorboard"
	subver "github.com/opst/paikit/cmd/paictl/subcommands/version"
	"github.com/opst/paikit/pkg/logger"
	"github.com/opst/paikit/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Std(logger.Default(), fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	lineage := try.To(sublineage.New()).OrFatal(logger)
	tensorboard := try.To(subtb.New()).OrFatal(logger)
	git := try.To(subgit.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	paictl := try.To(
		flarc.NewCommandGroup(
			"PAI platform commandline interface",
			cf,
			flarc.WithSubcommand("lineage", lineage),
			flarc.WithSubcommand("tensorboard", tensorboard),
			flarc.WithSubcommand("git", git),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, paictl, flarc.WithHelp(true)))
}
