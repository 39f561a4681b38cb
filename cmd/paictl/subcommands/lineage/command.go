package lineage

import (
	lineage_log "github.com/opst/paikit/cmd/paictl/subcommands/lineage/log"
	lineage_resolve "github.com/opst/paikit/cmd/paictl/subcommands/lineage/resolve"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	resolve, err := lineage_resolve.New()
	if err != nil {
		return nil, err
	}
	log, err := lineage_log.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Resolve and record lineage of jobs.",
		struct{}{},
		flarc.WithSubcommand("resolve", resolve),
		flarc.WithSubcommand("log", log),
	)
}
