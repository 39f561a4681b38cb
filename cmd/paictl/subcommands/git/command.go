package git

import (
	git_clone "github.com/opst/paikit/cmd/paictl/subcommands/git/clone"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	clone, err := git_clone.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Fetch training code from git repositories.",
		struct{}{},
		flarc.WithSubcommand("clone", clone),
	)
}
