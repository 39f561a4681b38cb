package clone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opst/paikit/cmd/paictl/subcommands/common"
	"github.com/opst/paikit/pkg/gitclone"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

const (
	EnvPassword = "PAI_GIT_PASSWORD"
	EnvToken    = "PAI_GIT_TOKEN"
)

type Flags struct {
	Branch    string `flag:"branch" alias:"b" help:"branch to be checked out."`
	Commit    string `flag:"commit" alias:"c" help:"commit to be checked out. It wins over --branch."`
	Dest      string `flag:"dest" alias:"d" metavar:"DIR" help:"directory to clone into. A new temporary directory if empty."`
	SourceDir string `flag:"source-dir" metavar:"PATH" help:"directory in the repository to be printed instead of the checkout."`
	Username  string `flag:"username" alias:"u" help:"username for HTTP(S) repositories."`
	Password  string `flag:"password" help:"password for HTTP(S) repositories. $PAI_GIT_PASSWORD if empty."`
	Token     string `flag:"token" help:"access token for HTTP(S) repositories. $PAI_GIT_TOKEN if empty."`
}

const ARG_REPO = "REPO"

type Option struct {
	runner gitclone.Runner
	getenv func(string) string
}

// WithRunner replaces the way to run git.
func WithRunner(runner gitclone.Runner) func(*Option) *Option {
	return func(o *Option) *Option {
		o.runner = runner
		return o
	}
}

// WithGetenv replaces the source of environment variables.
func WithGetenv(getenv func(string) string) func(*Option) *Option {
	return func(o *Option) *Option {
		o.getenv = getenv
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{runner: gitclone.ExecRunner(), getenv: os.Getenv}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Clone a git repository holding training code.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_REPO, Required: true,
				Help: "HTTP(S) URL or SSH address (git@host:path) of the repository.",
			},
		},
		common.NewTaskWithCommonFlag(Task(option)),
		flarc.WithDescription(`
Clone a git repository, check out the branch or commit, and print the path of the checkout.

Repositories on github.com, gitlab.com, gitee.com and codeup.aliyun.com are supported.

    {{ .Command }} --token $TOKEN --branch main https://github.com/org/repo.git

Credentials are not allowed for SSH addresses. github.com accepts only --token,
gitee.com and codeup.aliyun.com accept only --username and --password.
Credentials never appear in messages.
`),
	)
}

func Task(option *Option) common.TaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *zap.Logger,
		_ common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		conf := gitclone.Config{
			Repo:     cl.Args()[ARG_REPO][0],
			Branch:   flags.Branch,
			Commit:   flags.Commit,
			Username: flags.Username,
			Password: flags.Password,
			Token:    flags.Token,
		}
		if !strings.HasPrefix(conf.Repo, "git@") {
			if conf.Password == "" && conf.Username != "" {
				conf.Password = option.getenv(EnvPassword)
			}
			if conf.Token == "" && conf.Username == "" {
				conf.Token = option.getenv(EnvToken)
			}
		}

		if err := conf.Validate(); err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		opts := []gitclone.Option{gitclone.WithRunner(option.runner), gitclone.WithLogger(logger)}

		var src string
		if flags.Dest == "" {
			s, tmp, err := gitclone.CloneTemp(ctx, conf, flags.SourceDir, opts...)
			if err != nil {
				return err
			}
			logger.Info("cloned into temporary directory", zap.String("dir", tmp))
			src = s
		} else {
			checkout, err := gitclone.Clone(ctx, conf, flags.Dest, opts...)
			if err != nil {
				return err
			}
			src = checkout
			if flags.SourceDir != "" {
				src = filepath.Join(checkout, filepath.Clean("/"+flags.SourceDir))
			}
		}

		_, err := fmt.Fprintln(cl.Stdout(), src)
		return err
	}
}
