package gitclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Runner runs git commands.
type Runner interface {
	// Run runs `git args...` in dir. When dir is empty, it runs in the working directory.
	Run(ctx context.Context, dir string, args ...string) error
}

type execRunner struct{}

// ExecRunner runs the git command installed in the system.
//
// git never prompts for credentials; it fails instead.
func ExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out := new(bytes.Buffer)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(out.String()))
	}
	return nil
}

type options struct {
	runner Runner
	logger *zap.Logger
}

type Option func(*options)

func WithRunner(r Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Clone clones the repository into dest, and checks out the branch or commit.
//
// # Returns
//
// - string: absolute path of the checkout.
//
// - error: ErrUnsupportedRepo or ErrInvalidCredential when conf is invalid,
// or error of git. Credentials in errors are redacted.
func Clone(ctx context.Context, conf Config, dest string, opts ...Option) (string, error) {
	o := &options{runner: ExecRunner(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	u, err := conf.CloneURL()
	if err != nil {
		return "", err
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return "", err
	}

	o.logger.Info(
		"cloning repository",
		zap.String("repo", conf.Redact(u)), zap.String("dest", dest),
	)
	if err := o.runner.Run(ctx, "", "clone", u, dest); err != nil {
		return "", errors.New(conf.Redact(err.Error()))
	}

	for _, ref := range []string{conf.Branch, conf.Commit} {
		if ref == "" {
			continue
		}
		o.logger.Info("checkout", zap.String("ref", ref))
		if err := o.runner.Run(ctx, dest, "checkout", ref); err != nil {
			return "", errors.New(conf.Redact(err.Error()))
		}
	}
	return dest, nil
}

// CloneTemp clones the repository into a new temporary directory.
//
// # Returns
//
// - string: path to sourceDir in the checkout. The checkout itself when sourceDir is empty.
//
// - string: the temporary directory. Callers should remove it after use.
//
// - error
func CloneTemp(ctx context.Context, conf Config, sourceDir string, opts ...Option) (string, string, error) {
	if err := conf.Validate(); err != nil {
		return "", "", err
	}
	tmp, err := os.MkdirTemp("", "paikit-git-")
	if err != nil {
		return "", "", err
	}

	checkout, err := Clone(ctx, conf, tmp, opts...)
	if err != nil {
		os.RemoveAll(tmp)
		return "", "", err
	}
	if sourceDir == "" {
		return checkout, tmp, nil
	}
	return filepath.Join(checkout, filepath.Clean("/" + sourceDir)), tmp, nil
}
