package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/opst/paikit/pkg/configs/profiles"
	"github.com/opst/paikit/pkg/logger"
	"github.com/opst/paikit/pkg/rest"
	"github.com/youta-t/flarc"
	"go.uber.org/zap"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *zap.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		z := logger.New(cl.Stderr(), logger.ParseLevel(commonFlag.LogLevel)).
			Named(cl.Fullname())
		defer z.Sync()

		return task(ctx, z, commonFlag, cl, newpos)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *zap.Logger,
	client rest.Client,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask builds a flarc.Task which calls task with a client for the selected profile.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *zap.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		client, err := Client(commonFlag)
		if err != nil {
			return err
		}
		return task(ctx, logger, client, cl, params)
	})
}

// Client builds a client for the profile named in commonFlag.
func Client(commonFlag CommonFlags) (rest.Client, error) {
	store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileStoreNotFound) {
			return nil, fmt.Errorf(
				"%w: profile store (%s) is not found. Ask your admin to get profile",
				err, commonFlag.ProfileStore,
			)
		}
		return nil, fmt.Errorf(
			"%w: failed to load profile store (%s)",
			err, commonFlag.ProfileStore,
		)
	}
	prof, ok := store[commonFlag.Profile]
	if !ok {
		return nil, fmt.Errorf(
			"profile '%s' not found in the profile store (%s)",
			commonFlag.Profile, commonFlag.ProfileStore,
		)
	}

	client, err := rest.NewClient(prof)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to create client. Your profile (%s in %s) can be broken",
			err, commonFlag.Profile, commonFlag.ProfileStore,
		)
	}
	return client, nil
}
