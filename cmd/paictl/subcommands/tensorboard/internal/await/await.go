// Package await waits for TensorBoard instances in subcommands.
package await

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/tensorboard"
	"github.com/opst/paikit/pkg/utils/retry"
	"go.uber.org/zap"
)

// DefaultBackoff polls from every second to every 10 seconds.
func DefaultBackoff() retry.Backoff {
	return retry.ExponentialBackoff(time.Second, 1.5, 10*time.Second)
}

// Running waits until the TensorBoard gets Running, up to timeout.
//
// Non-positive timeout means waiting forever.
func Running(
	ctx context.Context, logger *zap.Logger, getter tensorboard.Getter,
	tensorboardId string, timeout time.Duration, backoff retry.Backoff,
) (tensorboards.TensorBoard, error) {
	if 0 < timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("waiting until the tensorboard gets running", zap.String("tensorboardId", tensorboardId))
	tb, err := tensorboard.WaitUntilRunning(ctx, getter, tensorboardId, backoff)
	if errors.Is(err, context.DeadlineExceeded) {
		return tb, fmt.Errorf("tensorboard %s is not running yet (%s): %w", tensorboardId, tb.Status, err)
	}
	return tb, err
}
