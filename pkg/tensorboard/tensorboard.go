// Package tensorboard has helpers over the TensorBoard lifecycle API.
package tensorboard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/utils/retry"
)

// ErrFailed is returned when the TensorBoard instance turns into Failed status while waiting.
var ErrFailed = errors.New("tensorboard is failed")

// Getter gets a TensorBoard instance. rest.Client satisfies this.
type Getter interface {
	GetTensorBoard(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error)
}

// WaitUntil polls the TensorBoard instance until its status gets one of statuses.
//
// # Args
//
// - ctx: when it is done, waiting is aborted with ctx.Err().
//
// - getter
//
// - tensorboardId
//
// - backoff: interval of polling
//
// - statuses: statuses to wait for.
//
// # Returns
//
// - tensorboards.TensorBoard: the last state of the instance.
//
// - error: ErrFailed if it gets Failed (unless Failed is in statuses),
// or error from getter or backoff.
func WaitUntil(
	ctx context.Context, getter Getter, tensorboardId string,
	backoff retry.Backoff, statuses ...tensorboards.Status,
) (tensorboards.TensorBoard, error) {
	return retry.Blocking(ctx, backoff, func() (tensorboards.TensorBoard, error) {
		tb, err := getter.GetTensorBoard(ctx, tensorboardId)
		if err != nil {
			return tb, err
		}
		if slices.Contains(statuses, tb.Status) {
			return tb, nil
		}
		if tb.Status == tensorboards.Failed {
			return tb, fmt.Errorf("%w: %s: %s", ErrFailed, tensorboardId, tb.ReasonMessage)
		}
		return tb, retry.ErrRetry
	})
}

// WaitUntilRunning waits for the instance gets Running.
func WaitUntilRunning(ctx context.Context, getter Getter, tensorboardId string, backoff retry.Backoff) (tensorboards.TensorBoard, error) {
	return WaitUntil(ctx, getter, tensorboardId, backoff, tensorboards.Running)
}
