package tensorboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/rest/mock"
	"github.com/opst/paikit/pkg/tensorboard"
	"github.com/opst/paikit/pkg/utils/retry"
)

func TestWaitUntil(t *testing.T) {
	type When struct {
		statuses []tensorboards.Status
		err      error
		wantFor  []tensorboards.Status
		attempts int
	}
	type Then struct {
		status tensorboards.Status
		calls  int
		err    error
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			nth := 0
			client.Impl.GetTensorBoard = func(ctx context.Context, id string) (tensorboards.TensorBoard, error) {
				s := when.statuses[min(nth, len(when.statuses)-1)]
				nth += 1
				return tensorboards.TensorBoard{TensorboardId: id, Status: s, ReasonMessage: "reason"}, when.err
			}

			backoff := retry.Limited(retry.StaticBackoff(time.Millisecond), when.attempts)
			actual, err := tensorboard.WaitUntil(context.Background(), client, "tb-1", backoff, when.wantFor...)

			if !errors.Is(err, then.err) {
				t.Errorf("error: (actual, expected) = (%v, %v)", err, then.err)
			}
			if actual.Status != then.status {
				t.Errorf("status: (actual, expected) = (%s, %s)", actual.Status, then.status)
			}
			if len(client.Calls.GetTensorBoard) != then.calls {
				t.Errorf("calls: (actual, expected) = (%d, %d)", len(client.Calls.GetTensorBoard), then.calls)
			}
		}
	}

	t.Run("it polls until the status is wanted", theory(
		When{
			statuses: []tensorboards.Status{tensorboards.Creating, tensorboards.Creating, tensorboards.Running},
			wantFor:  []tensorboards.Status{tensorboards.Running},
			attempts: 10,
		},
		Then{status: tensorboards.Running, calls: 3},
	))

	t.Run("it returns at once when the status is wanted already", theory(
		When{
			statuses: []tensorboards.Status{tensorboards.Stopped},
			wantFor:  []tensorboards.Status{tensorboards.Running, tensorboards.Stopped},
			attempts: 10,
		},
		Then{status: tensorboards.Stopped, calls: 1},
	))

	t.Run("it aborts when the instance is failed", theory(
		When{
			statuses: []tensorboards.Status{tensorboards.Creating, tensorboards.Failed},
			wantFor:  []tensorboards.Status{tensorboards.Running},
			attempts: 10,
		},
		Then{status: tensorboards.Failed, calls: 2, err: tensorboard.ErrFailed},
	))

	t.Run("Failed can be waited for", theory(
		When{
			statuses: []tensorboards.Status{tensorboards.Failed},
			wantFor:  []tensorboards.Status{tensorboards.Failed},
			attempts: 10,
		},
		Then{status: tensorboards.Failed, calls: 1},
	))

	t.Run("it gives up with the backoff", theory(
		When{
			statuses: []tensorboards.Status{tensorboards.Creating},
			wantFor:  []tensorboards.Status{tensorboards.Running},
			attempts: 2,
		},
		Then{status: tensorboards.Creating, calls: 3, err: retry.ErrGaveUp},
	))

	expectedErr := errors.New("fake error")
	t.Run("it returns error of the client", theory(
		When{
			statuses: []tensorboards.Status{tensorboards.Creating},
			err:      expectedErr,
			wantFor:  []tensorboards.Status{tensorboards.Running},
			attempts: 10,
		},
		Then{status: tensorboards.Creating, calls: 1, err: expectedErr},
	))
}

func TestWaitUntilRunning_Canceled(t *testing.T) {
	client := mock.New(t)
	client.Impl.GetTensorBoard = func(ctx context.Context, id string) (tensorboards.TensorBoard, error) {
		return tensorboards.TensorBoard{TensorboardId: id, Status: tensorboards.Creating}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := tensorboard.WaitUntilRunning(ctx, client, "tb-1", retry.StaticBackoff(10*time.Millisecond))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("unexpected error: %v", err)
	}
}
