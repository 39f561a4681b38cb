package create_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/opst/paikit/cmd/paictl/subcommands/internal/commandline"
	"github.com/opst/paikit/cmd/paictl/subcommands/tensorboard/create"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
	"github.com/opst/paikit/pkg/logger"
	"github.com/opst/paikit/pkg/rest/mock"
	"github.com/opst/paikit/pkg/tensorboard"
	"github.com/opst/paikit/pkg/utils/retry"
	"github.com/youta-t/flarc"
)

func TestCreate(t *testing.T) {
	type When struct {
		Flags create.Flags

		// statuses returned by GetTensorBoard in order. The last one repeats.
		Statuses []tensorboards.Status
	}
	type Then struct {
		Request   *tensorboards.CreateRequest
		GetCalled int

		// when nil, no output is expected.
		Output *tensorboards.TensorBoard
		Err    error
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.CreateTensorBoard = func(ctx context.Context, req tensorboards.CreateRequest) (tensorboards.CreateResponse, error) {
				return tensorboards.CreateResponse{TensorboardId: "tb-1", RequestId: "req-1"}, nil
			}
			nth := 0
			client.Impl.GetTensorBoard = func(ctx context.Context, tensorboardId string) (tensorboards.TensorBoard, error) {
				status := when.Statuses[min(nth, len(when.Statuses)-1)]
				nth += 1
				return tensorboards.TensorBoard{
					TensorboardId: tensorboardId, Status: status, ReasonMessage: "reason",
				}, nil
			}

			option := create.WithBackoff(func() retry.Backoff {
				return retry.StaticBackoff(time.Millisecond)
			})(&create.Option{})

			cl, stdout, _ := commandline.New("paictl tensorboard create", when.Flags, map[string][]string{})
			err := create.Task(option)(context.Background(), logger.Null(), client, cl, nil)

			if then.Err != nil {
				if !errors.Is(err, then.Err) {
					t.Errorf("expected %v, but %v", then.Err, err)
				}
			} else if err != nil {
				t.Fatal(err)
			}

			if then.Request == nil {
				if len(client.Calls.CreateTensorBoard) != 0 {
					t.Errorf("unexpected request: %+v", client.Calls.CreateTensorBoard)
				}
			} else if diff := cmp.Diff([]tensorboards.CreateRequest{*then.Request}, client.Calls.CreateTensorBoard); diff != "" {
				t.Errorf("request (-want +got):\n%s", diff)
			}

			if 0 <= then.GetCalled && then.GetCalled != len(client.Calls.GetTensorBoard) {
				t.Errorf("GetTensorBoard called %d times, expected %d", len(client.Calls.GetTensorBoard), then.GetCalled)
			}

			if then.Output == nil {
				if stdout.Len() != 0 {
					t.Errorf("unexpected output: %s", stdout.String())
				}
				return
			}
			var actual tensorboards.TensorBoard
			if err := json.Unmarshal([]byte(stdout.String()), &actual); err != nil {
				t.Fatalf("output is not json: %s\n%s", err, stdout.String())
			}
			if diff := cmp.Diff(*then.Output, actual); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("without summaries, it is usage error", theory(
		When{Flags: create.Flags{Name: "tb"}},
		Then{Err: flarc.ErrUsage},
	))

	t.Run("negative max running time is usage error", theory(
		When{Flags: create.Flags{Uri: "oss://bucket/logs", MaxRunning: -time.Minute}},
		Then{Err: flarc.ErrUsage},
	))

	t.Run("it creates a TensorBoard and shows it", theory(
		When{
			Flags: create.Flags{
				Name:        "tb",
				SourceType:  "job",
				SourceId:    "dlc-1",
				SummaryPath: "logs/",
				MaxRunning:  90 * time.Second,
			},
			Statuses: []tensorboards.Status{tensorboards.Creating},
		},
		Then{
			Request: &tensorboards.CreateRequest{
				DisplayName:           "tb",
				SourceType:            "job",
				SourceId:              "dlc-1",
				SummaryRelativePath:   "logs/",
				MaxRunningTimeMinutes: 2,
			},
			GetCalled: 1,
			Output: &tensorboards.TensorBoard{
				TensorboardId: "tb-1", Status: tensorboards.Creating, ReasonMessage: "reason",
			},
		},
	))

	t.Run("with --wait, it waits until the TensorBoard gets Running", theory(
		When{
			Flags: create.Flags{Uri: "oss://bucket/logs", Workspace: "ws-1", Wait: true},
			Statuses: []tensorboards.Status{
				tensorboards.Creating, tensorboards.Creating, tensorboards.Running,
			},
		},
		Then{
			Request:   &tensorboards.CreateRequest{Uri: "oss://bucket/logs", WorkspaceId: "ws-1"},
			GetCalled: 3,
			Output: &tensorboards.TensorBoard{
				TensorboardId: "tb-1", Status: tensorboards.Running, ReasonMessage: "reason",
			},
		},
	))

	t.Run("with --wait, it fails when the TensorBoard gets Failed", theory(
		When{
			Flags:    create.Flags{DataSourceId: "ds-1", Wait: true},
			Statuses: []tensorboards.Status{tensorboards.Creating, tensorboards.Failed},
		},
		Then{
			Request:   &tensorboards.CreateRequest{DataSourceId: "ds-1"},
			GetCalled: 2,
			Err:       tensorboard.ErrFailed,
		},
	))

	t.Run("with --wait, it gives up after timeout", theory(
		When{
			Flags:    create.Flags{DataSourceId: "ds-1", Wait: true, Timeout: 20 * time.Millisecond},
			Statuses: []tensorboards.Status{tensorboards.Creating},
		},
		Then{
			Request: &tensorboards.CreateRequest{DataSourceId: "ds-1"},
			// polled some times, not checked strictly
			GetCalled: -1,
			Err:       context.DeadlineExceeded,
		},
	))
}
