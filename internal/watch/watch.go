// Package watch subscribes to Docker engine container events and turns
// them into a coalesced change signal, so the dashboard can refresh as
// soon as a container starts or dies instead of waiting for the next
// poll tick. The watcher is best-effort: if the engine API is not
// reachable the dashboard still works on its timer.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// retryDelay is how long to wait before resubscribing after the event
// stream errors out.
const retryDelay = 5 * time.Second

// relevant lists the event actions that change what the dashboard
// shows. Exec and health-check chatter is ignored.
var relevant = map[events.Action]bool{
	events.ActionCreate:  true,
	events.ActionStart:   true,
	events.ActionStop:    true,
	events.ActionDie:     true,
	events.ActionKill:    true,
	events.ActionPause:   true,
	events.ActionUnPause: true,
	events.ActionRestart: true,
	events.ActionDestroy: true,
	events.ActionRename:  true,
}

// Watcher holds the engine API client for the event subscription.
type Watcher struct {
	client *client.Client
}

// New connects to the Docker engine using the standard environment
// configuration (DOCKER_HOST etc.).
func New() (*Watcher, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return &Watcher{client: cli}, nil
}

// Close releases the engine API client.
func (w *Watcher) Close() error {
	return w.client.Close()
}

// Run subscribes to container events and pokes changed for every
// relevant one, resubscribing after stream errors, until ctx is done.
// Sends are non-blocking: a signal that cannot be delivered because one
// is already pending is dropped, which is exactly the coalescing the
// consumer wants.
func (w *Watcher) Run(ctx context.Context, changed chan<- struct{}) {
	f := filters.NewArgs()
	f.Add("type", "container")

	for {
		msgs, errs := w.client.Events(ctx, events.ListOptions{Filters: f})

	stream:
		for {
			select {
			case <-ctx.Done():
				return

			case msg := <-msgs:
				if !relevant[msg.Action] {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}

			case err := <-errs:
				if ctx.Err() != nil {
					return
				}
				slog.Warn("docker event stream lost", "error", err)
				break stream
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}
