package dockercli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// CommandResult captures one finished docker invocation. ExitCode -1
// means the command did not run to completion (timeout, bad arguments,
// missing binary); Stderr then carries the reason.
type CommandResult struct {
	Action   string
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
}

// OverviewResult is the raw text of one refresh cycle, one field per
// source. The cardinality is fixed so a consumer can never be handed a
// source it does not know the shape of.
type OverviewResult struct {
	Containers CommandResult
	Images     CommandResult
	Stats      CommandResult
	Compose    CommandResult
}

// overviewActions, in execution order, paired with the OverviewResult
// field each one fills.
var overviewActions = []string{"ps", "images", "stats", "compose_ls"}

// Runner executes docker commands with bounded runtimes.
type Runner struct {
	// Bin is the docker binary to invoke, "docker" by default.
	Bin string
}

// NewRunner returns a runner for the given binary path.
func NewRunner(bin string) *Runner {
	if bin == "" {
		bin = "docker"
	}
	return &Runner{Bin: bin}
}

// Run executes one docker action under the per-action timeout and
// returns its captured output. Argument-building failures are returned
// as errors; a command that merely exits non-zero is a normal result.
func (r *Runner) Run(ctx context.Context, action, target string) (CommandResult, error) {
	return r.run(ctx, action, target, ActionTimeout)
}

func (r *Runner) run(ctx context.Context, action, target string, timeout time.Duration) (CommandResult, error) {
	args, err := BuildArgs(action, target)
	if err != nil {
		return CommandResult{}, fmt.Errorf("build args: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := CommandResult{
		Action:  action,
		Command: r.Bin + " " + strings.Join(args, " "),
	}

	cmd := exec.CommandContext(ctx, r.Bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	switch {
	case err == nil:
		res.ExitCode = 0
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Stderr = fmt.Sprintf("timed out after %s", timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Stderr = err.Error()
		}
	}
	return res, nil
}

// Overview runs the four status commands sequentially under a shared
// deadline. A command that cannot start before the deadline, or that
// fails, yields a synthetic result; the batch itself never fails, so
// one slow source cannot blank out the others.
func (r *Runner) Overview(ctx context.Context) OverviewResult {
	started := time.Now()
	results := make([]CommandResult, len(overviewActions))

	for i, action := range overviewActions {
		elapsed := time.Since(started)
		if elapsed >= BatchTimeout {
			results[i] = CommandResult{
				Action:   action,
				Command:  r.Bin + " " + action,
				Stderr:   fmt.Sprintf("overview batch exceeded %s", BatchTimeout),
				ExitCode: -1,
			}
			continue
		}

		timeout := BatchTimeout - elapsed
		if timeout > ActionTimeout {
			timeout = ActionTimeout
		}
		res, err := r.run(ctx, action, "", timeout)
		if err != nil {
			slog.Warn("overview command failed", "action", action, "error", err)
			res = CommandResult{
				Action:   action,
				Command:  r.Bin + " " + action,
				Stderr:   err.Error(),
				ExitCode: -1,
			}
		}
		results[i] = res
	}

	return OverviewResult{
		Containers: results[0],
		Images:     results[1],
		Stats:      results[2],
		Compose:    results[3],
	}
}
