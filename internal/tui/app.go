package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/askervik/stevedore/internal/dash"
	"github.com/askervik/stevedore/internal/dockercli"
	"github.com/askervik/stevedore/internal/snapshot"
)

// searchDebounce is the quiet period after a keystroke before the
// filter recomputes.
const searchDebounce = 300 * time.Millisecond

// Message types.
type refreshTickMsg time.Time
type overviewMsg struct{ ov dockercli.OverviewResult }
type engineEventMsg struct{}
type searchDebounceMsg struct{ gen int }
type actionDoneMsg struct {
	action dash.Action
	res    dockercli.CommandResult
	err    error
}

// App is the root bubbletea model.
type App struct {
	cfg    *Config
	theme  Theme
	runner *dockercli.Runner
	// changed receives a signal from the engine event watcher; nil
	// when watching is off.
	changed <-chan struct{}

	width  int
	height int

	view   dash.View
	filter dash.Filter

	search    textinput.Model
	searching bool
	searchGen int // invalidates in-flight debounce ticks

	snap    snapshot.Snapshot
	summary dash.Summary
	running *dash.RunningSet
	entries []dash.Entry
	sel     *dash.Entry

	rank  *dash.RankEngine
	panel []panelRow
	dim   dash.Dimension
	topN  int

	refreshing bool
	status     string
}

// NewApp creates the root model.
func NewApp(cfg *Config, changed <-chan struct{}) App {
	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 64
	search.Prompt = "/"

	return App{
		cfg:     cfg,
		theme:   ThemeFromConfig(cfg.Theme),
		runner:  dockercli.NewRunner(cfg.DockerBin),
		changed: changed,
		search:  search,
		running: dash.NewRunningSet(nil),
		rank:    dash.NewRankEngine(),
		topN:    cfg.TopN,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.refreshCmd(), a.tickCmd()}
	if a.changed != nil {
		cmds = append(cmds, a.waitEventCmd())
	}
	return tea.Batch(cmds...)
}

// refreshCmd runs the overview batch off the update loop.
func (a App) refreshCmd() tea.Cmd {
	runner := a.runner
	return func() tea.Msg {
		return overviewMsg{ov: runner.Overview(context.Background())}
	}
}

func (a App) tickCmd() tea.Cmd {
	return tea.Tick(a.cfg.Refresh.Duration, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// waitEventCmd blocks on the watcher channel and resolves to a refresh
// trigger.
func (a App) waitEventCmd() tea.Cmd {
	ch := a.changed
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return engineEventMsg{}
	}
}

func (a App) actionCmd(action dash.Action, target string) tea.Cmd {
	runner := a.runner
	return func() tea.Msg {
		res, err := runner.Run(context.Background(), string(action), target)
		return actionDoneMsg{action: action, res: res, err: err}
	}
}

func (a App) debounceCmd() tea.Cmd {
	gen := a.searchGen
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case refreshTickMsg:
		cmds := []tea.Cmd{a.tickCmd()}
		if !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, a.refreshCmd())
		}
		return a, tea.Batch(cmds...)

	case engineEventMsg:
		cmds := []tea.Cmd{a.waitEventCmd()}
		if !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, a.refreshCmd())
		}
		return a, tea.Batch(cmds...)

	case overviewMsg:
		a.refreshing = false
		a.applyOverview(msg.ov)
		return a, nil

	case searchDebounceMsg:
		// A newer keystroke or an escape restarted the countdown;
		// this tick is stale.
		if msg.gen != a.searchGen {
			return a, nil
		}
		a.filter.Query = a.search.Value()
		a.recompute()
		return a, nil

	case actionDoneMsg:
		a.status = actionStatus(msg)
		// Container state likely changed; refresh right away.
		if !a.refreshing {
			a.refreshing = true
			return a, a.refreshCmd()
		}
		return a, nil

	case tea.KeyMsg:
		if a.searching {
			return a.updateSearch(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

// applyOverview replaces the snapshot wholesale and rebuilds all
// derived state.
func (a *App) applyOverview(ov dockercli.OverviewResult) {
	a.snap = snapshot.Snapshot{
		Containers: snapshot.ParseContainers(ov.Containers.Stdout),
		Images:     snapshot.ParseImages(ov.Images.Stdout),
		Stats:      snapshot.ParseStats(ov.Stats.Stdout),
		Compose:    snapshot.ParseCompose(ov.Compose.Stdout),
	}
	// The old running-set refers to the previous generation's slice;
	// drop it rather than waiting out the TTL.
	a.running.Clear()
	a.summary = dash.Summarize(a.snap)
	a.recompute()
	a.panel = applyOps(a.panel, a.rank.Update(a.snap.Stats, a.dim, a.topN))

	if ov.Containers.ExitCode != 0 {
		a.status = strings.TrimSpace(ov.Containers.Stderr)
	}
}

// recompute rebuilds entries and selection for the current view and
// filter.
func (a *App) recompute() {
	a.entries = dash.Entries(a.view, a.snap, a.filter, a.running)
	a.sel = dash.NormalizeSelection(a.view, a.snap, a.filter, a.running, a.sel)
}

// rerank rebuilds the usage panel after a dimension or size change.
func (a *App) rerank() {
	a.panel = applyOps(a.panel, a.rank.Update(a.snap.Stats, a.dim, a.topN))
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.search.Blur()
		a.search.SetValue("")
		a.searchGen++
		a.filter.Query = ""
		a.recompute()
		return a, nil
	case "enter":
		a.searching = false
		a.search.Blur()
		a.searchGen++
		a.filter.Query = a.search.Value()
		a.recompute()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.searchGen++
	return a, tea.Batch(cmd, a.debounceCmd())
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "1", "2", "3", "4":
		a.view = dash.View(int(msg.String()[0] - '1'))
		a.recompute()
		return a, nil

	case "/":
		a.searching = true
		a.search.Focus()
		return a, textinput.Blink

	case "f":
		a.filter.Status = (a.filter.Status + 1) % 3
		a.recompute()
		return a, nil

	case "j", "down":
		a.moveSelection(1)
		return a, nil
	case "k", "up":
		a.moveSelection(-1)
		return a, nil

	case "d":
		a.dim = (a.dim + 1) % 3
		a.rerank()
		return a, nil
	case "n":
		a.topN = nextTopN(a.topN)
		a.rerank()
		return a, nil

	case "R":
		if !a.refreshing {
			a.refreshing = true
			return a, a.refreshCmd()
		}
		return a, nil

	case "s":
		return a.dispatch(dash.ActionStart)
	case "x":
		return a.dispatch(dash.ActionStop)
	case "t":
		return a.dispatch(dash.ActionRestart)
	case "backspace":
		return a.dispatch(dash.ActionRm)
	case "u":
		return a.dispatch(dash.ActionRun)
	case "X":
		return a.dispatch(dash.ActionRmi)
	case "l":
		return a.dispatch(dash.ActionLogs)
	}
	return a, nil
}

// moveSelection steps the cursor through the current entries.
func (a *App) moveSelection(delta int) {
	if len(a.entries) == 0 {
		return
	}
	idx := 0
	if a.sel != nil {
		for i := range a.entries {
			if a.entries[i].Key == a.sel.Key {
				idx = i
				break
			}
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(a.entries) {
		idx = len(a.entries) - 1
	}
	a.sel = &a.entries[idx]
}

// dispatch resolves the action against the selection and runs it. An
// empty target disables the action silently except for a status hint.
func (a App) dispatch(action dash.Action) (tea.Model, tea.Cmd) {
	target := dash.ResolveActionTarget(action, a.view, a.snap, a.filter, a.running, a.sel)
	if target == "" {
		a.status = fmt.Sprintf("%s: no valid target", action)
		return a, nil
	}
	a.status = fmt.Sprintf("%s %s…", action, target)
	return a, a.actionCmd(action, target)
}

func nextTopN(n int) int {
	for i, c := range dash.TopNChoices {
		if c == n {
			return dash.TopNChoices[(i+1)%len(dash.TopNChoices)]
		}
	}
	return dash.TopNChoices[0]
}

func actionStatus(msg actionDoneMsg) string {
	if msg.err != nil {
		return fmt.Sprintf("%s failed: %v", msg.action, msg.err)
	}
	if msg.res.ExitCode != 0 {
		reason := strings.TrimSpace(msg.res.Stderr)
		if reason == "" {
			reason = fmt.Sprintf("exit %d", msg.res.ExitCode)
		}
		return fmt.Sprintf("%s failed: %s", msg.action, reason)
	}
	if msg.action == dash.ActionLogs {
		n := strings.Count(msg.res.Stdout, "\n")
		return fmt.Sprintf("logs: %d lines", n)
	}
	return fmt.Sprintf("%s ok", msg.action)
}
