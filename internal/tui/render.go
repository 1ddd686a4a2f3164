package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/askervik/stevedore/internal/dash"
)

func fgStyle(theme *Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Fg)
}

func mutedStyle(theme *Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.FgDim)
}

func accentStyle(theme *Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
}

func (a App) View() string {
	if a.width == 0 {
		return "loading…"
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	bodyH := a.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyH < 3 {
		bodyH = 3
	}

	listW := a.width * 3 / 5
	panelW := a.width - listW - 3

	list := a.renderEntries(listW, bodyH)
	panel := a.renderPanel(panelW, bodyH)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listW).Height(bodyH).Render(list),
		lipgloss.NewStyle().Foreground(a.theme.Border).Render(strings.Repeat("│\n", bodyH)),
		lipgloss.NewStyle().Width(panelW).Height(bodyH).Render(panel),
	)

	return header + "\n\n" + body + "\n" + footer
}

// renderHeader shows the view tabs and the snapshot summary line.
func (a App) renderHeader() string {
	theme := &a.theme
	accent := accentStyle(theme)
	muted := mutedStyle(theme)

	var tabs []string
	for v := dash.ViewContainers; v <= dash.ViewCompose; v++ {
		label := fmt.Sprintf("%d:%s", int(v)+1, v)
		if v == a.view {
			tabs = append(tabs, accent.Render(label))
		} else {
			tabs = append(tabs, muted.Render(label))
		}
	}

	s := a.summary
	mem := s.MemUsageText
	if s.TotalMemUsagePercent != nil {
		mem = fmt.Sprintf("%s (%.1f%%)", s.MemUsageText, *s.TotalMemUsagePercent)
	}
	summary := fmt.Sprintf(
		"%d containers (%d running) · %d images · %d compose · cpu %.1f%% avg %.1f%% · mem %s · net ↓%s ↑%s",
		s.TotalContainers, s.RunningContainers, s.TotalImages, s.ComposeProjects,
		s.TotalCPUPercent, s.AvgCPUPercent, mem, s.NetRxText, s.NetTxText,
	)

	return strings.Join(tabs, "  ") + "\n" + muted.Render(TruncateStyled(summary, a.width))
}

// renderEntries renders the selectable list of the active view.
func (a App) renderEntries(w, h int) string {
	theme := &a.theme
	muted := mutedStyle(theme)

	if len(a.entries) == 0 {
		return muted.Render("nothing to show")
	}

	selIdx := -1
	if a.sel != nil {
		for i := range a.entries {
			if a.entries[i].Key == a.sel.Key {
				selIdx = i
				break
			}
		}
	}

	titleW := w * 2 / 5
	var lines []string
	for i, e := range a.entries {
		cursor := "  "
		if i == selIdx {
			cursor = accentStyle(theme).Render("> ")
		}
		title := padRight(Truncate(e.Title, titleW), titleW)
		sub := Truncate(e.Subtitle, w-titleW-4)

		subStyle := muted
		if e.Kind == dash.KindContainer || e.Kind == dash.KindCompose {
			subStyle = lipgloss.NewStyle().Foreground(theme.StatusColor(e.Subtitle))
		}
		lines = append(lines, cursor+fgStyle(theme).Render(title)+"  "+subStyle.Render(sub))
	}

	// Keep the cursor in view.
	if selIdx >= 0 && len(lines) > h {
		start := selIdx - h/2
		if start < 0 {
			start = 0
		}
		if start+h > len(lines) {
			start = len(lines) - h
		}
		lines = lines[start : start+h]
	}
	return strings.Join(lines, "\n")
}

// renderPanel renders the top-N usage panel.
func (a App) renderPanel(w, h int) string {
	theme := &a.theme
	title := accentStyle(theme).Render(fmt.Sprintf("top %d by %s", a.topN, a.dim))
	rows := renderTopN(a.panel, w, theme)
	return title + "\n\n" + rows
}

// renderFooter shows the search box or the key help, plus transient
// status.
func (a App) renderFooter() string {
	theme := &a.theme
	muted := mutedStyle(theme)

	var left string
	if a.searching {
		left = a.search.View()
	} else {
		help := "/ search  f " + a.filter.Status.String() +
			"  d dim  n top-n  R refresh  s start  x stop  t restart  l logs  q quit"
		if a.filter.Query != "" {
			help = "filter: " + a.filter.Query + "  (/ edit)  " + help
		}
		left = muted.Render(TruncateStyled(help, a.width))
	}

	if a.status == "" {
		return left
	}
	return left + "\n" + fgStyle(theme).Render(TruncateStyled(a.status, a.width))
}
