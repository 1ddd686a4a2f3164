package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/askervik/stevedore/internal/dash"
)

// panelRow is one line of the usage panel. A row flagged leaving stays
// on screen dimmed for one more refresh cycle before it disappears, so
// dropping out of the top-N reads as a transition rather than a jump.
type panelRow struct {
	dash.Row
	leaving bool
}

// applyOps folds a rank reconciliation instruction list into the
// displayed rows: rows that were already leaving are dropped, removed
// rows are kept but flagged, and added/updated rows take their rank
// order. Leaving rows sink below the live ones.
func applyOps(current []panelRow, ops []dash.Op) []panelRow {
	old := make(map[string]panelRow, len(current))
	for _, r := range current {
		if !r.leaving {
			old[r.Name] = r
		}
	}

	var live, leaving []panelRow
	for _, op := range ops {
		switch op.Kind {
		case dash.OpRemove:
			if r, ok := old[op.Row.Name]; ok {
				r.leaving = true
				leaving = append(leaving, r)
			}
		case dash.OpAdd, dash.OpUpdate:
			live = append(live, panelRow{Row: op.Row})
		}
	}
	return append(live, leaving...)
}

// renderTopN renders the usage panel rows with relative bars.
func renderTopN(rows []panelRow, w int, theme *Theme) string {
	if len(rows) == 0 {
		return mutedStyle(theme).Render("no stats yet")
	}

	nameW := w / 3
	if nameW > 20 {
		nameW = 20
	}
	labelW := 14
	barW := w - nameW - labelW - 4
	if barW < 5 {
		barW = 5
	}

	muted := mutedStyle(theme)
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}

		filled := int(r.Percent/100*float64(barW) + 0.5)
		if filled > barW {
			filled = barW
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)

		name := padRight(Truncate(r.Name, nameW), nameW)
		label := padLeft(Truncate(r.Label, labelW), labelW)

		if r.leaving {
			b.WriteString(muted.Render(name + "  " + bar + "  " + label))
			continue
		}
		barStyle := lipgloss.NewStyle().Foreground(theme.LevelColor(r.Level))
		b.WriteString(fgStyle(theme).Render(name))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(bar))
		b.WriteString("  ")
		b.WriteString(muted.Render(label))
	}
	return b.String()
}
