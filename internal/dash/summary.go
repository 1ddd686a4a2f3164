package dash

import (
	"github.com/askervik/stevedore/internal/snapshot"
	"github.com/askervik/stevedore/internal/units"
)

// NotMeasured is shown for totals that have no data yet, to keep
// "nothing sampled" distinct from a genuine zero.
const NotMeasured = "not yet measured"

// Summary is the dashboard roll-up over one full snapshot. It is
// derived state: recomputed per refresh, never edited.
type Summary struct {
	TotalContainers   int
	RunningContainers int
	TotalImages       int
	ComposeProjects   int

	TotalCPUPercent float64
	AvgCPUPercent   float64

	// TotalMemUsagePercent is the limit-weighted aggregate
	// Σused / Σlimit, nil when no container reported a limit.
	TotalMemUsagePercent *float64

	MemUsageText string
	NetRxText    string
	NetTxText    string
}

// Summarize computes the dashboard summary from the unfiltered record
// sets.
//
// The memory aggregate is weighted by limit: averaging the per-item
// percentages would let a 10 MB container count as much as a 10 GB one.
func Summarize(snap snapshot.Snapshot) Summary {
	s := Summary{
		TotalContainers: len(snap.Containers),
		TotalImages:     len(snap.Images),
		ComposeProjects: len(snap.Compose),
		MemUsageText:    NotMeasured,
		NetRxText:       NotMeasured,
		NetTxText:       NotMeasured,
	}

	for _, c := range snap.Containers {
		if IsRunning(c.Status) {
			s.RunningContainers++
		}
	}

	var memUsed, memLimit, netRx, netTx float64
	for _, st := range snap.Stats {
		s.TotalCPUPercent += st.CPUPercent
		if st.MemUsedBytes != nil {
			memUsed += *st.MemUsedBytes
		}
		if st.MemLimitBytes != nil {
			memLimit += *st.MemLimitBytes
		}
		netRx += st.NetRxBytes
		netTx += st.NetTxBytes
	}

	if n := len(snap.Stats); n > 0 {
		s.AvgCPUPercent = s.TotalCPUPercent / float64(n)
	}
	if memLimit > 0 {
		p := memUsed / memLimit * 100
		s.TotalMemUsagePercent = &p
	}
	if memUsed > 0 {
		s.MemUsageText = units.FormatBytes(memUsed)
	}
	if netRx > 0 {
		s.NetRxText = units.FormatBytes(netRx)
	}
	if netTx > 0 {
		s.NetTxText = units.FormatBytes(netTx)
	}

	return s
}
