// Package dash holds the dashboard logic layered on top of snapshots:
// cross-cutting summaries, the running-set cache, display filtering,
// selection resolution and the top-N rank engine. Everything in this
// package is synchronous and free of I/O; state that survives a refresh
// (RunningSet, RankEngine) is called out explicitly.
package dash

import (
	"strings"

	"github.com/askervik/stevedore/internal/snapshot"
)

// View identifies which record set the dashboard is looking at.
type View int

const (
	ViewContainers View = iota
	ViewImages
	ViewStats
	ViewCompose
)

func (v View) String() string {
	switch v {
	case ViewContainers:
		return "containers"
	case ViewImages:
		return "images"
	case ViewStats:
		return "stats"
	case ViewCompose:
		return "compose"
	}
	return "unknown"
}

// StatusFilter narrows the containers view by run state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusRunning
	StatusExited
)

func (s StatusFilter) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusExited:
		return "exited"
	}
	return "all"
}

// Filter is the user's current search text and status narrowing.
type Filter struct {
	Query  string
	Status StatusFilter
}

// IsRunning classifies a status column as running. Docker reports
// running containers as "Up ..." and compose projects as "running(n)".
func IsRunning(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "up") || strings.Contains(s, "running")
}

// containsFold reports whether any of the fields contains the query,
// case-insensitively. An empty query matches everything.
func containsFold(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func matchContainer(c snapshot.ContainerRecord, q string) bool {
	return containsFold(q, c.Name, c.ID, c.Status, c.Ports)
}

func matchImage(img snapshot.ImageRecord, q string) bool {
	return containsFold(q, img.Repository, img.Tag, img.ID)
}

func matchStat(st snapshot.StatRecord, q string) bool {
	return containsFold(q, st.Name)
}

func matchCompose(p snapshot.ComposeRecord, q string) bool {
	return containsFold(q, p.Name, p.Status, p.ConfigFiles)
}

// FilterContainers applies the query and status filter to the container
// set, consulting the running-set cache for the status classification.
func FilterContainers(items []snapshot.ContainerRecord, f Filter, running *RunningSet) []snapshot.ContainerRecord {
	ids := running.Ensure(items)
	out := make([]snapshot.ContainerRecord, 0, len(items))
	for _, c := range items {
		if !matchContainer(c, f.Query) {
			continue
		}
		_, up := ids[c.ID]
		if f.Status == StatusRunning && !up {
			continue
		}
		if f.Status == StatusExited && up {
			continue
		}
		out = append(out, c)
	}
	return out
}
