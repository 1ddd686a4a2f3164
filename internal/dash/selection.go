package dash

import (
	"strings"

	"github.com/askervik/stevedore/internal/snapshot"
)

// Kind tags what a selection entry refers to.
type Kind int

const (
	KindContainer Kind = iota
	KindImage
	KindStat
	KindCompose
)

// Action is a docker verb the user can trigger on a selection.
type Action string

const (
	ActionRun     Action = "run"
	ActionRmi     Action = "rmi"
	ActionRm      Action = "rm"
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
	ActionLogs    Action = "logs"
)

// actionKind maps each action to the entry kind it may target.
// Image verbs must never receive a container ID and vice versa.
var actionKind = map[Action]Kind{
	ActionRun:     KindImage,
	ActionRmi:     KindImage,
	ActionRm:      KindContainer,
	ActionStart:   KindContainer,
	ActionStop:    KindContainer,
	ActionRestart: KindContainer,
	ActionLogs:    KindContainer,
}

// Entry is one selectable row of the active view. Key is the record's
// identity field and stays stable across refreshes. Target is the
// argument a dispatched command would receive; empty means this entry
// can never be a command target.
type Entry struct {
	Kind     Kind
	Key      string
	Title    string
	Subtitle string
	Target   string
}

// viewKind is the entry kind produced by each view.
var viewKind = map[View]Kind{
	ViewContainers: KindContainer,
	ViewImages:     KindImage,
	ViewStats:      KindStat,
	ViewCompose:    KindCompose,
}

// SanitizeImageID normalizes an image identifier for use as a command
// argument: a digest-algorithm prefix like "sha256:" is stripped and
// every character outside [A-Za-z0-9._-] is removed, so a mangled table
// cell cannot smuggle shell metacharacters downstream.
func SanitizeImageID(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		id = id[i+1:]
	}
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Entries lists the selectable rows of the active view after applying
// the same filter predicates used for display.
func Entries(view View, snap snapshot.Snapshot, f Filter, running *RunningSet) []Entry {
	switch view {
	case ViewContainers:
		items := FilterContainers(snap.Containers, f, running)
		out := make([]Entry, 0, len(items))
		for _, c := range items {
			out = append(out, Entry{
				Kind:     KindContainer,
				Key:      c.ID,
				Title:    c.Name,
				Subtitle: c.Status,
				Target:   c.ID,
			})
		}
		return out

	case ViewImages:
		out := make([]Entry, 0, len(snap.Images))
		for _, img := range snap.Images {
			if !matchImage(img, f.Query) {
				continue
			}
			out = append(out, Entry{
				Kind:     KindImage,
				Key:      img.ID,
				Title:    img.Repository + ":" + img.Tag,
				Subtitle: img.Size,
				Target:   SanitizeImageID(img.ID),
			})
		}
		return out

	case ViewStats:
		out := make([]Entry, 0, len(snap.Stats))
		for _, st := range snap.Stats {
			if !matchStat(st, f.Query) {
				continue
			}
			out = append(out, Entry{
				Kind:     KindStat,
				Key:      st.Name,
				Title:    st.Name,
				Subtitle: st.CPURaw,
			})
		}
		return out

	case ViewCompose:
		out := make([]Entry, 0, len(snap.Compose))
		for _, p := range snap.Compose {
			if !matchCompose(p, f.Query) {
				continue
			}
			out = append(out, Entry{
				Kind:     KindCompose,
				Key:      p.Name,
				Title:    p.Name,
				Subtitle: p.Status,
			})
		}
		return out
	}
	return nil
}

// NormalizeSelection reconciles a previous selection with the current
// entries: it survives if its kind matches the view and its key is
// still listed, otherwise the first entry is selected, and nil means
// nothing is selectable.
func NormalizeSelection(view View, snap snapshot.Snapshot, f Filter, running *RunningSet, prev *Entry) *Entry {
	entries := Entries(view, snap, f, running)
	if len(entries) == 0 {
		return nil
	}
	if prev != nil && prev.Kind == viewKind[view] {
		for i := range entries {
			if entries[i].Key == prev.Key {
				return &entries[i]
			}
		}
	}
	return &entries[0]
}

// ResolveActionTarget returns the command argument for action applied
// to the current selection, or "" when there is no safe target. An
// empty result means "disable the action"; it is never an error.
func ResolveActionTarget(action Action, view View, snap snapshot.Snapshot, f Filter, running *RunningSet, sel *Entry) string {
	want, ok := actionKind[action]
	if !ok || sel == nil {
		return ""
	}
	cur := NormalizeSelection(view, snap, f, running, sel)
	if cur == nil || cur.Kind != want {
		return ""
	}
	return cur.Target
}
