package dash

import (
	"sort"

	"github.com/askervik/stevedore/internal/snapshot"
)

// Dimension selects which stat column the usage panel ranks by.
type Dimension int

const (
	DimCPU Dimension = iota
	DimMem
	DimNet
)

func (d Dimension) String() string {
	switch d {
	case DimMem:
		return "mem"
	case DimNet:
		return "net"
	}
	return "cpu"
}

// TopNChoices are the selectable sizes of the usage panel.
var TopNChoices = []int{3, 5, 10}

// Level classifies a row's bar for coloring.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelCrit
)

// Row is one displayed line of the usage panel. Name is the row's
// identity across refreshes; Percent is the bar width (0-100) for the
// active dimension; Label is the raw column text, so an unknown memory
// reading still displays as docker printed it.
type Row struct {
	Name    string
	Value   float64
	Percent float64
	Label   string
	Level   Level
}

// OpKind says what to do with a row when applying a diff.
type OpKind int

const (
	// OpRemove flags a row as leaving; the display decides when the
	// element actually goes away (e.g. after an exit transition).
	OpRemove OpKind = iota
	OpAdd
	OpUpdate
)

// Op is one reconciliation instruction. Applying all ops of an update,
// in order, transforms the previously displayed row set into the new
// one without recreating rows that merely changed value.
type Op struct {
	Kind OpKind
	Row  Row
}

// RankEngine ranks stat records by a dimension, keeps the top-N subset,
// and diffs it against what was displayed last refresh. It is one of
// the two pieces of state that deliberately survive a snapshot swap, so
// a display layer can animate row transitions.
type RankEngine struct {
	rows  map[string]Row
	order []string
}

// NewRankEngine creates an engine with nothing displayed yet.
func NewRankEngine() *RankEngine {
	return &RankEngine{rows: make(map[string]Row)}
}

// key extracts the ranking value for the dimension. A nil memory
// percent ranks as 0; the row label still shows the raw text.
func key(st snapshot.StatRecord, dim Dimension) float64 {
	switch dim {
	case DimMem:
		if st.MemPercent == nil {
			return 0
		}
		return *st.MemPercent
	case DimNet:
		return st.NetRxBytes + st.NetTxBytes
	}
	return st.CPUPercent
}

func label(st snapshot.StatRecord, dim Dimension) string {
	switch dim {
	case DimMem:
		return st.MemRaw
	case DimNet:
		return st.NetRaw
	}
	return st.CPURaw
}

func levelFor(percent float64) Level {
	switch {
	case percent >= 80:
		return LevelCrit
	case percent >= 50:
		return LevelWarn
	}
	return LevelOK
}

// dedupeByName drops all but the last record of each name, keeping the
// position of that last occurrence. Duplicate names in one snapshot are
// undefined upstream; last-wins is this engine's documented tie-break.
func dedupeByName(stats []snapshot.StatRecord) []snapshot.StatRecord {
	last := make(map[string]int, len(stats))
	for i, st := range stats {
		last[st.Name] = i
	}
	out := make([]snapshot.StatRecord, 0, len(last))
	for i, st := range stats {
		if last[st.Name] == i {
			out = append(out, st)
		}
	}
	return out
}

// Update ranks stats by dim, keeps the first n, and returns the
// instruction list that reconciles the previous display with the new
// one: removes first (rows leaving the visible set), then adds and
// updates in display order.
func (e *RankEngine) Update(stats []snapshot.StatRecord, dim Dimension, n int) []Op {
	ranked := dedupeByName(stats)
	// Stable: equal keys keep their prior relative order, so ties do
	// not shuffle between refreshes.
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i], dim) > key(ranked[j], dim)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}

	// Net bars scale against the max of the visible subset only.
	var maxNet float64
	if dim == DimNet {
		for _, st := range ranked {
			if v := key(st, dim); v > maxNet {
				maxNet = v
			}
		}
	}

	visible := make(map[string]Row, len(ranked))
	order := make([]string, 0, len(ranked))
	for _, st := range ranked {
		v := key(st, dim)
		var percent float64
		if dim == DimNet {
			if maxNet > 0 {
				percent = v / maxNet * 100
			}
		} else {
			percent = v
		}
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		visible[st.Name] = Row{
			Name:    st.Name,
			Value:   v,
			Percent: percent,
			Label:   label(st, dim),
			Level:   levelFor(percent),
		}
		order = append(order, st.Name)
	}

	var ops []Op
	for _, name := range e.order {
		if _, ok := visible[name]; !ok {
			ops = append(ops, Op{Kind: OpRemove, Row: e.rows[name]})
		}
	}
	for _, name := range order {
		row := visible[name]
		if _, ok := e.rows[name]; ok {
			ops = append(ops, Op{Kind: OpUpdate, Row: row})
		} else {
			ops = append(ops, Op{Kind: OpAdd, Row: row})
		}
	}

	e.rows = visible
	e.order = order
	return ops
}

// Rows returns the currently displayed rows in rank order.
func (e *RankEngine) Rows() []Row {
	out := make([]Row, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.rows[name])
	}
	return out
}
