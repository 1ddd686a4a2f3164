package tui

import (
	"testing"

	"github.com/askervik/stevedore/internal/dash"
)

func TestApplyOpsAddsInOrder(t *testing.T) {
	ops := []dash.Op{
		{Kind: dash.OpAdd, Row: dash.Row{Name: "a"}},
		{Kind: dash.OpAdd, Row: dash.Row{Name: "b"}},
	}
	rows := applyOps(nil, ops)
	if len(rows) != 2 || rows[0].Name != "a" || rows[1].Name != "b" {
		t.Errorf("rows = %+v", rows)
	}
	for _, r := range rows {
		if r.leaving {
			t.Errorf("fresh row %s marked leaving", r.Name)
		}
	}
}

func TestApplyOpsRemoveLingersOneCycle(t *testing.T) {
	rows := applyOps(nil, []dash.Op{
		{Kind: dash.OpAdd, Row: dash.Row{Name: "a", Value: 1}},
		{Kind: dash.OpAdd, Row: dash.Row{Name: "b", Value: 2}},
	})

	// b drops out: it stays, flagged, below the live rows.
	rows = applyOps(rows, []dash.Op{
		{Kind: dash.OpRemove, Row: dash.Row{Name: "b"}},
		{Kind: dash.OpUpdate, Row: dash.Row{Name: "a", Value: 5}},
	})
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want a live and b leaving", rows)
	}
	if rows[0].Name != "a" || rows[0].leaving {
		t.Errorf("row 0 = %+v, want live a", rows[0])
	}
	if rows[0].Value != 5 {
		t.Errorf("update not applied in place: %+v", rows[0])
	}
	if rows[1].Name != "b" || !rows[1].leaving {
		t.Errorf("row 1 = %+v, want leaving b", rows[1])
	}

	// Next cycle: the leaving row is gone for good.
	rows = applyOps(rows, []dash.Op{
		{Kind: dash.OpUpdate, Row: dash.Row{Name: "a", Value: 6}},
	})
	if len(rows) != 1 || rows[0].Name != "a" {
		t.Errorf("rows = %+v, want only a", rows)
	}
}

func TestApplyOpsReaddedRowComesBackLive(t *testing.T) {
	rows := applyOps(nil, []dash.Op{{Kind: dash.OpAdd, Row: dash.Row{Name: "a"}}})
	rows = applyOps(rows, []dash.Op{{Kind: dash.OpRemove, Row: dash.Row{Name: "a"}}})
	rows = applyOps(rows, []dash.Op{{Kind: dash.OpAdd, Row: dash.Row{Name: "a", Value: 3}}})
	if len(rows) != 1 || rows[0].leaving || rows[0].Value != 3 {
		t.Errorf("rows = %+v, want live a", rows)
	}
}
