package dash

import (
	"math"
	"testing"

	"github.com/askervik/stevedore/internal/snapshot"
)

func fp(v float64) *float64 { return &v }

func TestSummarizeCounts(t *testing.T) {
	snap := snapshot.Snapshot{
		Containers: []snapshot.ContainerRecord{
			{ID: "1", Name: "redis", Status: "Up 2 hours"},
			{ID: "2", Name: "web", Status: "Exited (0) 3 days ago"},
			{ID: "3", Name: "db", Status: "running"},
		},
		Images:  []snapshot.ImageRecord{{ID: "a"}, {ID: "b"}},
		Compose: []snapshot.ComposeRecord{{Name: "myapp"}},
	}
	s := Summarize(snap)
	if s.TotalContainers != 3 || s.TotalImages != 2 || s.ComposeProjects != 1 {
		t.Errorf("counts = %d/%d/%d", s.TotalContainers, s.TotalImages, s.ComposeProjects)
	}
	if s.RunningContainers != 2 {
		t.Errorf("running = %d, want 2", s.RunningContainers)
	}
}

func TestSummarizeCPU(t *testing.T) {
	snap := snapshot.Snapshot{
		Stats: []snapshot.StatRecord{
			{Name: "a", CPUPercent: 10},
			{Name: "b", CPUPercent: 30},
		},
	}
	s := Summarize(snap)
	if s.TotalCPUPercent != 40 {
		t.Errorf("total cpu = %v, want 40", s.TotalCPUPercent)
	}
	if s.AvgCPUPercent != 20 {
		t.Errorf("avg cpu = %v, want 20", s.AvgCPUPercent)
	}

	empty := Summarize(snapshot.Snapshot{})
	if empty.AvgCPUPercent != 0 {
		t.Errorf("avg cpu of empty = %v, want 0", empty.AvgCPUPercent)
	}
}

func TestSummarizeMemIsWeighted(t *testing.T) {
	// 50/100 and 10/1000: the weighted aggregate is 60/1100, not the
	// 25.5 an average of 50% and 1% would give.
	snap := snapshot.Snapshot{
		Stats: []snapshot.StatRecord{
			{Name: "a", MemUsedBytes: fp(50), MemLimitBytes: fp(100), MemPercent: fp(50)},
			{Name: "b", MemUsedBytes: fp(10), MemLimitBytes: fp(1000), MemPercent: fp(1)},
		},
	}
	s := Summarize(snap)
	if s.TotalMemUsagePercent == nil {
		t.Fatal("TotalMemUsagePercent = nil")
	}
	want := 60.0 / 1100.0 * 100
	if math.Abs(*s.TotalMemUsagePercent-want) > 1e-9 {
		t.Errorf("mem percent = %v, want %v", *s.TotalMemUsagePercent, want)
	}
}

func TestSummarizeNoLimits(t *testing.T) {
	snap := snapshot.Snapshot{
		Stats: []snapshot.StatRecord{{Name: "a", CPUPercent: 5}},
	}
	s := Summarize(snap)
	if s.TotalMemUsagePercent != nil {
		t.Errorf("mem percent = %v, want nil", *s.TotalMemUsagePercent)
	}
	if s.MemUsageText != NotMeasured || s.NetRxText != NotMeasured || s.NetTxText != NotMeasured {
		t.Errorf("placeholders missing: %+v", s)
	}
}

func TestSummarizeHumanizedTotals(t *testing.T) {
	snap := snapshot.Snapshot{
		Stats: []snapshot.StatRecord{
			{Name: "a", MemUsedBytes: fp(200 << 20), MemLimitBytes: fp(1 << 30), NetRxBytes: 1536, NetTxBytes: 512},
		},
	}
	s := Summarize(snap)
	if s.MemUsageText != "200 MiB" {
		t.Errorf("mem text = %q", s.MemUsageText)
	}
	if s.NetRxText != "1.50 KiB" {
		t.Errorf("rx text = %q", s.NetRxText)
	}
	if s.NetTxText != "512 B" {
		t.Errorf("tx text = %q", s.NetTxText)
	}
}
