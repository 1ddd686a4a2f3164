package dash

import (
	"testing"

	"github.com/askervik/stevedore/internal/snapshot"
)

func testSnap() snapshot.Snapshot {
	return snapshot.Snapshot{
		Containers: []snapshot.ContainerRecord{
			{ID: "c1", Name: "redis", Status: "Up 2 hours", Ports: "6379/tcp"},
			{ID: "c2", Name: "web", Status: "Exited (0) 1h ago", Ports: "--"},
		},
		Images: []snapshot.ImageRecord{
			{Repository: "redis", Tag: "7.2", ID: "sha256:ab$c/12!3", Size: "138MB"},
			{Repository: "nginx", Tag: "latest", ID: "def456", Size: "187MB"},
		},
		Stats: []snapshot.StatRecord{
			{Name: "redis", CPURaw: "12.5%", CPUPercent: 12.5},
		},
		Compose: []snapshot.ComposeRecord{
			{Name: "myapp", Status: "running(3)", ConfigFiles: "/srv/myapp/compose.yml"},
		},
	}
}

func TestSanitizeImageID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sha256:abc123", "abc123"},
		{"abc123", "abc123"},
		{"sha256:ab$c/12!3", "abc123"},
		{"repo.example_1-2", "repo.example_1-2"},
		{"$(rm -rf)", "rm-rf"},
	}
	for _, tt := range tests {
		if got := SanitizeImageID(tt.in); got != tt.want {
			t.Errorf("SanitizeImageID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntriesContainersFiltered(t *testing.T) {
	r := NewRunningSet(nil)
	snap := testSnap()

	got := Entries(ViewContainers, snap, Filter{}, r)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Key != "c1" || got[0].Target != "c1" || got[0].Kind != KindContainer {
		t.Errorf("entry = %+v", got[0])
	}

	got = Entries(ViewContainers, snap, Filter{Status: StatusExited}, r)
	if len(got) != 1 || got[0].Key != "c2" {
		t.Errorf("exited filter = %+v", got)
	}

	// Query matches over ports too.
	got = Entries(ViewContainers, snap, Filter{Query: "6379"}, r)
	if len(got) != 1 || got[0].Key != "c1" {
		t.Errorf("port query = %+v", got)
	}
}

func TestEntriesImagesNormalizeTarget(t *testing.T) {
	r := NewRunningSet(nil)
	got := Entries(ViewImages, testSnap(), Filter{Query: "redis"}, r)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "redis:7.2" {
		t.Errorf("title = %q", got[0].Title)
	}
	// Key keeps the raw identity; only the command target is scrubbed.
	if got[0].Key != "sha256:ab$c/12!3" {
		t.Errorf("key = %q", got[0].Key)
	}
	if got[0].Target != "abc123" {
		t.Errorf("target = %q, want sanitized id", got[0].Target)
	}
}

func TestNormalizeSelection(t *testing.T) {
	r := NewRunningSet(nil)
	snap := testSnap()

	// No previous selection: first entry.
	sel := NormalizeSelection(ViewContainers, snap, Filter{}, r, nil)
	if sel == nil || sel.Key != "c1" {
		t.Fatalf("sel = %+v, want c1", sel)
	}

	// Previous selection still present: kept.
	prev := &Entry{Kind: KindContainer, Key: "c2"}
	sel = NormalizeSelection(ViewContainers, snap, Filter{}, r, prev)
	if sel == nil || sel.Key != "c2" {
		t.Errorf("sel = %+v, want c2", sel)
	}

	// Previous selection of the wrong kind: falls back to first.
	prev = &Entry{Kind: KindImage, Key: "c2"}
	sel = NormalizeSelection(ViewContainers, snap, Filter{}, r, prev)
	if sel == nil || sel.Key != "c1" {
		t.Errorf("sel = %+v, want c1", sel)
	}

	// Previous key vanished: falls back to first.
	prev = &Entry{Kind: KindContainer, Key: "gone"}
	sel = NormalizeSelection(ViewContainers, snap, Filter{}, r, prev)
	if sel == nil || sel.Key != "c1" {
		t.Errorf("sel = %+v, want c1", sel)
	}

	// Nothing matches: no selection.
	sel = NormalizeSelection(ViewContainers, snap, Filter{Query: "nope"}, r, nil)
	if sel != nil {
		t.Errorf("sel = %+v, want nil", sel)
	}
}

func TestResolveActionTargetKindFamilies(t *testing.T) {
	r := NewRunningSet(nil)
	snap := testSnap()

	img := NormalizeSelection(ViewImages, snap, Filter{Query: "redis"}, r, nil)
	if img == nil {
		t.Fatal("no image selection")
	}

	// Container-only verb on an image selection: no target.
	if got := ResolveActionTarget(ActionRm, ViewImages, snap, Filter{Query: "redis"}, r, img); got != "" {
		t.Errorf("rm on image = %q, want empty", got)
	}
	// Image verb: sanitized id.
	if got := ResolveActionTarget(ActionRmi, ViewImages, snap, Filter{Query: "redis"}, r, img); got != "abc123" {
		t.Errorf("rmi = %q, want abc123", got)
	}
	if got := ResolveActionTarget(ActionRun, ViewImages, snap, Filter{Query: "redis"}, r, img); got != "abc123" {
		t.Errorf("run = %q, want abc123", got)
	}

	cont := NormalizeSelection(ViewContainers, snap, Filter{}, r, nil)
	for _, a := range []Action{ActionStart, ActionStop, ActionRestart, ActionLogs, ActionRm} {
		if got := ResolveActionTarget(a, ViewContainers, snap, Filter{}, r, cont); got != "c1" {
			t.Errorf("%s = %q, want c1", a, got)
		}
	}
	if got := ResolveActionTarget(ActionRmi, ViewContainers, snap, Filter{}, r, cont); got != "" {
		t.Errorf("rmi on container = %q, want empty", got)
	}

	// Stat entries are never command targets.
	st := NormalizeSelection(ViewStats, snap, Filter{}, r, nil)
	if got := ResolveActionTarget(ActionStop, ViewStats, snap, Filter{}, r, st); got != "" {
		t.Errorf("stop on stat = %q, want empty", got)
	}

	// No selection at all.
	if got := ResolveActionTarget(ActionStop, ViewContainers, snap, Filter{}, r, nil); got != "" {
		t.Errorf("stop with nil selection = %q, want empty", got)
	}
}
