package dockercli

import (
	"strings"
	"testing"
)

func TestBuildArgsStatusCommands(t *testing.T) {
	tests := []struct {
		action string
		want   []string
	}{
		{"version", []string{"--version"}},
		{"info", []string{"info"}},
		{"ps", []string{"ps", "--format", "table {{.ID}}\t{{.Names}}\t{{.Status}}\t{{.Ports}}"}},
		{"images", []string{"images", "--format", "table {{.Repository}}\t{{.Tag}}\t{{.ID}}\t{{.Size}}"}},
		{"stats", []string{"stats", "--no-stream", "--format", "table {{.Name}}\t{{.CPUPerc}}\t{{.MemUsage}}\t{{.NetIO}}"}},
		{"system_df", []string{"system", "df"}},
		{"compose_ls", []string{"compose", "ls"}},
	}
	for _, tt := range tests {
		got, err := BuildArgs(tt.action, "")
		if err != nil {
			t.Fatalf("BuildArgs(%s) error: %v", tt.action, err)
		}
		if strings.Join(got, "\x00") != strings.Join(tt.want, "\x00") {
			t.Errorf("BuildArgs(%s) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestBuildArgsTargetedCommands(t *testing.T) {
	for _, action := range []string{"start", "stop", "restart", "rm", "rmi"} {
		got, err := BuildArgs(action, "redis-1")
		if err != nil {
			t.Fatalf("BuildArgs(%s) error: %v", action, err)
		}
		if len(got) != 2 || got[0] != action || got[1] != "redis-1" {
			t.Errorf("BuildArgs(%s) = %q", action, got)
		}
	}

	got, err := BuildArgs("logs", "redis-1")
	if err != nil {
		t.Fatalf("logs error: %v", err)
	}
	if strings.Join(got, " ") != "logs --tail 200 redis-1" {
		t.Errorf("logs args = %q", got)
	}
}

func TestBuildArgsRunName(t *testing.T) {
	defer func(orig func() int64) { nowMillis = orig }(nowMillis)
	nowMillis = func() int64 { return 1700000000000 }

	got, err := BuildArgs("run", "abc123")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	want := "run -d --name svd-run-1700000000000 abc123"
	if strings.Join(got, " ") != want {
		t.Errorf("run args = %q, want %q", strings.Join(got, " "), want)
	}
}

func TestBuildArgsRejectsBadInput(t *testing.T) {
	if _, err := BuildArgs("stop", ""); err == nil {
		t.Error("missing target should fail")
	}
	if _, err := BuildArgs("stop", "redis; rm -rf /"); err == nil {
		t.Error("unsafe target should fail")
	}
	if _, err := BuildArgs("explode", ""); err == nil {
		t.Error("unknown action should fail")
	}
}

func TestIsSafeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"redis-1", true},
		{"my.image_v2", true},
		{"ABC123", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{"sha256:abc", false},
		{strings.Repeat("a", 128), true},
		{strings.Repeat("a", 129), false},
	}
	for _, tt := range tests {
		if got := IsSafeIdentifier(tt.in); got != tt.want {
			t.Errorf("IsSafeIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
