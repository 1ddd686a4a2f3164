// Package dockercli builds and executes docker CLI invocations. It is
// the producer side of the raw table text the snapshot parser consumes,
// and the dispatch side for resolved action targets. Nothing here
// interprets command output.
package dockercli

import (
	"fmt"
	"strconv"
	"time"
)

// Per-command and whole-batch execution deadlines.
const (
	ActionTimeout = 10 * time.Second
	BatchTimeout  = 25 * time.Second
)

// Table format templates. Tab separators make the parser's first split
// strategy exact; the parser's whitespace fallback covers output from a
// docker that ignores them.
const (
	psFormat     = "table {{.ID}}\t{{.Names}}\t{{.Status}}\t{{.Ports}}"
	imagesFormat = "table {{.Repository}}\t{{.Tag}}\t{{.ID}}\t{{.Size}}"
	statsFormat  = "table {{.Name}}\t{{.CPUPerc}}\t{{.MemUsage}}\t{{.NetIO}}"
)

// nowMillis is a seam for tests that need deterministic run names.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// IsSafeIdentifier reports whether value may be passed to docker as a
// container or image identifier: non-empty, at most 128 chars, and only
// alphanumerics plus dot, underscore and dash.
func IsSafeIdentifier(value string) bool {
	if value == "" || len(value) > 128 {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// BuildArgs maps an action name to the docker argument vector. Targeted
// actions require a safe identifier; everything else takes none.
func BuildArgs(action, target string) ([]string, error) {
	switch action {
	case "version":
		return []string{"--version"}, nil
	case "info":
		return []string{"info"}, nil
	case "ps":
		return []string{"ps", "--format", psFormat}, nil
	case "images":
		return []string{"images", "--format", imagesFormat}, nil
	case "stats":
		return []string{"stats", "--no-stream", "--format", statsFormat}, nil
	case "system_df":
		return []string{"system", "df"}, nil
	case "compose_ls":
		return []string{"compose", "ls"}, nil
	case "run", "start", "stop", "restart", "logs", "rm", "rmi":
		if target == "" {
			return nil, fmt.Errorf("action %s requires a target", action)
		}
		if !IsSafeIdentifier(target) {
			return nil, fmt.Errorf("unsafe identifier %q", target)
		}
		switch action {
		case "run":
			name := "svd-run-" + strconv.FormatInt(nowMillis(), 10)
			return []string{"run", "-d", "--name", name, target}, nil
		case "logs":
			return []string{"logs", "--tail", "200", target}, nil
		default:
			return []string{action, target}, nil
		}
	}
	return nil, fmt.Errorf("unsupported docker action: %s", action)
}
