// Package snapshot turns the raw table text of docker status commands
// into typed record sets. One refresh produces one complete Snapshot
// that replaces the previous one wholesale; records are never patched
// in place.
package snapshot

// ContainerRecord is one row of `docker ps`. ID is the identity field
// and is stable across refreshes for the same container.
type ContainerRecord struct {
	ID     string
	Name   string
	Status string
	Ports  string
}

// ImageRecord is one row of `docker images`, identified by image ID.
type ImageRecord struct {
	Repository string
	Tag        string
	ID         string
	Size       string
}

// StatRecord is one row of `docker stats --no-stream`, identified by
// container name. Raw column texts are kept next to the derived numbers
// so the display can show exactly what docker printed.
//
// Memory fields are nil when the column could not be parsed: an unknown
// limit is meaningful and must not read as zero. Network counters are
// the opposite: a missing or mangled NetIO column means no traffic, so
// they are plain float64s defaulting to 0.
type StatRecord struct {
	Name string

	CPURaw     string
	CPUPercent float64

	MemRaw        string
	MemUsedBytes  *float64
	MemLimitBytes *float64
	MemPercent    *float64

	NetRaw     string
	NetRxBytes float64
	NetTxBytes float64
}

// ComposeRecord is one row of `docker compose ls`, identified by
// project name.
type ComposeRecord struct {
	Name        string
	Status      string
	ConfigFiles string
}

// Snapshot is the full record state of one refresh cycle.
type Snapshot struct {
	Containers []ContainerRecord
	Images     []ImageRecord
	Stats      []StatRecord
	Compose    []ComposeRecord
}
