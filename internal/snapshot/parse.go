package snapshot

import (
	"regexp"
	"strings"

	"github.com/askervik/stevedore/internal/units"
)

// missing is the placeholder for a text column the command did not emit.
const missing = "--"

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// dataRows normalizes raw command output into per-row column slices:
// lines are trimmed, blanks dropped, and the header row discarded.
// Fewer than two meaningful lines means there is no data at all.
func dataRows(raw string) [][]string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, splitColumns(line))
	}
	return rows
}

// splitColumns splits one table row into columns. Tab separators are
// tried first (`--format 'table ...'` output); when that yields a single
// token the row is assumed to be a human-aligned table and is split on
// runs of two or more spaces instead. The same command produces either
// form depending on its flags, so both must parse identically.
func splitColumns(line string) []string {
	if cols := tokens(strings.Split(line, "\t")); len(cols) > 1 {
		return cols
	}
	return tokens(multiSpaceRe.Split(line, -1))
}

// tokens trims each part and drops empties.
func tokens(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// col returns column i or a default when the row is too short.
func col(row []string, i int, def string) string {
	if i < len(row) {
		return row[i]
	}
	return def
}

// rest joins every column from i on with a two-space separator, so
// trailing columns that themselves contain spaces (port lists, config
// file lists) survive the split.
func rest(row []string, i int, def string) string {
	if i >= len(row) {
		return def
	}
	return strings.Join(row[i:], "  ")
}

// ParseContainers parses `docker ps` table output.
func ParseContainers(raw string) []ContainerRecord {
	rows := dataRows(raw)
	out := make([]ContainerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ContainerRecord{
			ID:     col(row, 0, missing),
			Name:   col(row, 1, missing),
			Status: col(row, 2, missing),
			Ports:  rest(row, 3, missing),
		})
	}
	return out
}

// ParseImages parses `docker images` table output.
func ParseImages(raw string) []ImageRecord {
	rows := dataRows(raw)
	out := make([]ImageRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ImageRecord{
			Repository: col(row, 0, missing),
			Tag:        col(row, 1, missing),
			ID:         col(row, 2, missing),
			Size:       rest(row, 3, missing),
		})
	}
	return out
}

// ParseStats parses `docker stats --no-stream` table output and derives
// the numeric cpu/memory/network fields from the raw column texts.
func ParseStats(raw string) []StatRecord {
	rows := dataRows(raw)
	out := make([]StatRecord, 0, len(rows))
	for _, row := range rows {
		st := StatRecord{
			Name:   col(row, 0, missing),
			CPURaw: col(row, 1, "0%"),
			MemRaw: col(row, 2, missing),
			NetRaw: rest(row, 3, missing),
		}
		st.CPUPercent = units.ParsePercent(st.CPURaw)
		st.MemUsedBytes, st.MemLimitBytes, st.MemPercent = units.ParseMemoryUsage(st.MemRaw)
		st.NetRxBytes, st.NetTxBytes = units.ParseNetworkUsage(st.NetRaw)
		out = append(out, st)
	}
	return out
}

// ParseCompose parses `docker compose ls` table output.
func ParseCompose(raw string) []ComposeRecord {
	rows := dataRows(raw)
	out := make([]ComposeRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ComposeRecord{
			Name:        col(row, 0, missing),
			Status:      col(row, 1, missing),
			ConfigFiles: rest(row, 2, missing),
		})
	}
	return out
}
