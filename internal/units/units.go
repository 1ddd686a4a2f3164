// Package units parses the percentage and byte-size strings emitted by
// docker's table output and humanizes byte counts for display.
//
// Parsing here never fails: every function has a documented degradation
// value so that one malformed column cannot poison a whole refresh.
// "Unknown" and "absent" are distinct outcomes: memory columns degrade to
// nil (unknown), network columns degrade to 0 (no traffic).
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

var sizeRe = regexp.MustCompile(`^([-+]?[0-9]*\.?[0-9]+)\s*([A-Za-z]+)?$`)

// unitScale maps a lowercased unit suffix to its byte multiplier.
// Binary units (KiB..EiB) are powers of 1024, decimal units (KB..EB)
// powers of 1000. A bare number or "B" is already bytes.
var unitScale = map[string]float64{
	"b":   1,
	"kib": 1 << 10,
	"mib": 1 << 20,
	"gib": 1 << 30,
	"tib": 1 << 40,
	"pib": 1 << 50,
	"eib": 1 << 60,
	"kb":  1e3,
	"mb":  1e6,
	"gb":  1e9,
	"tb":  1e12,
	"pb":  1e15,
	"eb":  1e18,
}

// ParsePercent extracts the first decimal number from s ("12.5%",
// "cpu: 3.2"). Returns 0 when s contains no number.
func ParsePercent(s string) float64 {
	m := numberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseSize converts a size string like "1.5GiB" or "200MB" to bytes.
// The second return is false when the number or unit is unrecognized;
// callers must keep that distinct from a genuine zero.
func ParseSize(s string) (float64, bool) {
	m := sizeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	scale, ok := unitScale[strings.ToLower(m[2])]
	if m[2] == "" {
		scale, ok = 1, true
	}
	if !ok {
		return 0, false
	}
	return v * scale, true
}

// ParseMemoryUsage splits a "used / limit" column (docker MemUsage) into
// used bytes, limit bytes and a usage percentage. A side that fails to
// parse is nil; the percentage is computed only when the limit is known
// and positive. A string without both sides yields all nil.
func ParseMemoryUsage(s string) (used, limit, percent *float64) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return nil, nil, nil
	}
	if v, ok := ParseSize(strings.TrimSpace(parts[0])); ok {
		used = &v
	}
	if v, ok := ParseSize(strings.TrimSpace(parts[1])); ok {
		limit = &v
	}
	if used != nil && limit != nil && *limit > 0 {
		p := *used / *limit * 100
		percent = &p
	}
	return used, limit, percent
}

// ParseNetworkUsage splits an "rx / tx" column (docker NetIO) into byte
// counts. Unlike memory, an unparseable side means "no traffic", so each
// side independently degrades to 0.
func ParseNetworkUsage(s string) (rx, tx float64) {
	parts := strings.SplitN(s, "/", 2)
	if v, ok := ParseSize(strings.TrimSpace(parts[0])); ok {
		rx = v
	}
	if len(parts) == 2 {
		if v, ok := ParseSize(strings.TrimSpace(parts[1])); ok {
			tx = v
		}
	}
	return rx, tx
}

var byteSteps = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatBytes humanizes a byte count in binary units: "0 B", "1.50 KiB",
// "200 MiB". Precision tightens as the value grows: two decimals below
// 10, one below 100, none from 100 up. Non-finite and non-positive
// values render as "0 B".
func FormatBytes(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return "0 B"
	}
	step := 0
	for n >= 1024 && step < len(byteSteps)-1 {
		n /= 1024
		step++
	}
	switch {
	case n >= 100:
		return strconv.FormatFloat(n, 'f', 0, 64) + " " + byteSteps[step]
	case n >= 10:
		return strconv.FormatFloat(n, 'f', 1, 64) + " " + byteSteps[step]
	default:
		return strconv.FormatFloat(n, 'f', 2, 64) + " " + byteSteps[step]
	}
}
