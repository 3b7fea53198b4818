package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Binary unit multipliers used by zfs list human-readable output
const (
	KB = int64(1) << 10
	MB = int64(1) << 20
	GB = int64(1) << 30
	TB = int64(1) << 40
)

var multipliers = map[byte]int64{
	'K': KB,
	'M': MB,
	'G': GB,
	'T': TB,
}

// ParseSize converts a capacity string into a byte count.
//
// A digit-only string is a raw byte count. Otherwise the last character
// must be one of K/M/G/T (case-insensitive) and the rest is the magnitude,
// parsed as an integer when it has no decimal point and as a float when it
// does. Anything else is an error; a failed parse never returns a partial
// value.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty capacity string")
	}

	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid byte count %q: %w", s, err)
		}
		return n, nil
	}

	suffix := s[len(s)-1]
	if suffix >= 'a' && suffix <= 'z' {
		suffix -= 'a' - 'A'
	}
	mult, ok := multipliers[suffix]
	if !ok {
		return 0, fmt.Errorf("unrecognized unit suffix %q in %q", string(s[len(s)-1]), s)
	}

	magnitude := s[:len(s)-1]
	if magnitude == "" {
		return 0, fmt.Errorf("missing magnitude in %q", s)
	}

	if !strings.Contains(magnitude, ".") {
		n, err := strconv.ParseInt(magnitude, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid magnitude in %q: %w", s, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("negative capacity %q", s)
		}
		return n * mult, nil
	}

	f, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid magnitude in %q: %w", s, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative capacity %q", s)
	}
	return int64(f * float64(mult)), nil
}

// FormatSize renders a byte count in the largest binary unit where the
// value stays below 1024, matching zfs list summary output. The value is
// truncated, not rounded; this is a status-line summary, not a precise
// report.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	switch {
	case n>>10 < 1024:
		return fmt.Sprintf("%dKB", n>>10)
	case n>>20 < 1024:
		return fmt.Sprintf("%dM", n>>20)
	case n>>30 < 1024:
		return fmt.Sprintf("%dG", n>>30)
	default:
		return fmt.Sprintf("%dT", n>>40)
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
