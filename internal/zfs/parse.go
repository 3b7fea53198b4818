package zfs

import (
	"fmt"
	"strings"

	"zfscheck/internal/units"
)

// Entry is one dataset row from zfs list output.
type Entry struct {
	Name  string
	Avail int64
	Used  int64
}

// ParseLine parses one tab-separated zfs list row. The first three fields
// are name, available and used; anything after that depends on the output
// mode of the invoked command and is ignored. Capacity fields may be raw
// byte counts (-p mode) or human-readable quantities ("1.5G").
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return Entry{}, fmt.Errorf("expected at least 3 tab-separated fields, got %d in %q", len(fields), line)
	}

	avail, err := units.ParseSize(fields[1])
	if err != nil {
		return Entry{}, fmt.Errorf("bad avail field: %w", err)
	}
	used, err := units.ParseSize(fields[2])
	if err != nil {
		return Entry{}, fmt.Errorf("bad used field: %w", err)
	}

	return Entry{
		Name:  fields[0],
		Avail: avail,
		Used:  used,
	}, nil
}

// FirstLine returns the first non-empty line of command output. zfs list
// without -r prints exactly one row for a named dataset, but headers or
// blank lines from wrapper scripts shouldn't break parsing.
func FirstLine(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("empty command output")
}
