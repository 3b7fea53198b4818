package check

import (
	"fmt"

	"zfscheck/internal/nagios"
	"zfscheck/internal/units"
)

// Report is the evaluated usage of one dataset. It is built once per
// invocation and never mutated afterwards.
type Report struct {
	Dataset    string
	UsedBytes  int64
	AvailBytes int64
	TotalBytes int64
	Fraction   float64
	Severity   nagios.Severity

	// Threshold amounts in bytes, for the performance-data segment
	WarnBytes int64
	CritBytes int64
}

// Evaluate computes the usage fraction of a dataset and classifies it
// against the warning and critical ratios. Boundaries are inclusive and
// critical is checked first, so warning > critical leaves WARNING
// unreachable; that ordering is the caller's configuration to make.
//
// An empty dataset (used and available both zero) has fraction 0 and
// classifies OK: nothing stored means nothing full.
func Evaluate(dataset string, used, avail int64, warnRatio, critRatio float64) Report {
	total := used + avail

	var fraction float64
	if total > 0 {
		fraction = float64(used) / float64(total)
	}

	sev := nagios.OK
	switch {
	case fraction >= critRatio:
		sev = nagios.Critical
	case fraction >= warnRatio:
		sev = nagios.Warning
	}

	return Report{
		Dataset:    dataset,
		UsedBytes:  used,
		AvailBytes: avail,
		TotalBytes: total,
		Fraction:   fraction,
		Severity:   sev,
		WarnBytes:  int64(float64(total) * warnRatio),
		CritBytes:  int64(float64(total) * critRatio),
	}
}

// FormatReport renders the single plugin output line:
//
//	zfs dataset tank usage is OK used = 50G total = 150G | 'tank'=53687091200B;96636764160B;128849018880B;0;0
//
// The segment after the pipe is Nagios performance data in
// 'label'=value;warn;crit;min;max form, with min and max fixed at zero
// because they are undefined for capacity metrics.
func FormatReport(r Report) string {
	return fmt.Sprintf("zfs dataset %s usage is %s used = %s total = %s | '%s'=%dB;%dB;%dB;0;0",
		r.Dataset,
		r.Severity,
		units.FormatSize(r.UsedBytes),
		units.FormatSize(r.TotalBytes),
		r.Dataset,
		r.UsedBytes,
		r.WarnBytes,
		r.CritBytes,
	)
}
