package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zfscheck/internal/check"
	"zfscheck/internal/config"
	"zfscheck/internal/logger"
	"zfscheck/internal/nagios"
	"zfscheck/internal/units"
	"zfscheck/internal/zfs"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("2"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	critStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))
)

const usageBarWidth = 40

// WatchModel polls one dataset's usage and renders it live
type WatchModel struct {
	config  *config.Config
	logger  logger.Logger
	source  zfs.Source
	dataset string

	spinner  spinner.Model
	loading  bool
	report   check.Report
	err      error
	lastPoll time.Time
}

func NewWatchModel(cfg *config.Config, log logger.Logger, source zfs.Source, dataset string) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return WatchModel{
		config:  cfg,
		logger:  log,
		source:  source,
		dataset: dataset,
		spinner: s,
		loading: true,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(
		pollUsage(m.config, m.source, m.dataset),
		m.spinner.Tick,
	)
}

type pollMsg struct {
	report check.Report
	err    error
	at     time.Time
}

type refreshMsg time.Time

func pollUsage(cfg *config.Config, source zfs.Source, dataset string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		entry, err := source.List(ctx, dataset)
		if err != nil {
			return pollMsg{err: err, at: time.Now()}
		}

		report := check.Evaluate(entry.Name, entry.Used, entry.Avail,
			cfg.WarningRatio, cfg.CriticalRatio)
		return pollMsg{report: report, at: time.Now()}
	}
}

func refreshAfter(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		m.loading = false
		m.err = msg.err
		m.lastPoll = msg.at
		if msg.err == nil {
			m.report = msg.report
		} else {
			m.logger.Warn("Poll failed", "dataset", m.dataset, "error", msg.err)
		}
		return m, refreshAfter(m.config.RefreshInterval)

	case refreshMsg:
		return m, pollUsage(m.config, m.source, m.dataset)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			return m, pollUsage(m.config, m.source, m.dataset)
		}
	}

	return m, nil
}

func (m WatchModel) View() string {
	var s strings.Builder

	s.WriteString(m.style(titleStyle).Render("ZFS Dataset Usage") + "\n")
	s.WriteString(m.style(dimStyle).Render(fmt.Sprintf("dataset %s on %s, %s, every %s",
		m.dataset, m.source.Platform(), m.config.DescribeThresholds(), m.config.RefreshInterval)) + "\n\n")

	if m.loading {
		s.WriteString(fmt.Sprintf("  %s querying zfs...\n", m.spinner.View()))
		return s.String()
	}

	if m.err != nil {
		s.WriteString(m.style(critStyle).Render("  poll failed: "+m.err.Error()) + "\n")
	} else {
		r := m.report
		sevStyle := m.severityStyle(r.Severity)

		s.WriteString(fmt.Sprintf("  Status:    %s\n", sevStyle.Render(r.Severity.String())))
		s.WriteString(fmt.Sprintf("  Used:      %s (%.1f%%)\n", units.FormatSize(r.UsedBytes), r.Fraction*100))
		s.WriteString(fmt.Sprintf("  Available: %s\n", units.FormatSize(r.AvailBytes)))
		s.WriteString(fmt.Sprintf("  Total:     %s\n\n", units.FormatSize(r.TotalBytes)))
		s.WriteString("  " + m.usageBar(r) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(m.style(dimStyle).Render(fmt.Sprintf("  last poll %s  •  r refresh  •  q quit",
		m.lastPoll.Format("15:04:05"))) + "\n")

	return s.String()
}

// usageBar renders a fixed-width bar filled in proportion to the usage
// fraction, colored by severity.
func (m WatchModel) usageBar(r check.Report) string {
	filled := int(r.Fraction * usageBarWidth)
	if filled > usageBarWidth {
		filled = usageBarWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", usageBarWidth-filled)
	return m.severityStyle(r.Severity).Render(bar)
}

func (m WatchModel) severityStyle(sev nagios.Severity) lipgloss.Style {
	switch sev {
	case nagios.Critical:
		return m.style(critStyle)
	case nagios.Warning:
		return m.style(warnStyle)
	default:
		return m.style(okStyle)
	}
}

func (m WatchModel) style(s lipgloss.Style) lipgloss.Style {
	if m.config.NoColor {
		return lipgloss.NewStyle()
	}
	return s
}

// RunWatch runs the live usage view until the user quits or the context
// is canceled.
func RunWatch(ctx context.Context, cfg *config.Config, log logger.Logger, source zfs.Source, dataset string) error {
	model := NewWatchModel(cfg, log, source, dataset)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
