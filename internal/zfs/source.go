package zfs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"zfscheck/internal/logger"
)

// ErrUnsupportedPlatform is returned by NewSource before any command is
// run, so an unknown platform never spawns anything.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Source measures one dataset via the platform's storage-listing command.
type Source interface {
	Platform() string
	List(ctx context.Context, dataset string) (Entry, error)
}

// Runner executes an external command and returns its combined output.
// The indirection exists so tests can substitute canned output for a real
// zfs binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec with a per-invocation timeout.
type ExecRunner struct {
	Timeout time.Duration
	Log     logger.Logger
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if r.Log != nil {
		r.Log.Debug("Running measurement command", "command", name, "args", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// Keep the raw output: it is the diagnostic the plugin
		// contract puts on stderr.
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// zfsSource invokes a zfs binary in list mode. The field order matches
// ParseLine: name, avail, used.
type zfsSource struct {
	platform string
	binary   string
	runner   Runner
}

func (s *zfsSource) Platform() string { return s.platform }

func (s *zfsSource) List(ctx context.Context, dataset string) (Entry, error) {
	out, err := s.runner.Run(ctx, s.binary, "list", "-H", "-o", "name,avail,used", dataset)
	if err != nil {
		return Entry{}, err
	}

	line, err := FirstLine(string(out))
	if err != nil {
		return Entry{}, fmt.Errorf("zfs list %s: %w", dataset, err)
	}
	entry, err := ParseLine(line)
	if err != nil {
		return Entry{}, fmt.Errorf("zfs list %s: %w", dataset, err)
	}
	return entry, nil
}

// Platform identifiers accepted by NewSource. Solaris-family systems keep
// zfs out of the default PATH, so that variant runs an absolute path.
var platformBinaries = map[string]string{
	"linux":   "zfs",
	"freebsd": "zfs",
	"solaris": "/usr/sbin/zfs",
	"illumos": "/usr/sbin/zfs",
	"sunos":   "/usr/sbin/zfs",
}

// SupportedPlatforms lists the platform identifiers NewSource accepts, in
// stable order.
func SupportedPlatforms() []string {
	return []string{"freebsd", "illumos", "linux", "solaris", "sunos"}
}

// NewSource selects the measurement command variant for a platform
// identifier (normally runtime.GOOS, overridable for odd deployments).
func NewSource(platform string, runner Runner) (Source, error) {
	binary, ok := platformBinaries[strings.ToLower(platform)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	return &zfsSource{
		platform: strings.ToLower(platform),
		binary:   binary,
		runner:   runner,
	}, nil
}
