package zfs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output instead of spawning zfs.
type fakeRunner struct {
	output string
	err    error

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return []byte(f.output), f.err
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Entry
		wantErr bool
	}{
		{
			name: "raw byte fields",
			line: "tank\t107374182400\t53687091200",
			want: Entry{Name: "tank", Avail: 107374182400, Used: 53687091200},
		},
		{
			name: "human readable fields",
			line: "tank/data\t100G\t50G",
			want: Entry{Name: "tank/data", Avail: 100 << 30, Used: 50 << 30},
		},
		{
			name: "trailing columns ignored",
			line: "tank\t100G\t50G\t40G\t/tank",
			want: Entry{Name: "tank", Avail: 100 << 30, Used: 50 << 30},
		},
		{
			name: "trailing newline stripped",
			line: "tank\t1G\t512M\n",
			want: Entry{Name: "tank", Avail: 1 << 30, Used: 512 << 20},
		},
		{
			name:    "too few fields",
			line:    "tank\t100G",
			wantErr: true,
		},
		{
			name:    "malformed avail field",
			line:    "tank\tbogus\t50G",
			wantErr: true,
		},
		{
			name:    "malformed used field",
			line:    "tank\t100G\t5Q",
			wantErr: true,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceList(t *testing.T) {
	runner := &fakeRunner{output: "tank/home\t100G\t50G\t-\t/tank/home\n"}
	src, err := NewSource("linux", runner)
	require.NoError(t, err)

	entry, err := src.List(context.Background(), "tank/home")
	require.NoError(t, err)

	assert.Equal(t, "tank/home", entry.Name)
	assert.Equal(t, int64(100)<<30, entry.Avail)
	assert.Equal(t, int64(50)<<30, entry.Used)

	assert.Equal(t, "zfs", runner.gotName)
	assert.Equal(t, []string{"list", "-H", "-o", "name,avail,used", "tank/home"}, runner.gotArgs)
}

func TestSourceListSkipsBlankLines(t *testing.T) {
	runner := &fakeRunner{output: "\n\ntank\t1G\t1G\n"}
	src, err := NewSource("freebsd", runner)
	require.NoError(t, err)

	entry, err := src.List(context.Background(), "tank")
	require.NoError(t, err)
	assert.Equal(t, "tank", entry.Name)
}

func TestSourceListCommandFailure(t *testing.T) {
	runner := &fakeRunner{
		output: "cannot open 'tank/nope': dataset does not exist",
		err:    errors.New("exit status 1"),
	}
	src, err := NewSource("linux", runner)
	require.NoError(t, err)

	_, err = src.List(context.Background(), "tank/nope")
	require.Error(t, err)
}

func TestSourceListEmptyOutput(t *testing.T) {
	runner := &fakeRunner{output: "\n"}
	src, err := NewSource("linux", runner)
	require.NoError(t, err)

	_, err = src.List(context.Background(), "tank")
	require.Error(t, err)
}

func TestNewSourcePlatforms(t *testing.T) {
	tests := []struct {
		platform   string
		wantBinary string
		wantErr    bool
	}{
		{platform: "linux", wantBinary: "zfs"},
		{platform: "freebsd", wantBinary: "zfs"},
		{platform: "solaris", wantBinary: "/usr/sbin/zfs"},
		{platform: "illumos", wantBinary: "/usr/sbin/zfs"},
		{platform: "SunOS", wantBinary: "/usr/sbin/zfs"},
		{platform: "windows", wantErr: true},
		{platform: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("platform "+tt.platform, func(t *testing.T) {
			runner := &fakeRunner{output: "tank\t1G\t1G\n"}
			src, err := NewSource(tt.platform, runner)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedPlatform)
				return
			}
			require.NoError(t, err)

			_, err = src.List(context.Background(), "tank")
			require.NoError(t, err)
			assert.Equal(t, tt.wantBinary, runner.gotName)
		})
	}
}
