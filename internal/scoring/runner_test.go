package scoring

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandRunner_SplitsCommand(t *testing.T) {
	r := NewCommandRunner("python3 -u", "../ML/hitung_skor_nasabah.py", 0)
	assert.Equal(t, "python3", r.name)
	assert.Equal(t, []string{"-u", "../ML/hitung_skor_nasabah.py"}, r.args)
	assert.Equal(t, "python3 -u ../ML/hitung_skor_nasabah.py", r.String())
}

func TestCommandRunner_Success(t *testing.T) {
	r := &CommandRunner{name: "sh", args: []string{"-c", "echo scored 3 leads"}}
	assert.NoError(t, r.Run(context.Background()))
}

func TestCommandRunner_NonZeroExit(t *testing.T) {
	r := &CommandRunner{name: "sh", args: []string{"-c", "echo boom >&2; exit 3"}}
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrScriptFailed)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCommandRunner_MissingBinary(t *testing.T) {
	r := NewCommandRunner("definitely-not-a-real-binary-xyz", "script.py", 0)
	assert.ErrorIs(t, r.Run(context.Background()), ErrScriptFailed)
}

func TestCommandRunner_EmptyCommand(t *testing.T) {
	r := NewCommandRunner("   ", "", 0)
	assert.ErrorIs(t, r.Run(context.Background()), ErrScriptFailed)
}

func TestCommandRunner_Timeout(t *testing.T) {
	r := &CommandRunner{name: "sh", args: []string{"-c", "exec sleep 5"}, timeout: 50 * time.Millisecond}
	start := time.Now()
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrScriptFailed)
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("  short\n"))

	long := strings.Repeat("a", maxOutputLog+10)
	got := tail(long)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.Len(t, got, maxOutputLog+3)
}
