// Package scoring triggers the external ML job that writes lead scores to the
// score history table.
package scoring

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrScriptFailed is returned when the scoring process exits unsuccessfully
var ErrScriptFailed = errors.New("scoring script failed")

const (
	// maxOutputLog bounds how much script output ends up in one log entry
	maxOutputLog = 4096
	// waitDelay caps how long output pipes are drained after the process is killed
	waitDelay = 2 * time.Second
)

// Runner executes one scoring pass over all leads
type Runner interface {
	Run(ctx context.Context) error
}

// CommandRunner runs the scoring script as a child process and waits for it
type CommandRunner struct {
	name    string
	args    []string
	timeout time.Duration
}

// NewCommandRunner builds a runner for command (split on whitespace) followed
// by the script path. A zero timeout waits for the process indefinitely.
func NewCommandRunner(command, script string, timeout time.Duration) *CommandRunner {
	fields := strings.Fields(command)
	r := &CommandRunner{timeout: timeout}
	if len(fields) > 0 {
		r.name = fields[0]
		r.args = append(r.args, fields[1:]...)
	}
	if script != "" {
		r.args = append(r.args, script)
	}
	return r
}

// String renders the command line, for logs
func (r *CommandRunner) String() string {
	return strings.TrimSpace(r.name + " " + strings.Join(r.args, " "))
}

func (r *CommandRunner) Run(ctx context.Context) error {
	if r.name == "" {
		return fmt.Errorf("%w: no command configured", ErrScriptFailed)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.name, r.args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	entry := log.WithFields(log.Fields{"component": "scoring", "command": r.String()})
	entry.Info("Running scoring script")
	start := time.Now()

	if err := cmd.Run(); err != nil {
		entry.WithError(err).WithFields(log.Fields{
			"elapsed": time.Since(start).String(),
			"stdout":  tail(stdout.String()),
			"stderr":  tail(stderr.String()),
		}).Error("Scoring script failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ErrScriptFailed, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrScriptFailed, err)
	}

	entry.WithFields(log.Fields{
		"elapsed": time.Since(start).String(),
		"stdout":  tail(stdout.String()),
	}).Info("Scoring script finished")
	return nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxOutputLog {
		return s
	}
	return "..." + s[len(s)-maxOutputLog:]
}
