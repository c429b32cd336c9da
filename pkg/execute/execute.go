// pkg/execute/execute.go

// Package execute provides command execution with structured logging.
// Output is captured to a buffer only; stdout stays clean for the
// caller's own output contract.
package execute

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single external command.
const DefaultTimeout = 3 * time.Minute

// Options configures one external command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Timeout time.Duration
	Capture bool
	Logger  *zap.Logger
}

// Run executes a command with structured logging and proper error handling.
// The returned string is combined stdout+stderr when Capture is set.
func Run(ctx context.Context, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rc, span := telemetry.Start(rc, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	cmdStr := opts.Command + " " + strings.Join(opts.Args, " ")
	logger.Debug("Starting execution", zap.String("command", cmdStr), zap.String("dir", opts.Dir))

	cmd := exec.CommandContext(rc, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		summary := cutover_err.ExtractSummary(ctx, output, 2)
		span.RecordError(err)
		logger.Debug("Execution failed",
			zap.Error(err),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)
		return output, cerr.Wrapf(err, "command %q failed: %s", cmdStr, summary)
	}

	logger.Debug("Execution succeeded", zap.String("command", cmdStr))

	if opts.Capture {
		return output, nil
	}
	return "", nil
}
