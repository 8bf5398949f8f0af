package oracle

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DefaultGracePeriod is the time given to interrupted process to wind down before it is killed.
const DefaultGracePeriod = 5 * time.Second

// ProcessConfig stores configuration of external oracle process.
type ProcessConfig struct {
	Path        string
	Args        []string
	Dir         string
	GracePeriod time.Duration
}

// run executes the process and returns its standard output.
// On context cancellation the process receives SIGINT and is killed if it does not exit within grace period.
func run(ctx context.Context, config ProcessConfig, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, config.Path, append(append([]string{}, config.Args...), args...)...)
	cmd.Dir = config.Dir
	cmd.Cancel = func() error {
		return cmd.Process.Signal(unix.SIGINT)
	}
	cmd.WaitDelay = config.GracePeriod
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultGracePeriod
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ErrInterrupted, "%s %s", config.Path, strings.Join(args, " "))
		}
		return nil, errors.Wrapf(err, "running %s failed: %s", config.Path, strings.TrimSpace(stderr.String()))
	}
	if ctx.Err() != nil {
		return nil, errors.Wrapf(ErrInterrupted, "%s %s", config.Path, strings.Join(args, " "))
	}
	return stdout.Bytes(), nil
}
