// Package clone hands resolved pull-request URLs to the external clone
// command, one invocation per URL.
package clone

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/m-blaha/dbox/internal/config"
	"github.com/m-blaha/dbox/internal/reference"
)

// DefaultLockTimeout is the default timeout for acquiring the workdir lock.
const DefaultLockTimeout = 5 * time.Second

// Runner invokes the configured external clone command.
type Runner struct {
	cfg         config.CloneConfig
	lockTimeout time.Duration
}

// NewRunner creates a runner for the given clone configuration.
func NewRunner(cfg config.CloneConfig) *Runner {
	return &Runner{cfg: cfg, lockTimeout: DefaultLockTimeout}
}

// CloneAll runs the clone command for each reference in order. A failed
// clone is logged and does not prevent attempting the next one; the number
// of failures is returned. The whole sequence runs under an exclusive lock
// on the target directory so concurrent dbox runs do not clone into the
// same workdir.
func (r *Runner) CloneAll(ctx context.Context, refs []reference.PullRequest) (failed int, err error) {
	dir := r.cfg.Dir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return 0, fmt.Errorf("resolving working directory: %w", err)
		}
	}

	err = r.withLock(ctx, dir, func() error {
		for _, ref := range refs {
			if err := r.clone(ctx, dir, ref); err != nil {
				slog.Error("clone failed", "pr", ref.String(), "error", err)
				failed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return failed, nil
}

// clone runs a single clone command invocation with the pull-request URL as
// the final argument, inheriting stdout/stderr.
func (r *Runner) clone(ctx context.Context, dir string, ref reference.PullRequest) error {
	args := append(append([]string{}, r.cfg.Args...), ref.URL())

	slog.Info("cloning", "pr", ref.String(), "command", r.cfg.Command)

	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", r.cfg.Command, ref.URL(), err)
	}
	return nil
}

// withLock acquires an exclusive lock on dir/.dbox.lock, runs fn, then
// releases.
func (r *Runner) withLock(ctx context.Context, dir string, fn func() error) error {
	lockPath := filepath.Join(dir, ".dbox.lock")
	fileLock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquiring lock on %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring lock on %s", lockPath)
	}
	defer fileLock.Unlock()

	return fn()
}
