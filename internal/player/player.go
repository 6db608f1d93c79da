// Package player launches videos in the system default media player.
package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"vidpick/internal/domain/consts"
	"vidpick/internal/utils/logging"
)

// Launch failures callers may want to tell apart.
var (
	ErrUnsupportedPlatform = errors.New("no known media player launcher for this platform")
	ErrLaunchTimeout       = errors.New("media player launch timed out")
)

// Player opens files with the platform's default handler.
type Player struct {
	// Timeout bounds how long a launcher command may run before it is
	// killed. Launchers normally hand off to the player and exit almost
	// immediately, a hang here means the desktop environment is wedged.
	Timeout time.Duration

	goos   string
	runCmd func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New returns a Player for the current platform with the default timeout.
func New() *Player {
	return &Player{
		Timeout: consts.PlayerLaunchTimeout,
		goos:    runtime.GOOS,
		runCmd:  runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Play asks the platform's default handler to open path, waiting for the
// launcher to hand off. The video keeps playing after Play returns, this
// only covers the launch itself.
func (p *Player) Play(ctx context.Context, path string) error {
	name, args, err := launchCommand(p.goos, path)
	if err != nil {
		return err
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = consts.PlayerLaunchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.D(1, "launching player: %s %v", name, args)

	stderr, err := p.runCmd(ctx, name, args...)
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %q", ErrLaunchTimeout, timeout, path)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("player launcher exited with code %d for %q: %s",
			exitErr.ExitCode(), path, bytes.TrimSpace(stderr))
	}
	return fmt.Errorf("failed to launch player for %q: %w", path, err)
}

// launchCommand maps a platform to its file-opener invocation.
func launchCommand(goos, path string) (name string, args []string, err error) {
	switch goos {
	case "windows":
		// The empty string is the window title "start" expects when the
		// next argument is quoted.
		return "cmd", []string{"/c", "start", "", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}
