package player

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestLaunchCommand_PerPlatform(t *testing.T) {
	cases := []struct {
		goos     string
		wantName string
		wantLast string
		wantErr  bool
	}{
		{goos: "linux", wantName: "xdg-open", wantLast: "/v/clip.mp4"},
		{goos: "darwin", wantName: "open", wantLast: "/v/clip.mp4"},
		{goos: "windows", wantName: "cmd", wantLast: "/v/clip.mp4"},
		{goos: "plan9", wantErr: true},
	}

	for _, c := range cases {
		name, args, err := launchCommand(c.goos, "/v/clip.mp4")
		if c.wantErr {
			if !errors.Is(err, ErrUnsupportedPlatform) {
				t.Errorf("%s: expected ErrUnsupportedPlatform, got %v", c.goos, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.goos, err)
			continue
		}
		if name != c.wantName {
			t.Errorf("%s: expected launcher %q, got %q", c.goos, c.wantName, name)
		}
		if len(args) == 0 || args[len(args)-1] != c.wantLast {
			t.Errorf("%s: expected path as final arg, got %v", c.goos, args)
		}
	}
}

func TestPlay_Success(t *testing.T) {
	p := New()
	p.goos = "linux"
	p.runCmd = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	}

	if err := p.Play(context.Background(), "/v/clip.mp4"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestPlay_LauncherExitCodeReported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test stub needs sh")
	}

	p := New()
	p.goos = "linux"
	p.runCmd = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("no handler found"), exec.Command("sh", "-c", "exit 3").Run()
	}

	err := p.Play(context.Background(), "/v/clip.mp4")
	if err == nil {
		t.Fatalf("expected an error for a failing launcher")
	}
	if !strings.Contains(err.Error(), "code 3") {
		t.Fatalf("expected the exit code in the error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no handler found") {
		t.Fatalf("expected stderr in the error, got %v", err)
	}
}

func TestPlay_Timeout(t *testing.T) {
	p := New()
	p.goos = "linux"
	p.Timeout = 10 * time.Millisecond
	p.runCmd = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	err := p.Play(context.Background(), "/v/clip.mp4")
	if !errors.Is(err, ErrLaunchTimeout) {
		t.Fatalf("expected ErrLaunchTimeout, got %v", err)
	}
}

func TestPlay_UnsupportedPlatformNeverRuns(t *testing.T) {
	p := New()
	p.goos = "plan9"
	p.runCmd = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		t.Errorf("launcher must not run on unsupported platforms")
		return nil, nil
	}

	if err := p.Play(context.Background(), "/v/clip.mp4"); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}
