package apps

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
)

// ExecLauncher runs real processes on the host.
type ExecLauncher struct {
	GOOS string
}

// NewExecLauncher targets the current platform.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{GOOS: runtime.GOOS}
}

// Started processes outlive the request, so they are not bound to ctx.
func (l *ExecLauncher) Start(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Kill matches process names exactly: taskkill /IM on Windows, pkill -x
// elsewhere. A non-zero exit means nothing matched.
func (l *ExecLauncher) Kill(ctx context.Context, process string) (bool, error) {
	var cmd *exec.Cmd
	if l.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "taskkill", "/IM", process, "/F")
	} else {
		cmd = exec.CommandContext(ctx, "pkill", "-x", "--", process)
	}
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr):
		return false, nil
	default:
		return false, err
	}
}

func (l *ExecLauncher) OpenURL(_ context.Context, rawURL string) error {
	var cmd *exec.Cmd
	switch l.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	case "darwin":
		cmd = exec.Command("open", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
