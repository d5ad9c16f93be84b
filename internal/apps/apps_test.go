package apps

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	started      [][]string
	killed, urls []string
	running      map[string]bool
	err          error
}

func (f *fakeLauncher) Start(_ context.Context, name string, args ...string) error {
	f.started = append(f.started, append([]string{name}, args...))
	return f.err
}

func (f *fakeLauncher) Kill(_ context.Context, process string) (bool, error) {
	f.killed = append(f.killed, process)
	return f.running[process], nil
}

func (f *fakeLauncher) OpenURL(_ context.Context, u string) error {
	f.urls = append(f.urls, u)
	return f.err
}

func controller(goos string, l *fakeLauncher, existing ...string) *Controller {
	set := map[string]bool{}
	for _, p := range existing {
		set[p] = true
	}
	return &Controller{Launcher: l, GOOS: goos, Exists: func(p string) bool { return set[p] }}
}

func TestOpen_WindowsPath(t *testing.T) {
	l := &fakeLauncher{}
	c := controller("windows", l, `C:\Program Files (x86)\Mozilla Firefox\firefox.exe`)

	assert.Equal(t, "Opening Firefox.", c.Open(context.Background(), "Firefox"))
	require.Len(t, l.started, 1)
	assert.Equal(t, []string{`C:\Program Files (x86)\Mozilla Firefox\firefox.exe`}, l.started[0])
}

func TestOpen_WindowsSettings(t *testing.T) {
	l := &fakeLauncher{}
	c := controller("windows", l)
	assert.Equal(t, "Opening Windows Settings.", c.Open(context.Background(), "settings"))
	assert.Equal(t, [][]string{{"cmd", "/C", "start", "", "ms-settings:"}}, l.started)
}

func TestOpen_OtherPlatforms(t *testing.T) {
	l := &fakeLauncher{}
	c := controller("linux", l)

	assert.Equal(t, "Attempting to open Control panel.", c.Open(context.Background(), "control panel"))
	assert.Equal(t, [][]string{{"control"}}, l.started)
	assert.Equal(t, "I don't know how to open spotify. Please make sure it's installed and try again.", c.Open(context.Background(), "spotify"))
	assert.Equal(t, "I don't know how to open settings. Please make sure it's installed and try again.", c.Open(context.Background(), "settings"))
	assert.Len(t, l.started, 1)
}

func TestOpen_WindowsUnknown(t *testing.T) {
	l := &fakeLauncher{}
	c := controller("windows", l)

	assert.Equal(t, "Attempting to open Spotify.", c.Open(context.Background(), "spotify"))
	assert.Equal(t, [][]string{{"cmd", "/C", "start", "", "spotify"}}, l.started)

	for _, name := range []string{"x & del /q *", "calc|whoami", "-h", "a\"b", "%comspec%"} {
		assert.Contains(t, c.Open(context.Background(), name), "I don't know how to open", name)
	}
	assert.Len(t, l.started, 1)
}

func TestOpen_Error(t *testing.T) {
	l := &fakeLauncher{err: errors.New("not found")}
	c := controller("linux", l)
	assert.Equal(t, "I couldn't open notepad. Error: not found", c.Open(context.Background(), "notepad"))
}

func TestClose(t *testing.T) {
	l := &fakeLauncher{running: map[string]bool{"chrome.exe": true}}
	c := controller("windows", l)

	assert.Equal(t, "Closed Chrome.", c.Close(context.Background(), "chrome"))
	assert.Equal(t, "I couldn't find word running. Is it open?", c.Close(context.Background(), "word"))
	assert.Equal(t, []string{"chrome.exe", "winword.exe"}, l.killed)
}

func TestClose_UnixExactNames(t *testing.T) {
	l := &fakeLauncher{running: map[string]bool{"firefox": true}}
	c := controller("linux", l)

	assert.Equal(t, "Closed Firefox.", c.Close(context.Background(), "firefox"))
	assert.Equal(t, "I couldn't find chrome running. Is it open?", c.Close(context.Background(), "chrome"))
	assert.Equal(t, []string{"firefox", "chrome", "google-chrome"}, l.killed)
}

func TestClose_RefusesUnknownNames(t *testing.T) {
	for _, goos := range []string{"linux", "darwin"} {
		l := &fakeLauncher{running: map[string]bool{".": true, "vlc": true}}
		c := controller(goos, l)

		for _, name := range []string{".", ".*", "vlc", "98765", ""} {
			assert.Equal(t, "I don't know how to close "+name+".", c.Close(context.Background(), name), goos)
		}
		assert.Empty(t, l.killed, goos)
	}
}

func TestClose_WindowsUnknown(t *testing.T) {
	l := &fakeLauncher{running: map[string]bool{"vlc.exe": true}}
	c := controller("windows", l)

	assert.Equal(t, "Closed Vlc.", c.Close(context.Background(), "vlc"))
	assert.Equal(t, "I don't know how to close *.", c.Close(context.Background(), "*"))
	assert.Equal(t, "I don't know how to close ..", c.Close(context.Background(), "."))
	assert.Equal(t, []string{"vlc.exe"}, l.killed)
}

func TestExecLauncher_CloseLeavesUnrelatedProcesses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep")
	}
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	cmd := exec.Command(sleep, "987654")
	require.NoError(t, cmd.Start())
	t.Cleanup(func() { _ = cmd.Process.Kill() })

	c := &Controller{Launcher: NewExecLauncher(), GOOS: runtime.GOOS, Exists: fileExists}
	assert.Equal(t, "I don't know how to close 98765.", c.Close(context.Background(), "98765"))
	assert.Equal(t, "I don't know how to close ..", c.Close(context.Background(), "."))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		t.Fatalf("sleep exited: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestOpenWebPage(t *testing.T) {
	l := &fakeLauncher{}
	c := controller("linux", l)

	assert.Equal(t, "Opening Wikipedia search for 'who is srk' in your web browser.", c.OpenWebPage(context.Background(), "who is srk"))
	assert.Equal(t, "Opening Google search for 'cricket scores' in your web browser.", c.OpenWebPage(context.Background(), "cricket scores"))
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Special:Search?search=who+is+srk",
		"https://www.google.com/search?q=cricket+scores",
	}, l.urls)
}
