// Package apps opens and closes desktop applications and web pages.
package apps

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/phuslu/log"
)

// App describes how to start and stop a known application.
type App struct {
	// Paths are Windows executables tried in order. %USERNAME% expands.
	Paths []string
	// Command is the argv used when no path exists. It never goes through a shell.
	Command []string
	// Processes are the image names to terminate on Windows.
	Processes []string
	// Unix are the exact process names to terminate elsewhere; defaults to
	// the base name of Command[0].
	Unix []string
}

// Known maps spoken application names to their launch details.
var Known = map[string]App{
	"chrome": {
		Paths:     []string{`C:\Program Files\Google\Chrome\Application\chrome.exe`, `C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`},
		Command:   []string{"google-chrome"},
		Processes: []string{"chrome.exe"},
		Unix:      []string{"chrome", "google-chrome"},
	},
	"firefox": {
		Paths:     []string{`C:\Program Files\Mozilla Firefox\firefox.exe`, `C:\Program Files (x86)\Mozilla Firefox\firefox.exe`},
		Command:   []string{"firefox"},
		Processes: []string{"firefox.exe"},
	},
	"edge": {
		Paths:     []string{`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`},
		Command:   []string{"msedge"},
		Processes: []string{"msedge.exe"},
		Unix:      []string{"msedge", "microsoft-edge"},
	},
	"word": {
		Paths:     []string{`C:\Program Files\Microsoft Office\root\Office16\WINWORD.EXE`, `C:\Program Files (x86)\Microsoft Office\root\Office16\WINWORD.EXE`},
		Command:   []string{"winword"},
		Processes: []string{"winword.exe"},
	},
	"excel": {
		Paths:     []string{`C:\Program Files\Microsoft Office\root\Office16\EXCEL.EXE`, `C:\Program Files (x86)\Microsoft Office\root\Office16\EXCEL.EXE`},
		Command:   []string{"excel"},
		Processes: []string{"excel.exe"},
	},
	"powerpoint": {
		Paths:     []string{`C:\Program Files\Microsoft Office\root\Office16\POWERPNT.EXE`, `C:\Program Files (x86)\Microsoft Office\root\Office16\POWERPNT.EXE`},
		Command:   []string{"powerpnt"},
		Processes: []string{"powerpnt.exe"},
	},
	"notepad": {
		Paths:     []string{`C:\Windows\System32\notepad.exe`},
		Command:   []string{"notepad"},
		Processes: []string{"notepad.exe"},
	},
	"calculator": {
		Paths:     []string{`C:\Windows\System32\calc.exe`},
		Command:   []string{"calc"},
		Processes: []string{"calc.exe", "CalculatorApp.exe"},
		Unix:      []string{"gnome-calculator", "kcalc", "calc"},
	},
	"settings": {
		Processes: []string{"SystemSettings.exe"},
	},
	"control panel": {
		Paths:     []string{`C:\Windows\System32\control.exe`},
		Command:   []string{"control"},
		Processes: []string{"control.exe"},
	},
	"file explorer": {
		Paths:     []string{`C:\Windows\explorer.exe`},
		Command:   []string{"explorer"},
		Processes: []string{"explorer.exe"},
	},
	"task manager": {
		Paths:     []string{`C:\Windows\System32\taskmgr.exe`},
		Command:   []string{"taskmgr"},
		Processes: []string{"taskmgr.exe"},
	},
	"whatsapp": {
		Paths:     []string{`C:\Users\%USERNAME%\AppData\Local\WhatsApp\WhatsApp.exe`, `C:\Users\%USERNAME%\AppData\Local\Programs\WhatsApp\WhatsApp.exe`},
		Command:   []string{"whatsapp"},
		Processes: []string{"WhatsApp.exe"},
	},
	"telegram": {
		Paths:     []string{`C:\Users\%USERNAME%\AppData\Roaming\Telegram Desktop\Telegram.exe`},
		Command:   []string{"telegram-desktop"},
		Processes: []string{"Telegram.exe"},
		// Linux truncates process names to 15 bytes.
		Unix: []string{"telegram-deskto", "Telegram"},
	},
}

var settingsCommand = []string{"cmd", "/C", "start", "", "ms-settings:"}

// safeName accepts names that cmd.exe and taskkill take literally: no
// metacharacters, wildcards or leading punctuation.
var safeName = regexp.MustCompile(`^[a-z0-9][a-z0-9 ._-]{0,63}$`)

// unixProcesses lists the exact process names pkill should match.
func (a App) unixProcesses() []string {
	if len(a.Unix) > 0 {
		return a.Unix
	}
	if len(a.Command) > 0 {
		return []string{filepath.Base(a.Command[0])}
	}
	return nil
}

// Launcher performs the OS side effects. Arguments are passed as argv and
// never interpreted by a shell.
type Launcher interface {
	// Start runs a program without waiting for it.
	Start(ctx context.Context, name string, args ...string) error
	// Kill terminates processes with exactly this name and reports whether
	// any stopped.
	Kill(ctx context.Context, process string) (bool, error)
	OpenURL(ctx context.Context, rawURL string) error
}

// Controller turns application requests into launcher calls and replies.
type Controller struct {
	Launcher Launcher
	GOOS     string
	// Exists reports whether a file exists; defaults to os.Stat.
	Exists func(path string) bool
}

// NewController uses launcher on the current platform.
func NewController(launcher Launcher) *Controller {
	return &Controller{Launcher: launcher, GOOS: runtime.GOOS, Exists: fileExists}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (c *Controller) windows() bool { return c.GOOS == "windows" }

// Open starts the named application. Unknown names are only tried on
// Windows, through "start", and only when they are plain words.
func (c *Controller) Open(ctx context.Context, name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	app, ok := Known[name]
	if !ok {
		if !c.windows() || !safeName.MatchString(name) {
			return fmt.Sprintf("I don't know how to open %s. Please make sure it's installed and try again.", name)
		}
		if err := c.Launcher.Start(ctx, "cmd", "/C", "start", "", name); err != nil {
			return fmt.Sprintf("I couldn't find %s. Please make sure it's installed and try again.", name)
		}
		return fmt.Sprintf("Attempting to open %s.", capitalize(name))
	}

	if c.windows() {
		for _, p := range app.Paths {
			p = strings.ReplaceAll(p, "%USERNAME%", os.Getenv("USERNAME"))
			if !c.Exists(p) {
				continue
			}
			if err := c.Launcher.Start(ctx, p); err != nil {
				return fmt.Sprintf("I couldn't open %s. Error: %v", name, err)
			}
			return fmt.Sprintf("Opening %s.", capitalize(name))
		}
		if name == "settings" {
			if err := c.Launcher.Start(ctx, settingsCommand[0], settingsCommand[1:]...); err != nil {
				return fmt.Sprintf("I couldn't open %s. Error: %v", name, err)
			}
			return "Opening Windows Settings."
		}
	}

	if len(app.Command) == 0 {
		return fmt.Sprintf("I don't know how to open %s. Please make sure it's installed and try again.", name)
	}
	if err := c.Launcher.Start(ctx, app.Command[0], app.Command[1:]...); err != nil {
		return fmt.Sprintf("I couldn't open %s. Error: %v", name, err)
	}
	log.Info().Str("app", name).Strs("command", app.Command).Msg("application started")
	return fmt.Sprintf("Attempting to open %s.", capitalize(name))
}

// Close terminates the named application by exact process name. Off
// Windows only known applications can be closed.
func (c *Controller) Close(ctx context.Context, name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	app, known := Known[name]

	var targets []string
	switch {
	case c.windows() && known && len(app.Processes) > 0:
		targets = app.Processes
	case c.windows() && safeName.MatchString(name):
		targets = []string{strings.TrimSuffix(name, ".exe") + ".exe"}
	case !c.windows() && known:
		targets = app.unixProcesses()
	}
	if len(targets) == 0 {
		log.Warn().Str("app", name).Msg("refusing to close unknown application")
		return fmt.Sprintf("I don't know how to close %s.", name)
	}

	closed := false
	for _, proc := range targets {
		ok, err := c.Launcher.Kill(ctx, proc)
		if err != nil {
			log.Warn().Err(err).Str("process", proc).Msg("kill failed")
			continue
		}
		closed = closed || ok
	}
	if closed {
		return fmt.Sprintf("Closed %s.", capitalize(name))
	}
	return fmt.Sprintf("I couldn't find %s running. Is it open?", name)
}

var questionWords = []string{"who", "what", "where", "when", "why", "how"}

// OpenWebPage opens a Wikipedia search for questions and a Google search
// otherwise.
func (c *Controller) OpenWebPage(ctx context.Context, query string) string {
	q := url.QueryEscape(query)
	target, label := "https://www.google.com/search?q="+q, "Google"
	lower := strings.ToLower(query)
	for _, w := range questionWords {
		if strings.Contains(lower, w) {
			target, label = "https://en.wikipedia.org/wiki/Special:Search?search="+q, "Wikipedia"
			break
		}
	}
	if err := c.Launcher.OpenURL(ctx, target); err != nil {
		return fmt.Sprintf("I tried to open a web browser but encountered an error: %v", err)
	}
	return fmt.Sprintf("Opening %s search for '%s' in your web browser.", label, query)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
