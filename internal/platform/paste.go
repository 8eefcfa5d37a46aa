package platform

import (
	"context"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Paster triggers the platform paste action in the focused application.
// Success is best effort.
type Paster interface {
	TriggerPaste() bool
}

// PasterFunc adapts a function to Paster.
type PasterFunc func() bool

func (f PasterFunc) TriggerPaste() bool { return f() }

// Strategy is one external command that can synthesize a paste keystroke.
type Strategy struct {
	Name string
	Args []string
}

// ExecPaster runs each strategy in turn until one exits cleanly.
type ExecPaster struct {
	strategies []Strategy
	timeout    time.Duration
	logger     *zap.Logger
}

func NewExecPaster(logger *zap.Logger) *ExecPaster {
	return &ExecPaster{
		strategies: DefaultStrategies(runtime.GOOS),
		timeout:    2 * time.Second,
		logger:     logger,
	}
}

func DefaultStrategies(goos string) []Strategy {
	switch goos {
	case "darwin":
		return []Strategy{
			{Name: "osascript", Args: []string{"-e", `tell application "System Events" to keystroke "v" using command down`}},
		}
	case "linux", "freebsd", "openbsd":
		return []Strategy{
			{Name: "xdotool", Args: []string{"key", "--clearmodifiers", "ctrl+v"}},
			{Name: "wtype", Args: []string{"-M", "ctrl", "v", "-m", "ctrl"}},
			{Name: "ydotool", Args: []string{"key", "29:1", "47:1", "47:0", "29:0"}},
		}
	case "windows":
		return []Strategy{
			{Name: "powershell", Args: []string{"-NoProfile", "-Command", `(New-Object -ComObject WScript.Shell).SendKeys('^v')`}},
		}
	default:
		return nil
	}
}

func (p *ExecPaster) TriggerPaste() bool {
	for _, s := range p.strategies {
		if _, err := exec.LookPath(s.Name); err != nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := exec.CommandContext(ctx, s.Name, s.Args...).Run()
		cancel()
		if err == nil {
			p.logger.Debug("paste triggered", zap.String("strategy", s.Name))
			return true
		}
		p.logger.Debug("paste strategy failed", zap.String("strategy", s.Name), zap.Error(err))
	}
	p.logger.Info("no paste strategy succeeded, content left on clipboard")
	return false
}

// Opener hands a URL to the desktop.
type Opener interface {
	Open(u *url.URL) error
}

type ExecOpener struct{}

func (ExecOpener) Open(u *url.URL) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u.String())
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u.String())
	default:
		cmd = exec.Command("xdg-open", u.String())
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// ParseURL accepts content that is a single absolute URL.
func ParseURL(content string) (*url.URL, bool) {
	s := strings.TrimSpace(content)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	return u, true
}
