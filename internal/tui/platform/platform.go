package platform

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

var ErrNoClipboard = errors.New("no clipboard command available")

var clipboardCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("post has no URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL host")
	}
	return trimmed, nil
}

// Opener launches the desktop browser and clipboard tools.
type Opener struct {
	goos     string
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
	run      func(*exec.Cmd) error
	log      *log.Logger
}

func NewOpener(logger *log.Logger) *Opener {
	return &Opener{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startDetached,
		run:      (*exec.Cmd).Run,
		log:      logger,
	}
}

// Open hands url to the system browser without waiting for it to exit.
func (o *Opener) Open(raw string) error {
	target, err := ValidateURL(raw)
	if err != nil {
		return err
	}
	name, args := browserCommand(o.goos, target)
	if err := o.start(exec.Command(name, args...)); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	if o.log != nil {
		o.log.Debug("opened url", "url", target, "cmd", name)
	}
	return nil
}

// Copy writes text to the first clipboard tool found on PATH.
func (o *Opener) Copy(text string) error {
	command, err := selectClipboardCommand(o.lookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = bytes.NewBufferString(text)
	if err := o.run(cmd); err != nil {
		return fmt.Errorf("copy with %s: %w", command[0], err)
	}
	return nil
}

func browserCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func selectClipboardCommand(lookPath func(string) (string, error)) ([]string, error) {
	for _, c := range clipboardCommands {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, ErrNoClipboard
}

// startDetached starts cmd and reaps it in the background so browsers that
// stay in the foreground do not block the caller.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
