package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var ErrUnsupportedPlatform = errors.New("notify: desktop notifications unsupported on this platform")

// ExecSender raises desktop notifications through notify-send on Linux
// and osascript on macOS.
type ExecSender struct {
	GOOS     string
	run      func(name string, args ...string) error
	lookPath func(file string) (string, error)
}

func NewExecSender() ExecSender {
	return ExecSender{
		GOOS:     runtime.GOOS,
		run:      func(name string, args ...string) error { return exec.Command(name, args...).Run() },
		lookPath: exec.LookPath,
	}
}

func (e ExecSender) Available() bool {
	bin := e.binary()
	if bin == "" {
		return false
	}
	_, err := e.lookPath(bin)
	return err == nil
}

func (e ExecSender) Send(p Payload) error {
	switch e.GOOS {
	case "linux":
		return e.run("notify-send", notifySendArgs(p)...)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(p.Body), escapeAppleScript(p.Title))
		return e.run("osascript", "-e", script)
	default:
		return ErrUnsupportedPlatform
	}
}

func (e ExecSender) binary() string {
	switch e.GOOS {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func notifySendArgs(p Payload) []string {
	args := []string{"--app-name=dhikr"}
	if p.Icon != "" {
		args = append(args, "--icon="+p.Icon)
	}
	if p.RequireInteraction {
		args = append(args, "--urgency=critical")
	}
	if p.Tag != "" {
		// notification daemons replace earlier notifications with the same hint value
		args = append(args, "--hint=string:x-canonical-private-synchronous:"+p.Tag)
	}
	return append(args, p.Title, p.Body)
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
