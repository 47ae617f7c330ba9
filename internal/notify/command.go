package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandNotifier runs a shell command for each event, with placeholders
// substituted from the event. Useful for desktop notifications, e.g.
// "notify-send 'Tasbih' '{{.Title}}'".
type CommandNotifier struct {
	Command string
}

// Notify executes the templated command.
func (n *CommandNotifier) Notify(ctx context.Context, evt Event) error {
	if n.Command == "" {
		return nil
	}
	cmdStr := templateEvent(n.Command, evt)
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify: command failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// templateEvent replaces placeholders in the command template with event values.
func templateEvent(command string, evt Event) string {
	r := strings.NewReplacer(
		"{{.Title}}", evt.Title,
		"{{.Body}}", evt.Body,
		"{{.Severity}}", evt.Severity,
	)
	return r.Replace(command)
}
