// Package message implements the message.send tool (spec §6): sends
// content to a channel, neutralizing at-mentions of "everyone"/"here"
// and capping length before the call leaves this process.
package message

import (
	"context"
	"fmt"
	"regexp"

	"github.com/nexuscore/reasoning/internal/toolkit"
)

const maxContentLength = 2000

var everyoneHerePattern = regexp.MustCompile(`@(everyone|here)`)

// Sender is the outbound transport message.send ultimately calls
// through to (a Discord/Telegram/Slack channel adapter, or a test
// double). It is intentionally minimal: one channel, one string in.
type Sender interface {
	Send(ctx context.Context, channelID, content string) error
}

// Tool implements toolkit.Tool for message.send.
type Tool struct {
	sender Sender
}

// New builds a message.send tool bound to sender.
func New(sender Sender) *Tool {
	return &Tool{sender: sender}
}

// Name implements toolkit.Tool.
func (t *Tool) Name() string { return "message.send" }

// Description implements toolkit.Tool.
func (t *Tool) Description() string {
	return "Sends a message to a channel, with at-mention neutralization and a length cap."
}

// OutputSchema is the JSON schema message.send results validate against.
var OutputSchema = []byte(`{
  "type": "object",
  "required": ["ok"],
  "properties": {
    "ok": {"type": "boolean"},
    "status": {"type": "integer"},
    "rateLimit": {"type": "object"}
  }
}`)

// Execute implements toolkit.Tool.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (toolkit.ToolOutcome, error) {
	channelID, _ := args["channelId"].(string)
	content, _ := args["content"].(string)
	if channelID == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("message.send: channelId is required")
	}

	safe := sanitizeMentions(content)
	if len(safe) > maxContentLength {
		safe = safe[:maxContentLength]
	}

	if err := t.sender.Send(ctx, channelID, safe); err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("message.send: %w", err)
	}

	return toolkit.ToolOutcome{OK: true, Data: map[string]any{"ok": true, "status": 200}}, nil
}

func sanitizeMentions(content string) string {
	return everyoneHerePattern.ReplaceAllString(content, "@​$1")
}
