// Package remind implements the user.remind tool (spec §6): schedules a
// reminder, accepting a time expression under any of "time", "duration",
// "delay" or "delaySec" and a message under any of "text", "content" or
// "message", per the tool's documented argument aliases.
package remind

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexuscore/reasoning/internal/toolkit"
)

// Scheduler is the delivery capability user.remind delegates to once a
// delay has been resolved.
type Scheduler interface {
	Schedule(ctx context.Context, reminderID, userID, channelID, text string, fireAt time.Time) error
}

// Tool implements toolkit.Tool for user.remind.
type Tool struct {
	scheduler   Scheduler
	timeZone    *time.Location
	defaultHour int
	now         func() time.Time
}

// New builds a user.remind tool bound to scheduler. timeZone and
// defaultHour resolve OQ1 (ambiguous named-day inputs default to
// defaultHour:00 in timeZone).
func New(scheduler Scheduler, timeZone *time.Location, defaultHour int) *Tool {
	return &Tool{
		scheduler:   scheduler,
		timeZone:    timeZone,
		defaultHour: defaultHour,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Name implements toolkit.Tool.
func (t *Tool) Name() string { return "user.remind" }

// Description implements toolkit.Tool.
func (t *Tool) Description() string {
	return "Schedules a reminder for a user after a relative or absolute time expression."
}

// OutputSchema is the JSON schema user.remind results validate against.
var OutputSchema = []byte(`{
  "type": "object",
  "required": ["ok", "delaySec", "reminderId"],
  "properties": {
    "ok": {"type": "boolean"},
    "delaySec": {"type": "integer"},
    "reminderId": {"type": "string"}
  }
}`)

// Execute implements toolkit.Tool.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (toolkit.ToolOutcome, error) {
	userID, _ := args["userId"].(string)
	if userID == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("user.remind: userId is required")
	}
	channelID, _ := args["channelId"].(string)

	text := firstNonEmpty(args, "text", "content", "message")
	if text == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("user.remind: text, content, or message is required")
	}

	whenRaw := firstNonEmpty(args, "time", "duration", "delay", "delaySec")
	if whenRaw == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("user.remind: time, duration, delay, or delaySec is required")
	}

	now := t.now()
	fireAt, err := ParseWhen(whenRaw, now, t.timeZone, t.defaultHour)
	if err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("user.remind: %w", err)
	}
	delay := fireAt.Sub(now)
	if delay < 0 {
		delay = 0
	}

	reminderID := uuid.NewString()
	if err := t.scheduler.Schedule(ctx, reminderID, userID, channelID, text, fireAt); err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("user.remind: %w", err)
	}

	return toolkit.ToolOutcome{OK: true, Data: map[string]any{
		"ok":         true,
		"delaySec":   int(delay.Seconds()),
		"reminderId": reminderID,
	}}, nil
}

func firstNonEmpty(args map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := args[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%ds", int(v))
		case int:
			return fmt.Sprintf("%ds", v)
		}
	}
	return ""
}
