package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack/slackevents"

	"github.com/nexuscore/reasoning/pkg/models"
)

// FromSlackMessageEvent builds an Observation from a Slack Events API
// message callback. Slack distinguishes a DM from a channel by the
// channel ID's prefix rather than a separate guild field: "D" for a
// direct message, "C"/"G" for a public or private channel. A channel
// (public or private) maps to PUBLIC_GUILD with GuildID set to the
// channel ID itself — Slack has no separate guild/server identifier at
// the message level once a workspace is fixed.
func FromSlackMessageEvent(ev *slackevents.MessageEvent) (models.Observation, bool) {
	if ev == nil || ev.BotID != "" || ev.User == "" {
		return models.Observation{}, false
	}

	var guildID string
	if !strings.HasPrefix(ev.Channel, "D") {
		guildID = ev.Channel
	}

	ts := time.Now().UTC()
	if ev.TimeStamp != "" {
		if parsed, err := parseSlackTimestamp(ev.TimeStamp); err == nil {
			ts = parsed
		}
	}

	return models.Observation{
		ID:        ev.TimeStamp,
		Type:      "chat.message",
		Content:   ev.Text,
		AuthorID:  ev.User,
		ChannelID: ev.Channel,
		GuildID:   guildID,
		Timestamp: ts,
	}, true
}

// parseSlackTimestamp parses Slack's "<unix>.<micro>" event timestamp
// format.
func parseSlackTimestamp(ts string) (time.Time, error) {
	sec, micro, _ := strings.Cut(ts, ".")
	secs, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	var nanos int64
	if micro != "" {
		if m, err := strconv.ParseInt(micro, 10, 64); err == nil {
			nanos = m * 1000
		}
	}
	return time.Unix(secs, nanos).UTC(), nil
}
