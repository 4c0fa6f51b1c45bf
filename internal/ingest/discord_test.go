package ingest

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestFromDiscordMessageGuildPresentIsPublic(t *testing.T) {
	m := &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "hello",
		Author:    &discordgo.User{ID: "u1", Username: "alice"},
		Timestamp: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}
	obs, ok := FromDiscordMessage(m)
	if !ok {
		t.Fatal("expected ok")
	}
	if obs.GuildID != "g1" {
		t.Errorf("GuildID = %q, want g1", obs.GuildID)
	}
	if obs.AuthorDisplayName != "alice" {
		t.Errorf("AuthorDisplayName = %q, want alice", obs.AuthorDisplayName)
	}
}

func TestFromDiscordMessageNoGuildIsDirect(t *testing.T) {
	m := &discordgo.Message{
		ID:        "m2",
		ChannelID: "c2",
		Content:   "hi",
		Author:    &discordgo.User{ID: "u2", Username: "bob"},
	}
	obs, ok := FromDiscordMessage(m)
	if !ok {
		t.Fatal("expected ok")
	}
	if obs.GuildID != "" {
		t.Errorf("GuildID = %q, want empty", obs.GuildID)
	}
	if !obs.IsDirectMessage() {
		t.Error("expected IsDirectMessage to be true")
	}
}

func TestFromDiscordMessageIgnoresBots(t *testing.T) {
	m := &discordgo.Message{
		ID:     "m3",
		Author: &discordgo.User{ID: "bot1", Bot: true},
	}
	if _, ok := FromDiscordMessage(m); ok {
		t.Fatal("expected bot messages to be dropped")
	}
}
