// Package ingest holds thin, per-platform Observation-construction
// adapters (spec.md §1: the gateway adapters themselves are external
// collaborators, out of scope for the core). These functions show how a
// gateway would map its own native message shape into the canonical
// Observation this core's pipeline consumes — in particular, how each
// platform's own notion of "guild" or "channel" decides PUBLIC_GUILD vs
// PRIVATE_DM zone resolution (spec §4.4, invariant I1).
package ingest

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/nexuscore/reasoning/pkg/models"
)

// FromDiscordMessage builds an Observation from a discordgo message
// event. GuildID is empty for direct messages, which is exactly the
// signal identity.ResolveZone needs — no extra mapping required.
func FromDiscordMessage(m *discordgo.Message) (models.Observation, bool) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return models.Observation{}, false
	}

	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return models.Observation{
		ID:                m.ID,
		Type:              "chat.message",
		Content:           m.Content,
		AuthorID:          m.Author.ID,
		ChannelID:         m.ChannelID,
		GuildID:           m.GuildID,
		Timestamp:         ts,
		AuthorDisplayName: m.Author.Username,
	}, true
}
