// Package models defines the data types that flow through the reasoning
// pipeline: the inbound Observation, the derived Context, identity and
// addressing types, the Plan produced by the planner, and the envelopes
// and results produced by execution.
package models

import "time"

// Observation is one inbound chat-style message to be processed by the
// pipeline. It is immutable once constructed; nothing downstream mutates
// it — stages that need a redacted view build a copy (see the sanitizer).
type Observation struct {
	ID                string    `json:"id"`
	Type              string    `json:"type"`
	Content           string    `json:"content"`
	AuthorID          string    `json:"authorId"`
	ChannelID         string    `json:"channelId"`
	GuildID           string    `json:"guildId,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	AuthorDisplayName string    `json:"authorDisplayName,omitempty"`
}

// IsDirectMessage reports whether this observation arrived outside any
// guild/server context.
func (o Observation) IsDirectMessage() bool {
	return o.GuildID == ""
}

// RecentItem is one prior message surfaced by the retriever's recency
// window.
type RecentItem struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// RelevantItem is one memory hit surfaced by hybrid search. Score is
// stored exactly as returned by the memory service — it is not clamped
// to [0,1] (see spec §4.3's documented semantic gap).
type RelevantItem struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Context is the bounded, read-only working set the retriever builds for
// one observation.
type Context struct {
	Recent     []RecentItem   `json:"recent"`
	Relevant   []RelevantItem `json:"relevant"`
	UserEntity *UserEntity    `json:"userEntity,omitempty"`
}

// IdentityTraits is the subset of a UserEntity's traits the identity
// model consumes.
type IdentityTraits struct {
	PublicAliases      []string `json:"publicAliases,omitempty"`
	PrivateAliases     []string `json:"privateAliases,omitempty"`
	AllowAutoIntimate  bool     `json:"allowAutoIntimate,omitempty"`
}

// UserEntity is the memory store's record for a user, fetched read-mostly
// and updated only via the identity-update tool or the reflector's
// identity sync.
type UserEntity struct {
	ID      string         `json:"id"`
	Aliases []string       `json:"aliases,omitempty"`
	Traits  EntityTraits   `json:"traits"`
	Display string         `json:"display,omitempty"`
}

// EntityTraits wraps the identity sub-document carried on a UserEntity.
type EntityTraits struct {
	Identity IdentityTraits `json:"identity"`
}
