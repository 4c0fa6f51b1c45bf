package models

import "time"

// IdentityZone is the trust context an observation was received in.
type IdentityZone string

const (
	// ZonePublicGuild is a message visible to an entire guild/server.
	ZonePublicGuild IdentityZone = "PUBLIC_GUILD"
	// ZonePrivateDM is a direct message with no guild context.
	ZonePrivateDM IdentityZone = "PRIVATE_DM"
	// ZoneTrusted is reserved for future channel-level trust flags.
	ZoneTrusted IdentityZone = "TRUSTED"
)

// IdentityProfile is the per-observation view of a user's addressing
// material. Invariant: PublicAliases never contains (case-insensitively)
// any member of PrivateAliases — callers must not construct one by hand;
// use identity.BuildProfile.
type IdentityProfile struct {
	UserID               string    `json:"userId"`
	PublicAliases        []string  `json:"publicAliases"`
	PrivateAliases       []string  `json:"privateAliases"`
	AllowAutoIntimate    bool      `json:"allowAutoIntimate"`
	LastKnownDisplayName string    `json:"lastKnownDisplayName,omitempty"`
	LastUpdated          time.Time `json:"lastUpdated"`
}

// AddressingChoice is the name the planner/sanitizer is permitted to use
// for a user given the current zone.
//
// Invariants: in ZonePublicGuild, UseIntimate is always false and neither
// PrimaryName nor SafeName equals (case-insensitively) any private alias.
type AddressingChoice struct {
	PrimaryName  string `json:"primaryName"`
	SafeName     string `json:"safeName"`
	IntimateName string `json:"intimateName,omitempty"`
	UseIntimate  bool   `json:"useIntimate"`
}
