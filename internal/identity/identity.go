// Package identity resolves trust zones, builds addressing profiles, and
// computes the name a response is allowed to use (spec §4.4, component
// C4). Every exported function here is pure — the safety invariants
// (I1-I3) are properties of the data, not of any external state.
package identity

import (
	"strings"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

// ResolveZone implements spec invariant I1: a guild id present means the
// observation is visible to the whole guild.
func ResolveZone(obs models.Observation) models.IdentityZone {
	if obs.GuildID != "" {
		return models.IdentityZone(models.ZonePublicGuild)
	}
	return models.ZonePrivateDM
}

// BuildProfile constructs an IdentityProfile per spec §4.4's five-step
// algorithm. entity may be nil (e.g. retrieval failed or the user is
// unknown to the memory store).
func BuildProfile(obs models.Observation, entity *models.UserEntity) models.IdentityProfile {
	traits := models.IdentityTraits{}
	if entity != nil {
		traits = entity.Traits.Identity
	}

	privateAliases := dedupeStrings(traits.PrivateAliases)
	privateLower := toLowerSet(privateAliases)

	var publicSeed []string
	publicSeed = append(publicSeed, obs.AuthorDisplayName)
	if entity != nil {
		publicSeed = append(publicSeed, entity.Display)
		publicSeed = append(publicSeed, entity.Aliases...)
	}
	publicSeed = append(publicSeed, traits.PublicAliases...)

	publicAliases := buildPublicAliases(publicSeed, privateLower)
	if len(publicAliases) == 0 {
		publicAliases = []string{obs.AuthorID}
	}

	lastKnown := obs.AuthorDisplayName
	if lastKnown == "" && entity != nil {
		lastKnown = entity.Display
	}

	return models.IdentityProfile{
		UserID:               obs.AuthorID,
		PublicAliases:        publicAliases,
		PrivateAliases:       privateAliases,
		AllowAutoIntimate:    traits.AllowAutoIntimate,
		LastKnownDisplayName: lastKnown,
		LastUpdated:          time.Now().UTC(),
	}
}

// buildPublicAliases seeds candidates in order, deduplicating (case
// sensitively — later seeds with distinct casing are kept distinct) and
// skipping anything that collides with a private alias case-insensitively,
// per spec §4.4 step 3.
func buildPublicAliases(seed []string, privateLower map[string]struct{}) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, candidate := range seed {
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		if _, private := privateLower[strings.ToLower(candidate)]; private {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// ChooseAddressing implements spec §4.4's addressing rule and law L2: it
// is a pure function of zone and profile.
func ChooseAddressing(zone models.IdentityZone, profile models.IdentityProfile) models.AddressingChoice {
	privateLower := toLowerSet(profile.PrivateAliases)
	safeName := resolveSafeName(profile, privateLower)

	if zone == models.ZonePublicGuild {
		return models.AddressingChoice{
			PrimaryName: safeName,
			SafeName:    safeName,
			UseIntimate: false,
		}
	}

	choice := models.AddressingChoice{
		PrimaryName: safeName,
		SafeName:    safeName,
	}
	if profile.AllowAutoIntimate && len(profile.PrivateAliases) > 0 {
		choice.IntimateName = profile.PrivateAliases[0]
		choice.UseIntimate = true
		choice.PrimaryName = choice.IntimateName
	}
	return choice
}

// resolveSafeName walks lastKnownDisplayName -> publicAliases[0] ->
// authorId (userID), hard-falling back to userID if the chain lands on a
// private alias (spec §4.4, invariant I3).
func resolveSafeName(profile models.IdentityProfile, privateLower map[string]struct{}) string {
	candidates := []string{profile.LastKnownDisplayName}
	if len(profile.PublicAliases) > 0 {
		candidates = append(candidates, profile.PublicAliases[0])
	}
	candidates = append(candidates, profile.UserID)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, private := privateLower[strings.ToLower(c)]; private {
			continue
		}
		return c
	}
	return profile.UserID
}

func dedupeStrings(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toLowerSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}
