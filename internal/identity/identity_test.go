package identity

import (
	"strings"
	"testing"

	"github.com/nexuscore/reasoning/pkg/models"
)

func TestResolveZoneI1(t *testing.T) {
	if got := ResolveZone(models.Observation{GuildID: "g1"}); got != models.ZonePublicGuild {
		t.Fatalf("expected PUBLIC_GUILD, got %s", got)
	}
	if got := ResolveZone(models.Observation{}); got != models.ZonePrivateDM {
		t.Fatalf("expected PRIVATE_DM, got %s", got)
	}
}

func TestBuildProfileExcludesPrivateAliasesFromPublicI2(t *testing.T) {
	obs := models.Observation{AuthorID: "u1", AuthorDisplayName: "TheLinQuei"}
	entity := &models.UserEntity{
		Display: "TheLinQuei",
		Traits: models.EntityTraits{
			Identity: models.IdentityTraits{
				PublicAliases:  []string{"TheLinQuei"},
				PrivateAliases: []string{"Kaelen", "baby"},
			},
		},
	}

	profile := BuildProfile(obs, entity)

	privateLower := toLowerSet(profile.PrivateAliases)
	for _, pub := range profile.PublicAliases {
		if _, ok := privateLower[strings.ToLower(pub)]; ok {
			t.Fatalf("public alias %q collides with a private alias", pub)
		}
	}
	if len(profile.PublicAliases) == 0 {
		t.Fatal("expected at least one public alias")
	}
}

func TestBuildProfileFallsBackToAuthorID(t *testing.T) {
	obs := models.Observation{AuthorID: "u1"}
	profile := BuildProfile(obs, nil)

	if len(profile.PublicAliases) != 1 || profile.PublicAliases[0] != "u1" {
		t.Fatalf("expected fallback to authorId, got %+v", profile.PublicAliases)
	}
}

func TestBuildProfileSkipsPublicCandidateThatIsPrivate(t *testing.T) {
	obs := models.Observation{AuthorID: "u1", AuthorDisplayName: "Kaelen"}
	entity := &models.UserEntity{
		Traits: models.EntityTraits{
			Identity: models.IdentityTraits{PrivateAliases: []string{"kaelen"}},
		},
	}

	profile := BuildProfile(obs, entity)

	if len(profile.PublicAliases) != 1 || profile.PublicAliases[0] != "u1" {
		t.Fatalf("expected fallback to authorId after skipping private collision, got %+v", profile.PublicAliases)
	}
}

func TestChooseAddressingPublicGuildNeverIntimateI3(t *testing.T) {
	profile := models.IdentityProfile{
		UserID:               "u1",
		PublicAliases:        []string{"TheLinQuei"},
		PrivateAliases:       []string{"Kaelen", "baby"},
		AllowAutoIntimate:    true,
		LastKnownDisplayName: "TheLinQuei",
	}

	choice := ChooseAddressing(models.ZonePublicGuild, profile)

	if choice.UseIntimate {
		t.Fatal("expected UseIntimate=false in PUBLIC_GUILD")
	}
	privateLower := toLowerSet(profile.PrivateAliases)
	if _, ok := privateLower[strings.ToLower(choice.PrimaryName)]; ok {
		t.Fatalf("primary name %q leaks a private alias", choice.PrimaryName)
	}
	if _, ok := privateLower[strings.ToLower(choice.SafeName)]; ok {
		t.Fatalf("safe name %q leaks a private alias", choice.SafeName)
	}
}

func TestChooseAddressingPublicGuildHardFallsBackOnCollision(t *testing.T) {
	profile := models.IdentityProfile{
		UserID:               "u1",
		PublicAliases:        []string{"Kaelen"},
		PrivateAliases:       []string{"kaelen"},
		LastKnownDisplayName: "Kaelen",
	}

	choice := ChooseAddressing(models.ZonePublicGuild, profile)

	if choice.PrimaryName != "u1" {
		t.Fatalf("expected hard fallback to authorId, got %q", choice.PrimaryName)
	}
}

func TestChooseAddressingPrivateDMUsesIntimateWhenAllowed(t *testing.T) {
	profile := models.IdentityProfile{
		UserID:               "u1",
		PublicAliases:        []string{"TheLinQuei"},
		PrivateAliases:       []string{"Kaelen"},
		AllowAutoIntimate:    true,
		LastKnownDisplayName: "TheLinQuei",
	}

	choice := ChooseAddressing(models.ZonePrivateDM, profile)

	if !choice.UseIntimate || choice.IntimateName != "Kaelen" {
		t.Fatalf("expected intimate addressing, got %+v", choice)
	}
}

func TestChooseAddressingIsDeterministicL2(t *testing.T) {
	profile := models.IdentityProfile{
		UserID:               "u1",
		PublicAliases:        []string{"TheLinQuei"},
		PrivateAliases:       []string{"Kaelen"},
		LastKnownDisplayName: "TheLinQuei",
	}

	a := ChooseAddressing(models.ZonePublicGuild, profile)
	b := ChooseAddressing(models.ZonePublicGuild, profile)
	if a != b {
		t.Fatalf("expected identical results for identical inputs: %+v vs %+v", a, b)
	}
}
