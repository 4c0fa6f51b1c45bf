package sanitizer

import (
	"strings"
	"testing"

	"github.com/nexuscore/reasoning/pkg/models"
)

func samplePlan(content string) models.Plan {
	return models.Plan{
		Steps: []models.Step{
			{
				Tool: "message.send",
				Args: map[string]any{
					"channelId":       "c1",
					"content":         content,
					"originalContent": content,
				},
			},
		},
		Reasoning: "greet",
	}
}

func TestSanitizePlanScenario1(t *testing.T) {
	s := New()
	obs := models.Observation{
		Content: "hi", GuildID: "g1", ChannelID: "c1", AuthorID: "u1", AuthorDisplayName: "TheLinQuei",
	}
	profile := models.IdentityProfile{
		UserID:               "u1",
		PublicAliases:        []string{"TheLinQuei"},
		PrivateAliases:       []string{"Kaelen", "baby"},
		AllowAutoIntimate:    true,
		LastKnownDisplayName: "TheLinQuei",
	}
	plan := samplePlan("Hi Kaelen!")

	out, sanitizedObs := s.SanitizePlan(plan, obs, models.ZonePublicGuild, profile)

	content := out.Steps[0].Args["content"].(string)
	if strings.Contains(content, "Kaelen") || strings.Contains(content, "baby") {
		t.Fatalf("sanitized content still leaks a private alias: %q", content)
	}
	if !strings.Contains(content, "TheLinQuei") {
		t.Fatalf("expected safe name in sanitized content, got %q", content)
	}
	if _, ok := out.Steps[0].Args["originalContent"]; ok {
		t.Fatal("expected originalContent stripped from step args")
	}
	if sanitizedObs.Content != obs.Content {
		// obs content "hi" has no private alias to redact.
		t.Fatalf("unexpected sanitized obs content: %q", sanitizedObs.Content)
	}
}

func TestSanitizeContentDoesNotMatchSubstringInsideLongerWord(t *testing.T) {
	s := New()
	// "his" must not fire on a private alias "hi" appearing inside "history".
	out := s.SanitizeContent("check the history books", "Sam", []string{"hi"})
	if out != "check the history books" {
		t.Fatalf("expected no change, regex boundary violated: %q", out)
	}
}

func TestSanitizeContentIdempotentL1(t *testing.T) {
	s := New()
	once := s.SanitizeContent("hey Kaelen, how are you baby", "TheLinQuei", []string{"Kaelen", "baby"})
	twice := s.SanitizeContent(once, "TheLinQuei", []string{"Kaelen", "baby"})
	if once != twice {
		t.Fatalf("sanitizer is not idempotent: %q vs %q", once, twice)
	}
}

func TestSanitizeContentCaseInsensitiveWordBounded(t *testing.T) {
	s := New()
	out := s.SanitizeContent("hey KAELEN nice to see you", "TheLinQuei", []string{"Kaelen"})
	if strings.Contains(strings.ToLower(out), "kaelen") {
		t.Fatalf("expected case-insensitive alias redaction, got %q", out)
	}
}

func TestSanitizePlanNonPublicGuildLeavesContentUntouched(t *testing.T) {
	s := New()
	obs := models.Observation{AuthorID: "u1"}
	profile := models.IdentityProfile{UserID: "u1", PrivateAliases: []string{"Kaelen"}}
	plan := samplePlan("hey Kaelen!")

	out, _ := s.SanitizePlan(plan, obs, models.ZonePrivateDM, profile)

	content := out.Steps[0].Args["content"].(string)
	if content != "hey Kaelen!" {
		t.Fatalf("expected content untouched outside PUBLIC_GUILD, got %q", content)
	}
	if _, ok := out.Steps[0].Args["originalContent"]; ok {
		t.Fatal("expected originalContent stripped regardless of zone")
	}
}
