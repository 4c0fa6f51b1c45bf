package intent

import (
	"context"
	"testing"

	"github.com/nexuscore/reasoning/pkg/models"
)

type fakeSkills struct {
	match *models.SkillMatch
	err   error
}

func (f *fakeSkills) Similar(context.Context, string) (*models.SkillMatch, error) {
	return f.match, f.err
}

func TestResolveIntentMapFastPath(t *testing.T) {
	e := New(nil, nil)
	decision := e.Resolve(context.Background(), models.Observation{Content: "how many members are in this guild?"})

	if decision.Source != "intent-map" {
		t.Fatalf("expected intent-map source, got %q", decision.Source)
	}
	if decision.Intent != "guild.member.count" {
		t.Fatalf("expected guild.member.count, got %q", decision.Intent)
	}
	if decision.Gating != models.GatingStrict {
		t.Fatalf("expected strict gating, got %q", decision.Gating)
	}
}

func TestResolveQualitativePhraseNeverMapsToGuildIntent(t *testing.T) {
	e := New(nil, nil)
	decision := e.Resolve(context.Background(), models.Observation{Content: "what's the vibe in here today"})

	if decision.Intent == "guild.member.count" {
		t.Fatal("qualitative phrase must not resolve to a guild intent")
	}
	if decision.Gating == models.GatingStrict {
		t.Fatal("qualitative phrase must not be strictly gated")
	}
}

func TestResolveLongMultiClauseFallsThrough(t *testing.T) {
	e := New(nil, nil)
	decision := e.Resolve(context.Background(), models.Observation{
		Content: "remind me to check the server and then also tell me how busy it feels but only later tonight",
	})

	if decision.Source == "intent-map" {
		t.Fatal("long multi-clause input should fall through to the planner, not the intent map")
	}
}

func TestResolveSkillSimilarityFallback(t *testing.T) {
	e := New(&fakeSkills{match: &models.SkillMatch{SkillID: "s1", Similarity: 0.9}}, nil)
	decision := e.Resolve(context.Background(), models.Observation{Content: "do the thing we did last time"})

	if decision.Source != "skill-graph" {
		t.Fatalf("expected skill-graph source, got %q", decision.Source)
	}
	if decision.SkillMatch == nil || decision.SkillMatch.SkillID != "s1" {
		t.Fatalf("expected skill match attached, got %+v", decision.SkillMatch)
	}
}

func TestResolveNoSignalFallsBackUngated(t *testing.T) {
	e := New(nil, nil)
	decision := e.Resolve(context.Background(), models.Observation{Content: "xyzzy plugh"})

	if decision.Source != "fallback" {
		t.Fatalf("expected fallback source, got %q", decision.Source)
	}
	if decision.Gating != models.GatingNone {
		t.Fatalf("expected none gating, got %q", decision.Gating)
	}
}
