package reflector

import (
	"context"
	"errors"
	"testing"

	"github.com/nexuscore/reasoning/internal/memoryclient"
	"github.com/nexuscore/reasoning/pkg/models"
)

type fakeMemory struct {
	reflectErr      error
	upsertErr       error
	lastScope       memoryclient.ReflectionScope
	lastScopeID     string
	upsertedTraits  models.EntityTraits
	upsertedID      string
	upsertCallCount int
}

func (f *fakeMemory) ReflectUpsert(_ context.Context, _ string, scope memoryclient.ReflectionScope, scopeID string, _ map[string]any) error {
	f.lastScope = scope
	f.lastScopeID = scopeID
	return f.reflectErr
}

func (f *fakeMemory) UpsertUserEntity(_ context.Context, id string, traits models.EntityTraits) error {
	f.upsertCallCount++
	f.upsertedID = id
	f.upsertedTraits = traits
	return f.upsertErr
}

func TestReflectPrefersChannelScope(t *testing.T) {
	mem := &fakeMemory{}
	r := New(mem)

	r.Reflect(context.Background(), models.Observation{ChannelID: "c1", GuildID: "g1", AuthorID: "u1"}, models.Plan{}, models.ExecutionResult{Success: true}, models.IdentityProfile{})

	if mem.lastScope != memoryclient.ReflectScopeChannel || mem.lastScopeID != "c1" {
		t.Fatalf("expected channel scope c1, got %s/%s", mem.lastScope, mem.lastScopeID)
	}
}

func TestReflectFallsBackToGuildThenUser(t *testing.T) {
	mem := &fakeMemory{}
	r := New(mem)

	r.Reflect(context.Background(), models.Observation{GuildID: "g1", AuthorID: "u1"}, models.Plan{}, models.ExecutionResult{}, models.IdentityProfile{})
	if mem.lastScope != memoryclient.ReflectScopeGuild {
		t.Fatalf("expected guild scope, got %s", mem.lastScope)
	}

	r.Reflect(context.Background(), models.Observation{AuthorID: "u1"}, models.Plan{}, models.ExecutionResult{}, models.IdentityProfile{})
	if mem.lastScope != memoryclient.ReflectScopeUser || mem.lastScopeID != "u1" {
		t.Fatalf("expected user scope u1, got %s/%s", mem.lastScope, mem.lastScopeID)
	}
}

func TestReflectAlwaysSyncsIdentityEvenOnReflectionFailure(t *testing.T) {
	mem := &fakeMemory{reflectErr: errors.New("memory down")}
	r := New(mem)

	r.Reflect(context.Background(), models.Observation{AuthorID: "u1"}, models.Plan{}, models.ExecutionResult{}, models.IdentityProfile{PublicAliases: []string{"Robin"}})

	if mem.upsertCallCount != 1 {
		t.Fatalf("expected identity sync to run despite reflection failure, got %d calls", mem.upsertCallCount)
	}
	if mem.upsertedID != "user:u1" {
		t.Fatalf("expected canonical id user:u1, got %q", mem.upsertedID)
	}
	if len(mem.upsertedTraits.Identity.PublicAliases) != 1 {
		t.Fatalf("expected public aliases synced, got %+v", mem.upsertedTraits)
	}
}
