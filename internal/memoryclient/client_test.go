package memoryclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

func TestHybridSearchNormalizesItemsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search/hybrid" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"content": "hello", "score": 1.7}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	items, err := c.HybridSearch(t.Context(), "hello", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Content != "hello" || items[0].Score != 1.7 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestHybridSearchFallsBackToResultsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"content": "world", "score": 0.2}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	items, err := c.HybridSearch(t.Context(), "world", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Content != "world" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestGetUserEntityNotFoundIsNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	entity, err := c.GetUserEntity(t.Context(), "user:123")
	if err != nil {
		t.Fatalf("expected nil error on 404, got %v", err)
	}
	if entity != nil {
		t.Fatalf("expected nil entity, got %+v", entity)
	}
}

func TestGetUserEntityServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	_, err := c.GetUserEntity(t.Context(), "user:123")
	if err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestUpsertUserEntitySendsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-key", time.Second)
	err := c.UpsertUserEntity(t.Context(), "user:123", models.EntityTraits{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestSkillStatusPatchUsesPatchMethod(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "", time.Second)
	if err := c.SkillStatusPatch(t.Context(), "skill-1", models.SkillStatusDemoted, "low success rate"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", gotMethod)
	}
}
