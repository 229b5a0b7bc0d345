package pretranslate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

func tmRequest(singular string) SuggestionRequest {
	return SuggestionRequest{
		UserID:   1,
		Original: &models.Original{ID: 1, Singular: singular},
		Locale:   LocaleBySlug("fr"),
		SetSlug:  "default",
	}
}

func tmServer(t *testing.T, suggestions []TMSuggestion, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode TM request: %v", err)
		}
		if req["locale"] != "fr" {
			t.Errorf("TM request locale = %q, want fr", req["locale"])
		}
		json.NewEncoder(w).Encode(suggestions)
	}))
}

func TestTMProvider_ExactMatchAccepted(t *testing.T) {
	server := tmServer(t, []TMSuggestion{{SimilarityScore: 1.0, Translation: "Bonjour"}}, nil)
	defer server.Close()

	p := NewTMProvider(server.URL, nil)
	got, err := p.Suggest(context.Background(), tmRequest("Hello"))
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("suggestion = %q, want Bonjour", got)
	}
}

func TestTMProvider_BelowThresholdRejected(t *testing.T) {
	server := tmServer(t, []TMSuggestion{{SimilarityScore: 0.97, Translation: "Bonjour"}}, nil)
	defer server.Close()

	p := NewTMProvider(server.URL, nil)
	if _, err := p.Suggest(context.Background(), tmRequest("Hello")); err == nil {
		t.Error("fuzzy match below 1.0 should be rejected")
	}
}

func TestTMProvider_NoMatchesRejected(t *testing.T) {
	server := tmServer(t, []TMSuggestion{}, nil)
	defer server.Close()

	p := NewTMProvider(server.URL, nil)
	if _, err := p.Suggest(context.Background(), tmRequest("Hello")); err == nil {
		t.Error("empty suggestion list should be rejected")
	}
}

func TestTMProvider_ServiceErrorRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewTMProvider(server.URL, nil)
	if _, err := p.Suggest(context.Background(), tmRequest("Hello")); err == nil {
		t.Error("service error should be rejected, not surfaced")
	}
}

func TestTMProvider_CacheHitSkipsService(t *testing.T) {
	hits := 0
	server := tmServer(t, nil, &hits)
	defer server.Close()

	cached, _ := json.Marshal([]TMSuggestion{{SimilarityScore: 1.0, Translation: "Bonjour"}})
	c := newFakeCache()
	c.entries[tmCacheKey("Hello", "fr")] = string(cached)

	p := NewTMProvider(server.URL, c)
	got, err := p.Suggest(context.Background(), tmRequest("Hello"))
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("suggestion = %q, want Bonjour", got)
	}
	if hits != 0 {
		t.Errorf("TM service hit %d times on cache hit, want 0", hits)
	}
}

func TestTMProvider_ResponseIsCached(t *testing.T) {
	hits := 0
	server := tmServer(t, []TMSuggestion{{SimilarityScore: 1.0, Translation: "Bonjour"}}, &hits)
	defer server.Close()

	c := newFakeCache()
	p := NewTMProvider(server.URL, c)

	for i := 0; i < 2; i++ {
		if _, err := p.Suggest(context.Background(), tmRequest("Hello")); err != nil {
			t.Fatalf("Suggest #%d: %v", i+1, err)
		}
	}
	if hits != 1 {
		t.Errorf("TM service hit %d times, want 1 (second query cached)", hits)
	}
	if c.sets != 1 {
		t.Errorf("cache Set called %d times, want 1", c.sets)
	}
}
