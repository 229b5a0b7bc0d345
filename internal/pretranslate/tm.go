package pretranslate

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// tmThreshold is the minimum similarity score for a translation-memory match
// to be accepted. Only exact matches are used for pretranslation.
const tmThreshold = 1.0

// TMSuggestion is one candidate returned by the translation memory service,
// best match first.
type TMSuggestion struct {
	SimilarityScore float64 `json:"similarity_score"`
	Translation     string  `json:"translation"`
}

// TMProvider suggests translations from the platform's translation memory.
type TMProvider struct {
	endpoint   string
	cache      Cache // nil disables caching
	httpClient *http.Client
}

func NewTMProvider(endpoint string, cache Cache) *TMProvider {
	return &TMProvider{
		endpoint: endpoint,
		cache:    cache,
		httpClient: &http.Client{
			Timeout: providerTimeout,
		},
	}
}

// Suggest queries the translation memory with the original's singular text
// and accepts the best candidate only when it is an exact match.
func (p *TMProvider) Suggest(ctx context.Context, req SuggestionRequest) (string, error) {
	suggestions, err := p.query(ctx, req.Original.Singular, req.Locale.Slug)
	if err != nil {
		return "", fmt.Errorf("translation memory query: %w", ErrNoSuggestion)
	}
	if len(suggestions) == 0 {
		return "", fmt.Errorf("no matches in translation memory: %w", ErrNoSuggestion)
	}
	if suggestions[0].SimilarityScore < tmThreshold {
		return "", fmt.Errorf("best match below threshold (%.2f): %w", suggestions[0].SimilarityScore, ErrNoSuggestion)
	}
	return suggestions[0].Translation, nil
}

func (p *TMProvider) query(ctx context.Context, text, localeSlug string) ([]TMSuggestion, error) {
	key := tmCacheKey(text, localeSlug)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			var suggestions []TMSuggestion
			if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
				return suggestions, nil
			}
		}
	}

	payload, err := json.Marshal(map[string]string{
		"text":   text,
		"locale": localeSlug,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("translation memory request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation memory error (status %d): %s", resp.StatusCode, string(body))
	}

	var suggestions []TMSuggestion
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, fmt.Errorf("parse translation memory response: %w", err)
	}

	if p.cache != nil {
		p.cache.Set(key, string(body))
	}
	return suggestions, nil
}

// tmCacheKey hashes the source text and scopes it by locale, so identical
// queries within the cache TTL skip the round trip.
func tmCacheKey(text, localeSlug string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:]) + ":" + localeSlug
}

// providerTimeout is the fixed budget for one external provider call. Calls
// are never retried; a timeout rejects that single string's suggestion.
const providerTimeout = 20 * time.Second
