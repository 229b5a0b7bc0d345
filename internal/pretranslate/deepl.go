package pretranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	deeplFreeURL = "https://api-free.deepl.com/v2/translate"
	deeplProURL  = "https://api.deepl.com/v2/translate"
)

// DeepLProvider suggests translations via the DeepL API. Source strings are
// always English; the target language and formality come from the locale
// mapping tables.
type DeepLProvider struct {
	settings   SettingsStore
	usage      *Usage
	freeURL    string
	proURL     string
	httpClient *http.Client
}

func NewDeepLProvider(settings SettingsStore, usage *Usage) *DeepLProvider {
	return &DeepLProvider{
		settings: settings,
		usage:    usage,
		freeURL:  deeplFreeURL,
		proURL:   deeplProURL,
		httpClient: &http.Client{
			Timeout: providerTimeout,
		},
	}
}

// Suggest translates the original's singular text with DeepL. Locales absent
// from the mapping table are rejected before any request is made. Each
// accepted suggestion charges the character counter with the source length.
func (p *DeepLProvider) Suggest(ctx context.Context, req SuggestionRequest) (string, error) {
	apiKey, _ := p.settings.GetUserSetting(req.UserID, SettingDeepLAPIKey)
	if strings.TrimSpace(apiKey) == "" {
		return "", fmt.Errorf("deepl api key not configured: %w", ErrNoSuggestion)
	}

	targetLang := DeepLLocale(req.Locale.Slug)
	if targetLang == "" {
		return "", fmt.Errorf("locale %s not supported by deepl: %w", req.Locale.Slug, ErrNoSuggestion)
	}

	endpoint := p.freeURL
	if pro, _ := p.settings.GetUserSetting(req.UserID, SettingDeepLUseAPIPro); pro == "1" || pro == "true" {
		endpoint = p.proURL
	}

	form := url.Values{}
	form.Set("auth_key", apiKey)
	form.Set("text", req.Original.Singular)
	form.Set("source_lang", "EN")
	form.Set("target_lang", targetLang)
	form.Set("formality", Formality(targetLang, req.SetSlug))

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("deepl request failed (%v): %w", err, ErrNoSuggestion)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read deepl response: %w", ErrNoSuggestion)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl error (status %d): %w", resp.StatusCode, ErrNoSuggestion)
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &deeplResp); err != nil {
		return "", fmt.Errorf("parse deepl response: %w", ErrNoSuggestion)
	}
	if len(deeplResp.Translations) == 0 {
		return "", fmt.Errorf("empty deepl response: %w", ErrNoSuggestion)
	}

	p.usage.AddDeepLChars(req.UserID, req.Original.Singular)
	return deeplResp.Translations[0].Text, nil
}
