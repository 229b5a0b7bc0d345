package pretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-3.5-turbo"
	openAIMaxTokens      = 1000
)

// OpenAIProvider suggests translations via the OpenAI chat completions API,
// steering the model with any glossary terms found in the source string.
type OpenAIProvider struct {
	store      RecordStore
	settings   SettingsStore
	usage      *Usage
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(store RecordStore, settings SettingsStore, usage *Usage, baseURL string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIProvider{
		store:    store,
		settings: settings,
		usage:    usage,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: providerTimeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Suggest builds a glossary-aware chat completion request from the user's
// configured prompt, model and temperature, and returns the first choice's
// content with surrounding whitespace and quotes stripped. Token usage is
// charged to the user once, and only when the trimmed output is non-empty.
func (p *OpenAIProvider) Suggest(ctx context.Context, req SuggestionRequest) (string, error) {
	apiKey, _ := p.settings.GetUserSetting(req.UserID, SettingOpenAIAPIKey)
	if strings.TrimSpace(apiKey) == "" {
		return "", fmt.Errorf("openai api key not configured: %w", ErrNoSuggestion)
	}

	prompt, _ := p.settings.GetUserSetting(req.UserID, SettingOpenAICustomPrompt)
	model, ok := p.settings.GetUserSetting(req.UserID, SettingOpenAIModel)
	if !ok || model == "" {
		model = defaultOpenAIModel
	}

	systemPrompt := prompt + p.glossaryClause(req.Locale, req.Original.Singular)
	userPrompt := " Translate the following text to " + req.Locale.EnglishName + ": \n" +
		"\"" + req.Original.Singular + "\""

	body, err := json.Marshal(map[string]interface{}{
		"model":      model,
		"max_tokens": openAIMaxTokens,
		"n":          1,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		"temperature": p.temperature(req.UserID),
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed (%v): %w", err, ErrNoSuggestion)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openai response: %w", ErrNoSuggestion)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %w", resp.StatusCode, ErrNoSuggestion)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("parse openai response: %w", ErrNoSuggestion)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty openai response: %w", ErrNoSuggestion)
	}

	suggestion := strings.Trim(strings.TrimSpace(chatResp.Choices[0].Message.Content), "\"")
	if suggestion == "" {
		return "", fmt.Errorf("empty completion text: %w", ErrNoSuggestion)
	}
	p.usage.AddOpenAITokens(req.UserID, chatResp.Usage.TotalTokens)
	return suggestion, nil
}

// temperature reads the user's configured sampling temperature and clamps it
// to the valid [0, 2] range; anything unparsable or out of range becomes 0.
func (p *OpenAIProvider) temperature(userID int64) float64 {
	raw, ok := p.settings.GetUserSetting(userID, SettingOpenAITemperature)
	if !ok {
		return 0
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || t < 0 || t > 2 {
		return 0
	}
	return t
}

// glossaryClause scans the locale glossary for terms appearing in the source
// text and renders them as a constraint clause for the system prompt. Entries
// sharing a translation are collapsed into one constraint.
func (p *OpenAIProvider) glossaryClause(locale Locale, singular string) string {
	glossarySet, err := p.store.DefaultTranslationSet(0, "default", locale.Slug)
	if err != nil || glossarySet == nil {
		return ""
	}
	entries, err := p.store.GlossaryEntries(glossarySet.ID)
	if err != nil {
		log.Printf("[pretranslate] load glossary for %s: %v", locale.Slug, err)
		return ""
	}

	lowerSingular := strings.ToLower(singular)
	var order []string
	terms := make(map[string]string) // translation -> term
	for _, entry := range entries {
		if !strings.Contains(lowerSingular, strings.ToLower(entry.Term)) {
			continue
		}
		if _, seen := terms[entry.Translation]; !seen {
			order = append(order, entry.Translation)
		}
		terms[entry.Translation] = entry.Term
	}
	if len(order) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(" The following terms are translated as follows: ")
	for i, translation := range order {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q is translated as %q", terms[translation], translation)
	}
	b.WriteString(".")
	return b.String()
}
