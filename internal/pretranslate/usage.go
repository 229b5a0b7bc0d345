package pretranslate

import (
	"log"
	"strconv"
	"unicode/utf8"
)

// Usage counter keys persisted in the per-user settings bag.
const (
	SettingOpenAITokensUsed = "openai_tokens_used"
	SettingDeepLCharsUsed   = "deepl_chars_used"
)

// Usage maintains the per-user external-API consumption counters. Counters
// are read-modify-write against the settings store; a stored value that is
// absent, non-integer or negative is reset to zero before the increment.
type Usage struct {
	settings SettingsStore
}

func NewUsage(settings SettingsStore) *Usage {
	return &Usage{settings: settings}
}

// AddOpenAITokens adds a completion response's total token count to the
// user's openai_tokens_used counter.
func (u *Usage) AddOpenAITokens(userID int64, tokens int) {
	u.add(userID, SettingOpenAITokensUsed, tokens)
}

// AddDeepLChars charges the user's deepl_chars_used counter with the length
// of the submitted source text, counted in code points rather than bytes.
func (u *Usage) AddDeepLChars(userID int64, sourceText string) {
	u.add(userID, SettingDeepLCharsUsed, utf8.RuneCountInString(sourceText))
}

// Totals returns both counters for the quota display.
func (u *Usage) Totals(userID int64) (openAITokens, deeplChars int) {
	return u.counter(userID, SettingOpenAITokensUsed), u.counter(userID, SettingDeepLCharsUsed)
}

func (u *Usage) add(userID int64, key string, increment int) {
	total := u.counter(userID, key) + increment
	if err := u.settings.SetUserSetting(userID, key, strconv.Itoa(total)); err != nil {
		log.Printf("[pretranslate] persist %s for user %d: %v", key, userID, err)
	}
}

func (u *Usage) counter(userID int64, key string) int {
	raw, ok := u.settings.GetUserSetting(userID, key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
