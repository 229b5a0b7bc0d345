package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // admin, validator, contributor
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Original is a source-language string registered for translation.
// Plural is null for singular-only strings; strings with a plural form
// are never pretranslated.
type Original struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	Singular  string  `json:"singular"`
	Plural    *string `json:"plural,omitempty"`
	Status    string  `json:"status"`
}

// TranslationSet is the (project, locale, variant slug) scope into which
// translations are submitted, e.g. (wp-plugins/foo, de, formal).
type TranslationSet struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`   // variant slug: "default", "formal", ...
	Locale    string `json:"locale"` // platform locale slug: "fr", "pt-br", ...
}

// Translation is a stored translation candidate. Pretranslations are created
// with status "waiting"; promotion to "current" happens during review, outside
// the pretranslation engine.
type Translation struct {
	ID               int64     `json:"id"`
	OriginalID       int64     `json:"original_id"`
	TranslationSetID int64     `json:"translation_set_id"`
	Translation0     string    `json:"translation_0"`
	Status           string    `json:"status"` // waiting, current, rejected, old
	UserID           int64     `json:"user_id"`
	DateAdded        time.Time `json:"date_added"`
}

// GlossaryEntry is a mandated term-to-translation mapping attached to the
// glossary of a locale's default translation set.
type GlossaryEntry struct {
	ID          int64  `json:"id"`
	GlossaryID  int64  `json:"glossary_id"`
	Term        string `json:"term"`
	Translation string `json:"translation"`
}
