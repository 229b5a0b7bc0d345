package db

import (
	"testing"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

func testDB(t *testing.T) *Database {
	t.Helper()
	d, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func seedSet(t *testing.T, d *Database, projectID int64, slug, locale string) int64 {
	t.Helper()
	res, err := d.DB().Exec(
		"INSERT INTO translation_sets (project_id, name, slug, locale) VALUES (?, ?, ?, ?)",
		projectID, locale, slug, locale,
	)
	if err != nil {
		t.Fatalf("seed translation set: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedOriginal(t *testing.T, d *Database, singular string, plural interface{}) int64 {
	t.Helper()
	res, err := d.DB().Exec(
		"INSERT INTO originals (project_id, singular, plural) VALUES (1, ?, ?)",
		singular, plural,
	)
	if err != nil {
		t.Fatalf("seed original: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestGetOriginal(t *testing.T) {
	d := testDB(t)
	id := seedOriginal(t, d, "Hello", nil)
	pluralID := seedOriginal(t, d, "%d item", "%d items")

	o, err := d.GetOriginal(id)
	if err != nil {
		t.Fatalf("GetOriginal: %v", err)
	}
	if o.Singular != "Hello" || o.Plural != nil {
		t.Errorf("original = %+v", o)
	}

	o, err = d.GetOriginal(pluralID)
	if err != nil {
		t.Fatalf("GetOriginal: %v", err)
	}
	if o.Plural == nil || *o.Plural != "%d items" {
		t.Errorf("plural original = %+v", o)
	}
}

func TestGetOriginal_MissingReturnsNil(t *testing.T) {
	d := testDB(t)
	o, err := d.GetOriginal(999)
	if err != nil {
		t.Fatalf("GetOriginal: %v", err)
	}
	if o != nil {
		t.Errorf("missing original = %+v, want nil", o)
	}
}

func TestCreateAndFindTranslations(t *testing.T) {
	d := testDB(t)
	setID := seedSet(t, d, 1, "default", "fr")
	origID := seedOriginal(t, d, "Hello", nil)

	tr := &models.Translation{
		OriginalID:       origID,
		TranslationSetID: setID,
		Translation0:     "Bonjour",
		Status:           "waiting",
		UserID:           1,
	}
	if err := d.CreateTranslation(tr); err != nil {
		t.Fatalf("CreateTranslation: %v", err)
	}
	if tr.ID == 0 {
		t.Error("CreateTranslation should set the new ID")
	}
	if tr.DateAdded.IsZero() {
		t.Error("CreateTranslation should set DateAdded")
	}

	waiting, err := d.FindTranslations(origID, setID, "waiting")
	if err != nil {
		t.Fatalf("FindTranslations: %v", err)
	}
	if len(waiting) != 1 || waiting[0].Translation0 != "Bonjour" {
		t.Errorf("waiting translations = %+v", waiting)
	}

	current, err := d.FindTranslations(origID, setID, "current")
	if err != nil {
		t.Fatalf("FindTranslations: %v", err)
	}
	if len(current) != 0 {
		t.Errorf("current translations = %+v, want none", current)
	}
}

func TestListTranslations_StatusFilter(t *testing.T) {
	d := testDB(t)
	setID := seedSet(t, d, 1, "default", "fr")
	origID := seedOriginal(t, d, "Hello", nil)

	for _, status := range []string{"waiting", "current", "waiting"} {
		if err := d.CreateTranslation(&models.Translation{
			OriginalID:       origID,
			TranslationSetID: setID,
			Translation0:     "Bonjour",
			Status:           status,
			UserID:           1,
		}); err != nil {
			t.Fatalf("CreateTranslation: %v", err)
		}
	}

	all, err := d.ListTranslations(setID, "")
	if err != nil {
		t.Fatalf("ListTranslations: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d rows, want 3", len(all))
	}

	waiting, err := d.ListTranslations(setID, "waiting")
	if err != nil {
		t.Fatalf("ListTranslations: %v", err)
	}
	if len(waiting) != 2 {
		t.Errorf("waiting = %d rows, want 2", len(waiting))
	}
}

func TestDefaultTranslationSet(t *testing.T) {
	d := testDB(t)
	id := seedSet(t, d, 0, "default", "fr")

	s, err := d.DefaultTranslationSet(0, "default", "fr")
	if err != nil {
		t.Fatalf("DefaultTranslationSet: %v", err)
	}
	if s == nil || s.ID != id {
		t.Errorf("set = %+v, want id %d", s, id)
	}

	s, err = d.DefaultTranslationSet(0, "default", "de")
	if err != nil {
		t.Fatalf("DefaultTranslationSet: %v", err)
	}
	if s != nil {
		t.Errorf("missing set = %+v, want nil", s)
	}
}

func TestGlossaryEntries(t *testing.T) {
	d := testDB(t)
	setID := seedSet(t, d, 0, "default", "fr")

	res, err := d.DB().Exec("INSERT INTO glossaries (translation_set_id) VALUES (?)", setID)
	if err != nil {
		t.Fatalf("seed glossary: %v", err)
	}
	glossaryID, _ := res.LastInsertId()
	for _, e := range [][2]string{{"Hello", "Bonjour"}, {"world", "monde"}} {
		if _, err := d.DB().Exec(
			"INSERT INTO glossary_entries (glossary_id, term, translation) VALUES (?, ?, ?)",
			glossaryID, e[0], e[1],
		); err != nil {
			t.Fatalf("seed glossary entry: %v", err)
		}
	}

	entries, err := d.GlossaryEntries(setID)
	if err != nil {
		t.Fatalf("GlossaryEntries: %v", err)
	}
	if len(entries) != 2 || entries[0].Term != "Hello" || entries[1].Translation != "monde" {
		t.Errorf("entries = %+v", entries)
	}

	none, err := d.GlossaryEntries(999)
	if err != nil {
		t.Fatalf("GlossaryEntries: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("entries for set without glossary = %+v", none)
	}
}

func TestCanAndGrantPermission(t *testing.T) {
	d := testDB(t)
	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	admin, err := d.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}

	res, err := d.DB().Exec("INSERT INTO users (username, password, role) VALUES ('alice', 'x', 'contributor')")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	aliceID, _ := res.LastInsertId()

	if !d.Can(admin.ID, "approve", "translation-set", 10) {
		t.Error("admin should hold every capability")
	}
	if d.Can(aliceID, "approve", "translation-set", 10) {
		t.Error("contributor without a grant should be denied")
	}

	if err := d.GrantPermission(aliceID, "approve", "translation-set", 10); err != nil {
		t.Fatalf("GrantPermission: %v", err)
	}
	if !d.Can(aliceID, "approve", "translation-set", 10) {
		t.Error("granted capability should be honored")
	}
	if d.Can(aliceID, "approve", "translation-set", 11) {
		t.Error("grant is scoped to one object")
	}

	// Re-granting is a no-op, not an error.
	if err := d.GrantPermission(aliceID, "approve", "translation-set", 10); err != nil {
		t.Errorf("duplicate grant: %v", err)
	}
}

func TestUserSettings(t *testing.T) {
	d := testDB(t)

	if _, ok := d.GetUserSetting(1, "openai_api_key"); ok {
		t.Error("unset key should miss")
	}

	if err := d.SetUserSetting(1, "openai_api_key", "sk-one"); err != nil {
		t.Fatalf("SetUserSetting: %v", err)
	}
	if v, ok := d.GetUserSetting(1, "openai_api_key"); !ok || v != "sk-one" {
		t.Errorf("setting = %q/%v, want sk-one/true", v, ok)
	}

	// Upsert overwrites.
	if err := d.SetUserSetting(1, "openai_api_key", "sk-two"); err != nil {
		t.Fatalf("SetUserSetting: %v", err)
	}
	if v, _ := d.GetUserSetting(1, "openai_api_key"); v != "sk-two" {
		t.Errorf("setting = %q, want sk-two", v)
	}

	// Per-user scoping.
	if _, ok := d.GetUserSetting(2, "openai_api_key"); ok {
		t.Error("user 2 should not see user 1's setting")
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	d := testDB(t)
	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if err := d.EnsureAdmin("other", "secret"); err != nil {
		t.Fatalf("EnsureAdmin second call: %v", err)
	}

	var count int
	if err := d.DB().QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count); err != nil {
		t.Fatalf("count admins: %v", err)
	}
	if count != 1 {
		t.Errorf("admin count = %d, want 1", count)
	}
}
