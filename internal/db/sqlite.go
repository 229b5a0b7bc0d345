package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/auth"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'contributor',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS translation_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		slug TEXT NOT NULL DEFAULT 'default',
		locale TEXT NOT NULL,
		UNIQUE(project_id, slug, locale)
	);

	CREATE TABLE IF NOT EXISTS originals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		singular TEXT NOT NULL,
		plural TEXT,
		status TEXT NOT NULL DEFAULT '+active'
	);

	CREATE TABLE IF NOT EXISTS translations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		original_id INTEGER NOT NULL,
		translation_set_id INTEGER NOT NULL,
		translation_0 TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'waiting',
		user_id INTEGER NOT NULL DEFAULT 0,
		date_added DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_translations_lookup
		ON translations(original_id, translation_set_id, status);

	CREATE TABLE IF NOT EXISTS glossaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		translation_set_id INTEGER NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS glossary_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		glossary_id INTEGER NOT NULL,
		term TEXT NOT NULL,
		translation TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS permissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		object_type TEXT NOT NULL,
		object_id INTEGER NOT NULL,
		UNIQUE(user_id, action, object_type, object_id)
	);

	CREATE TABLE IF NOT EXISTS user_settings (
		user_id INTEGER NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, key)
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetOriginal returns an original by ID, or (nil, nil) if it doesn't exist.
func (d *Database) GetOriginal(id int64) (*models.Original, error) {
	o := &models.Original{}
	var plural sql.NullString
	err := d.db.QueryRow(
		"SELECT id, project_id, singular, plural, status FROM originals WHERE id = ?",
		id,
	).Scan(&o.ID, &o.ProjectID, &o.Singular, &plural, &o.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if plural.Valid {
		o.Plural = &plural.String
	}
	return o, nil
}

func (d *Database) GetTranslationSet(id int64) (*models.TranslationSet, error) {
	s := &models.TranslationSet{}
	err := d.db.QueryRow(
		"SELECT id, project_id, name, slug, locale FROM translation_sets WHERE id = ?",
		id,
	).Scan(&s.ID, &s.ProjectID, &s.Name, &s.Slug, &s.Locale)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultTranslationSet resolves a set by (project, slug, locale). Locale
// glossaries hang off the "default" set of the global project (ID 0).
func (d *Database) DefaultTranslationSet(projectID int64, slug, localeSlug string) (*models.TranslationSet, error) {
	s := &models.TranslationSet{}
	err := d.db.QueryRow(
		"SELECT id, project_id, name, slug, locale FROM translation_sets WHERE project_id = ? AND slug = ? AND locale = ?",
		projectID, slug, localeSlug,
	).Scan(&s.ID, &s.ProjectID, &s.Name, &s.Slug, &s.Locale)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Database) FindTranslations(originalID, translationSetID int64, status string) ([]models.Translation, error) {
	rows, err := d.db.Query(`
		SELECT id, original_id, translation_set_id, translation_0, status, user_id, date_added
		FROM translations
		WHERE original_id = ? AND translation_set_id = ? AND status = ?`,
		originalID, translationSetID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTranslations(rows)
}

// ListTranslations returns the translations in a set, optionally filtered by
// status, newest first.
func (d *Database) ListTranslations(translationSetID int64, status string) ([]models.Translation, error) {
	query := `
		SELECT id, original_id, translation_set_id, translation_0, status, user_id, date_added
		FROM translations WHERE translation_set_id = ?`
	args := []interface{}{translationSetID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY date_added DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTranslations(rows)
}

func scanTranslations(rows *sql.Rows) ([]models.Translation, error) {
	var translations []models.Translation
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.ID, &t.OriginalID, &t.TranslationSetID, &t.Translation0,
			&t.Status, &t.UserID, &t.DateAdded); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

func (d *Database) CreateTranslation(t *models.Translation) error {
	now := time.Now()
	result, err := d.db.Exec(`
		INSERT INTO translations (original_id, translation_set_id, translation_0, status, user_id, date_added)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.OriginalID, t.TranslationSetID, t.Translation0, t.Status, t.UserID, now,
	)
	if err != nil {
		return err
	}
	t.ID, _ = result.LastInsertId()
	t.DateAdded = now
	return nil
}

// GlossaryEntries returns the entries of the glossary attached to a
// translation set. A set without a glossary yields an empty list.
func (d *Database) GlossaryEntries(translationSetID int64) ([]models.GlossaryEntry, error) {
	rows, err := d.db.Query(`
		SELECT e.id, e.glossary_id, e.term, e.translation
		FROM glossary_entries e
		JOIN glossaries g ON g.id = e.glossary_id
		WHERE g.translation_set_id = ?
		ORDER BY e.id ASC`,
		translationSetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.GlossaryEntry
	for rows.Next() {
		var e models.GlossaryEntry
		if err := rows.Scan(&e.ID, &e.GlossaryID, &e.Term, &e.Translation); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Can checks whether a user holds a capability on a platform object. Admins
// hold every capability.
func (d *Database) Can(userID int64, action, objectType string, objectID int64) bool {
	user, err := d.GetUserByID(userID)
	if err != nil {
		return false
	}
	if user.Role == "admin" {
		return true
	}
	var count int
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM permissions WHERE user_id = ? AND action = ? AND object_type = ? AND object_id = ?",
		userID, action, objectType, objectID,
	).Scan(&count)
	return err == nil && count > 0
}

// GrantPermission gives a user a capability on a platform object.
func (d *Database) GrantPermission(userID int64, action, objectType string, objectID int64) error {
	_, err := d.db.Exec(
		"INSERT OR IGNORE INTO permissions (user_id, action, object_type, object_id) VALUES (?, ?, ?, ?)",
		userID, action, objectType, objectID,
	)
	return err
}

// GetUserSetting returns one entry of a user's settings bag.
func (d *Database) GetUserSetting(userID int64, key string) (string, bool) {
	var val string
	err := d.db.QueryRow(
		"SELECT value FROM user_settings WHERE user_id = ? AND key = ?",
		userID, key,
	).Scan(&val)
	if err != nil {
		return "", false
	}
	return val, true
}

// SetUserSetting upserts one entry of a user's settings bag.
func (d *Database) SetUserSetting(userID int64, key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO user_settings (user_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		userID, key, value, value,
	)
	return err
}

func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for use by other packages.
func (d *Database) DB() *sql.DB {
	return d.db
}
