package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/rcliao/assistant-memory/internal/model"
)

// SQLite persists the snapshot in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates a SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contexts (
		pos           INTEGER NOT NULL,
		id            TEXT PRIMARY KEY,
		kind          TEXT NOT NULL,
		title         TEXT NOT NULL,
		content       TEXT NOT NULL,
		tags          TEXT,
		priority      INTEGER NOT NULL,
		access_count  INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		last_accessed TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contexts_pos ON contexts(pos);

	CREATE TABLE IF NOT EXISTS sessions (
		pos                INTEGER NOT NULL,
		id                 TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		session_type       TEXT NOT NULL,
		messages           TEXT,
		linked_context_ids TEXT,
		tags               TEXT,
		is_active          INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		last_activity      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_pos ON sessions(pos);

	CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored snapshot in one transaction.
func (s *SQLite) Save(state model.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM contexts`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return err
	}

	for i, c := range state.Contexts {
		_, err := tx.Exec(
			`INSERT INTO contexts (pos, id, kind, title, content, tags, priority, access_count, created_at, updated_at, last_accessed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, string(c.Kind), c.Title, encodeJSON(c.Content), encodeJSON(c.Tags),
			c.Priority, c.AccessCount,
			encodeTime(c.CreatedAt), encodeTime(c.UpdatedAt), encodeTime(c.LastAccessed))
		if err != nil {
			return fmt.Errorf("insert context: %w", err)
		}
	}

	for i, sess := range state.Sessions {
		active := 0
		if sess.IsActive {
			active = 1
		}
		_, err := tx.Exec(
			`INSERT INTO sessions (pos, id, title, session_type, messages, linked_context_ids, tags, is_active, created_at, updated_at, last_activity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, sess.ID, sess.Title, string(sess.SessionType),
			encodeJSON(sess.Messages), encodeJSON(sess.LinkedContextIDs), encodeJSON(sess.Tags),
			active, encodeTime(sess.CreatedAt), encodeTime(sess.UpdatedAt), encodeTime(sess.LastActivity))
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}

	meta := map[string]string{
		"active_session_id": state.ActiveSessionID,
		"max_contexts":      strconv.Itoa(state.MaxContexts),
		"max_sessions":      strconv.Itoa(state.MaxSessions),
	}
	for k, v := range meta {
		if _, err := tx.Exec(
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return fmt.Errorf("save meta: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the stored snapshot. An empty meta table means nothing has
// been saved yet.
func (s *SQLite) Load() (model.State, bool, error) {
	var state model.State

	var maxContexts string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'max_contexts'`).Scan(&maxContexts)
	if err == sql.ErrNoRows {
		return state, false, nil
	}
	if err != nil {
		return state, false, err
	}
	state.MaxContexts, _ = strconv.Atoi(maxContexts)

	var v string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'max_sessions'`).Scan(&v); err == nil {
		state.MaxSessions, _ = strconv.Atoi(v)
	}
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'active_session_id'`).Scan(&v); err == nil {
		state.ActiveSessionID = v
	}

	rows, err := s.db.Query(
		`SELECT id, kind, title, content, tags, priority, access_count, created_at, updated_at, last_accessed
		 FROM contexts ORDER BY pos`)
	if err != nil {
		return state, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var c model.MemoryContext
		var kind, content, tags, createdAt, updatedAt, lastAccessed string
		if err := rows.Scan(&c.ID, &kind, &c.Title, &content, &tags,
			&c.Priority, &c.AccessCount, &createdAt, &updatedAt, &lastAccessed); err != nil {
			return state, false, err
		}
		c.Kind = model.Kind(kind)
		decodeJSON(content, &c.Content)
		decodeJSON(tags, &c.Tags)
		c.CreatedAt = decodeTime(createdAt)
		c.UpdatedAt = decodeTime(updatedAt)
		c.LastAccessed = decodeTime(lastAccessed)
		state.Contexts = append(state.Contexts, c)
	}
	if err := rows.Err(); err != nil {
		return state, false, err
	}

	srows, err := s.db.Query(
		`SELECT id, title, session_type, messages, linked_context_ids, tags, is_active, created_at, updated_at, last_activity
		 FROM sessions ORDER BY pos`)
	if err != nil {
		return state, false, err
	}
	defer srows.Close()
	for srows.Next() {
		var sess model.ChatSession
		var sessionType, messages, linked, tags, createdAt, updatedAt, lastActivity string
		var active int
		if err := srows.Scan(&sess.ID, &sess.Title, &sessionType, &messages, &linked, &tags,
			&active, &createdAt, &updatedAt, &lastActivity); err != nil {
			return state, false, err
		}
		sess.SessionType = model.SessionType(sessionType)
		decodeJSON(messages, &sess.Messages)
		decodeJSON(linked, &sess.LinkedContextIDs)
		decodeJSON(tags, &sess.Tags)
		sess.IsActive = active != 0
		sess.CreatedAt = decodeTime(createdAt)
		sess.UpdatedAt = decodeTime(updatedAt)
		sess.LastActivity = decodeTime(lastActivity)
		state.Sessions = append(state.Sessions, sess)
	}
	if err := srows.Err(); err != nil {
		return state, false, err
	}

	return state, true, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
