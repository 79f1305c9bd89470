// Package journal keeps a local record of pull-request operations.
//
// The journal is a convenience, not a source of truth: the remote's ref
// namespace is the only authoritative state. Entries are written best-effort
// and a broken journal must never fail a git operation, so callers log
// journal errors as warnings and move on.
package journal

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Actions recorded in the journal.
const (
	ActionCreated   = "created"
	ActionAccepted  = "accepted"
	ActionAbandoned = "abandoned"
)

// Entry is one recorded operation.
type Entry struct {
	ID        string
	Action    string // created, accepted, abandoned
	Branch    string // full branch name, e.g. "hotfix/0"
	Topic     string
	Index     int
	Commit    string // abbreviated HEAD hash at record time, may be empty
	CreatedAt time.Time
}

// Journal is a sqlite-backed operation log.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS operations (
	id         TEXT PRIMARY KEY,
	action     TEXT NOT NULL,
	branch     TEXT NOT NULL,
	topic      TEXT NOT NULL,
	idx        INTEGER NOT NULL,
	commit_ref TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_operations_created_at ON operations(created_at);
`

// Open opens (creating if necessary) the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create journal directory for %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open journal database %s", path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize journal schema")
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends an entry. ID and CreatedAt are filled in when zero.
func (j *Journal) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := j.db.Exec(
		`INSERT INTO operations (id, action, branch, topic, idx, commit_ref, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action, e.Branch, e.Topic, e.Index, e.Commit, e.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.Wrap(err, "failed to record journal entry")
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(
		`SELECT id, action, branch, topic, idx, commit_ref, created_at
		 FROM operations
		 ORDER BY created_at DESC, id
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query journal")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Action, &e.Branch, &e.Topic, &e.Index, &e.Commit, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan journal entry")
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
