package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const activityFileName = "activity.db"

// Action names a mutation recorded in the activity log.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionCompleted Action = "completed"
	ActionReopened  Action = "reopened"
	ActionDeleted   Action = "deleted"
	ActionImported  Action = "imported"
)

// Event is one recorded mutation.
type Event struct {
	ID      int64
	At      time.Time
	Project string
	TaskID  uint64
	Action  Action
	Title   string
}

// ActivityLog is an append-only record of mutations across all projects in
// a data directory. Writers treat it as best effort; a failed append never
// blocks the mutation it describes.
type ActivityLog struct {
	Dir string
}

func (l ActivityLog) path() string {
	return filepath.Join(l.Dir, activityFileName)
}

func (l ActivityLog) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", l.path())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when two commands overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at_utc INTEGER NOT NULL,
		project TEXT NOT NULL,
		task_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		title TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Append records one mutation.
func (l ActivityLog) Append(ctx context.Context, project string, taskID uint64, action Action, title string) error {
	db, err := l.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx,
		`INSERT INTO events (at_utc, project, task_id, action, title) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Unix(), project, taskID, string(action), title)
	return err
}

// Recent returns the newest events, most recent first. limit <= 0 means
// all.
func (l ActivityLog) Recent(ctx context.Context, limit int) ([]Event, error) {
	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, at_utc, project, task_id, action, title FROM events ORDER BY id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			ev     Event
			atUnix int64
			action string
		)
		if err := rows.Scan(&ev.ID, &atUnix, &ev.Project, &ev.TaskID, &action, &ev.Title); err != nil {
			return nil, err
		}
		ev.At = time.Unix(atUnix, 0).UTC()
		ev.Action = Action(action)
		out = append(out, ev)
	}
	return out, rows.Err()
}
