package exportlog

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const TypeQuizExported = "QuizExported"

var ErrNotFound = errors.New("export not found")

type Event struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	SizeBytes     int64  `json:"size_bytes"`
	BlobKey       string `json:"blob_key"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// Append stores e; CreatedAt is set to now when zero.
func (r *Repo) Append(ctx context.Context, e Event) (Event, error) {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO export_log (id, typ, title, question_count, size_bytes, blob_key, created_by, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.Type, e.Title, e.QuestionCount, e.SizeBytes, e.BlobKey, e.CreatedBy, e.CreatedAt)
	return e, err
}

func (r *Repo) Get(ctx context.Context, id string) (Event, error) {
	var e Event
	err := r.db.QueryRowContext(ctx,
		`SELECT id, typ, title, question_count, size_bytes, blob_key, created_by, created_at
		 FROM export_log WHERE id=$1`, id,
	).Scan(&e.ID, &e.Type, &e.Title, &e.QuestionCount, &e.SizeBytes, &e.BlobKey, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	return e, err
}

// List returns the most recent events first.
func (r *Repo) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, typ, title, question_count, size_bytes, blob_key, created_by, created_at
		 FROM export_log ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Type, &e.Title, &e.QuestionCount, &e.SizeBytes, &e.BlobKey, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
