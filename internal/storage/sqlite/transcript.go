package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/debugtool/internal/core"
)

// Transcript stores the ordered console events of each session.
type Transcript struct {
	db *sql.DB
}

func NewTranscript(db *sql.DB) *Transcript {
	return &Transcript{db: db}
}

func (t *Transcript) AddEvent(ctx context.Context, sessionID string, seq int, ev core.Event) error {
	query := `INSERT INTO transcript (session_id, seq, kind, text) VALUES (?, ?, ?, ?)`
	err := withRetry(ctx, func() error {
		_, err := t.db.ExecContext(ctx, query, sessionID, seq, ev.Kind.String(), ev.Text)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to insert transcript event: %w", err)
	}
	return nil
}

func (t *Transcript) GetEvents(ctx context.Context, sessionID string) ([]core.StoredEvent, error) {
	query := `SELECT id, session_id, seq, kind, text, created_at FROM transcript WHERE session_id = ? ORDER BY seq ASC`

	rows, err := t.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var events []core.StoredEvent
	for rows.Next() {
		var ev core.StoredEvent
		var kind string
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Seq, &kind, &ev.Text, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript event: %w", err)
		}

		k, ok := core.ParseEventKind(kind)
		if !ok {
			return nil, fmt.Errorf("unknown event kind %q in transcript", kind)
		}
		ev.Kind = k
		events = append(events, ev)
	}

	return events, rows.Err()
}

// LastSession returns the most recently written session id, or "" when the
// transcript is empty.
func (t *Transcript) LastSession(ctx context.Context) (string, error) {
	var id string
	err := t.db.QueryRowContext(ctx, `SELECT session_id FROM transcript ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last session: %w", err)
	}
	return id, nil
}
