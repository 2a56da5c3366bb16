package core

import (
	"context"
	"time"
)

type HistoryRepository interface {
	AddEntry(ctx context.Context, line string) error
	GetEntries(ctx context.Context, limit int) ([]string, error)
	Trim(ctx context.Context, keep int) error
	Clear(ctx context.Context) error
}

type TranscriptRepository interface {
	AddEvent(ctx context.Context, sessionID string, seq int, ev Event) error
	GetEvents(ctx context.Context, sessionID string) ([]StoredEvent, error)
	LastSession(ctx context.Context) (string, error)
}

type StoredEvent struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Kind      EventKind `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
