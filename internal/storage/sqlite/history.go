package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/debugtool/pkg/log"
)

// History stores console input lines, oldest first.
type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

func (h *History) AddEntry(ctx context.Context, line string) error {
	err := withRetry(ctx, func() error {
		_, err := h.db.ExecContext(ctx, `INSERT INTO history (line) VALUES (?)`, line)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// GetEntries returns the last limit lines in chronological order.
func (h *History) GetEntries(ctx context.Context, limit int) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT line FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(lines)).Msg("loaded history entries")
	return lines, nil
}

// Trim drops everything except the newest keep entries.
func (h *History) Trim(ctx context.Context, keep int) error {
	query := `DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`
	err := withRetry(ctx, func() error {
		_, err := h.db.ExecContext(ctx, query, keep)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

func (h *History) Clear(ctx context.Context) error {
	err := withRetry(ctx, func() error {
		_, err := h.db.ExecContext(ctx, `DELETE FROM history`)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
