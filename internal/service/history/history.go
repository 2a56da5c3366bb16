package history

import (
	"context"
	"strings"
	"sync"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/pkg/log"
)

// History is the console input history with an up/down cursor. Entries are
// mirrored to repo when one is set.
type History struct {
	mu      sync.Mutex
	repo    core.HistoryRepository
	limit   int
	entries []string
	cursor  int
}

func New(repo core.HistoryRepository, limit int) *History {
	return &History{
		repo:  repo,
		limit: limit,
	}
}

// Load replaces the in-memory entries with the persisted ones.
func (h *History) Load(ctx context.Context) error {
	if h.repo == nil || h.limit <= 0 {
		return nil
	}

	entries, err := h.repo.GetEntries(ctx, h.limit)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = entries
	h.cursor = len(h.entries)
	return nil
}

// Add records a submitted line. Blank lines and repeats of the previous line
// are skipped. The cursor is reset past the newest entry.
func (h *History) Add(ctx context.Context, line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cursor = len(h.entries)
	if strings.TrimSpace(line) == "" || h.limit <= 0 {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}

	h.entries = append(h.entries, line)
	trimmed := false
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
		trimmed = true
	}
	h.cursor = len(h.entries)

	if h.repo == nil {
		return
	}
	if err := h.repo.AddEntry(ctx, line); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to persist history entry")
		return
	}
	if trimmed {
		if err := h.repo.Trim(ctx, h.limit); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to trim history")
		}
	}
}

// Prev moves the cursor to the older entry. ok is false when there is none.
func (h *History) Prev() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor to the newer entry. Stepping past the newest entry
// yields an empty line.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.entries = nil
	h.cursor = 0
	h.mu.Unlock()

	if h.repo == nil {
		return nil
	}
	return h.repo.Clear(ctx)
}
