package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	lines   []string
	trimmed int
	failAdd bool
}

func (m *memRepo) AddEntry(ctx context.Context, line string) error {
	if m.failAdd {
		return errors.New("disk full")
	}
	m.lines = append(m.lines, line)
	return nil
}

func (m *memRepo) GetEntries(ctx context.Context, limit int) ([]string, error) {
	if len(m.lines) <= limit {
		return append([]string(nil), m.lines...), nil
	}
	return append([]string(nil), m.lines[len(m.lines)-limit:]...), nil
}

func (m *memRepo) Trim(ctx context.Context, keep int) error {
	m.trimmed++
	if len(m.lines) > keep {
		m.lines = m.lines[len(m.lines)-keep:]
	}
	return nil
}

func (m *memRepo) Clear(ctx context.Context) error {
	m.lines = nil
	return nil
}

func TestHistory_Add(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	h := New(repo, 3)

	for _, line := range []string{"a", "", "  ", "b", "b", "a", "c", "d"} {
		h.Add(ctx, line)
	}

	assert.Equal(t, []string{"a", "c", "d"}, h.Entries())
	assert.Equal(t, []string{"a", "c", "d"}, repo.lines)
	assert.Equal(t, 2, repo.trimmed)
}

func TestHistory_Navigation(t *testing.T) {
	ctx := context.Background()
	h := New(nil, 10)

	_, ok := h.Prev()
	assert.False(t, ok, "empty history")

	h.Add(ctx, "first")
	h.Add(ctx, "second")

	line, ok := h.Prev()
	require.True(t, ok)
	assert.Equal(t, "second", line)

	line, ok = h.Prev()
	require.True(t, ok)
	assert.Equal(t, "first", line)

	_, ok = h.Prev()
	assert.False(t, ok, "no older entry")

	line, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "second", line)

	line, ok = h.Next()
	require.True(t, ok)
	assert.Empty(t, line, "past the newest entry")

	_, ok = h.Next()
	assert.False(t, ok)

	h.Prev()
	h.Add(ctx, "third")
	line, _ = h.Prev()
	assert.Equal(t, "third", line, "adding resets the cursor")
}

func TestHistory_LoadAndClear(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{lines: []string{"x", "y", "z"}}
	h := New(repo, 2)

	require.NoError(t, h.Load(ctx))
	assert.Equal(t, []string{"y", "z"}, h.Entries())

	line, ok := h.Prev()
	require.True(t, ok)
	assert.Equal(t, "z", line)

	require.NoError(t, h.Clear(ctx))
	assert.Empty(t, h.Entries())
	assert.Empty(t, repo.lines)
}

func TestHistory_PersistFailureKeepsMemory(t *testing.T) {
	h := New(&memRepo{failAdd: true}, 5)
	h.Add(context.Background(), "read_fpga")
	assert.Equal(t, []string{"read_fpga"}, h.Entries())
}

func TestHistory_ZeroLimit(t *testing.T) {
	repo := &memRepo{}
	h := New(repo, 0)
	h.Add(context.Background(), "read_fpga")
	assert.Empty(t, h.Entries())
	assert.Empty(t, repo.lines)
}
