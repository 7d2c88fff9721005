package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.New([]string{"SOL", "LUNA"}, 6, 1, game.Options{})
	require.NoError(t, err)
	return s
}

// exists reports whether id is in st.
func exists(t *testing.T, st Store, id string) bool {
	t.Helper()
	err := st.Update(context.Background(), id, func(*game.Session) error { return nil })
	if errors.Is(err, ErrNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestMemorySaveUpdateDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	assert.False(t, exists(t, st, s.ID))

	require.NoError(t, st.Save(ctx, s))
	var got *game.Session
	require.NoError(t, st.Update(ctx, s.ID, func(g *game.Session) error { got = g; return nil }))
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	assert.False(t, exists(t, st, s.ID))
	assert.NoError(t, st.Delete(ctx, s.ID))
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	require.NoError(t, st.Save(ctx, s))

	boom := errors.New("boom")
	assert.ErrorIs(t, st.Update(ctx, s.ID, func(*game.Session) error { return boom }), boom)
	assert.ErrorIs(t, st.Update(ctx, "missing", func(*game.Session) error { return nil }), ErrNotFound)

	// concurrent toggles of distinct cells all land
	var wg sync.WaitGroup
	for c := 0; c < 6; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			_ = st.Update(ctx, s.ID, func(s *game.Session) error {
				_, err := s.Toggle(puzzle.Coord{Row: 0, Col: c})
				return err
			})
		}(c)
	}
	wg.Wait()
	assert.Len(t, s.Selection, 6)
}

func TestMemoryExpire(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	st := &memory{sessions: make(map[string]*entry), now: func() time.Time { return clock }}

	stale, fresh, touched := newSession(t), newSession(t), newSession(t)
	require.NoError(t, st.Save(ctx, stale))
	require.NoError(t, st.Save(ctx, touched))

	clock = clock.Add(90 * time.Minute)
	require.NoError(t, st.Save(ctx, fresh))
	require.NoError(t, st.Update(ctx, touched.ID, func(*game.Session) error { return nil }))

	clock = clock.Add(time.Minute)
	n, err := st.Expire(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, exists(t, st, stale.ID))
	assert.True(t, exists(t, st, fresh.ID))
	assert.True(t, exists(t, st, touched.ID), "updates refresh the idle clock")

	n, err = st.Expire(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}
