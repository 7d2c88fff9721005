package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var vocab = []string{"JUPITER", "MARTE", "VENUS", "TIERRA", "LUNA", "SOL", "ESTRELLA", "GALAXIA"}

func newSession(t *testing.T, seed uint64) *Session {
	t.Helper()
	s, err := New(vocab, 12, seed, Options{})
	require.NoError(t, err)
	return s
}

func cellsOf(t *testing.T, s *Session, word string) []puzzle.Coord {
	t.Helper()
	_, cells, ok := puzzle.Locate(s.Grid, word)
	require.True(t, ok, "%s not on grid", word)
	return cells
}

func TestNewSession(t *testing.T) {
	s := newSession(t, 99)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, ModeFree, s.Mode)
	assert.Equal(t, uint64(99), s.Seed)
	assert.Equal(t, "playing", s.State())
	assert.Zero(t, s.Found.Len())
	assert.Positive(t, s.Stats.Attempts)

	again := newSession(t, 99)
	assert.Equal(t, s.Grid.Rows(), again.Grid.Rows(), "same seed, same grid")
	assert.NotEqual(t, s.ID, again.ID)
}

func TestNewSessionConfigurationError(t *testing.T) {
	s, err := New([]string{"ASTRONOMIA"}, 5, 1, Options{})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, puzzle.ErrConfiguration)
}

func TestToggle(t *testing.T) {
	s := newSession(t, 1)

	sel, err := s.Toggle(puzzle.Coord{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, []puzzle.Coord{{Row: 0, Col: 0}}, sel)

	sel, err = s.Toggle(puzzle.Coord{Row: 5, Col: 7})
	require.NoError(t, err)
	assert.Len(t, sel, 2)

	sel, err = s.Toggle(puzzle.Coord{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, []puzzle.Coord{{Row: 5, Col: 7}}, sel)

	_, err = s.Toggle(puzzle.Coord{Row: 12, Col: 0})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Len(t, s.Selection, 1)
}

func TestCheckFromSelectionClearsIt(t *testing.T) {
	s := newSession(t, 2)
	for _, c := range cellsOf(t, s, "SOL") {
		_, err := s.Toggle(c)
		require.NoError(t, err)
	}
	res := s.Check(nil)
	assert.Equal(t, puzzle.VerifyResult{Outcome: puzzle.Matched, Word: "SOL"}, res)
	assert.Empty(t, s.Selection)

	// failed check also clears
	_, _ = s.Toggle(puzzle.Coord{Row: 0, Col: 0})
	assert.Equal(t, puzzle.NoMatch, s.Check(nil).Outcome)
	assert.Empty(t, s.Selection)
	assert.Equal(t, 2, s.Checks)
}

func TestCheckAlreadyFound(t *testing.T) {
	s := newSession(t, 3)
	cells := cellsOf(t, s, "LUNA")
	assert.Equal(t, puzzle.Matched, s.Check(cells).Outcome)
	assert.Equal(t, puzzle.VerifyResult{Outcome: puzzle.AlreadyFound, Word: "LUNA"}, s.Check(cells))
	assert.Equal(t, 1, s.Found.Len())
}

func TestCompletion(t *testing.T) {
	s := newSession(t, 4)
	for i, w := range vocab {
		assert.False(t, s.Complete())
		assert.True(t, s.FinishedAt.IsZero())
		res := s.Check(cellsOf(t, s, w))
		require.Equal(t, puzzle.Matched, res.Outcome, "word %d %s", i, w)
	}
	assert.True(t, s.Complete())
	assert.Equal(t, "complete", s.State())
	assert.False(t, s.FinishedAt.IsZero())
	assert.GreaterOrEqual(t, s.Elapsed(), s.FinishedAt.Sub(s.StartedAt))
}

func TestReset(t *testing.T) {
	s := newSession(t, 5)
	id := s.ID
	s.Check(cellsOf(t, s, "VENUS"))
	_, _ = s.Toggle(puzzle.Coord{Row: 1, Col: 1})

	require.NoError(t, s.Reset(6, 0))
	assert.Equal(t, id, s.ID)
	assert.Equal(t, uint64(6), s.Seed)
	assert.Zero(t, s.Found.Len())
	assert.Empty(t, s.Selection)
	assert.Zero(t, s.Checks)
}

func TestSnapshotJSON(t *testing.T) {
	s := newSession(t, 8)
	b, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, s.ID, out["gameId"])
	assert.Equal(t, "free", out["mode"])
	assert.Len(t, out["grid"], 12)
	assert.Len(t, out["words"], len(vocab))
	assert.Equal(t, []any{}, out["found"])
	assert.Equal(t, []any{}, out["selection"])
	assert.Equal(t, "playing", out["state"])
}

func TestOwnedBy(t *testing.T) {
	s, err := New(vocab, 12, 5, Options{Owner: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Owner)
	assert.True(t, s.OwnedBy("alice"))
	assert.True(t, s.OwnedBy("", "alice"), "any matching id is enough")
	assert.False(t, s.OwnedBy("bob"))
	assert.False(t, s.OwnedBy(""))
	assert.False(t, s.OwnedBy())

	open := newSession(t, 5)
	assert.True(t, open.OwnedBy("bob"), "unowned sessions belong to everyone")
}
