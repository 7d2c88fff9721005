// internal/game/session.go
//
// Session controller for a single word-search game.
// Responsibilities:
//   - Create sessions by generating a grid from a seed.
//   - Toggle cells in and out of the player's selection.
//   - Check a selection against the vocabulary and clear it afterwards.
//   - Reset: regenerate the grid and clear found words + selection.
//   - Track state transitions: playing → complete.
//
// Notes:
//   - Each session owns its own grid and FoundWords; nothing is shared.
//   - Seeds feed a PCG source so a (vocabulary, size, seed) triple always
//     reproduces the same grid. Daily games rely on this.

package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

// ErrOutOfRange is returned by Toggle for a cell outside the grid.
var ErrOutOfRange = errors.New("cell out of range")

// Options tune grid generation for a session.
type Options struct {
	Mode          Mode
	Owner         string // player the session belongs to; empty = unowned
	AttemptFactor int    // per-word placement budget factor; 0 = puzzle default
}

// New generates a session for vocab on a size×size grid from seed.
// Returns a *puzzle.ConfigurationError when the vocabulary cannot be placed.
func New(vocab []string, size int, seed uint64, opts Options) (*Session, error) {
	if opts.Mode == "" {
		opts.Mode = ModeFree
	}
	s := &Session{
		ID:         uuid.NewString(),
		Mode:       opts.Mode,
		Owner:      opts.Owner,
		Vocabulary: append([]string{}, vocab...),
		Size:       size,
	}
	if err := s.generate(seed, opts.AttemptFactor); err != nil {
		return nil, err
	}
	return s, nil
}

// generate replaces the grid and clears all progress.
// On error the session is left unchanged.
func (s *Session) generate(seed uint64, attemptFactor int) error {
	grid, st, err := puzzle.NewGenerator(attemptFactor).Generate(s.Vocabulary, s.Size, Rand(seed))
	if err != nil {
		return err
	}
	s.Seed = seed
	s.Grid = grid
	s.Stats = st
	s.Found = puzzle.NewFoundWords()
	s.Selection = nil
	s.Checks = 0
	s.StartedAt = time.Now().UTC()
	s.FinishedAt = time.Time{}
	return nil
}

// Reset regenerates the grid from seed and clears found words and selection.
func (s *Session) Reset(seed uint64, attemptFactor int) error {
	return s.generate(seed, attemptFactor)
}

// Toggle adds c to the selection, or removes it if already selected.
// Adjacency is not enforced.
func (s *Session) Toggle(c puzzle.Coord) ([]puzzle.Coord, error) {
	if !s.Grid.InBounds(c) {
		return s.Selection, ErrOutOfRange
	}
	if i := slices.Index(s.Selection, c); i >= 0 {
		s.Selection = slices.Delete(s.Selection, i, i+1)
	} else {
		s.Selection = append(s.Selection, c)
	}
	return s.Selection, nil
}

// Check verifies cells, or the current selection when cells is empty.
// The selection is cleared whatever the outcome.
func (s *Session) Check(cells []puzzle.Coord) puzzle.VerifyResult {
	if len(cells) == 0 {
		cells = s.Selection
	}
	res := puzzle.Verify(s.Grid, cells, s.Vocabulary, s.Found)
	s.Selection = nil
	s.Checks++
	if res.Outcome == puzzle.Matched && s.Complete() && s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now().UTC()
	}
	return res
}

// OwnedBy reports whether any of ids is the session's owner.
// An unowned session belongs to everyone.
func (s *Session) OwnedBy(ids ...string) bool {
	if s.Owner == "" {
		return true
	}
	for _, id := range ids {
		if id != "" && id == s.Owner {
			return true
		}
	}
	return false
}

// Complete reports whether every vocabulary word has been found.
func (s *Session) Complete() bool {
	return s.Found.Complete(s.Vocabulary)
}

// State reports a coarse string representation of the session.
func (s *Session) State() string {
	if s.Complete() {
		return "complete"
	}
	return "playing"
}

// Elapsed is the time from grid generation to completion (or now).
func (s *Session) Elapsed() time.Duration {
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return time.Since(s.StartedAt)
}

// Snapshot returns the client-facing view of s.
func (s *Session) Snapshot() Snapshot {
	sel := slices.Clone(s.Selection)
	if sel == nil {
		sel = []puzzle.Coord{}
	}
	return Snapshot{
		GameID:    s.ID,
		Mode:      s.Mode,
		Size:      s.Size,
		Grid:      s.Grid,
		Words:     s.Vocabulary,
		Found:     s.Found.Words(),
		Selection: sel,
		State:     s.State(),
	}
}

// Rand returns a deterministic source for seed.
func Rand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a seed from crypto/rand.
func RandomSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.BigEndian.Uint64(b[:])
}
