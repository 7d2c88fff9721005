// internal/puzzle/generator.go
//
// Grid generation for the word-search engine.
// Responsibilities:
//   - Embed every vocabulary word along a random horizontal, vertical or
//     diagonal (down-right) line without contradicting earlier words.
//   - Fill every remaining cell with a random letter A–Z.
//
// Notes:
//   - Words may cross when the shared cell holds the same letter.
//   - Randomness is supplied by the caller; a seeded source gives the same
//     grid for the same vocabulary and size.
//   - Attempts per word are bounded by AttemptFactor × N × N so an
//     unplaceable word becomes a ConfigurationError instead of a hang.

package puzzle

import (
	"math/rand/v2"
	"time"
)

// DefaultAttemptFactor scales the per-word attempt budget with grid area.
const DefaultAttemptFactor = 16

// Stats captures the cost of one generation.
type Stats struct {
	Attempts int           // placement checks across all words
	Duration time.Duration // wall time of Generate
}

// Generator builds grids. The zero value uses DefaultAttemptFactor.
type Generator struct {
	AttemptFactor int
}

// NewGenerator returns a Generator with the given attempt factor.
// Values ≤ 0 select DefaultAttemptFactor.
func NewGenerator(attemptFactor int) *Generator {
	return &Generator{AttemptFactor: attemptFactor}
}

// Generate builds a grid with the default Generator.
func Generate(vocab []string, size int, rng *rand.Rand) (Grid, error) {
	g, _, err := (&Generator{}).Generate(vocab, size, rng)
	return g, err
}

// Generate places every word of vocab on a size×size grid and fills the rest.
// On error no grid is returned.
func (gen *Generator) Generate(vocab []string, size int, rng *rand.Rand) (Grid, Stats, error) {
	start := time.Now()
	if err := CheckVocabulary(vocab, size); err != nil {
		return nil, Stats{}, err
	}

	limit := gen.maxAttempts(size)
	grid := newGrid(size)
	attempts := 0

	for _, word := range vocab {
		placed := false
		for n := 0; n < limit; n++ {
			attempts++
			p := Placement{
				Orientation: orientations[rng.IntN(len(orientations))],
				Row:         rng.IntN(size),
				Col:         rng.IntN(size),
			}
			if canPlace(grid, word, p) {
				place(grid, word, p)
				placed = true
				break
			}
		}
		if !placed {
			return nil, Stats{Attempts: attempts, Duration: time.Since(start)}, &ConfigurationError{
				Word: word, Size: size, Reason: "no free placement found within attempt budget",
			}
		}
	}

	fill(grid, rng)
	return grid, Stats{Attempts: attempts, Duration: time.Since(start)}, nil
}

func (gen *Generator) maxAttempts(size int) int {
	f := gen.AttemptFactor
	if f <= 0 {
		f = DefaultAttemptFactor
	}
	return f * size * size
}

// canPlace reports whether word fits at p: the line stays on the grid and
// every covered cell is empty or already holds the matching letter.
func canPlace(g Grid, word string, p Placement) bool {
	n := len(g)
	dr, dc := p.Orientation.step()
	// last cell must be on the grid
	if p.Row+dr*(len(word)-1) >= n || p.Col+dc*(len(word)-1) >= n {
		return false
	}
	for i := 0; i < len(word); i++ {
		cell := g[p.Row+i*dr][p.Col+i*dc]
		if cell != empty && cell != word[i] {
			return false
		}
	}
	return true
}

// place writes word into g at p. Caller must have checked canPlace.
func place(g Grid, word string, p Placement) {
	dr, dc := p.Orientation.step()
	for i := 0; i < len(word); i++ {
		g[p.Row+i*dr][p.Col+i*dc] = word[i]
	}
}

// fill assigns a random uppercase letter to every empty cell, row-major.
func fill(g Grid, rng *rand.Rand) {
	for r := range g {
		for c := range g[r] {
			if g[r][c] == empty {
				g[r][c] = byte('A' + rng.IntN(26))
			}
		}
	}
}

// Locate finds a straight run spelling word in any of the three
// orientations. It returns the first match in row-major start order.
func Locate(g Grid, word string) (Placement, []Coord, bool) {
	if word == "" {
		return Placement{}, nil, false
	}
	for r := range g {
		for c := range g[r] {
			if g[r][c] != word[0] {
				continue
			}
			for _, o := range orientations {
				p := Placement{Row: r, Col: c, Orientation: o}
				if spells(g, word, p) {
					return p, p.Cells(len(word)), true
				}
			}
		}
	}
	return Placement{}, nil, false
}

// spells reports whether the run at p reads exactly word.
func spells(g Grid, word string, p Placement) bool {
	n := len(g)
	dr, dc := p.Orientation.step()
	if p.Row+dr*(len(word)-1) >= n || p.Col+dc*(len(word)-1) >= n {
		return false
	}
	for i := 0; i < len(word); i++ {
		if g[p.Row+i*dr][p.Col+i*dc] != word[i] {
			return false
		}
	}
	return true
}
