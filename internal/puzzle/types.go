// internal/puzzle/types.go
//
// Core type definitions for the word-search engine.
// Defines:
//   - Grid: an N×N matrix of uppercase letters.
//   - Coord / Orientation / Placement: cell addressing and word layout.
//   - Outcome / VerifyResult: result of checking a player's selection.

package puzzle

import (
	"encoding/json"
	"strings"
)

// Orientation is one of the three directions a word may be written in.
type Orientation int

const (
	Horizontal Orientation = iota // left to right
	Vertical                      // top to bottom
	Diagonal                      // top-left to bottom-right
)

// orientations lists every Orientation in sampling order.
var orientations = [...]Orientation{Horizontal, Vertical, Diagonal}

// String returns a lowercase label for logs and JSON.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	}
	return "unknown"
}

// MarshalJSON encodes the orientation as its label.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// step returns the (row, col) delta between consecutive letters.
func (o Orientation) step() (dr, dc int) {
	switch o {
	case Vertical:
		return 1, 0
	case Diagonal:
		return 1, 1
	default:
		return 0, 1
	}
}

// Coord identifies a cell on the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Placement is a candidate start cell and orientation for a word.
type Placement struct {
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Orientation Orientation `json:"orientation"`
}

// Cells returns the n cells covered by a word of length n at p.
func (p Placement) Cells(n int) []Coord {
	dr, dc := p.Orientation.step()
	out := make([]Coord, n)
	for i := 0; i < n; i++ {
		out[i] = Coord{Row: p.Row + i*dr, Col: p.Col + i*dc}
	}
	return out
}

// empty marks a cell that has not been written yet. Never visible
// outside the generator.
const empty byte = 0

// Grid is a square matrix of uppercase ASCII letters.
// Grids returned by Generate are fully populated and never mutated.
type Grid [][]byte

// newGrid allocates an n×n grid of empty cells.
func newGrid(n int) Grid {
	g := make(Grid, n)
	for r := range g {
		g[r] = make([]byte, n)
	}
	return g
}

// Size is the grid dimension N.
func (g Grid) Size() int { return len(g) }

// InBounds reports whether c addresses a cell of g.
func (g Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < len(g) && c.Col >= 0 && c.Col < len(g)
}

// At returns the letter at c; ok is false when c is out of range.
func (g Grid) At(c Coord) (letter byte, ok bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	return g[c.Row][c.Col], true
}

// Rows returns one string per grid row.
func (g Grid) Rows() []string {
	out := make([]string, len(g))
	for r, row := range g {
		out[r] = string(row)
	}
	return out
}

// String renders the grid as space-separated letters, one row per line.
func (g Grid) String() string {
	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, ch := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// MarshalJSON encodes the grid as an array of row strings.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// UnmarshalJSON decodes an array of row strings.
func (g *Grid) UnmarshalJSON(b []byte) error {
	var rows []string
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	out := make(Grid, len(rows))
	for r, s := range rows {
		out[r] = []byte(s)
	}
	*g = out
	return nil
}

// Outcome is the result class of a verification.
type Outcome string

const (
	Matched      Outcome = "matched"
	AlreadyFound Outcome = "already_found"
	NoMatch      Outcome = "no_match"
)

// VerifyResult is returned by Verify. Word is empty for NoMatch.
type VerifyResult struct {
	Outcome Outcome `json:"result"`
	Word    string  `json:"word,omitempty"`
}
