// internal/puzzle/verifier.go
//
// Selection verification for the word-search engine.
// A selection is an ordered list of cells; its letters are read in order and
// compared, forwards and reversed, against the vocabulary.
//
// Notes:
//   - Cells need not be adjacent or colinear. Any selection whose letters
//     spell a vocabulary word counts.
//   - Verification never fails. Out-of-range cells and empty selections
//     are reported as NoMatch.

package puzzle

// FoundWords is the ordered set of words a player has matched.
// The zero value is ready to use.
type FoundWords struct {
	order []string
	set   map[string]struct{}
}

// NewFoundWords returns a set pre-populated with words (duplicates ignored).
func NewFoundWords(words ...string) *FoundWords {
	f := &FoundWords{}
	for _, w := range words {
		f.Add(w)
	}
	return f
}

// Add inserts w and reports whether it was new.
func (f *FoundWords) Add(w string) bool {
	if f.set == nil {
		f.set = make(map[string]struct{})
	}
	if _, ok := f.set[w]; ok {
		return false
	}
	f.set[w] = struct{}{}
	f.order = append(f.order, w)
	return true
}

// Has reports whether w has been found.
func (f *FoundWords) Has(w string) bool {
	_, ok := f.set[w]
	return ok
}

// Len is the number of distinct found words.
func (f *FoundWords) Len() int { return len(f.order) }

// Words returns a copy of the found words in discovery order.
func (f *FoundWords) Words() []string {
	return append([]string{}, f.order...)
}

// Complete reports whether every word of vocab has been found.
func (f *FoundWords) Complete(vocab []string) bool {
	return len(vocab) > 0 && f.Len() == len(vocab)
}

// Verify reads the letters under selection and looks up the resulting
// string, or its reverse, in vocab. A newly matched word is added to found.
func Verify(grid Grid, selection []Coord, vocab []string, found *FoundWords) VerifyResult {
	if len(selection) == 0 {
		return VerifyResult{Outcome: NoMatch}
	}
	s := make([]byte, len(selection))
	for i, c := range selection {
		ch, ok := grid.At(c)
		if !ok {
			return VerifyResult{Outcome: NoMatch}
		}
		s[i] = ch
	}
	forward := string(s)
	backward := reverse(s)

	for _, w := range vocab {
		if w != forward && w != backward {
			continue
		}
		if found.Has(w) {
			return VerifyResult{Outcome: AlreadyFound, Word: w}
		}
		found.Add(w)
		return VerifyResult{Outcome: Matched, Word: w}
	}
	return VerifyResult{Outcome: NoMatch}
}

// reverse returns the bytes of s in reverse order as a string.
func reverse(s []byte) string {
	out := make([]byte, len(s))
	for i, ch := range s {
		out[len(s)-1-i] = ch
	}
	return string(out)
}
