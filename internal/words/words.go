// internal/words/words.go
//
// Provides vocabulary management for the word-search engine.
//
// Responsibilities:
//   - Load the target word list from a file (WORDS_VOCAB_FILE) or fall back
//     to the embedded astronomy default.
//   - Normalize entries: trim, uppercase, drop blanks/comments/duplicates.
//   - Reject entries that are not plain A–Z words.
//
// Constraints:
//   • Order is preserved; it decides which word a selection reports when
//     several could match.
//   • Length against the grid size is checked by the puzzle package.

package words

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordsearch/apps/go-server/assets"
)

var (
	defaultOnce  sync.Once
	defaultVocab []string
	defaultErr   error
)

// Default returns the embedded vocabulary (loaded once).
func Default() ([]string, error) {
	defaultOnce.Do(func() {
		lines, err := assets.VocabularyList()
		if err != nil {
			defaultErr = fmt.Errorf("words: read embedded vocabulary: %w", err)
			return
		}
		defaultVocab, defaultErr = Normalize(lines)
	})
	return append([]string{}, defaultVocab...), defaultErr
}

// Load reads a vocabulary from path, or returns Default when path is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	vocab, err := Normalize(lines)
	if err != nil {
		return nil, fmt.Errorf("words: %s: %w", path, err)
	}
	return vocab, nil
}

// Normalize uppercases and de-duplicates lines, keeping first occurrences.
// Returns an error for a non-alphabetic entry or an empty result.
func Normalize(lines []string) ([]string, error) {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.ToUpper(strings.TrimSpace(line))
		if w == "" {
			continue
		}
		if !isAlpha(w) {
			return nil, fmt.Errorf("invalid word %q: letters A-Z only", line)
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}
	return out, nil
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

