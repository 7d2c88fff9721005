package puzzle

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched (via errors.Is) by every ConfigurationError.
var ErrConfiguration = errors.New("puzzle: configuration error")

// ConfigurationError reports a vocabulary/size combination that cannot
// produce a grid. Word is empty when the problem is not tied to one word.
type ConfigurationError struct {
	Word   string
	Size   int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("puzzle: word %q on %dx%d grid: %s", e.Word, e.Size, e.Size, e.Reason)
	}
	return fmt.Sprintf("puzzle: %dx%d grid: %s", e.Size, e.Size, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// CheckVocabulary validates vocab against a grid of the given size without
// generating anything. Generate calls it first; servers call it at startup
// so a bad setup fails before gameplay.
func CheckVocabulary(vocab []string, size int) error {
	if size <= 0 {
		return &ConfigurationError{Size: size, Reason: "size must be positive"}
	}
	if len(vocab) == 0 {
		return &ConfigurationError{Size: size, Reason: "vocabulary is empty"}
	}
	for _, w := range vocab {
		switch {
		case w == "":
			return &ConfigurationError{Size: size, Reason: "vocabulary contains an empty word"}
		case !isUpperAlpha(w):
			return &ConfigurationError{Word: w, Size: size, Reason: "word must be uppercase A-Z"}
		case len(w) > size:
			return &ConfigurationError{Word: w, Size: size, Reason: "word is longer than the grid"}
		}
	}
	return nil
}

// isUpperAlpha reports whether s consists only of A–Z.
func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
