package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Word length bounds, in letters
const (
	MinWordLen = 6
	MaxWordLen = 12
)

// Word is the shared word of the day. Immutable once set, except for
// Image, which an explicit regeneration may replace.
type Word struct {
	Word      string `json:"word"`
	Image     []byte `json:"image,omitempty"`
	Date      string `json:"date"`
	AIMeaning string `json:"ai_meaning,omitempty"`
}

// HasImage reports whether an illustration was generated for the word.
func (w Word) HasImage() bool {
	return len(w.Image) > 0
}

// NormalizeWord strips everything but letters from s and title-cases the
// result. It fails with ErrValidation if the remainder is outside the
// 6-12 letter bounds.
func NormalizeWord(s string) (string, error) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	word := []rune(b.String())
	if len(word) < MinWordLen || len(word) > MaxWordLen {
		return "", fmt.Errorf("%w: word must be %d-%d letters, got %q", ErrValidation, MinWordLen, MaxWordLen, string(word))
	}

	word[0] = unicode.ToUpper(word[0])
	return string(word), nil
}
