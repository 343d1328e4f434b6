package normalizer

import (
	"fmt"

	"github.com/kljensen/snowball"
)

// Stemmer reduces a lowercase word to its root form.
type Stemmer interface {
	Stem(word string) string
}

// IdentityStemmer returns words unchanged.
type IdentityStemmer struct{}

func (IdentityStemmer) Stem(word string) string { return word }

// SnowballStemmer stems with the Snowball algorithm for one language.
type SnowballStemmer struct {
	language string
}

// NewSnowballStemmer fails if snowball has no stemmer for language.
func NewSnowballStemmer(language string) (*SnowballStemmer, error) {
	if _, err := snowball.Stem("probe", language, true); err != nil {
		return nil, fmt.Errorf("snowball stemmer %q: %w", language, err)
	}
	return &SnowballStemmer{language: language}, nil
}

func (s *SnowballStemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil {
		return word
	}
	return stemmed
}
