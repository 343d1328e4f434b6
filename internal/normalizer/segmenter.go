package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Segmenter splits text into ordered, trimmed, non-empty sentences.
type Segmenter interface {
	Split(text string) []string
}

// RegexSegmenter cuts text after a run of '.', '!' or '?' that is followed by
// whitespace or the end of the text, so decimals such as 3.14 stay whole.
// Abbreviations followed by a space ("Dr. Smith") still split; use the Punkt
// segmenter for English prose. Trailing text without a terminator becomes the
// last sentence.
type RegexSegmenter struct {
	splitter *regexp.Regexp
}

func NewRegexSegmenter() *RegexSegmenter {
	return &RegexSegmenter{splitter: regexp.MustCompile(`(?s)\S.*?[.!?]+(?:\s+|$)`)}
}

func (s *RegexSegmenter) Split(text string) []string {
	var out []string
	end := 0
	for _, loc := range s.splitter.FindAllStringIndex(text, -1) {
		out = appendTrimmed(out, text[loc[0]:loc[1]])
		end = loc[1]
	}
	return appendTrimmed(out, text[end:])
}

var (
	punktOnce sync.Once
	punkt     *sentences.DefaultSentenceTokenizer
	punktErr  error
)

// Init loads the English Punkt sentence model. It runs once per process;
// later calls return the first result. No teardown is needed.
func Init() error {
	punktOnce.Do(func() {
		punkt, punktErr = english.NewSentenceTokenizer(nil)
		if punktErr != nil {
			punktErr = fmt.Errorf("load punkt model: %w", punktErr)
		}
	})
	return punktErr
}

// PunktSegmenter splits English text with the Punkt model, which knows about
// abbreviations and initials.
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter initializes the shared model if needed.
func NewPunktSegmenter() (*PunktSegmenter, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return &PunktSegmenter{tokenizer: punkt}, nil
}

func (s *PunktSegmenter) Split(text string) []string {
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		out = appendTrimmed(out, sent.Text)
	}
	return out
}

func appendTrimmed(out []string, s string) []string {
	if t := strings.TrimSpace(s); t != "" {
		out = append(out, t)
	}
	return out
}
