// Package normalizer turns raw text into sentences of normalized terms:
// sentence segmentation, word tokenization, lowercasing, optional diacritic
// folding, stemming and stopword removal.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"extsum/internal/domain"
)

const (
	SegmenterPunkt = "punkt"
	SegmenterRegex = "regex"

	StemmerSnowball = "snowball"
	StemmerNone     = "none"

	StopwordsDefault = "default"
	StopwordsNone    = "none"
)

// Options selects the normalization steps.
type Options struct {
	Language       string
	Segmenter      string
	Stemmer        string
	Stopwords      string
	ExtraStopwords []string
	FoldDiacritics bool
	MinTermLength  int
}

// DefaultOptions mirrors the default configuration.
func DefaultOptions() Options {
	return Options{
		Language:       "english",
		Segmenter:      SegmenterPunkt,
		Stemmer:        StemmerSnowball,
		Stopwords:      StopwordsDefault,
		FoldDiacritics: true,
		MinTermLength:  1,
	}
}

var _ domain.Normalizer = (*Normalizer)(nil)

// Normalizer implements domain.Normalizer.
type Normalizer struct {
	segmenter      Segmenter
	stemmer        Stemmer
	stopwords      map[string]struct{}
	foldDiacritics bool
	minTermLength  int
	tokenPattern   *regexp.Regexp
}

// New builds a Normalizer from opts.
func New(opts Options) (*Normalizer, error) {
	var seg Segmenter
	switch opts.Segmenter {
	case SegmenterPunkt, "":
		if opts.Language != "" && opts.Language != "english" {
			seg = NewRegexSegmenter()
			break
		}
		p, err := NewPunktSegmenter()
		if err != nil {
			return nil, err
		}
		seg = p
	case SegmenterRegex:
		seg = NewRegexSegmenter()
	default:
		return nil, fmt.Errorf("unknown segmenter: %s", opts.Segmenter)
	}

	var stem Stemmer
	switch opts.Stemmer {
	case StemmerSnowball, "":
		lang := opts.Language
		if lang == "" {
			lang = "english"
		}
		s, err := NewSnowballStemmer(lang)
		if err != nil {
			return nil, err
		}
		stem = s
	case StemmerNone:
		stem = IdentityStemmer{}
	default:
		return nil, fmt.Errorf("unknown stemmer: %s", opts.Stemmer)
	}

	var stops map[string]struct{}
	switch opts.Stopwords {
	case StopwordsDefault, "":
		if opts.Language != "" && opts.Language != "english" {
			return nil, fmt.Errorf("default stopword list is english only, got language %s: use stopwords none with extra stopwords", opts.Language)
		}
		stops = stopwordSet(englishStopwords, lower(opts.ExtraStopwords))
	case StopwordsNone:
		stops = stopwordSet(lower(opts.ExtraStopwords))
	default:
		return nil, fmt.Errorf("unknown stopword list: %s", opts.Stopwords)
	}

	return NewWith(seg, stem, stops, opts.FoldDiacritics, opts.MinTermLength), nil
}

// NewWith assembles a Normalizer from explicit parts.
func NewWith(seg Segmenter, stem Stemmer, stopwords map[string]struct{}, foldDiacritics bool, minTermLength int) *Normalizer {
	if stem == nil {
		stem = IdentityStemmer{}
	}
	if stopwords == nil {
		stopwords = map[string]struct{}{}
	}
	return &Normalizer{
		segmenter:      seg,
		stemmer:        stem,
		stopwords:      stopwords,
		foldDiacritics: foldDiacritics,
		minTermLength:  minTermLength,
		tokenPattern:   regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
	}
}

// Normalize splits text into sentences and normalizes each one.
func (n *Normalizer) Normalize(text string) ([]domain.Sentence, error) {
	if n.segmenter == nil {
		return nil, fmt.Errorf("normalizer: no segmenter configured")
	}
	return n.NormalizeSentences(n.segmenter.Split(text)), nil
}

// NormalizeSentences normalizes sentences that were split elsewhere. Each
// sentence's ID is its index in texts.
func (n *Normalizer) NormalizeSentences(texts []string) []domain.Sentence {
	out := make([]domain.Sentence, len(texts))
	for i, text := range texts {
		out[i] = domain.Sentence{ID: domain.SentenceID(i), Text: text, Terms: n.Terms(text)}
	}
	return out
}

// Terms returns the normalized terms of one sentence in order. A token is
// dropped when either its lowercase or its stemmed form is a stopword.
func (n *Normalizer) Terms(sentence string) []string {
	var terms []string
	for _, tok := range n.tokenPattern.FindAllString(strings.ToLower(sentence), -1) {
		tok = strings.ReplaceAll(tok, "’", "'")
		if n.foldDiacritics {
			tok = foldDiacritics(tok)
		}
		if n.isStopword(tok) {
			continue
		}
		stem := n.stemmer.Stem(tok)
		if n.isStopword(stem) || len([]rune(stem)) < n.minTermLength {
			continue
		}
		terms = append(terms, stem)
	}
	return terms
}

func (n *Normalizer) isStopword(w string) bool {
	_, ok := n.stopwords[w]
	return ok
}

// foldDiacritics decomposes s and strips combining marks.
func foldDiacritics(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, norm.NFD.String(s))
}

func lower(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(strings.TrimSpace(w))
	}
	return out
}
