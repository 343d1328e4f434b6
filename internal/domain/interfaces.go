package domain

import "context"

// SentenceID is the position of a sentence in its document. Every table built
// while summarizing is keyed by it.
type SentenceID int

// Document represents a single file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Sentence is one span of the original text together with its normalized terms.
type Sentence struct {
	ID    SentenceID
	Text  string
	Terms []string
}

// Summary is the outcome of summarizing one document.
// Scores and Threshold are diagnostics; Selected lists the kept sentences in
// document order.
type Summary struct {
	Text      string
	Selected  []SentenceID
	Scores    map[SentenceID]float64
	Threshold float64
	Weight    float64
}

// Normalizer splits text into ordered sentences and reduces each one to
// normalized terms (lowercased, stemmed, stopwords removed).
type Normalizer interface {
	Normalize(text string) ([]Sentence, error)
}

// Extractor turns a file into plain text.
type Extractor interface {
	Extract(path string) (string, error)
}

// Summarizer produces an extractive summary of normalized sentences.
type Summarizer interface {
	SummarizeSentences(ctx context.Context, sentences []Sentence, weight float64) (*Summary, error)
}
