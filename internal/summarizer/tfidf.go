package summarizer

import (
	"context"
	"fmt"
	"math"

	"extsum/internal/domain"
	"extsum/internal/logger"
	"extsum/internal/tfidf"
)

var _ domain.Summarizer = (*TFIDF)(nil)

// TFIDF summarizes a document by keeping the sentences whose mean TF-IDF score
// reaches weight times the document's mean score.
type TFIDF struct {
	builder *tfidf.Builder
}

// NewTFIDF creates a summarizer whose per-sentence stages use up to workers
// goroutines (0 means GOMAXPROCS).
func NewTFIDF(workers int) *TFIDF {
	return &TFIDF{builder: tfidf.NewBuilder(workers)}
}

// SummarizeSentences runs the scoring pipeline over already normalized
// sentences.
func (s *TFIDF) SummarizeSentences(ctx context.Context, sentences []domain.Sentence, weight float64) (*domain.Summary, error) {
	if err := ValidateWeight(weight); err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, ErrEmptyDocument
	}
	log := logger.FromContext(ctx)

	ft, err := s.builder.Frequencies(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("frequency table: %w", err)
	}
	tf, err := s.builder.TermFrequencies(ctx, ft)
	if err != nil {
		return nil, fmt.Errorf("term frequencies: %w", err)
	}
	df := s.builder.DocumentFrequencies(ft)
	idf, err := s.builder.InverseDocumentFrequencies(ft, df, len(sentences))
	if err != nil {
		return nil, fmt.Errorf("inverse document frequencies: %w", err)
	}
	table, err := s.builder.Combine(ctx, tf, idf)
	if err != nil {
		return nil, fmt.Errorf("tf-idf: %w", err)
	}
	log.Debug("tables built", "sentences", len(sentences), "scorable", len(tf), "terms", len(df))

	scores := ScoreSentences(table)
	threshold, err := Threshold(scores)
	if err != nil {
		return nil, err
	}
	sel := Select(sentences, scores, weight, threshold)
	log.Debug("sentences selected", "selected", len(sel.IDs), "threshold", threshold, "weight", weight)

	return &domain.Summary{
		Text:      sel.Text,
		Selected:  sel.IDs,
		Scores:    scores,
		Threshold: threshold,
		Weight:    weight,
	}, nil
}

// Reselect applies a new weight to an existing summary's scores and threshold.
// The result equals a full run with that weight over the same sentences.
func Reselect(sentences []domain.Sentence, prev *domain.Summary, weight float64) (*domain.Summary, error) {
	if err := ValidateWeight(weight); err != nil {
		return nil, err
	}
	sel := Select(sentences, prev.Scores, weight, prev.Threshold)
	return &domain.Summary{
		Text:      sel.Text,
		Selected:  sel.IDs,
		Scores:    prev.Scores,
		Threshold: prev.Threshold,
		Weight:    weight,
	}, nil
}

// ValidateWeight returns ErrInvalidWeight unless w is finite and >= 0.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, w)
	}
	return nil
}
