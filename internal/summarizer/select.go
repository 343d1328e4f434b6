package summarizer

import (
	"strings"

	"extsum/internal/domain"
)

// Selection is the set of sentences kept for a summary.
type Selection struct {
	IDs  []domain.SentenceID
	Text string
}

// Select walks sentences in document order and keeps every scored sentence
// whose score is >= weight*threshold. Kept sentences are joined with a single
// space. Sentences without a score are never kept.
func Select(sentences []domain.Sentence, scores Scores, weight, threshold float64) Selection {
	cutoff := weight * threshold
	var (
		ids   []domain.SentenceID
		parts []string
	)
	for _, s := range sentences {
		score, ok := scores[s.ID]
		if !ok || score < cutoff {
			continue
		}
		ids = append(ids, s.ID)
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return Selection{IDs: ids, Text: strings.Join(parts, " ")}
}
