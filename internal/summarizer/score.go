package summarizer

import (
	"extsum/internal/domain"
	"extsum/internal/tfidf"
)

// Scores maps each scorable sentence to its mean TF-IDF value.
type Scores map[domain.SentenceID]float64

// ScoreSentences reduces every row of table to sum(tfidf) / distinct terms.
// Terms are summed in lexical order so the result does not depend on map
// iteration.
func ScoreSentences(table tfidf.Table) Scores {
	scores := make(Scores, len(table))
	for id, row := range table {
		if len(row) == 0 {
			continue
		}
		total := 0.0
		for _, term := range tfidf.SortedTerms(row) {
			total += row[term]
		}
		scores[id] = total / float64(len(row))
	}
	return scores
}

// Threshold returns the arithmetic mean of scores.
func Threshold(scores Scores) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrEmptyScoreSet
	}
	sum := 0.0
	for _, id := range tfidf.SortedIDs(scores) {
		sum += scores[id]
	}
	return sum / float64(len(scores)), nil
}
