package tfidf

import (
	"sort"

	"extsum/internal/domain"
)

func sortIDs(ids []domain.SentenceID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// SortedTerms returns the keys of row in lexical order.
func SortedTerms[V any](row map[string]V) []string {
	terms := make([]string, 0, len(row))
	for term := range row {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// SortedIDs returns the sentence ids of a per-sentence table in document order.
func SortedIDs[V any](table map[domain.SentenceID]V) []domain.SentenceID {
	ids := make([]domain.SentenceID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}
