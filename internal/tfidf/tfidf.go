// Package tfidf builds the per-sentence frequency tables used to score
// sentences of a single document. Every table is keyed by sentence position
// and is read-only once returned.
package tfidf

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"extsum/internal/domain"
)

type (
	// FrequencyTable holds raw term counts per sentence.
	FrequencyTable map[domain.SentenceID]map[string]int
	// TermFrequencyTable holds count / distinct terms per sentence.
	TermFrequencyTable map[domain.SentenceID]map[string]float64
	// DocumentFrequencyTable holds, per term, the number of sentences containing it.
	DocumentFrequencyTable map[string]int
	// IDFTable holds log10(N / df) for every term of every scorable sentence.
	IDFTable map[domain.SentenceID]map[string]float64
	// Table holds TF x IDF per sentence and term.
	Table map[domain.SentenceID]map[string]float64
)

// ConsistencyError reports that two tables derived from the same frequency
// table disagree. It always indicates a bug upstream.
type ConsistencyError struct {
	Sentence domain.SentenceID
	Term     string
	Reason   string
}

func (e *ConsistencyError) Error() string {
	if e.Term == "" {
		return fmt.Sprintf("tfidf: inconsistent tables for sentence %d: %s", e.Sentence, e.Reason)
	}
	return fmt.Sprintf("tfidf: inconsistent tables for sentence %d, term %q: %s", e.Sentence, e.Term, e.Reason)
}

// Builder computes the tables. Per-sentence stages run on up to workers
// goroutines.
type Builder struct {
	workers int
}

// NewBuilder creates a Builder. workers <= 0 uses GOMAXPROCS.
func NewBuilder(workers int) *Builder {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Builder{workers: workers}
}

// forEach runs fn(i) for i in [0, n) and waits for all of them.
// fn must only write to slot i of any shared slice.
func (b *Builder) forEach(ctx context.Context, n int, fn func(i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}

// Frequencies counts the occurrences of every term in every sentence.
// A sentence without terms gets an empty table.
func (b *Builder) Frequencies(ctx context.Context, sentences []domain.Sentence) (FrequencyTable, error) {
	rows := make([]map[string]int, len(sentences))
	err := b.forEach(ctx, len(sentences), func(i int) error {
		counts := make(map[string]int, len(sentences[i].Terms))
		for _, term := range sentences[i].Terms {
			counts[term]++
		}
		rows[i] = counts
		return nil
	})
	if err != nil {
		return nil, err
	}
	ft := make(FrequencyTable, len(sentences))
	for i, s := range sentences {
		if _, dup := ft[s.ID]; dup {
			return nil, &ConsistencyError{Sentence: s.ID, Reason: "duplicate sentence id"}
		}
		ft[s.ID] = rows[i]
	}
	return ft, nil
}

// TermFrequencies divides each count by the number of distinct terms in its
// sentence. Sentences without terms are left out.
func (b *Builder) TermFrequencies(ctx context.Context, ft FrequencyTable) (TermFrequencyTable, error) {
	ids := scorableIDs(ft)
	rows := make([]map[string]float64, len(ids))
	err := b.forEach(ctx, len(ids), func(i int) error {
		counts := ft[ids[i]]
		distinct := float64(len(counts))
		row := make(map[string]float64, len(counts))
		for term, count := range counts {
			row[term] = float64(count) / distinct
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	tf := make(TermFrequencyTable, len(ids))
	for i, id := range ids {
		tf[id] = rows[i]
	}
	return tf, nil
}

// DocumentFrequencies counts how many sentences contain each term.
func (b *Builder) DocumentFrequencies(ft FrequencyTable) DocumentFrequencyTable {
	df := make(DocumentFrequencyTable)
	for _, counts := range ft {
		for term := range counts {
			df[term]++
		}
	}
	return df
}

// InverseDocumentFrequencies computes log10(total / df) for each term of each
// sentence that has terms. total is the number of sentences in the document.
func (b *Builder) InverseDocumentFrequencies(ft FrequencyTable, df DocumentFrequencyTable, total int) (IDFTable, error) {
	n := float64(total)
	idf := make(IDFTable, len(ft))
	for id, counts := range ft {
		if len(counts) == 0 {
			continue
		}
		row := make(map[string]float64, len(counts))
		for term := range counts {
			d, ok := df[term]
			if !ok || d < 1 || d > total {
				return nil, &ConsistencyError{Sentence: id, Term: term, Reason: fmt.Sprintf("document frequency %d out of range [1,%d]", d, total)}
			}
			row[term] = math.Log10(n / float64(d))
		}
		idf[id] = row
	}
	return idf, nil
}

// Combine multiplies TF and IDF for matching (sentence, term) pairs. Both
// tables must cover the same sentences and, per sentence, the same terms.
func (b *Builder) Combine(ctx context.Context, tf TermFrequencyTable, idf IDFTable) (Table, error) {
	if len(tf) != len(idf) {
		for id := range idf {
			if _, ok := tf[id]; !ok {
				return nil, &ConsistencyError{Sentence: id, Reason: "sentence missing from term frequency table"}
			}
		}
	}
	ids := make([]domain.SentenceID, 0, len(tf))
	for id := range tf {
		ids = append(ids, id)
	}
	sortIDs(ids)
	rows := make([]map[string]float64, len(ids))
	err := b.forEach(ctx, len(ids), func(i int) error {
		id := ids[i]
		tfRow := tf[id]
		idfRow, ok := idf[id]
		if !ok {
			return &ConsistencyError{Sentence: id, Reason: "sentence missing from idf table"}
		}
		if len(tfRow) != len(idfRow) {
			return &ConsistencyError{Sentence: id, Reason: fmt.Sprintf("term count mismatch: tf=%d idf=%d", len(tfRow), len(idfRow))}
		}
		row := make(map[string]float64, len(tfRow))
		for term, tv := range tfRow {
			iv, ok := idfRow[term]
			if !ok {
				return &ConsistencyError{Sentence: id, Term: term, Reason: "term missing from idf table"}
			}
			row[term] = tv * iv
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(Table, len(ids))
	for i, id := range ids {
		out[id] = rows[i]
	}
	return out, nil
}

func scorableIDs(ft FrequencyTable) []domain.SentenceID {
	ids := make([]domain.SentenceID, 0, len(ft))
	for id, counts := range ft {
		if len(counts) > 0 {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)
	return ids
}
