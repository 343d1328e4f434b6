package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extsum/internal/domain"
)

func sentences(terms ...[]string) []domain.Sentence {
	out := make([]domain.Sentence, len(terms))
	for i, t := range terms {
		out[i] = domain.Sentence{ID: domain.SentenceID(i), Terms: t}
	}
	return out
}

func TestBuilder_Frequencies(t *testing.T) {
	ctx := context.Background()

	t.Run("Should tally terms per sentence", func(t *testing.T) {
		b := NewBuilder(2)
		ft, err := b.Frequencies(ctx, sentences(
			[]string{"cat", "sat", "cat"},
			[]string{"dog"},
		))

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"cat": 2, "sat": 1}, ft[0])
		assert.Equal(t, map[string]int{"dog": 1}, ft[1])
	})

	t.Run("Should keep an empty table for a sentence without terms", func(t *testing.T) {
		ft, err := NewBuilder(1).Frequencies(ctx, sentences(nil, []string{"dog"}))

		require.NoError(t, err)
		require.Contains(t, ft, domain.SentenceID(0))
		assert.Empty(t, ft[0])
	})

	t.Run("Should key identical sentences separately", func(t *testing.T) {
		ft, err := NewBuilder(0).Frequencies(ctx, sentences(
			[]string{"same", "prefix"},
			[]string{"same", "prefix"},
		))

		require.NoError(t, err)
		assert.Len(t, ft, 2)
	})

	t.Run("Should reject duplicate sentence ids", func(t *testing.T) {
		in := []domain.Sentence{{ID: 1, Terms: []string{"a"}}, {ID: 1, Terms: []string{"b"}}}

		_, err := NewBuilder(1).Frequencies(ctx, in)

		var ce *ConsistencyError
		require.ErrorAs(t, err, &ce)
	})

	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewBuilder(1).Frequencies(cctx, sentences([]string{"a"}))

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuilder_TermFrequencies(t *testing.T) {
	t.Run("Should divide counts by distinct terms and drop empty sentences", func(t *testing.T) {
		b := NewBuilder(1)
		ft := FrequencyTable{
			0: {"cat": 2, "sat": 1},
			1: {},
		}

		tf, err := b.TermFrequencies(context.Background(), ft)

		require.NoError(t, err)
		assert.NotContains(t, tf, domain.SentenceID(1))
		assert.InDelta(t, 1.0, tf[0]["cat"], 1e-12)
		assert.InDelta(t, 0.5, tf[0]["sat"], 1e-12)
	})
}

func TestBuilder_DocumentFrequencies(t *testing.T) {
	t.Run("Should count sentences containing each term", func(t *testing.T) {
		df := NewBuilder(1).DocumentFrequencies(FrequencyTable{
			0: {"cat": 3, "dog": 1},
			1: {"dog": 2},
			2: {},
		})

		assert.Equal(t, DocumentFrequencyTable{"cat": 1, "dog": 2}, df)
	})
}

func TestBuilder_InverseDocumentFrequencies(t *testing.T) {
	b := NewBuilder(1)

	t.Run("Should use base 10 logarithm over all sentences", func(t *testing.T) {
		ft := FrequencyTable{0: {"cat": 1, "dog": 1}, 1: {"dog": 1}, 2: {}}
		df := b.DocumentFrequencies(ft)

		idf, err := b.InverseDocumentFrequencies(ft, df, 3)

		require.NoError(t, err)
		assert.NotContains(t, idf, domain.SentenceID(2))
		assert.InDelta(t, math.Log10(3), idf[0]["cat"], 1e-12)
		assert.InDelta(t, math.Log10(1.5), idf[0]["dog"], 1e-12)
		assert.InDelta(t, math.Log10(1.5), idf[1]["dog"], 1e-12)
	})

	t.Run("Should fail when a term has no document frequency", func(t *testing.T) {
		_, err := b.InverseDocumentFrequencies(FrequencyTable{0: {"cat": 1}}, DocumentFrequencyTable{}, 1)

		var ce *ConsistencyError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "cat", ce.Term)
	})
}

func TestBuilder_Combine(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(4)

	t.Run("Should multiply matching pairs", func(t *testing.T) {
		tf := TermFrequencyTable{0: {"cat": 0.5, "dog": 0.5}}
		idf := IDFTable{0: {"cat": 0.4, "dog": 0.2}}

		out, err := b.Combine(ctx, tf, idf)

		require.NoError(t, err)
		assert.InDelta(t, 0.2, out[0]["cat"], 1e-12)
		assert.InDelta(t, 0.1, out[0]["dog"], 1e-12)
	})

	t.Run("Should fail when term sets diverge", func(t *testing.T) {
		tf := TermFrequencyTable{0: {"cat": 0.5, "dog": 0.5}}
		idf := IDFTable{0: {"cat": 0.4, "pet": 0.2}}

		_, err := b.Combine(ctx, tf, idf)

		var ce *ConsistencyError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domain.SentenceID(0), ce.Sentence)
	})

	t.Run("Should fail when a sentence is missing on either side", func(t *testing.T) {
		_, err := b.Combine(ctx, TermFrequencyTable{0: {"a": 1}}, IDFTable{})
		var ce *ConsistencyError
		require.ErrorAs(t, err, &ce)

		_, err = b.Combine(ctx, TermFrequencyTable{}, IDFTable{3: {"a": 1}})
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, domain.SentenceID(3), ce.Sentence)
	})
}

func TestSortedHelpers(t *testing.T) {
	t.Run("Should order ids and terms deterministically", func(t *testing.T) {
		assert.Equal(t, []domain.SentenceID{0, 2, 5}, SortedIDs(Table{5: nil, 0: nil, 2: nil}))
		assert.Equal(t, []string{"a", "b", "c"}, SortedTerms(map[string]int{"c": 1, "a": 1, "b": 1}))
	})
}
