package summarizer

import "errors"

var (
	// ErrEmptyDocument is returned when a document has no sentences.
	ErrEmptyDocument = errors.New("summarizer: document has no sentences")
	// ErrEmptyScoreSet is returned when no sentence has a term left after
	// normalization, so no summary can be produced.
	ErrEmptyScoreSet = errors.New("summarizer: no scorable sentences")
	// ErrInvalidWeight is returned for a negative, NaN or infinite weight.
	ErrInvalidWeight = errors.New("summarizer: weight must be a finite number >= 0")
)
