package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"extsum/internal/domain"
	"extsum/internal/extract"
	"extsum/internal/logger"
	"extsum/internal/summarizer"
)

// DocumentSummary is the summary of one input file together with the
// sentences it was built from. When the file could not be summarized, Err is
// set and Summary is nil.
type DocumentSummary struct {
	Document  domain.Document
	Sentences []domain.Sentence
	Summary   *domain.Summary
	Err       error
}

// Available reports whether a summary was produced.
func (d DocumentSummary) Available() bool { return d.Err == nil && d.Summary != nil }

// SummaryServiceImpl extracts, normalizes and summarizes files one at a time.
type SummaryServiceImpl struct {
	extractor  domain.Extractor
	normalizer domain.Normalizer
	summarizer domain.Summarizer
	weight     float64
}

func NewSummaryService(extractor domain.Extractor, normalizer domain.Normalizer, sum domain.Summarizer, weight float64) *SummaryServiceImpl {
	return &SummaryServiceImpl{extractor: extractor, normalizer: normalizer, summarizer: sum, weight: weight}
}

// SummarizeFiles expands glob patterns and summarizes each matching file
// independently. A file that yields no summary (no sentences, no scorable
// sentence, unsupported format) is returned with Err set; the call fails only
// when no file could be summarized or on any other error.
func (s *SummaryServiceImpl) SummarizeFiles(ctx context.Context, paths []string) ([]DocumentSummary, error) {
	log := logger.FromContext(ctx)
	var files []string
	for _, p := range paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if matches == nil {
			matches = []string{p}
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no documents given")
	}
	out := make([]DocumentSummary, 0, len(files))
	var unavailable []error
	for _, f := range files {
		doc := domain.Document{ID: hashString(f), Path: f}
		ds, err := s.summarizeFile(ctx, doc)
		if err != nil {
			err = fmt.Errorf("%s: %w", f, err)
			if !isUnavailable(err) {
				return nil, err
			}
			log.Warn("summary unavailable", "file", f, "err", err)
			unavailable = append(unavailable, err)
			if ds.Document.Path == "" {
				ds.Document = doc
			}
			ds.Err = err
			out = append(out, ds)
			continue
		}
		log.Info("summarized", "file", f, "sentences", len(ds.Sentences), "selected", len(ds.Summary.Selected))
		out = append(out, ds)
	}
	if len(unavailable) == len(out) {
		return nil, errors.Join(unavailable...)
	}
	return out, nil
}

func (s *SummaryServiceImpl) summarizeFile(ctx context.Context, doc domain.Document) (DocumentSummary, error) {
	text, err := s.extractor.Extract(doc.Path)
	if err != nil {
		return DocumentSummary{}, err
	}
	doc.Content = text
	return s.SummarizeDocument(ctx, doc)
}

// SummarizeDocument summarizes already extracted text. On a summarizer error
// the normalized sentences are still returned.
func (s *SummaryServiceImpl) SummarizeDocument(ctx context.Context, doc domain.Document) (DocumentSummary, error) {
	sentences, err := s.normalizer.Normalize(doc.Content)
	if err != nil {
		return DocumentSummary{}, fmt.Errorf("normalize: %w", err)
	}
	sum, err := s.summarizer.SummarizeSentences(ctx, sentences, s.weight)
	if err != nil {
		return DocumentSummary{Document: doc, Sentences: sentences}, err
	}
	return DocumentSummary{Document: doc, Sentences: sentences, Summary: sum}, nil
}

// isUnavailable reports errors that leave one document without a summary
// without affecting the others.
func isUnavailable(err error) bool {
	return errors.Is(err, summarizer.ErrEmptyScoreSet) ||
		errors.Is(err, summarizer.ErrEmptyDocument) ||
		errors.Is(err, extract.ErrUnsupportedFormat)
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
