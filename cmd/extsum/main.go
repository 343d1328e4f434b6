package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"extsum/internal/config"
	"extsum/internal/extract"
	"extsum/internal/logger"
	"extsum/internal/normalizer"
	"extsum/internal/service"
	"extsum/internal/summarizer"
	"extsum/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath    string
		weight     float64
		showScores bool
		noTUI      bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/extsum/config.yaml if not provided)")
	flag.Float64Var(&weight, "weight", 1.0, "Threshold multiplier; overrides summarizer.weight from the config when set")
	flag.BoolVar(&showScores, "scores", false, "Print per-sentence scores and the threshold")
	flag.BoolVar(&noTUI, "no-tui", false, "Print summaries instead of opening the viewer")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: extsum [--config=config.yaml] [--weight=1.0] [--scores] [--no-tui] file1.txt [file2.pdf ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	log := logger.NewLogger(&logger.Config{Level: logger.ParseLevel("info"), Output: os.Stderr})
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	log = logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Log.Level), Output: os.Stderr, JSON: cfg.Log.JSON, TimeFormat: "15:04:05"})
	ctx := logger.ContextWithLogger(context.Background(), log)

	weightSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "weight" {
			weightSet = true
		}
	})
	w, err := resolveWeight(cfg, weightSet, weight)
	if err != nil {
		log.Error("invalid weight", "err", err)
		os.Exit(1)
	}

	norm, err := normalizer.New(normalizer.Options{
		Language:       cfg.Normalizer.Language,
		Segmenter:      cfg.Normalizer.Segmenter,
		Stemmer:        cfg.Normalizer.Stemmer,
		Stopwords:      cfg.Normalizer.Stopwords,
		ExtraStopwords: cfg.Normalizer.ExtraStopwords,
		FoldDiacritics: cfg.FoldDiacritics(),
		MinTermLength:  cfg.Normalizer.MinTermLength,
	})
	if err != nil {
		log.Error("normalizer init failed", "err", err)
		os.Exit(1)
	}

	svc := service.NewSummaryService(extract.NewExtractor(), norm, summarizer.NewTFIDF(cfg.Summarizer.Workers), w)
	docs, err := svc.SummarizeFiles(ctx, inputs)
	if err != nil {
		log.Error("summarize failed", "err", err)
		os.Exit(1)
	}

	if noTUI || !cfg.UIEnabled() {
		printSummaries(os.Stdout, docs, showScores)
		return
	}
	if _, err := tea.NewProgram(tui.New(docs), tea.WithAltScreen()).Run(); err != nil {
		log.Error("viewer failed", "err", err)
		os.Exit(1)
	}
}

// resolveWeight picks the --weight value when it was given, the configured
// weight otherwise, and validates the result.
func resolveWeight(cfg *config.AppConfig, flagSet bool, flagValue float64) (float64, error) {
	w := cfg.SummaryWeight()
	if flagSet {
		w = flagValue
	}
	if err := summarizer.ValidateWeight(w); err != nil {
		return 0, err
	}
	return w, nil
}

func printSummaries(out io.Writer, docs []service.DocumentSummary, showScores bool) {
	for i, d := range docs {
		if len(docs) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s\n", d.Document.Path)
		}
		if !d.Available() {
			fmt.Fprintf(out, "(summary unavailable: %v)\n", d.Err)
			continue
		}
		fmt.Fprintln(out, d.Summary.Text)
		if !showScores {
			continue
		}
		fmt.Fprintf(out, "\nthreshold=%.6f weight=%.2f\n", d.Summary.Threshold, d.Summary.Weight)
		for _, s := range d.Sentences {
			if score, ok := d.Summary.Scores[s.ID]; ok {
				fmt.Fprintf(out, "%4d  %.6f  %s\n", int(s.ID), score, s.Text)
			} else {
				fmt.Fprintf(out, "%4d  %8s  %s\n", int(s.ID), "-", s.Text)
			}
		}
	}
}
