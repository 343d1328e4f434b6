package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should return defaults when the file does not exist", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "punkt", cfg.Normalizer.Segmenter)
		assert.Equal(t, 1.0, cfg.SummaryWeight())
		assert.True(t, cfg.UIEnabled())
		assert.True(t, cfg.FoldDiacritics())
	})

	t.Run("Should read values and fill missing ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "normalizer:\n  stemmer: none\n  extra_stopwords: [foo]\nsummarizer:\n  weight: 1.5\n  workers: 2\nui:\n  enabled: false\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "none", cfg.Normalizer.Stemmer)
		assert.Equal(t, "punkt", cfg.Normalizer.Segmenter)
		assert.Equal(t, []string{"foo"}, cfg.Normalizer.ExtraStopwords)
		assert.Equal(t, 1.5, cfg.SummaryWeight())
		assert.Equal(t, 2, cfg.Summarizer.Workers)
		assert.False(t, cfg.UIEnabled())
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("Should reject an invalid weight", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("summarizer:\n  weight: -2\n"), 0o644))

		_, err := Load(path)

		assert.Error(t, err)
	})

	t.Run("Should reject an unknown stemmer", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("normalizer:\n  stemmer: lancaster\n"), 0o644))

		_, err := Load(path)

		assert.ErrorContains(t, err, "unknown stemmer")
	})

	t.Run("Should reject default stopwords for a non english language", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("normalizer:\n  language: german\n"), 0o644))

		_, err := Load(path)

		assert.ErrorContains(t, err, "english only")
	})

	t.Run("Should accept a non english language without default stopwords", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("normalizer:\n  language: german\n  stopwords: none\n"), 0o644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "german", cfg.Normalizer.Language)
	})

	t.Run("Should apply environment overrides", func(t *testing.T) {
		t.Setenv("EXTSUM_WEIGHT", "0.75")
		t.Setenv("EXTSUM_LOG_LEVEL", "debug")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, 0.75, cfg.SummaryWeight())
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Should fail on a malformed weight override", func(t *testing.T) {
		t.Setenv("EXTSUM_WEIGHT", "heavy")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Run("Should round trip through Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		cfg := defaultConfig()
		cfg.Normalizer.Segmenter = "regex"

		require.NoError(t, Save(path, cfg))
		loaded, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})
}
