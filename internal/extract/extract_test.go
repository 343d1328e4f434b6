package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()

	t.Run("Should return the content of a text file", func(t *testing.T) {
		path := writeFile(t, "doc.txt", []byte("The cat sat on the mat.\nDogs bark."))

		text, err := e.Extract(path)

		require.NoError(t, err)
		assert.Equal(t, "The cat sat on the mat.\nDogs bark.", text)
	})

	t.Run("Should detect text regardless of extension", func(t *testing.T) {
		path := writeFile(t, "notes.md", []byte("# Title\n\nSome words here."))

		text, err := e.Extract(path)

		require.NoError(t, err)
		assert.Contains(t, text, "Some words here.")
	})

	t.Run("Should reject binary content", func(t *testing.T) {
		png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
		path := writeFile(t, "image.txt", png)

		_, err := e.Extract(path)

		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("Should fail for a missing file", func(t *testing.T) {
		_, err := e.Extract(filepath.Join(t.TempDir(), "missing.txt"))

		assert.Error(t, err)
	})

	t.Run("Should return the text of a pdf", func(t *testing.T) {
		text, err := e.Extract(filepath.Join("testdata", "pets.pdf"))

		require.NoError(t, err)
		assert.Contains(t, text, "The cat sat on the mat. Dogs bark loudly at night. Cats and dogs are common pets.")
	})

	t.Run("Should report a broken pdf", func(t *testing.T) {
		path := writeFile(t, "broken.pdf", []byte("%PDF-1.4\nnot really a pdf"))

		_, err := e.Extract(path)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedFormat)
	})
}
