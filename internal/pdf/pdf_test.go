package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	t.Run("writes the pdf next to the markdown", func(t *testing.T) {
		tmpDir := t.TempDir()
		markdownPath := filepath.Join(tmpDir, "week.md")
		require.NoError(t, os.WriteFile(markdownPath, []byte("# Study report\n\n- Total study time: 1.5 hours\n"), 0644))

		got, err := ConvertMarkdownToPDF(markdownPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "week.pdf"), got)

		info, err := os.Stat(got)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		_, err := ConvertMarkdownToPDF("report.txt")
		assert.EqualError(t, err, "input file must have .md extension: report.txt")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ConvertMarkdownToPDF(filepath.Join(t.TempDir(), "missing.md"))
		assert.ErrorContains(t, err, "os.ReadFile")
	})
}

func TestWrite_RejectsOtherExtensions(t *testing.T) {
	_, err := Write([]byte("# report"), "report.md")
	assert.EqualError(t, err, "output file must have .pdf extension: report.md")
}
