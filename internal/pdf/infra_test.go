package pdf

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/stretchr/testify/require"
)

func writePages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("jpeg:"+n), 0644))
	}
}

func TestCollectPageFilesNumericOrder(t *testing.T) {
	dir := t.TempDir()
	// poppler дополняет номера нулями по ширине последней страницы
	writePages(t, dir,
		"page-10.jpg", "page-02.jpg", "page-01.jpg", "page-03.jpg",
		"page-04.jpg", "page-05.jpg", "page-06.jpg", "page-07.jpg",
		"page-08.jpg", "page-09.jpg",
		"input.pdf", "junk.txt",
	)

	files, err := collectPageFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 10)
	require.Equal(t, "page-01.jpg", files[0])
	require.Equal(t, "page-09.jpg", files[8])
	require.Equal(t, "page-10.jpg", files[9])
}

func TestCollectPageFilesUnpadded(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "page-1.jpg", "page-2.jpg", "page-3.jpg", "input.pdf")

	files, err := collectPageFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"page-1.jpg", "page-2.jpg", "page-3.jpg"}, files)
}

func TestCollectPageFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "input.pdf")

	files, err := collectPageFiles(dir)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestFileStream(t *testing.T) {
	dir, err := os.MkdirTemp("", "pdfconv-test-*")
	require.NoError(t, err)
	writePages(t, dir, "page-1.jpg", "page-2.jpg")

	s := &fileStream{dir: dir, files: []string{"page-1.jpg", "page-2.jpg"}}
	require.Equal(t, 2, s.Count())

	p1, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 1, p1.Index)
	require.Equal(t, []byte("jpeg:page-1.jpg"), p1.Bytes)
	require.Equal(t, "image/jpeg", p1.MimeType)

	p2, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 2, p2.Index)

	_, err = s.Next()
	require.ErrorIs(t, err, io.EOF)

	require.NoError(t, s.Close())
	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr), "Close must remove the temp dir")

	require.NoError(t, s.Close(), "double Close is harmless")
}

func TestClassifyRunError(t *testing.T) {
	ctx := context.Background()

	err := classifyRunError(ctx, &exec.Error{Name: "pdftoppm", Err: exec.ErrNotFound}, "")
	require.Equal(t, converr.KindEnvironment, converr.KindOf(err))

	err = classifyRunError(ctx, errors.New("exit status 1"), "Syntax Error: not a PDF")
	require.Equal(t, converr.KindRasterization, converr.KindOf(err))
	require.Contains(t, converr.MessageOf(err), "Syntax Error")

	expired, cancel := context.WithTimeout(ctx, 0)
	defer cancel()
	<-expired.Done()
	err = classifyRunError(expired, errors.New("signal: killed"), "")
	require.Equal(t, converr.KindRasterization, converr.KindOf(err))
	require.Contains(t, converr.MessageOf(err), "timed out")
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name     string
		pages    string
		expected []string
		hasError bool
	}{
		{name: "empty means all", pages: "", expected: nil},
		{name: "all keyword", pages: "all", expected: nil},
		{name: "single page", pages: "3", expected: []string{"3"}},
		{name: "range", pages: "2-5", expected: []string{"2-5"}},
		{name: "mixed", pages: "1, 3-4 ,7", expected: []string{"1", "3-4", "7"}},
		{name: "zero page", pages: "0", hasError: true},
		{name: "inverted range", pages: "5-3", hasError: true},
		{name: "garbage", pages: "abc", hasError: true},
		{name: "trailing comma", pages: "1,", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(tt.pages)
			if tt.hasError {
				require.Error(t, err)
				require.Equal(t, converr.KindInvalidInput, converr.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}
