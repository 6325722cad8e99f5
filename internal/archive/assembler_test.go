package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/Vovarama1992/pdf_zipper/internal/pdf"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// memStream — поток страниц из памяти для тестов
type memStream struct {
	pages []pdf.Page
	pos   int
	err   error
}

func (s *memStream) Next() (pdf.Page, error) {
	if s.err != nil && s.pos == len(s.pages) {
		return pdf.Page{}, s.err
	}
	if s.pos >= len(s.pages) {
		return pdf.Page{}, io.EOF
	}
	p := s.pages[s.pos]
	s.pos++
	return p, nil
}

func (s *memStream) Count() int { return len(s.pages) }

func (s *memStream) Close() error { return nil }

func pagesN(n int) []pdf.Page {
	pages := make([]pdf.Page, n)
	for i := range pages {
		pages[i] = pdf.Page{
			Index:    i + 1,
			Bytes:    []byte(fmt.Sprintf("jpeg-bytes-%d", i+1)),
			MimeType: "image/jpeg",
		}
	}
	return pages
}

func TestEntryName(t *testing.T) {
	require.Equal(t, "page_0001.jpg", EntryName(1))
	require.Equal(t, "page_0042.jpg", EntryName(42))
	require.Equal(t, "page_1000.jpg", EntryName(1000))
}

func TestAssembleOrderAndNames(t *testing.T) {
	arch, err := NewAssembler().Assemble(&memStream{pages: pagesN(12)})
	require.NoError(t, err)
	require.Equal(t, 12, arch.PageCount)

	zr, err := zip.NewReader(bytes.NewReader(arch.Bytes), int64(len(arch.Bytes)))
	require.NoError(t, err)
	require.Len(t, zr.File, 12)

	for i, f := range zr.File {
		require.Equal(t, EntryName(i+1), f.Name, "entry order must equal page order")

		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		require.Equal(t, []byte(fmt.Sprintf("jpeg-bytes-%d", i+1)), content)
	}
}

func TestAssembleEmptyStream(t *testing.T) {
	arch, err := NewAssembler().Assemble(&memStream{})
	require.NoError(t, err)
	require.Equal(t, 0, arch.PageCount)

	zr, err := zip.NewReader(bytes.NewReader(arch.Bytes), int64(len(arch.Bytes)))
	require.NoError(t, err)
	require.Empty(t, zr.File)
}

func TestAssembleStreamError(t *testing.T) {
	stream := &memStream{pages: pagesN(2), err: errors.New("disk gone")}

	_, err := NewAssembler().Assemble(stream)
	require.Error(t, err)
	require.Equal(t, converr.KindAssembly, converr.KindOf(err))
}

func TestAssembleStructureIsDeterministic(t *testing.T) {
	a, err := NewAssembler().Assemble(&memStream{pages: pagesN(3)})
	require.NoError(t, err)
	b, err := NewAssembler().Assemble(&memStream{pages: pagesN(3)})
	require.NoError(t, err)

	za, _ := zip.NewReader(bytes.NewReader(a.Bytes), int64(len(a.Bytes)))
	zb, _ := zip.NewReader(bytes.NewReader(b.Bytes), int64(len(b.Bytes)))

	require.Equal(t, len(za.File), len(zb.File))
	for i := range za.File {
		require.Equal(t, za.File[i].Name, zb.File[i].Name)
	}
}
