package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/Vovarama1992/pdf_zipper/internal/pdf"
	"github.com/klauspost/compress/zip"
)

const ContentType = "application/zip"

type Archive struct {
	Bytes     []byte
	PageCount int
}

type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// EntryName — page_0001.jpg: лексикографический порядок совпадает со
// страничным для любого инструмента, который листает архив
func EntryName(index int) string {
	return fmt.Sprintf("page_%04d.jpg", index)
}

// Assemble — вычитывает поток до конца, страница в памяти только одна
func (a *Assembler) Assemble(stream pdf.PageStream) (Archive, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	count := 0
	for {
		page, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			zw.Close()
			return Archive{}, converr.Wrap(converr.KindAssembly, err, "reading page stream")
		}

		entry, err := zw.Create(EntryName(page.Index))
		if err != nil {
			zw.Close()
			return Archive{}, converr.Wrap(converr.KindAssembly, err, "creating archive entry")
		}
		if _, err := entry.Write(page.Bytes); err != nil {
			zw.Close()
			return Archive{}, converr.Wrap(converr.KindAssembly, err, "writing archive entry")
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return Archive{}, converr.Wrap(converr.KindAssembly, err, "finalizing archive")
	}

	return Archive{Bytes: buf.Bytes(), PageCount: count}, nil
}
