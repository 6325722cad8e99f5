package convert

import (
	"context"

	"github.com/Vovarama1992/pdf_zipper/internal/archive"
	"github.com/Vovarama1992/pdf_zipper/internal/fetch"
	"github.com/Vovarama1992/pdf_zipper/internal/pdf"
)

// Request — нормализованный запрос конверсии (ровно одна ссылка на документ)
type Request struct {
	URL       string
	PDFBase64 string
	DPI       int
	Pages     string
}

// Response — либо Archive (inline-режим), либо ArchiveURL (s3-режим)
type Response struct {
	PageCount   int
	ContentType string
	Archive     []byte
	ArchiveURL  string
}

type Converter interface {
	Convert(ctx context.Context, req Request) (Response, error)
}

type DocumentResolver interface {
	Resolve(ctx context.Context, ref fetch.Reference) (fetch.RawDocument, error)
}

type ArchiveAssembler interface {
	Assemble(stream pdf.PageStream) (archive.Archive, error)
}

type ArchiveUploader interface {
	SaveArchive(ctx context.Context, archive []byte, contentType string) (string, error)
}

type Notificator interface {
	Notify(ctx context.Context, err error, details string) error
}
