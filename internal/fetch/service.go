package fetch

import (
	"context"
	"encoding/base64"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
)

type Service struct {
	fetcher Fetcher
}

func NewService(f Fetcher) *Service {
	return &Service{fetcher: f}
}

// Resolve — превращает ссылку (URL или inline base64) в сырые байты PDF
func (s *Service) Resolve(ctx context.Context, ref Reference) (RawDocument, error) {
	switch {
	case ref.URL != "" && ref.Inline != "":
		return RawDocument{}, converr.New(converr.KindInvalidInput,
			"both pdf_url and pdf_base64 supplied, expected exactly one")

	case ref.URL != "":
		doc, err := s.fetcher.Fetch(ctx, ref.URL)
		if err != nil {
			return RawDocument{}, err
		}
		if doc.Size == 0 {
			return RawDocument{}, converr.New(converr.KindFetch, "remote document is empty")
		}
		return doc, nil

	case ref.Inline != "":
		b, err := base64.StdEncoding.DecodeString(ref.Inline)
		if err != nil {
			return RawDocument{}, converr.Wrap(converr.KindInvalidInput, err, "pdf_base64 is not valid base64")
		}
		if len(b) == 0 {
			return RawDocument{}, converr.New(converr.KindInvalidInput, "pdf_base64 decodes to empty document")
		}
		return RawDocument{Bytes: b, Size: int64(len(b))}, nil

	default:
		return RawDocument{}, converr.New(converr.KindInvalidInput,
			"request must contain pdf_url or pdf_base64")
	}
}
