package convert

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/pdf_zipper/internal/archive"
	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/Vovarama1992/pdf_zipper/internal/fetch"
	"github.com/Vovarama1992/pdf_zipper/internal/pdf"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	defaultDPI = 150
	minDPI     = 36
	maxDPI     = 600
)

type Service struct {
	docs   DocumentResolver
	rast   pdf.Rasterizer
	asm    ArchiveAssembler
	store  ArchiveUploader // nil — архив уходит inline в ответе
	notify Notificator
	log    *logger.ZapLogger
}

func NewService(
	docs DocumentResolver,
	rast pdf.Rasterizer,
	asm ArchiveAssembler,
	store ArchiveUploader,
	notify Notificator,
	log *logger.ZapLogger,
) *Service {
	return &Service{
		docs:   docs,
		rast:   rast,
		asm:    asm,
		store:  store,
		notify: notify,
		log:    log,
	}
}

// Convert — fetch → rasterize → assemble, строго по очереди.
// Первая же ошибка останавливает конвейер, частичных архивов не бывает.
func (s *Service) Convert(ctx context.Context, req Request) (Response, error) {
	id := uuid.NewString()

	if err := validate(req); err != nil {
		return Response{}, s.fail(ctx, id, "validate", err)
	}

	dpi := clampDPI(req.DPI)

	s.info(id, "fetching document")
	doc, err := s.docs.Resolve(ctx, fetch.Reference{URL: req.URL, Inline: req.PDFBase64})
	if err != nil {
		return Response{}, s.fail(ctx, id, "fetch", err)
	}

	s.info(id, fmt.Sprintf("rasterizing %s at %d dpi", humanize.IBytes(uint64(doc.Size)), dpi))
	stream, err := s.rast.Rasterize(ctx, doc.Bytes, pdf.Options{DPI: dpi, Pages: req.Pages})
	if err != nil {
		return Response{}, s.fail(ctx, id, "rasterize", err)
	}
	defer stream.Close()

	s.info(id, "assembling archive")
	arch, err := s.asm.Assemble(stream)
	if err != nil {
		return Response{}, s.fail(ctx, id, "assemble", err)
	}

	resp := Response{
		PageCount:   arch.PageCount,
		ContentType: archive.ContentType,
	}

	if s.store != nil {
		url, err := s.store.SaveArchive(ctx, arch.Bytes, archive.ContentType)
		if err != nil {
			return Response{}, s.fail(ctx, id, "upload",
				converr.Wrap(converr.KindAssembly, err, "archive upload failed"))
		}
		resp.ArchiveURL = url
	} else {
		resp.Archive = arch.Bytes
	}

	s.info(id, fmt.Sprintf("done: %d pages, %s",
		arch.PageCount, humanize.IBytes(uint64(len(arch.Bytes)))))

	return resp, nil
}

func validate(req Request) error {
	if req.URL == "" && req.PDFBase64 == "" {
		return converr.New(converr.KindInvalidInput, "request must contain pdf_url or pdf_base64")
	}
	if req.URL != "" && req.PDFBase64 != "" {
		return converr.New(converr.KindInvalidInput, "both pdf_url and pdf_base64 supplied, expected exactly one")
	}
	if req.DPI < 0 {
		return converr.New(converr.KindInvalidInput, "dpi must be positive")
	}
	return nil
}

func clampDPI(dpi int) int {
	switch {
	case dpi == 0:
		return defaultDPI
	case dpi < minDPI:
		return minDPI
	case dpi > maxDPI:
		return maxDPI
	default:
		return dpi
	}
}

// fail — каждая ошибка компонента получает ровно один Kind из таксономии,
// неопознанное считаем дефектом окружения и шлём алерт
func (s *Service) fail(ctx context.Context, id, stage string, err error) error {
	if converr.KindOf(err) == "" {
		err = converr.Wrap(converr.KindEnvironment, err, "unexpected failure at %s", stage)
	}

	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("[convert %s] %s failed: %v", id, stage, err),
		Service: "pdf_zipper",
		Error:   err,
	})

	if converr.KindOf(err) == converr.KindEnvironment && s.notify != nil {
		_ = s.notify.Notify(ctx, err, "stage: "+stage)
	}

	return err
}

func (s *Service) info(id, msg string) {
	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[convert %s] %s", id, msg),
		Service: "pdf_zipper",
	})
}
