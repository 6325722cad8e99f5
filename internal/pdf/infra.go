package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
)

const defaultTimeout = 60 * time.Second

type PopplerRasterizer struct {
	binary  string
	timeout time.Duration
}

func NewPopplerRasterizer() *PopplerRasterizer {
	timeout := defaultTimeout
	if v := os.Getenv("RASTER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}
	return &PopplerRasterizer{binary: "pdftoppm", timeout: timeout}
}

// Rasterize — один запуск pdftoppm на весь документ, страницы читаются лениво
func (r *PopplerRasterizer) Rasterize(
	ctx context.Context,
	pdf []byte,
	opts Options,
) (PageStream, error) {

	sel, err := parseSelection(opts.Pages)
	if err != nil {
		return nil, err
	}
	if sel != nil {
		trimmed, err := trimToSelection(pdf, sel)
		if err != nil {
			return nil, err
		}
		pdf = trimmed
	}

	tmpDir, err := os.MkdirTemp("", "pdfconv-*")
	if err != nil {
		return nil, converr.Wrap(converr.KindEnvironment, err, "cannot create temp dir")
	}

	cleanup := func() { os.RemoveAll(tmpDir) }

	input := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0644); err != nil {
		cleanup()
		return nil, converr.Wrap(converr.KindEnvironment, err, "cannot write temp pdf")
	}

	outBase := filepath.Join(tmpDir, "page")

	// свой бюджет времени, отдельный от таймаута платформы
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{"-jpeg"}
	if opts.DPI > 0 {
		args = append(args, "-r", strconv.Itoa(opts.DPI))
	}
	args = append(args, input, outBase)

	cmd := exec.CommandContext(runCtx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Printf("[pdf] running %s %s", r.binary, strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		cleanup()
		return nil, classifyRunError(runCtx, err, stderr.String())
	}

	files, err := collectPageFiles(tmpDir)
	if err != nil {
		cleanup()
		return nil, converr.Wrap(converr.KindEnvironment, err, "cannot list rasterizer output")
	}

	log.Printf("[pdf] pages generated: %d", len(files))

	return &fileStream{dir: tmpDir, files: files}, nil
}

func classifyRunError(ctx context.Context, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return converr.Wrap(converr.KindEnvironment, err, "pdftoppm is not installed")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return converr.New(converr.KindRasterization, "rasterization timed out")
	}
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = err.Error()
	}
	return converr.New(converr.KindRasterization, "pdftoppm failed: %s", msg)
}

// collectPageFiles — перечисляем вывод poppler. Он пишет page-1.jpg либо
// page-01.jpg в зависимости от числа страниц, поэтому сортируем по номеру,
// а не лексикографически.
func collectPageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type numbered struct {
		name string
		num  int
	}

	var pages []numbered
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "page-") || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		numPart := strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".jpg")
		n, err := strconv.Atoi(numPart)
		if err != nil {
			continue
		}
		pages = append(pages, numbered{name: name, num: n})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.name
	}
	return names, nil
}

// fileStream — страницы читаются с диска по одной, Close убирает каталог
type fileStream struct {
	dir    string
	files  []string
	pos    int
	closed bool
}

func (s *fileStream) Next() (Page, error) {
	if s.pos >= len(s.files) {
		return Page{}, io.EOF
	}
	b, err := os.ReadFile(filepath.Join(s.dir, s.files[s.pos]))
	if err != nil {
		return Page{}, fmt.Errorf("read page %d: %w", s.pos+1, err)
	}
	s.pos++
	return Page{Index: s.pos, Bytes: b, MimeType: "image/jpeg"}, nil
}

func (s *fileStream) Count() int {
	return len(s.files)
}

func (s *fileStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return os.RemoveAll(s.dir)
}
