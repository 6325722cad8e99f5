package pdf

import "context"

type Page struct {
	Index    int
	Bytes    []byte
	MimeType string
}

type Options struct {
	DPI   int
	Pages string // "", "all", "2-5", "1,3,7"
}

// PageStream — ленивая последовательность страниц в порядке документа.
// Next возвращает io.EOF когда страницы кончились, Close убирает temp-файлы.
type PageStream interface {
	Next() (Page, error)
	Count() int
	Close() error
}

type Rasterizer interface {
	Rasterize(ctx context.Context, pdf []byte, opts Options) (PageStream, error)
}
