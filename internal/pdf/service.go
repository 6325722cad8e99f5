package pdf

import "context"

type Service struct {
	rast Rasterizer
}

func NewService(r Rasterizer) *Service {
	return &Service{rast: r}
}

func (s *Service) Rasterize(ctx context.Context, pdf []byte, opts Options) (PageStream, error) {
	return s.rast.Rasterize(ctx, pdf, opts)
}
