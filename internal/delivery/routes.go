package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(r chi.Router, h *ConvertHandler) {
	r.With(
		httputil.RecoverMiddleware,
		httprate.LimitByIP(30, time.Minute),
	).Post("/convert", h.Convert)
}
