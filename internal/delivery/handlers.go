package delivery

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/Vovarama1992/pdf_zipper/internal/convert"
	"github.com/goccy/go-json"
)

type ConvertHandler struct {
	svc convert.Converter
	log *logger.ZapLogger
}

func NewConvertHandler(svc convert.Converter, log *logger.ZapLogger) *ConvertHandler {
	return &ConvertHandler{
		svc: svc,
		log: log,
	}
}

func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeFailure(w, converr.New(converr.KindInvalidInput, "failed to read body"))
		return
	}

	req := parseBody(body)

	resp, err := h.svc.Convert(r.Context(), req)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "conversion failed",
			Service: "pdf_zipper",
			Error:   err,
		})
		writeFailure(w, err)
		return
	}

	out := convertSuccess{
		Success:     true,
		PageCount:   resp.PageCount,
		ContentType: resp.ContentType,
		ArchiveURL:  resp.ArchiveURL,
	}
	if resp.ArchiveURL == "" {
		out.Archive = base64.StdEncoding.EncodeToString(resp.Archive)
	}

	writeJSON(w, http.StatusOK, out)
}

// parseBody — тело либо JSON с полями запроса, либо сырой base64 PDF
func parseBody(body []byte) convert.Request {
	clean := bytes.TrimSpace(body)

	var req convertRequest
	if err := json.Unmarshal(clean, &req); err == nil &&
		(req.PDFURL != "" || req.PDFBase64 != "") {
		return convert.Request{
			URL:       req.PDFURL,
			PDFBase64: req.PDFBase64,
			DPI:       req.DPI,
			Pages:     req.Pages,
		}
	}

	return convert.Request{PDFBase64: string(clean)}
}

func writeFailure(w http.ResponseWriter, err error) {
	kind := converr.KindOf(err)
	if kind == "" {
		kind = converr.KindEnvironment
	}

	writeJSON(w, statusFor(kind), convertFailure{
		Success:   false,
		ErrorKind: string(kind),
		Message:   converr.MessageOf(err),
	})
}

func statusFor(kind converr.Kind) int {
	switch kind {
	case converr.KindInvalidInput:
		return http.StatusBadRequest
	case converr.KindFetch:
		return http.StatusBadGateway
	case converr.KindRasterization:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
