package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// parseSelection — разбор параметра pages: "" и "all" значат весь документ.
// Возвращает токены для pdfcpu ("2-5", "7"), либо InvalidInput.
func parseSelection(pages string) ([]string, error) {
	pages = strings.TrimSpace(pages)
	if pages == "" || strings.EqualFold(pages, "all") {
		return nil, nil
	}

	var tokens []string
	for _, raw := range strings.Split(pages, ",") {
		tok := strings.TrimSpace(raw)
		lo, hi, ok := strings.Cut(tok, "-")
		a, errA := strconv.Atoi(lo)
		if errA != nil || a < 1 {
			return nil, converr.New(converr.KindInvalidInput, "bad page selection %q", pages)
		}
		if ok {
			b, errB := strconv.Atoi(hi)
			if errB != nil || b < a {
				return nil, converr.New(converr.KindInvalidInput, "bad page selection %q", pages)
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// trimToSelection — вырезает выбранные страницы в новый PDF, чтобы
// pdftoppm всё равно запускался один раз
func trimToSelection(pdf []byte, selection []string) ([]byte, error) {
	var out bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.Trim(bytes.NewReader(pdf), &out, selection, conf); err != nil {
		return nil, converr.Wrap(converr.KindRasterization, err, "page selection failed")
	}
	return out.Bytes(), nil
}
