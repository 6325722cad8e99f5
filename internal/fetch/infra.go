package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/pdf_zipper/internal/converr"
	"github.com/dustin/go-humanize"
)

const (
	defaultMaxBytes = int64(50 << 20) // 50 MiB
	defaultTimeout  = 30 * time.Second
	maxRedirects    = 5
)

type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPFetcher() *HTTPFetcher {
	maxBytes := defaultMaxBytes
	if v := os.Getenv("FETCH_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxBytes = n
		}
	}

	timeout := defaultTimeout
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// Fetch — одиночный GET без ретраев, ретраи — забота вызывающего сценария
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (RawDocument, error) {
	log.Printf("[fetch] GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RawDocument{}, converr.Wrap(converr.KindInvalidInput, err, "bad document url %q", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return RawDocument{}, converr.Wrap(converr.KindFetch, err, "download timed out")
		}
		return RawDocument{}, converr.Wrap(converr.KindFetch, err, "download failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return RawDocument{}, converr.New(converr.KindFetch, "remote returned status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return RawDocument{}, converr.Wrap(converr.KindFetch, err, "reading response body")
	}
	if int64(len(body)) > f.maxBytes {
		return RawDocument{}, converr.New(converr.KindFetch,
			"document exceeds size limit of %s", humanize.IBytes(uint64(f.maxBytes)))
	}

	log.Printf("[fetch] got %s", humanize.IBytes(uint64(len(body))))

	return RawDocument{Bytes: body, Size: int64(len(body))}, nil
}
