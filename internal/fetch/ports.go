package fetch

import "context"

// Reference — ссылка на документ: либо URL, либо inline base64
type Reference struct {
	URL    string
	Inline string
}

type RawDocument struct {
	Bytes []byte
	Size  int64
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (RawDocument, error)
}
