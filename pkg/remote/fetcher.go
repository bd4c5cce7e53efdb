package remote

import (
	"context"
	"log/slog"
)

// Fetcher downloads template archives.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a Fetcher on top of c.
func NewFetcher(c *Client) *Fetcher {
	return &Fetcher{client: c}
}

// Fetch downloads url under p. The returned error is an *ExhaustedError whose
// Err is the last attempt's failure, or ctx's error on cancellation.
func (f *Fetcher) Fetch(ctx context.Context, url string, p Policy) ([]byte, error) {
	var data []byte
	err := Do(ctx, p, "fetch archive", func(ctx context.Context) error {
		body, err := f.client.get(ctx, url)
		if err != nil {
			return err
		}
		data = body
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("archive downloaded", "url", url, "bytes", len(data))
	return data, nil
}
