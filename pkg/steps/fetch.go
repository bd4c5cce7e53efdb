package steps

import (
	"context"
	"log/slog"

	"github.com/systemstart/many-scaffold/pkg/api"
	"github.com/systemstart/many-scaffold/pkg/archive"
	"github.com/systemstart/many-scaffold/pkg/remote"
)

// ArchiveFetcher downloads archive bytes.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, url string, p remote.Policy) ([]byte, error)
}

type fetchRemoteAction struct {
	fetcher ArchiveFetcher
}

// NewFetchRemote creates the action that downloads ResolvedURL into Archive.
func NewFetchRemote(f ArchiveFetcher) Action {
	return &fetchRemoteAction{fetcher: f}
}

func (a *fetchRemoteAction) Name() string { return api.ActionFetchRemote }

func (a *fetchRemoteAction) Recovery() Recovery {
	return Recovery{Recoverable: true, Fallback: api.ActionFetchLocal}
}

func (a *fetchRemoteAction) Run(ctx context.Context, sc *ScaffoldContext) error {
	if sc.Archive != nil || sc.ResolvedURL == "" {
		return nil
	}

	data, err := a.fetcher.Fetch(ctx, sc.ResolvedURL, sc.RetryPolicy())
	if err != nil {
		kind := FetchNetwork
		if remote.IsRateLimited(err) {
			kind = FetchRateLimited
		}
		return &FetchError{URL: sc.ResolvedURL, Kind: kind, Err: err}
	}

	h, err := archive.FromBytes(data)
	if err != nil {
		return &FetchError{URL: sc.ResolvedURL, Kind: FetchNetwork, Err: err}
	}

	sc.Archive = h
	slog.Info("template archive downloaded", "url", sc.ResolvedURL, "bytes", h.Size(), "digest", h.Digest())
	return nil
}
