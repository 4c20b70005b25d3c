package tracker

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"

	"torrentmeta/internal/torrent"
)

// HTTPDoer is the transport used to reach trackers. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client announces to HTTP trackers. It keeps no state between calls and
// never retries; wrap calls with a context deadline to bound them.
type Client struct {
	httpClient HTTPDoer
}

// NewClient returns a client using httpClient, or http.DefaultClient if nil.
func NewClient(httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

var DefaultClient = NewClient(nil)

// Announce asks the torrent's tracker for peers using DefaultClient.
func Announce(ctx context.Context, t *torrent.Torrent, peerID PeerID, port uint16) ([]Peer, error) {
	return DefaultClient.GetPeers(ctx, t, peerID, port)
}

// NewRequest builds the request for a first announce: nothing uploaded or
// downloaded and the whole length left.
func NewRequest(t *torrent.Torrent, peerID PeerID, port uint16) Request {
	return Request{
		AnnounceURL: t.Announce,
		InfoHash:    t.InfoHash,
		PeerID:      peerID,
		Port:        port,
		Left:        t.Info.Length,
	}
}

// GetPeers announces t to its trackers in order, the announce URL first and
// then each announce-list entry, and returns the peers from the first one that
// answers, in the order that tracker sent them. If every tracker fails the
// errors are joined.
func (c *Client) GetPeers(ctx context.Context, t *torrent.Torrent, peerID PeerID, port uint16) ([]Peer, error) {
	req := NewRequest(t, peerID, port)

	var errs []error
	for _, announceURL := range t.Trackers() {
		req.AnnounceURL = announceURL
		resp, err := c.Announce(ctx, req)
		if err == nil {
			return resp.Peers, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", announceURL, err))
		if ctx.Err() != nil {
			break
		}
	}

	switch len(errs) {
	case 0:
		return nil, fmt.Errorf("%w: torrent has no tracker URL", ErrTrackerUnreachable)
	case 1:
		return nil, errs[0]
	default:
		return nil, errors.Join(errs...)
	}
}

// Announce sends req and decodes the tracker's response.
func (c *Client) Announce(ctx context.Context, req Request) (*Response, error) {
	trackerURL, err := buildURL(req)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, trackerURL)
	if err != nil {
		return nil, err
	}

	return ParseResponse(body)
}

// GeneratePeerID returns prefix (Azureus style, e.g. "-TM0100-") followed by
// random bytes up to 20 bytes. A prefix longer than 20 bytes is truncated.
func GeneratePeerID(prefix string) (PeerID, error) {
	var id PeerID
	n := copy(id[:], prefix)
	if _, err := rand.Read(id[n:]); err != nil {
		return PeerID{}, fmt.Errorf("failed to generate peer ID: %w", err)
	}
	return id, nil
}
