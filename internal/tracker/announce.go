package tracker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxResponseSize caps how much of a tracker response is read. Compact
// responses for a full peer list are a few kilobytes.
const maxResponseSize = 2 << 20

// buildURL appends the announce query to the tracker URL. info_hash and
// peer_id are percent-encoded byte by byte; url.Values would re-escape them.
func buildURL(req Request) (string, error) {
	u, err := url.Parse(req.AnnounceURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid announce URL: %w", ErrTrackerUnreachable, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported tracker scheme %q", ErrTrackerUnreachable, u.Scheme)
	}

	var q strings.Builder
	q.WriteString("info_hash=" + PercentEncode(req.InfoHash[:]))
	q.WriteString("&peer_id=" + PercentEncode(req.PeerID[:]))
	q.WriteString("&port=" + strconv.Itoa(int(req.Port)))
	q.WriteString("&uploaded=" + strconv.FormatInt(req.Uploaded, 10))
	q.WriteString("&downloaded=" + strconv.FormatInt(req.Downloaded, 10))
	q.WriteString("&left=" + strconv.FormatInt(req.Left, 10))
	q.WriteString("&compact=1")
	if req.Event != EventNone {
		q.WriteString("&event=" + url.QueryEscape(string(req.Event)))
	}
	if req.NumWant > 0 {
		q.WriteString("&numwant=" + strconv.Itoa(req.NumWant))
	}

	if u.RawQuery != "" {
		u.RawQuery += "&" + q.String()
	} else {
		u.RawQuery = q.String()
	}
	return u.String(), nil
}

// fetch issues one GET and returns the raw body. Cancelling ctx aborts the
// request.
func (c *Client) fetch(ctx context.Context, trackerURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, trackerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrackerUnreachable, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrackerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tracker returned HTTP %d", ErrTrackerUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrTrackerUnreachable, err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrTrackerResponseMalformed, maxResponseSize)
	}
	return body, nil
}
