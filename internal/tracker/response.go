package tracker

import (
	"fmt"

	"torrentmeta/internal/bencode"
)

// ParseResponse decodes a bencoded announce response. Only the compact peer
// format is accepted.
func ParseResponse(body []byte) (*Response, error) {
	root, err := bencode.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTrackerResponseMalformed, err)
	}

	dict, ok := root.(bencode.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: top-level %s, want dictionary", ErrTrackerResponseMalformed, root.Kind())
	}

	if reason, ok := dict.GetString("failure reason"); ok {
		return nil, fmt.Errorf("%w: tracker failure: %s", ErrTrackerResponseMalformed, reason)
	}

	peersData, ok := dict.GetString("peers")
	if !ok {
		return nil, fmt.Errorf("%w: missing compact 'peers' byte string", ErrTrackerResponseMalformed)
	}

	peers, err := ParseCompactPeers(peersData)
	if err != nil {
		return nil, err
	}

	resp := &Response{Peers: peers}
	if interval, ok := dict.GetInteger("interval"); ok {
		resp.Interval = int(interval)
	}
	if minInterval, ok := dict.GetInteger("min interval"); ok {
		resp.MinInterval = int(minInterval)
	}
	if complete, ok := dict.GetInteger("complete"); ok {
		resp.Complete = int(complete)
	}
	if incomplete, ok := dict.GetInteger("incomplete"); ok {
		resp.Incomplete = int(incomplete)
	}
	if trackerID, ok := dict.GetString("tracker id"); ok {
		resp.TrackerID = string(trackerID)
	}
	if warning, ok := dict.GetString("warning message"); ok {
		resp.WarningMessage = string(warning)
	}

	return resp, nil
}
