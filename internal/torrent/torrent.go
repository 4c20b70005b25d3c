package torrent

import "errors"

var (
	// ErrMissingField reports a required metainfo field that is absent or
	// has the wrong bencode type.
	ErrMissingField = errors.New("missing or invalid metainfo field")
	// ErrInvalidPieceData reports a pieces blob that is not a whole number
	// of SHA1 hashes.
	ErrInvalidPieceData = errors.New("invalid piece data")
)

// Torrent is the metainfo of a single-file torrent.
type Torrent struct {
	Announce     string
	AnnounceList [][]string
	Comment      string
	CreatedBy    string
	CreationDate int64
	Info         Info

	// InfoHash is computed once during extraction.
	InfoHash InfoHash
}

// Trackers returns the announce URL followed by every announce-list entry,
// tier by tier, without duplicates.
func (t *Torrent) Trackers() []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	add(t.Announce)
	for _, tier := range t.AnnounceList {
		for _, u := range tier {
			add(u)
		}
	}
	return urls
}
