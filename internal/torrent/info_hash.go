package torrent

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"torrentmeta/internal/bencode"
)

type InfoHash [20]byte

func (ih InfoHash) String() string {
	return hex.EncodeToString(ih[:])
}

// computeInfoHash hashes the canonical re-encoding of the info dictionary,
// not the bytes it was decoded from.
func computeInfoHash(info bencode.Dict) (InfoHash, error) {
	encoded, err := bencode.Encode(info)
	if err != nil {
		return InfoHash{}, fmt.Errorf("failed to encode info dictionary: %w", err)
	}
	return InfoHash(sha1.Sum(encoded)), nil
}
