package torrent

import (
	"fmt"
	"os"
	"strings"

	"torrentmeta/internal/bencode"
)

func Open(filename string) (*Torrent, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read torrent file: %w", err)
	}

	return Parse(data)
}

// Parse decodes raw metainfo bytes and extracts the torrent from them.
func Parse(data []byte) (*Torrent, error) {
	root, err := bencode.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bencode: %w", err)
	}

	return Extract(root)
}

// Extract projects a decoded metainfo dictionary onto a Torrent and computes
// its info hash.
func Extract(root bencode.Value) (*Torrent, error) {
	torrentMap, ok := root.(bencode.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: metainfo is a %s, not a dictionary", ErrMissingField, kindOf(root))
	}

	announce, ok := torrentMap.GetString("announce")
	if !ok {
		return nil, missingField("announce", torrentMap)
	}

	infoMap, ok := torrentMap.GetDict("info")
	if !ok {
		return nil, missingField("info", torrentMap)
	}

	info, err := parseInfo(infoMap)
	if err != nil {
		return nil, err
	}

	infoHash, err := computeInfoHash(infoMap)
	if err != nil {
		return nil, err
	}

	t := &Torrent{
		Announce:     string(announce),
		AnnounceList: parseAnnounceList(torrentMap),
		Info:         *info,
		InfoHash:     infoHash,
	}

	// Optional fields with the wrong type are ignored.
	if comment, ok := torrentMap.GetString("comment"); ok {
		t.Comment = string(comment)
	}
	if createdBy, ok := torrentMap.GetString("created by"); ok {
		t.CreatedBy = string(createdBy)
	}
	if creationDate, ok := torrentMap.GetInteger("creation date"); ok {
		t.CreationDate = int64(creationDate)
	}

	return t, nil
}

func parseInfo(infoMap bencode.Dict) (*Info, error) {
	name, ok := infoMap.GetString("name")
	if !ok {
		return nil, missingField("info.name", infoMap)
	}

	length, ok := infoMap.GetInteger("length")
	if !ok {
		return nil, missingField("info.length", infoMap)
	}

	pieceLength, ok := infoMap.GetInteger("piece length")
	if !ok {
		return nil, missingField("info.piece length", infoMap)
	}

	pieces, ok := infoMap.GetString("pieces")
	if !ok {
		return nil, missingField("info.pieces", infoMap)
	}
	if len(pieces)%HashSize != 0 {
		return nil, fmt.Errorf("%w: pieces length %d is not a multiple of %d", ErrInvalidPieceData, len(pieces), HashSize)
	}

	info := &Info{
		Name:        string(name),
		Length:      int64(length),
		PieceLength: int64(pieceLength),
		Pieces:      pieces,
		PieceHashes: splitPieces(pieces),
	}

	return info, nil
}

// parseAnnounceList reads the optional tiered tracker list. Entries that are
// not lists of strings are skipped.
func parseAnnounceList(torrentMap bencode.Dict) [][]string {
	tiers, ok := torrentMap.GetList("announce-list")
	if !ok {
		return nil
	}

	var announceList [][]string
	for _, tierValue := range tiers {
		tier, ok := tierValue.(bencode.List)
		if !ok {
			continue
		}
		var urls []string
		for _, urlValue := range tier {
			if u, ok := urlValue.(bencode.String); ok {
				urls = append(urls, string(u))
			}
		}
		if len(urls) > 0 {
			announceList = append(announceList, urls)
		}
	}
	return announceList
}

func missingField(path string, parent bencode.Dict) error {
	v, ok := parent[path[strings.LastIndexByte(path, '.')+1:]]
	if !ok {
		return fmt.Errorf("%w: %q is absent", ErrMissingField, path)
	}
	return fmt.Errorf("%w: %q is a %s", ErrMissingField, path, kindOf(v))
}

func kindOf(v bencode.Value) string {
	if v == nil {
		return "nil value"
	}
	return v.Kind().String()
}
