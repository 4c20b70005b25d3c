package torrent

// HashSize is the length of a SHA1 piece hash.
const HashSize = 20

// Info is the info dictionary of a single-file torrent.
type Info struct {
	Name        string
	Length      int64
	PieceLength int64

	// Pieces is the raw concatenation of piece hashes.
	Pieces      []byte
	PieceHashes [][HashSize]byte
}

func (i *Info) PieceCount() int {
	return len(i.PieceHashes)
}

// PieceHash returns the expected hash of piece index.
func (i *Info) PieceHash(index int) ([HashSize]byte, bool) {
	if index < 0 || index >= len(i.PieceHashes) {
		return [HashSize]byte{}, false
	}
	return i.PieceHashes[index], true
}

// splitPieces slices the pieces blob into consecutive 20-byte hashes. The
// caller has already checked that the length is a multiple of HashSize.
func splitPieces(pieces []byte) [][HashSize]byte {
	hashes := make([][HashSize]byte, len(pieces)/HashSize)
	for i := range hashes {
		copy(hashes[i][:], pieces[i*HashSize:(i+1)*HashSize])
	}
	return hashes
}
