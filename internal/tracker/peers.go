package tracker

import (
	"encoding/binary"
	"fmt"
	"net"
)

// compactPeerSize is 4 bytes of IPv4 address and 2 bytes of port.
const compactPeerSize = 6

// ParseCompactPeers unpacks a compact peer list in wire order.
func ParseCompactPeers(data []byte) ([]Peer, error) {
	if len(data)%compactPeerSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrCompactPeerListInvalid, len(data), compactPeerSize)
	}

	peers := make([]Peer, len(data)/compactPeerSize)
	for i := range peers {
		offset := i * compactPeerSize
		peers[i] = Peer{
			IP:   net.IPv4(data[offset], data[offset+1], data[offset+2], data[offset+3]),
			Port: binary.BigEndian.Uint16(data[offset+4 : offset+6]),
		}
	}
	return peers, nil
}
