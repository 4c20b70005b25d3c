package tracker

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

var (
	// ErrTrackerUnreachable reports a failed request or a non-200 status.
	ErrTrackerUnreachable = errors.New("tracker unreachable")
	// ErrTrackerResponseMalformed reports a body that is not a bencode
	// dictionary with a compact peers byte string, or a tracker failure.
	ErrTrackerResponseMalformed = errors.New("malformed tracker response")
	// ErrCompactPeerListInvalid reports a peers blob that is not a multiple
	// of six bytes.
	ErrCompactPeerListInvalid = errors.New("invalid compact peer list")
)

type PeerID [20]byte

// For log output
func (id PeerID) String() string {
	return fmt.Sprintf("%x", id[:])
}

type Event string

const (
	EventStarted   Event = "started"
	EventStopped   Event = "stopped"
	EventCompleted Event = "completed"
	EventNone      Event = ""
)

// Peer is an IPv4 endpoint from a compact peer list.
type Peer struct {
	IP   net.IP
	Port uint16
}

func (p Peer) String() string {
	return net.JoinHostPort(p.IP.String(), strconv.Itoa(int(p.Port)))
}

// Request holds the announce parameters sent to an HTTP tracker. Compact
// peer lists are always requested.
type Request struct {
	AnnounceURL string
	InfoHash    [20]byte
	PeerID      PeerID
	Port        uint16
	Uploaded    int64
	Downloaded  int64
	Left        int64
	Event       Event
	NumWant     int
}

// Response is a decoded tracker announce response. Fields other than Peers
// are zero when the tracker omits them.
type Response struct {
	Interval       int
	MinInterval    int
	Complete       int
	Incomplete     int
	TrackerID      string
	WarningMessage string
	Peers          []Peer
}
