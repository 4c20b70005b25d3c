package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"torrentmeta/internal/bencode"
	"torrentmeta/internal/torrent"
	"torrentmeta/internal/tracker"
)

// decodeCommand prints the decoded value as JSON.
func decodeCommand(out io.Writer, encoded string) error {
	decoded, err := bencode.Decode([]byte(encoded))
	if err != nil {
		return err
	}

	jsonOutput, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Errorf("failed to render decoded value: %w", err)
	}
	fmt.Fprintln(out, string(jsonOutput))
	return nil
}

func infoCommand(out io.Writer, logger *slog.Logger, path string) error {
	t, err := torrent.Open(path)
	if err != nil {
		return err
	}
	logger.Debug("parsed torrent", "name", t.Info.Name, "pieces", t.Info.PieceCount())

	fmt.Fprintf(out, "Tracker URL: %s\n", t.Announce)
	fmt.Fprintf(out, "Length: %d\n", t.Info.Length)
	fmt.Fprintf(out, "Info Hash: %s\n", t.InfoHash)
	fmt.Fprintf(out, "Piece Length: %d\n", t.Info.PieceLength)
	fmt.Fprintln(out, "Piece Hashes:")
	for _, h := range t.Info.PieceHashes {
		fmt.Fprintln(out, hex.EncodeToString(h[:]))
	}
	return nil
}

func peersCommand(ctx context.Context, out io.Writer, logger *slog.Logger, cfg Config, client *tracker.Client, path string) error {
	t, err := torrent.Open(path)
	if err != nil {
		return err
	}

	peerID, err := tracker.GeneratePeerID(cfg.PeerIDPrefix)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	logger.Info("announcing", "trackers", t.Trackers(), "info_hash", t.InfoHash, "peer_id", peerID, "port", cfg.Port)
	peers, err := client.GetPeers(ctx, t, peerID, uint16(cfg.Port))
	if err != nil {
		return err
	}
	logger.Info("tracker answered", "peers", len(peers))

	for _, p := range peers {
		fmt.Fprintln(out, p)
	}
	return nil
}
