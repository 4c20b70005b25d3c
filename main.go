package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"torrentmeta/internal/tracker"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, tracker.DefaultClient)
	stop()
	os.Exit(code)
}

// run is the whole CLI minus process setup. Errors are reported once here.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, client *tracker.Client) int {
	cfg, args, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: torrentmeta [flags] decode <bencoded-string> | info <path> | peers <path>")
		return exitUsage
	}

	logger := cfg.newLogger(stderr)
	command, arg := args[0], args[1]
	logger.Debug("running command", "command", command)

	switch command {
	case "decode":
		err = decodeCommand(stdout, arg)
	case "info":
		err = infoCommand(stdout, logger, arg)
	case "peers":
		err = peersCommand(ctx, stdout, logger, cfg, client, arg)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		return exitUsage
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", command, err)
		return exitError
	}
	return exitOK
}
