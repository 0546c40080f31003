package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/blendget/blendget/internal/release"
)

// runList handles the `blendget list` subcommand.
func runList(args []string) (int, error) {
	fs := flag.NewFlagSet("blendget list", flag.ContinueOnError)
	osFlag := fs.String("os", "", "target operating system: linux, macos or windows")
	bitsFlag := fs.Int("bits", 0, "target bit-width: 32 or 64")
	archFlag := fs.String("arch", "", "target architecture, e.g. x86_64 or arm64")
	max := fs.Int("max", 0, "maximum number of versions to list (0 = all)")
	quiet := fs.Bool("quiet", false, "suppress diagnostics")
	if err := fs.Parse(args); err != nil {
		return 1, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req, err := buildRequest(ctx, *osFlag, *bitsFlag, *archFlag)
	if err != nil {
		return 1, err
	}

	resolver, err := release.NewResolver(release.Config{
		Fetcher: release.NewHTTPFetcher(),
		Logger:  newLogger(*quiet),
	})
	if err != nil {
		return 1, err
	}

	entries, err := resolver.List(ctx, req, *max)
	if err != nil {
		return 1, err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tFILE\tSIZE\tMODIFIED")
	for _, e := range entries {
		version := "?"
		if e.Version != nil {
			version = e.Version.String()
		}
		size := "-"
		if e.Size > 0 {
			size = humanize.Bytes(uint64(e.Size))
		}
		modified := "-"
		if !e.ModTime.IsZero() {
			modified = e.ModTime.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", version, e.Name, size, modified)
	}
	if err := w.Flush(); err != nil {
		return 1, err
	}
	return 0, nil
}
