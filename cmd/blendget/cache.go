package main

import (
	"flag"
	"fmt"
	"os"
)

// runCache handles the `blendget cache` subcommand.
func runCache(args []string) (int, error) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blendget cache path|clear [--output-dir <dir>]")
		return 1, nil
	}
	action := args[0]

	fs := flag.NewFlagSet("blendget cache", flag.ContinueOnError)
	outputDir := fs.String("output-dir", "", "cache directory override")
	if err := fs.Parse(args[1:]); err != nil {
		return 1, nil
	}

	dir, err := cacheDir(*outputDir)
	if err != nil {
		return 1, err
	}

	switch action {
	case "path":
		fmt.Println(dir)
		return 0, nil
	case "clear":
		if err := os.RemoveAll(dir); err != nil {
			return 1, fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return 0, nil
	}

	return 1, fmt.Errorf("unknown cache action %q: must be 'path' or 'clear'", action)
}
