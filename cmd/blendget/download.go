package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/blendget/blendget/internal/download"
	"github.com/blendget/blendget/internal/extract"
	"github.com/blendget/blendget/internal/release"
)

// runDownload handles the default `blendget <version>` invocation.
// Returns an exit code and an error for the driver to report.
func runDownload(args []string) (int, error) {
	// The version token may precede the flags.
	token := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		token = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("blendget", flag.ContinueOnError)
	osFlag := fs.String("os", "", "target operating system: linux, macos or windows")
	bitsFlag := fs.Int("bits", 0, "target bit-width: 32 or 64")
	archFlag := fs.String("arch", "", "target architecture, e.g. x86_64 or arm64")
	extractFlag := fs.Bool("extract", false, "extract or mount the downloaded archive")
	printExe := fs.Bool("print-executable", false, "print the executable path after extraction")
	printPython := fs.Bool("print-python-executable", false, "print the bundled Python interpreter path after extraction")
	removeArchive := fs.Bool("remove-archive", false, "delete the archive after extraction")
	outputDir := fs.String("output-dir", "", "cache directory override")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return 1, nil // flag package already printed the problem
	}

	if token == "" && fs.NArg() > 0 {
		token = fs.Arg(0)
	}
	if token == "" {
		printUsage()
		return 1, nil
	}
	if *removeArchive && !*extractFlag {
		return 1, fmt.Errorf("--remove-archive only makes sense along with --extract")
	}
	if (*printExe || *printPython) && !*extractFlag {
		return 1, fmt.Errorf("--print-executable and --print-python-executable require --extract")
	}

	// Ctrl-C cancels the download; the temp-file discipline guarantees no
	// corrupt cache entry is left behind.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req, err := buildRequest(ctx, *osFlag, *bitsFlag, *archFlag)
	if err != nil {
		return 1, err
	}
	req.Token = token

	resolver, err := release.NewResolver(release.Config{
		Fetcher: release.NewHTTPFetcher(),
		Logger:  newLogger(*quiet),
	})
	if err != nil {
		return 1, err
	}

	entry, err := resolver.Resolve(ctx, req)
	if err != nil {
		return 1, err
	}

	dir, err := cacheDir(*outputDir)
	if err != nil {
		return 1, err
	}
	index, err := download.NewFileIndex(dir)
	if err != nil {
		return 1, err
	}
	downloader, err := download.New(download.Config{
		CacheDir: dir,
		Index:    index,
		Progress: download.AutoProgress(entry.Name, *quiet),
	})
	if err != nil {
		return 1, err
	}

	archivePath, cached, err := downloader.Get(ctx, entry)
	if err != nil {
		return 1, err
	}
	if cached && !*quiet {
		fmt.Fprintf(os.Stderr, "Using cached archive %s\n", entry.Name)
	}

	if !*extractFlag {
		fmt.Println(archivePath)
		return 0, nil
	}

	root, mounted, err := extract.NewExtractor().Unpack(archivePath)
	if err != nil {
		return 1, err
	}

	printed := false
	if *printExe {
		exe, err := extract.FindExecutable(root, req.Platform)
		if err != nil {
			return 1, err
		}
		fmt.Println(exe)
		printed = true
	}
	if *printPython {
		python, err := extract.FindPython(root, req.Platform)
		if err != nil {
			return 1, err
		}
		fmt.Println(python)
		printed = true
	}
	if !printed {
		fmt.Println(root)
	}

	if *removeArchive && !mounted {
		if err := os.Remove(archivePath); err != nil {
			return 1, fmt.Errorf("remove archive: %w", err)
		}
	}
	return 0, nil
}
