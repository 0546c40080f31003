package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Printf("blendget %s\n", Version)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "list":
			exit(runList(os.Args[2:]))
		case "cache":
			exit(runCache(os.Args[2:]))
		default:
			exit(runDownload(os.Args[1:]))
		}
	}

	printUsage()
	os.Exit(1)
}

// exit reports an error, if any, and terminates with the given code.
func exit(code int, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Println("blendget - portable Blender release downloader")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  blendget <version> [options]   Download a release. The version is a number")
	fmt.Println("                                 like 4.2.1 (a trailing wildcard selects a")
	fmt.Println("                                 family: 2.9 picks the newest 2.9x), or one")
	fmt.Println("                                 of 'stable', 'lts', 'nightly'.")
	fmt.Println("  blendget list [options]        List available versions for a platform")
	fmt.Println("  blendget cache path|clear      Show or empty the download cache")
	fmt.Println("  blendget --version             Show program version")
	fmt.Println()
	fmt.Println("Download options:")
	fmt.Println("  --os <name>                Target OS: linux, macos, windows (default: host)")
	fmt.Println("  --bits <32|64>             Target bit-width (default: host)")
	fmt.Println("  --arch <name>              Target architecture, e.g. x86_64, arm64")
	fmt.Println("  --extract                  Extract (or mount, for .dmg) the archive")
	fmt.Println("  --print-executable         Print the Blender executable path (with --extract)")
	fmt.Println("  --print-python-executable  Print the bundled Python path (with --extract)")
	fmt.Println("  --remove-archive           Delete the archive after extraction")
	fmt.Println("  --output-dir <dir>         Cache directory override")
	fmt.Println("  --quiet                    Suppress progress output")
}
