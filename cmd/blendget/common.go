package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blendget/blendget/internal/platform"
	"github.com/blendget/blendget/internal/release"
)

// cacheDir resolves the cache directory: explicit flag, then the
// BLENDGET_CACHE_DIR environment override (used by tests), then the
// platform-appropriate user cache location.
func cacheDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("BLENDGET_CACHE_DIR"); env != "" {
		return env, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache directory: %w", err)
	}
	return filepath.Join(base, "blendget"), nil
}

// buildRequest combines flag overrides with host detection into a
// resolution request. Host introspection only runs for values the user did
// not override.
func buildRequest(ctx context.Context, osFlag string, bitsFlag int, archFlag string) (release.Request, error) {
	var req release.Request

	needHost := osFlag == "" || bitsFlag == 0
	var host *platform.Info
	if needHost {
		var err error
		host, err = platform.NewDetector().Detect(ctx)
		if err != nil {
			return req, fmt.Errorf("detect host platform: %w", err)
		}
	}

	if osFlag != "" {
		target, err := platform.NormalizeOS(osFlag)
		if err != nil {
			return req, err
		}
		req.Platform = target
	} else {
		req.Platform = host.OS
	}

	switch bitsFlag {
	case 0:
		req.Bits = host.Bits
	case 32:
		req.Bits = platform.Bits32
	case 64:
		req.Bits = platform.Bits64
	default:
		return req, fmt.Errorf("invalid bits %d: must be either 32 or 64", bitsFlag)
	}

	req.Arch = archFlag
	return req, nil
}

// kvLogger writes key-value log lines to w. Debug lines only appear when
// BLENDGET_DEBUG is set.
type kvLogger struct {
	w     io.Writer
	debug bool
}

func newLogger(quiet bool) release.Logger {
	if quiet {
		return nil
	}
	return &kvLogger{w: os.Stderr, debug: os.Getenv("BLENDGET_DEBUG") != ""}
}

func (l *kvLogger) Debug(msg string, keysAndValues ...interface{}) {
	if l.debug {
		l.write(msg, keysAndValues)
	}
}

func (l *kvLogger) Info(msg string, keysAndValues ...interface{}) {
	l.write(msg, keysAndValues)
}

func (l *kvLogger) write(msg string, keysAndValues []interface{}) {
	fmt.Fprint(l.w, msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(l.w, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintln(l.w)
}
