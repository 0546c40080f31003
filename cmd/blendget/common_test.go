package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blendget/blendget/internal/platform"
	"github.com/blendget/blendget/internal/testutil"
)

func TestCacheDir(t *testing.T) {
	envDir := testutil.SetupTestEnv(t)

	t.Run("flag_override_wins", func(t *testing.T) {
		got, err := cacheDir("/explicit/dir")
		if err != nil {
			t.Fatalf("cacheDir: %v", err)
		}
		if got != "/explicit/dir" {
			t.Errorf("cacheDir = %q, want /explicit/dir", got)
		}
	})

	t.Run("env_override", func(t *testing.T) {
		got, err := cacheDir("")
		if err != nil {
			t.Fatalf("cacheDir: %v", err)
		}
		if got != envDir {
			t.Errorf("cacheDir = %q, want %q", got, envDir)
		}
	})

	t.Run("user_cache_fallback", func(t *testing.T) {
		t.Setenv("BLENDGET_CACHE_DIR", "")
		got, err := cacheDir("")
		if err != nil {
			t.Fatalf("cacheDir: %v", err)
		}
		if filepath.Base(got) != "blendget" {
			t.Errorf("cacheDir = %q, want a blendget subdirectory", got)
		}
	})
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name         string
		os           string
		bits         int
		arch         string
		wantPlatform platform.OS
		wantBits     platform.Bits
		wantErr      string
	}{
		{
			name:         "explicit_target",
			os:           "windows",
			bits:         64,
			wantPlatform: platform.Windows,
			wantBits:     platform.Bits64,
		},
		{
			name:         "os_aliases_normalize",
			os:           "darwin",
			bits:         64,
			wantPlatform: platform.MacOS,
			wantBits:     platform.Bits64,
		},
		{
			name:         "explicit_32_bit",
			os:           "linux",
			bits:         32,
			wantPlatform: platform.Linux,
			wantBits:     platform.Bits32,
		},
		{
			name:    "invalid_os",
			os:      "amiga",
			bits:    64,
			wantErr: "amiga",
		},
		{
			name:    "invalid_bits",
			os:      "linux",
			bits:    16,
			wantErr: "16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := buildRequest(context.Background(), tt.os, tt.bits, tt.arch)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got error %v, want one mentioning %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildRequest: %v", err)
			}
			if req.Platform != tt.wantPlatform {
				t.Errorf("platform = %q, want %q", req.Platform, tt.wantPlatform)
			}
			if req.Bits != tt.wantBits {
				t.Errorf("bits = %d, want %d", req.Bits, tt.wantBits)
			}
		})
	}
}

func TestBuildRequestDetectsHost(t *testing.T) {
	req, err := buildRequest(context.Background(), "", 0, "")
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Platform == platform.Unknown {
		t.Error("host detection left the platform unset")
	}
	if req.Bits != platform.Bits32 && req.Bits != platform.Bits64 {
		t.Errorf("bits = %d, want 32 or 64", req.Bits)
	}
}

func TestKVLogger(t *testing.T) {
	var buf strings.Builder
	l := &kvLogger{w: &buf, debug: false}

	l.Info("resolved release", "version", "2.93.0", "platform", "linux")
	l.Debug("hidden without debug", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "resolved release version=2.93.0 platform=linux") {
		t.Errorf("info line missing or malformed: %q", out)
	}
	if strings.Contains(out, "hidden without debug") {
		t.Errorf("debug line emitted while disabled: %q", out)
	}

	l.debug = true
	l.Debug("visible with debug", "key", "value")
	if !strings.Contains(buf.String(), "visible with debug key=value") {
		t.Errorf("debug line missing while enabled: %q", buf.String())
	}
}
