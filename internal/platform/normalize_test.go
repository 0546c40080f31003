package platform

import "testing"

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OS
		wantErr bool
	}{
		{name: "linux", input: "linux", want: Linux},
		{name: "darwin_runtime_name", input: "darwin", want: MacOS},
		{name: "macos", input: "macos", want: MacOS},
		{name: "legacy_osx", input: "OSX", want: MacOS},
		{name: "windows", input: "windows", want: Windows},
		{name: "short_win", input: "win", want: Windows},
		{name: "mixed_case", input: "Windows", want: Windows},
		{name: "unknown", input: "plan9", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeOS(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeOS(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeOS(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeOS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"amd64", "x86_64"},
		{"x86_64", "x86_64"},
		{"x64", "x86_64"},
		{"arm64", "arm64"},
		{"aarch64", "arm64"},
		{"386", "i686"},
		{"i386", "i686"},
		{"i686", "i686"},
		{"X86_64", "x86_64"},
		{"riscv64", "riscv64"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeArch(tt.input); got != tt.want {
				t.Errorf("NormalizeArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBitsForArch(t *testing.T) {
	tests := []struct {
		input string
		want  Bits
	}{
		{"x86_64", Bits64},
		{"amd64", Bits64},
		{"arm64", Bits64},
		{"i686", Bits32},
		{"386", Bits32},
		{"arm", Bits32},
		{"sparc", BitsUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := BitsForArch(tt.input); got != tt.want {
				t.Errorf("BitsForArch(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
