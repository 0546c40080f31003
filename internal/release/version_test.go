package release

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "triplet", input: "2.83.5"},
		{name: "major_minor", input: "2.90"},
		{name: "rc_marker", input: "2.80rc3"},
		{name: "leading_v", input: "v4.2.1"},
		{name: "alpha_marker", input: "4.5.0-alpha"},
		{name: "empty", input: "", wantErr: true},
		{name: "no_digits", input: "notes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVersion(%q) expected error, got %v", tt.input, v)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2.83.0", "2.83.0", 0},
		{"2.83.1", "2.83.0", 1},
		{"2.83", "2.91", -1},
		{"2.91", "2.83", 1},
		{"3.0.0", "2.93.18", 1},
		{"2.9", "2.90", -1},
		// A marker extends the field list, so the plain version sorts
		// first; stable selection skips prereleases separately.
		{"2.80", "2.80rc3", -1},
		{"2.80rc2", "2.80rc3", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			a := mustVersion(t, tt.a)
			b := mustVersion(t, tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := b.Compare(a); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestVersionMatches(t *testing.T) {
	tests := []struct {
		version string
		token   string
		want    bool
	}{
		{"2.90.0", "2.9", true},
		{"2.91.3", "2.9", true},
		{"2.83.0", "2.9", false},
		{"2.83.18", "2.83", true},
		{"2.83.18", "2.83.18", true},
		{"2.83.18", "2.83.1", false}, // full-length tokens match exactly
		{"2.91.0", "2.91.0", true},
		{"2.91", "2.91.0", false},
		{"2.80", "2.80", true},
		{"2.80rc3", "2.80", false}, // a plain token never selects a prerelease
		{"2.80rc3", "2.80rc3", true},
		{"3.6.2", "3", true},
		{"4.2.1", "3", false},
	}

	for _, tt := range tests {
		t.Run(tt.version+"_matches_"+tt.token, func(t *testing.T) {
			v := mustVersion(t, tt.version)
			tok := mustVersion(t, tt.token)
			if got := v.Matches(tok); got != tt.want {
				t.Errorf("%q.Matches(%q) = %v, want %v", tt.version, tt.token, got, tt.want)
			}
		})
	}
}

func TestVersionIsPrerelease(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2.83.0", false},
		{"2.80rc3", true},
		{"4.5.0-alpha", true},
		{"2.79b", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustVersion(t, tt.input).IsPrerelease(); got != tt.want {
				t.Errorf("IsPrerelease(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionMajorMinor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2.83.5", "2.83"},
		{"4.2", "4.2"},
		{"3", "3.0"},
		{"2.80rc3", "2.80"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustVersion(t, tt.input).MajorMinor(); got != tt.want {
				t.Errorf("MajorMinor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Stable", "stable"},
		{"daily", "nightly"},
		{"NIGHTLY", "nightly"},
		{" 2.83 ", "2.83"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeToken(tt.input); got != tt.want {
				t.Errorf("NormalizeToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsLTS(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2.83.20", true},
		{"3.6.5", true},
		{"4.2.1", true},
		{"2.90.0", false},
		{"4.1.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsLTS(mustVersion(t, tt.input)); got != tt.want {
				t.Errorf("IsLTS(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func mustVersion(t *testing.T, raw string) *Version {
	t.Helper()
	v, err := ParseVersion(raw)
	if err != nil {
		t.Fatalf("ParseVersion(%q): %v", raw, err)
	}
	return v
}
