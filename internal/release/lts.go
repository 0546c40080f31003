package release

// ltsLines is the allow-list of long-term-support release lines. The
// listings do not mark LTS status, so this is maintained by hand against
// the published support schedule.
var ltsLines = map[string]bool{
	"2.83": true,
	"2.93": true,
	"3.3":  true,
	"3.6":  true,
	"4.2":  true,
	"4.5":  true,
}

// IsLTS reports whether a version belongs to a long-term-support line.
func IsLTS(v *Version) bool {
	return v != nil && ltsLines[v.MajorMinor()]
}
