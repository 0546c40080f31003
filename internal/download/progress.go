package download

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// progressInterval bounds how often progress callbacks fire, so the
// terminal is not flooded on fast links.
const progressInterval = 100 * time.Millisecond

// ProgressFunc receives byte progress during a download. total is -1 when
// the server did not announce a length. The final call always reports the
// fully written count.
type ProgressFunc func(written, total int64)

// TerminalProgress returns a ProgressFunc rendering a single in-place
// progress line to w.
func TerminalProgress(w io.Writer, label string) ProgressFunc {
	done := false
	return func(written, total int64) {
		if done {
			return
		}
		if total > 0 {
			fmt.Fprintf(w, "\rDownloading %s  %s / %s (%.1f%%)", label,
				humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total)),
				float64(written)/float64(total)*100)
			if written >= total {
				fmt.Fprintln(w)
				done = true
			}
			return
		}
		fmt.Fprintf(w, "\rDownloading %s  %s", label, humanize.Bytes(uint64(written)))
	}
}

// AutoProgress returns a terminal progress renderer on stderr when stderr
// is a terminal and quiet is unset, nil otherwise.
func AutoProgress(label string, quiet bool) ProgressFunc {
	if quiet {
		return nil
	}
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return TerminalProgress(os.Stderr, label)
}

// progressWriter counts bytes written through it and throttles callbacks to
// at most one per progressInterval.
type progressWriter struct {
	w        io.Writer
	total    int64
	written  int64
	progress ProgressFunc
	last     time.Time
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.progress != nil {
		now := time.Now()
		if now.Sub(p.last) >= progressInterval {
			p.last = now
			p.progress(p.written, p.total)
		}
	}
	return n, err
}

// finish emits the final progress report.
func (p *progressWriter) finish() {
	if p.progress != nil {
		p.progress(p.written, p.total)
	}
}
