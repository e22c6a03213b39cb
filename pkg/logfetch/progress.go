package logfetch

import (
	"fmt"
	"io"
	"time"
)

// progressCounter prints download progress at most once per interval.
type progressCounter struct {
	out       io.Writer
	name      string
	total     int64
	current   int64
	interval  time.Duration
	startTime time.Time
	lastPrint time.Time
	printed   bool
}

func (pc *progressCounter) Write(p []byte) (int, error) {
	n := len(p)
	pc.current += int64(n)

	now := time.Now()
	if now.Sub(pc.lastPrint) > pc.interval || pc.current == pc.total {
		pc.lastPrint = now
		pc.print()
	}
	return n, nil
}

func (pc *progressCounter) print() {
	if pc.out == nil {
		return
	}
	pc.printed = true
	_, _ = fmt.Fprintf(pc.out, "\r   %s", formatProgress(pc.name, pc.current, pc.total, time.Since(pc.startTime)))
}

// finish terminates the progress line.
func (pc *progressCounter) finish() {
	if pc.out != nil && pc.printed {
		_, _ = fmt.Fprintln(pc.out)
	}
}

func formatProgress(name string, current, total int64, elapsed time.Duration) string {
	const mb = 1024 * 1024
	speed := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(current) / secs / mb
	}
	if total > 0 {
		return fmt.Sprintf("%s: %.1f MB / %.1f MB (%.1f%%) - %.1f MB/s",
			name,
			float64(current)/mb,
			float64(total)/mb,
			float64(current)/float64(total)*100,
			speed)
	}
	return fmt.Sprintf("%s: %.1f MB - %.1f MB/s", name, float64(current)/mb, speed)
}
