package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/memscan/memscan/internal/scan"
)

// drainProgress consumes a scan's progress channel and redraws a single
// in-place bar, grounded in the original source's bar animation: a
// fixed-width bar that is cleared and redrawn in place as entries flow in,
// rather than a scrolling log of progress lines.
func drainProgress(w io.Writer, ch <-chan scan.Progress) {
	const barWidth = 40
	bar := color.New(color.BgMagenta)
	for p := range ch {
		var proportion float64
		if p.Total > 0 {
			proportion = float64(p.Scanned) / float64(p.Total)
		}
		filled := int(proportion * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
		fmt.Fprintf(w, "\r[%s%s] %d/%d",
			bar.Sprint(strings.Repeat(" ", filled)),
			strings.Repeat(" ", barWidth-filled),
			p.Scanned, p.Total)
	}
	fmt.Fprintln(w)
}
