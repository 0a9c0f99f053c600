// Package display renders scan.DisplayRow values for the "print" command,
// highlighting rows whose live value disagrees with the stored value.
// Grounded directly in the original source's print_addrs, which prints
// index, address, stored value, and live value, coloring the live value red
// when it has changed; here github.com/fatih/color plays the role
// owo_colors played there.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/memscan/memscan/internal/scan"
)

var changedColor = color.New(color.FgRed)

// PrintRows writes one tab-separated line per row to w, in the form:
//
//	  0: 0x7fffabcd1234  13369854  13369854
//	  1: 0x7fffabcd1238  13369854  42
//
// with the live column colored red whenever it differs from the stored
// column.
func PrintRows(w io.Writer, rows []scan.DisplayRow) {
	for i, row := range rows {
		live := row.Live
		if row.Changed {
			live = changedColor.Sprint(live)
		}
		fmt.Fprintf(w, "%3d: %#x\t%s\t%s\n", i, row.Address, row.Stored, live)
	}
}
