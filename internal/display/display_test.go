package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/memscan/memscan/internal/scan"
)

func TestPrintRowsFormatsAddressAndValues(t *testing.T) {
	rows := []scan.DisplayRow{
		{Address: 0x1000, Stored: "10", Live: "10", Changed: false},
		{Address: 0x2000, Stored: "10", Live: "20", Changed: true},
	}
	var buf bytes.Buffer
	PrintRows(&buf, rows)
	out := buf.String()
	if !strings.Contains(out, "0x1000") || !strings.Contains(out, "0x2000") {
		t.Errorf("missing addresses in output: %s", out)
	}
	if !strings.Contains(out, "10") || !strings.Contains(out, "20") {
		t.Errorf("missing values in output: %s", out)
	}
}
