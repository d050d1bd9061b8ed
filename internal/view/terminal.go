package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.FgHiBlack)
	bands   = map[band]*color.Color{
		bandGood:    color.New(color.FgGreen, color.Bold),
		bandAverage: color.New(color.FgYellow, color.Bold),
		bandPoor:    color.New(color.FgRed, color.Bold),
	}
)

// PrintReport writes a terminal rendition of one device report.
func PrintReport(w io.Writer, panels ReportPanels) {
	heading.Fprintf(w, "\n%s Report\n", panels.Device)
	fmt.Fprintln(w, strings.Repeat("─", 48))

	if panels.Incomplete {
		fmt.Fprintln(w, IncompleteMessage)
		return
	}

	for _, s := range panels.Scores {
		fmt.Fprintf(w, "  %-26s %s\n", s.Title, bands[scoreBand(s.Percent)].Sprintf("%3d", s.Value))
	}
	fmt.Fprintln(w)
	for _, m := range panels.Metrics {
		fmt.Fprintf(w, "  %-26s %s\n", m.Title, m.Value)
	}

	if n := len(panels.Thumbnails); n > 0 {
		fmt.Fprintln(w)
		muted.Fprintf(w, "  %d screenshot thumbnails (open the web view to see them)\n", n)
	}
}
