package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the fieldlayout banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _      _     _ _                       _   ", "#34d399"},
		{"  / _(_) ___| | __| | | __ _ _   _  ___  _  _| |_ ", "#2dd4bf"},
		{" | |_| |/ _ \\ |/ _` | |/ _` | | | |/ _ \\| || |  _|", "#22d3ee"},
		{" |  _| |  __/ | (_| | | (_| | |_| | (_) | || | |_ ", "#38bdf8"},
		{" |_| |_|\\___|_|\\__,_|_|\\__,_|\\__, |\\___/ \\_,_|\\__|", "#60a5fa"},
		{"                             |___/                ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
