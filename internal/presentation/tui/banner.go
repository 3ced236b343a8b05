package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the hsm ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, colour string
	}{
		{"  _                   ", "#818cf8"},
		{" | |__  ___ _ __ ___  ", "#a78bfa"},
		{" | '_ \\/ __| '_ ` _ \\ ", "#c084fc"},
		{" | | | \\__ \\ | | | | |", "#e879f9"},
		{" |_| |_|___/_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.colour)))
	}
	fmt.Fprintln(w)
}
