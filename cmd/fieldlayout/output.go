package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flexile/fieldlayout/internal/presentation/graph"
	"github.com/flexile/fieldlayout/internal/presentation/tui"
	"github.com/flexile/fieldlayout/pkg/domain"
	"golang.org/x/term"
)

// Output formats shared by the group and layout commands.
const (
	formatJSON     = "json"
	formatText     = "text"
	formatMarkdown = "markdown"
	formatMermaid  = "mermaid"
)

func writeLayout(w io.Writer, format string, form domain.Form, layout domain.Layout) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(layout)
	case formatText:
		for _, g := range layout.Groups {
			if _, err := fmt.Fprintln(w, strings.Join(g.Keys(), "  ")); err != nil {
				return err
			}
		}
		return nil
	case formatMarkdown:
		_, err := io.WriteString(w, tui.LayoutMarkdown(form, layout))
		return err
	case formatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(layout))
		return err
	default:
		return fmt.Errorf("unknown format %q (supported: json, text, markdown, mermaid)", format)
	}
}

// renderMarkdown writes a layout through glamour when w is a terminal and as
// plain markdown otherwise.
func renderMarkdown(w io.Writer, form domain.Form, layout domain.Layout) error {
	md := tui.LayoutMarkdown(form, layout)
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	render, err := tui.NewRenderer()
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render layout: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
