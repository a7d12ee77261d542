package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/flexile/fieldlayout/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// LayoutMarkdown describes a layout as a markdown document. Each group
// becomes one table row; paired fields share the row.
func LayoutMarkdown(form domain.Form, layout domain.Layout) string {
	var sb strings.Builder

	title := form.Title
	if title == "" {
		title = form.ID
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if form.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", form.Description)
	}

	sb.WriteString("| Row | Fields | Paired |\n")
	sb.WriteString("|---|---|---|\n")
	for i, g := range layout.Groups {
		cells := make([]string, len(g.Fields))
		for j, f := range g.Fields {
			cells[j] = fieldCell(f)
		}
		paired := ""
		if g.Paired {
			paired = "yes"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", i+1, strings.Join(cells, " · "), paired)
	}

	if layout.Fingerprint != "" {
		fmt.Fprintf(&sb, "\n_fingerprint `%s`_\n", layout.Fingerprint)
	}
	return sb.String()
}

func fieldCell(f domain.Field) string {
	label := f.Label
	if label == "" {
		label = f.Key
	}
	label = strings.ReplaceAll(label, "|", `\|`)
	cell := fmt.Sprintf("**%s** `%s`", label, f.Key)
	if f.Required {
		cell += " *"
	}
	return cell
}
