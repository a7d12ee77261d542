package graph

import (
	"fmt"
	"strings"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of a layout in render order.
// Paired groups are drawn as a left-to-right subgraph. Field shapes follow
// the field type:
// - select/radio: {{Hexagon}}
// - date: ([Stadium])
// - default: [Rectangle]
// Required fields get the "required" class.
func GenerateMermaid(layout domain.Layout) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var required []string
	anchors := make([]string, 0, len(layout.Groups))

	for i, g := range layout.Groups {
		if len(g.Fields) == 0 {
			continue
		}

		if len(g.Fields) > 1 || g.Paired {
			groupID := fmt.Sprintf("row%d", i+1)
			sb.WriteString(fmt.Sprintf("    subgraph %s[\"row %d\"]\n", groupID, i+1))
			sb.WriteString("        direction LR\n")
			for _, f := range g.Fields {
				sb.WriteString("    " + nodeLine(f))
			}
			sb.WriteString("    end\n")
			anchors = append(anchors, groupID)
		} else {
			sb.WriteString(nodeLine(g.Fields[0]))
			anchors = append(anchors, sanitizeMermaidID(g.Fields[0].Key))
		}

		for _, f := range g.Fields {
			if f.Required {
				required = append(required, sanitizeMermaidID(f.Key))
			}
		}
	}

	for i := 1; i < len(anchors); i++ {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", anchors[i-1], anchors[i]))
	}

	if len(required) > 0 {
		sb.WriteString("\n    %% Required fields\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef required fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s required;\n", strings.Join(required, ",")))
	}

	return sb.String()
}

func nodeLine(f domain.Field) string {
	opener, closer := "[", "]"
	switch f.Type {
	case domain.FieldTypeSelect, domain.FieldTypeRadio:
		opener, closer = "{{", "}}"
	case domain.FieldTypeDate:
		opener, closer = "([", "])"
	}

	label := f.Key
	if f.Label != "" {
		label = fmt.Sprintf("%s <br/> %s", f.Label, f.Key)
	}
	label = strings.ReplaceAll(label, "\"", "'")
	return fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(f.Key), opener, label, closer)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
