package domain

import "github.com/flexile/fieldlayout/pkg/grouping"

// Group is a set of fields rendered together.
// Paired is true when the group was produced by a pair rule, even if only one
// member of the pair was present.
type Group struct {
	Fields []Field `json:"fields"`
	Paired bool    `json:"paired"`
}

// Keys returns the field keys of the group in order.
func (g Group) Keys() []string {
	keys := make([]string, len(g.Fields))
	for i, f := range g.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Layout is the grouped rendering order of a form.
type Layout struct {
	FormID      string  `json:"formId,omitempty"`
	Fingerprint string  `json:"fingerprint,omitempty"`
	Groups      []Group `json:"groups"`
}

// NewLayout groups fields with the given pair rules.
func NewLayout(formID string, fields []Field, pairs []grouping.Pair) Layout {
	raw := grouping.Group(fields, pairs)
	groups := make([]Group, len(raw))
	for i, g := range raw {
		groups[i] = Group{Fields: g, Paired: isPaired(g[0].Key, pairs)}
	}
	return Layout{FormID: formID, Groups: groups}
}

func isPaired(key string, pairs []grouping.Pair) bool {
	for _, p := range pairs {
		if p.Has(key) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with l.
func (l Layout) Clone() Layout {
	out := l
	out.Groups = make([]Group, len(l.Groups))
	for i, g := range l.Groups {
		fields := make([]Field, len(g.Fields))
		for j, f := range g.Fields {
			fields[j] = f.Clone()
		}
		out.Groups[i] = Group{Fields: fields, Paired: g.Paired}
	}
	return out
}

// Keys returns the field keys of every group.
func (l Layout) Keys() [][]string {
	keys := make([][]string, len(l.Groups))
	for i, g := range l.Groups {
		keys[i] = g.Keys()
	}
	return keys
}
