package domain

import "github.com/flexile/fieldlayout/pkg/grouping"

// Form is a named, ordered list of fields plus the pair rules used to lay them out.
type Form struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title,omitempty" yaml:"title,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field         `json:"fields" yaml:"fields"`
	Pairs       []grouping.Pair `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// Field returns the field with the given key.
func (f Form) Field(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Clone returns a copy that shares no slices with f.
func (f Form) Clone() Form {
	out := f
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		out.Fields[i] = field.Clone()
	}
	out.Pairs = append([]grouping.Pair(nil), f.Pairs...)
	return out
}
