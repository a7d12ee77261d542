package grouping

// Keyer is implemented by anything that can be grouped by key.
type Keyer interface {
	FieldKey() string
}

// Group partitions fields into ordered groups according to rules.
// The first rule containing the key of the current head wins.
func Group[F Keyer](fields []F, rules []Pair) [][]F {
	return GroupFunc(fields, func(f F) string { return f.FieldKey() }, rules)
}

// GroupFunc is Group for element types that expose their key through a function
// instead of a method.
func GroupFunc[F any](fields []F, key func(F) string, rules []Pair) [][]F {
	groups := make([][]F, 0, len(fields))

	// Working copy; the caller's slice is never touched.
	remaining := make([]F, len(fields))
	copy(remaining, fields)

	for len(remaining) > 0 {
		head := remaining[0]
		rule, ok := findRule(rules, key(head))
		if !ok {
			groups = append(groups, []F{head})
			remaining = remaining[1:]
			continue
		}

		var matched, rest []F
		for _, f := range remaining {
			if rule.Has(key(f)) {
				matched = append(matched, f)
			} else {
				rest = append(rest, f)
			}
		}
		groups = append(groups, matched)
		remaining = rest
	}

	return groups
}

func findRule(rules []Pair, key string) (Pair, bool) {
	for _, r := range rules {
		if r.Has(key) {
			return r, true
		}
	}
	return Pair{}, false
}

// Flatten concatenates groups back into a single ordered list.
func Flatten[F any](groups [][]F) []F {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]F, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
