package grouping

import (
	"fmt"
	"strings"
)

// Pair is an unordered pair of field keys that belong together.
type Pair [2]string

// Has reports whether key is either member of the pair.
func (p Pair) Has(key string) bool {
	return p[0] == key || p[1] == key
}

func (p Pair) String() string {
	return p[0] + "," + p[1]
}

// ParsePair parses the "a,b" form used on the command line and in query strings.
func ParsePair(s string) (Pair, error) {
	a, b, ok := strings.Cut(s, ",")
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if !ok || a == "" || b == "" || strings.Contains(b, ",") {
		return Pair{}, fmt.Errorf("invalid pair %q: expected two keys separated by a comma", s)
	}
	return Pair{a, b}, nil
}

// ParsePairs parses every entry with ParsePair.
func ParsePairs(specs []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(specs))
	for _, s := range specs {
		p, err := ParsePair(s)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
