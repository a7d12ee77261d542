package grouping_test

import (
	"testing"

	"github.com/flexile/fieldlayout/pkg/grouping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type field struct {
	key string
	pos int
}

func (f *field) FieldKey() string { return f.key }

var bankRules = []grouping.Pair{
	{"abartn", "accountNumber"},
	{"address.state", "address.postCode"},
}

func fieldsOf(keys ...string) []*field {
	out := make([]*field, len(keys))
	for i, k := range keys {
		out[i] = &field{key: k, pos: i}
	}
	return out
}

func keysOf(groups [][]*field) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		for _, f := range g {
			out[i] = append(out[i], f.key)
		}
	}
	return out
}

func TestGroup_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want [][]string
	}{
		{
			name: "routing and account number",
			keys: []string{"abartn", "accountNumber", "other"},
			want: [][]string{{"abartn", "accountNumber"}, {"other"}},
		},
		{
			name: "state and post code",
			keys: []string{"address.state", "address.postCode", "other"},
			want: [][]string{{"address.state", "address.postCode"}, {"other"}},
		},
		{
			name: "no matches",
			keys: []string{"field1", "field2", "field3"},
			want: [][]string{{"field1"}, {"field2"}, {"field3"}},
		},
		{
			name: "non adjacent members",
			keys: []string{"field1", "abartn", "field2", "accountNumber", "address.state", "field3", "address.postCode"},
			want: [][]string{
				{"field1"},
				{"abartn", "accountNumber"},
				{"field2"},
				{"address.state", "address.postCode"},
				{"field3"},
			},
		},
		{
			name: "partner absent",
			keys: []string{"abartn", "other"},
			want: [][]string{{"abartn"}, {"other"}},
		},
		{
			name: "input order wins over rule order",
			keys: []string{"accountNumber", "abartn"},
			want: [][]string{{"accountNumber", "abartn"}},
		},
		{
			name: "duplicate keys are pulled together",
			keys: []string{"abartn", "x", "abartn", "accountNumber"},
			want: [][]string{{"abartn", "abartn", "accountNumber"}, {"x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grouping.Group(fieldsOf(tt.keys...), bankRules)
			assert.Equal(t, tt.want, keysOf(got))
		})
	}
}

func TestGroup_Empty(t *testing.T) {
	got := grouping.Group([]*field{}, bankRules)
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, grouping.Group[*field](nil, nil))
}

func TestGroup_PreservesIdentity(t *testing.T) {
	in := fieldsOf("accountNumber", "other", "abartn")
	got := grouping.Group(in, bankRules)

	require.Len(t, got, 2)
	assert.Same(t, in[0], got[0][0])
	assert.Same(t, in[2], got[0][1])
	assert.Same(t, in[1], got[1][0])
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	in := fieldsOf("field1", "abartn", "field2", "accountNumber")
	snapshot := append([]*field(nil), in...)

	_ = grouping.Group(in, bankRules)

	assert.Equal(t, snapshot, in)
}

func TestGroup_FirstMatchingRuleWins(t *testing.T) {
	rules := []grouping.Pair{{"a", "b"}, {"a", "c"}}
	got := grouping.Group(fieldsOf("a", "c", "b"), rules)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, keysOf(got))
}

func TestGroup_IdenticalMembers(t *testing.T) {
	rules := []grouping.Pair{{"a", "a"}}
	got := grouping.Group(fieldsOf("a", "b", "a"), rules)
	assert.Equal(t, [][]string{{"a", "a"}, {"b"}}, keysOf(got))
}

func TestGroup_Properties(t *testing.T) {
	inputs := [][]string{
		{},
		{"abartn"},
		{"address.postCode", "x", "y", "abartn", "address.state", "accountNumber", "z"},
		{"x", "x", "abartn", "x", "accountNumber", "abartn"},
		{"address.state", "address.state", "address.postCode"},
	}

	for _, keys := range inputs {
		in := fieldsOf(keys...)
		groups := grouping.Group(in, bankRules)

		// Completeness: each input field appears exactly once.
		seen := make(map[*field]int)
		for _, g := range groups {
			require.NotEmpty(t, g)
			for _, f := range g {
				seen[f]++
			}
		}
		assert.Len(t, seen, len(in))
		for _, f := range in {
			assert.Equal(t, 1, seen[f], "field %q at %d", f.key, f.pos)
		}

		// Order within a group follows input order.
		for _, g := range groups {
			for i := 1; i < len(g); i++ {
				assert.Less(t, g[i-1].pos, g[i].pos)
			}
		}

		// Fields outside every rule stay in input order relative to each other.
		last := -1
		for _, f := range grouping.Flatten(groups) {
			if ruleKey(f.key) {
				continue
			}
			assert.Greater(t, f.pos, last)
			last = f.pos
		}
	}
}

func ruleKey(k string) bool {
	for _, r := range bankRules {
		if r.Has(k) {
			return true
		}
	}
	return false
}

func TestGroupFunc_PlainValues(t *testing.T) {
	type row struct{ Name string }
	rows := []row{{"b"}, {"a"}, {"c"}}
	got := grouping.GroupFunc(rows, func(r row) string { return r.Name }, []grouping.Pair{{"a", "b"}})
	assert.Equal(t, [][]row{{{"b"}, {"a"}}, {{"c"}}}, got)
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, grouping.Flatten([][]int{{1}, {2, 3}}))
	assert.Empty(t, grouping.Flatten[int](nil))
}
