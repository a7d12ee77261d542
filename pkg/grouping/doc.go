// Package grouping partitions an ordered list of form fields into display groups.
//
// Fields are matched by key against an ordered list of pair rules. When the first
// remaining field belongs to a rule, every remaining field whose key is part of that
// rule is pulled into one group, even when the members are not adjacent in the input.
// Fields that match no rule become groups of one.
//
//	groups := grouping.Group(fields, []grouping.Pair{
//	    {"abartn", "accountNumber"},
//	    {"address.state", "address.postCode"},
//	})
//
// Grouping never reorders fields relative to each other and never mutates its input.
// The package has no dependencies beyond the standard library so it can be embedded
// anywhere a form is rendered.
package grouping
