package forms_test

import (
	"testing"

	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/forms"
	"github.com/flexile/fieldlayout/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_BankAccountLayout(t *testing.T) {
	form := builtin(t, forms.BankAccountUSD)
	layout := domain.NewLayout(form.ID, form.Fields, form.Pairs)

	assert.Equal(t, [][]string{
		{"accountHolderName"},
		{"abartn", "accountNumber"},
		{"accountType"},
		{"address.country"},
		{"address.city"},
		{"address.firstLine"},
		{"address.state", "address.postCode"},
	}, layout.Keys())
}

func TestBuiltin_BankAccountValidation(t *testing.T) {
	form := builtin(t, forms.BankAccountUSD)

	err := schema.Validate(form, map[string]any{
		"accountHolderName": "Jane Contractor",
		"abartn":            "026009593",
		"accountNumber":     "000123456789",
		"accountType":       "SAVINGS",
		"address": map[string]any{
			"country":   "US",
			"city":      "San Francisco",
			"firstLine": "548 Market St",
			"state":     "CA",
			"postCode":  "94104",
		},
	})
	assert.NoError(t, err)

	err = schema.Validate(form, map[string]any{"abartn": "0260", "address.state": "ZZ"})
	keys := map[string]bool{}
	for _, e := range schema.FieldErrors(err) {
		keys[e.Key] = true
	}
	assert.True(t, keys["abartn"])
	assert.True(t, keys["address.state"])
	assert.True(t, keys["address.postCode"])
}

func TestBuiltin_ReturnsCopies(t *testing.T) {
	a := forms.Builtin()
	a[0].Fields[0].Key = "changed"
	a[0].Pairs[0][0] = "changed"

	b := forms.Builtin()
	assert.Equal(t, "accountHolderName", b[0].Fields[0].Key)
	assert.Equal(t, "abartn", forms.DefaultPairs[0][0])
}

func builtin(t *testing.T, id string) domain.Form {
	t.Helper()
	for _, f := range forms.Builtin() {
		if f.ID == id {
			return f
		}
	}
	require.FailNow(t, "missing built-in form", id)
	return domain.Form{}
}
