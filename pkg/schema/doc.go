// Package schema validates submitted form values against the rules of a domain.Form.
//
// Every field maps to a Type (text, date, or one of a fixed set of options) and may
// carry extra rules: required, a regular expression, and length bounds. Validate
// collects every failure instead of stopping at the first one:
//
//	err := schema.Validate(form, map[string]any{
//	    "abartn":        "026009593",
//	    "accountNumber": "12345678",
//	    "address": map[string]any{"postCode": "94103"},
//	})
//	for _, e := range schema.ValidationErrors(err) {
//	    // each e is a *schema.ValidationError
//	}
//
// Values are looked up by the field key, either flat ("address.postCode") or nested
// ({"address": {"postCode": ...}}).
package schema
