/*
Package fieldlayout lays out dynamic forms by grouping related fields.

Forms such as a payout bank account are rendered from a flat, ordered list of
fields. Some fields read better side by side (routing number and account number,
state and ZIP code). The Engine loads form definitions, groups their fields with
pair rules, caches the resulting layouts and validates submitted values.

# Concept

The grouping itself lives in package grouping and is a pure function. The Engine
wraps it with the pieces a service needs: a FormLoader (built-in catalogue,
directory of YAML/JSON files, or memory), an optional LayoutCache (memory or
Redis), a structured logger and Prometheus metrics. Adapters expose the Engine
over HTTP and the Model Context Protocol.

# Usage

	eng, err := fieldlayout.New(fieldlayout.WithDirectory("./forms"))
	if err != nil {
		log.Fatal(err)
	}

	layout, err := eng.Layout(ctx, "bank_account_usd")
	if err != nil {
		log.Fatal(err)
	}
	for _, g := range layout.Groups {
		fmt.Println(g.Keys())
	}

Without options the Engine serves the built-in forms from package forms.
*/
package fieldlayout
