package fieldlayout_test

import (
	"context"
	"fmt"
	"log"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/pkg/adapters/memory"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/grouping"
)

// ExampleNew_library demonstrates how to use fieldlayout purely as a Go library,
// injecting an in-memory form without reading from the filesystem.
func ExampleNew_library() {
	// 1. Define the form using pure Go structs
	loader, err := memory.NewLoader(domain.Form{
		ID: "payout",
		Fields: []domain.Field{
			{Key: "accountHolderName"},
			{Key: "accountNumber"},
			{Key: "accountType"},
			{Key: "abartn"},
		},
		Pairs: []grouping.Pair{{"abartn", "accountNumber"}},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. Initialize the Engine with the custom loader
	eng, err := fieldlayout.New(fieldlayout.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Ask for the layout
	layout, err := eng.Layout(context.Background(), "payout")
	if err != nil {
		log.Fatal(err)
	}

	for _, g := range layout.Groups {
		fmt.Println(g.Keys(), g.Paired)
	}

	// Output:
	// [accountHolderName] false
	// [accountNumber abartn] true
	// [accountType] false
}
