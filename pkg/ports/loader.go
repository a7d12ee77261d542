package ports

import (
	"context"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// FormLoader defines how the engine retrieves form definitions.
type FormLoader interface {
	// GetForm retrieves a form by ID.
	// Returns domain.ErrFormNotFound if the form does not exist.
	GetForm(ctx context.Context, id string) (domain.Form, error)

	// ListForms returns the IDs of all available forms, sorted.
	ListForms(ctx context.Context) ([]string, error)
}
