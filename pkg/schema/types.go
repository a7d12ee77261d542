package schema

import (
	"fmt"
	"time"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// Type defines the contract for value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "text", "date").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// TextType validates string values.
type TextType struct{}

func (t *TextType) Name() string { return domain.FieldTypeText }

func (t *TextType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// DateType validates ISO dates (YYYY-MM-DD).
type DateType struct{}

func (t *DateType) Name() string { return domain.FieldTypeDate }

func (t *DateType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected date string, got %T", value)
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("expected date in YYYY-MM-DD format")
	}
	return nil
}

// OptionType validates that a value is one of a fixed set of option keys.
type OptionType struct {
	name    string
	options []domain.Option
}

func (t *OptionType) Name() string { return t.name }

func (t *OptionType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, o := range t.options {
		if o.Key == s {
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid option", s)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// Text creates a text type validator.
func Text() Type { return &TextType{} }

// Date creates a date type validator.
func Date() Type { return &DateType{} }

// OneOf creates a validator accepting only the given option keys.
func OneOf(name string, options []domain.Option) Type {
	return &OptionType{name: name, options: options}
}

// Custom creates a validator from a function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ForField returns the Type matching the field's declared type.
// Unknown types fall back to text.
func ForField(f domain.Field) Type {
	switch f.Type {
	case domain.FieldTypeSelect, domain.FieldTypeRadio:
		if len(f.Options) > 0 {
			return OneOf(f.Type, f.Options)
		}
		return Text()
	case domain.FieldTypeDate:
		return Date()
	default:
		return Text()
	}
}
