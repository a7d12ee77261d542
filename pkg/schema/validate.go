package schema

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// Validate checks values against every field of the form.
// Returns an *AggregateError with all failures found, in field order.
// Keys present in values but unknown to the form are ignored.
func Validate(form domain.Form, values map[string]any) error {
	var errs []error

	for _, field := range form.Fields {
		value, ok := Lookup(values, field.Key)
		errs = append(errs, ValidateField(field, value, ok)...)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateField checks a single value. present is false when the value was not submitted.
func ValidateField(field domain.Field, value any, present bool) []error {
	if !present || value == nil || value == "" {
		if field.Required {
			return []error{&ValidationError{Key: field.Key, Reason: "required"}}
		}
		return nil
	}

	if err := ForField(field).Validate(value); err != nil {
		return []error{&ValidationError{Key: field.Key, Reason: err.Error(), Value: value}}
	}

	s, ok := value.(string)
	if !ok {
		return nil
	}

	var errs []error
	n := utf8.RuneCountInString(s)
	if field.MinLength > 0 && n < field.MinLength {
		errs = append(errs, &ValidationError{
			Key:    field.Key,
			Reason: fmt.Sprintf("must be at least %d characters", field.MinLength),
			Value:  value,
		})
	}
	if field.MaxLength > 0 && n > field.MaxLength {
		errs = append(errs, &ValidationError{
			Key:    field.Key,
			Reason: fmt.Sprintf("must be at most %d characters", field.MaxLength),
			Value:  value,
		})
	}
	if field.Pattern != "" {
		re, err := compilePattern(field.Pattern)
		if err != nil {
			errs = append(errs, &ValidationError{
				Key:    field.Key,
				Reason: fmt.Sprintf("invalid pattern %q: %v", field.Pattern, err),
			})
		} else if !re.MatchString(s) {
			reason := "has an invalid format"
			if field.Example != "" {
				reason = fmt.Sprintf("has an invalid format (e.g. %s)", field.Example)
			}
			errs = append(errs, &ValidationError{Key: field.Key, Reason: reason, Value: value})
		}
	}
	return errs
}

// compiledPattern is a cached regexp.Compile result.
type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// patterns caches compiled field patterns by source. Forms are few and
// long-lived, so the cache is never evicted.
var patterns sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patterns.Load(pattern); ok {
		c := cached.(compiledPattern)
		return c.re, c.err
	}
	re, err := regexp.Compile(pattern)
	patterns.Store(pattern, compiledPattern{re: re, err: err})
	return re, err
}

// Lookup finds the value for a dotted key, first as a flat key and then by walking
// nested maps.
func Lookup(values map[string]any, key string) (any, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}

	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		return nil, false
	}
	child, ok := values[head].(map[string]any)
	if !ok {
		return nil, false
	}
	return Lookup(child, rest)
}
