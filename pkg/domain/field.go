package domain

// FieldType constants describe how a field is rendered and validated.
const (
	// FieldTypeText is a free-form text input.
	FieldTypeText = "text"
	// FieldTypeSelect picks one value from Options in a dropdown.
	FieldTypeSelect = "select"
	// FieldTypeRadio picks one value from Options with radio buttons.
	FieldTypeRadio = "radio"
	// FieldTypeDate is a date input (YYYY-MM-DD).
	FieldTypeDate = "date"
)

// Option is one allowed value of a select or radio field.
type Option struct {
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Field is a single input of a form.
// Keys use dotted paths for nested values (e.g. "address.postCode").
type Field struct {
	Key      string `json:"key" yaml:"key" mapstructure:"key"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Example  string `json:"example,omitempty" yaml:"example,omitempty" mapstructure:"example"`

	// Validation rules
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty" mapstructure:"pattern"`
	MinLength int    `json:"minLength,omitempty" yaml:"minLength,omitempty" mapstructure:"minLength"`
	MaxLength int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty" mapstructure:"maxLength"`

	Options []Option `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`

	// RefreshOnChange marks fields whose value changes the set of fields of the form
	// (e.g. the country selector of an address).
	RefreshOnChange bool `json:"refreshOnChange,omitempty" yaml:"refreshOnChange,omitempty" mapstructure:"refreshOnChange"`
}

// FieldKey implements grouping.Keyer.
func (f Field) FieldKey() string {
	return f.Key
}

// HasOption reports whether value is one of the field options.
func (f Field) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Key == value {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with f.
func (f Field) Clone() Field {
	f.Options = append([]Option(nil), f.Options...)
	return f
}
