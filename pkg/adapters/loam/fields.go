package loam

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ParseFields decodes a bare list of fields, as accepted by the group command.
// The format is chosen from the extension of name; anything but .json is YAML.
// A form-shaped object is accepted too, in which case only its fields are used.
func ParseFields(name string, data []byte) ([]domain.Field, error) {
	var raw any
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}

	if m, ok := raw.(map[string]any); ok {
		raw = m["fields"]
	}
	list, _ := raw.([]any)
	if raw != nil && list == nil {
		return nil, fmt.Errorf("invalid fields in %s: expected a list", name)
	}

	fields, err := decodeFields(list)
	if err != nil {
		return nil, fmt.Errorf("invalid fields in %s: %w", name, err)
	}
	return fields, nil
}

// decodeFields turns raw field maps into domain fields. Unknown attributes and
// fields without a key are rejected.
func decodeFields(raw []any) ([]domain.Field, error) {
	fields := make([]domain.Field, 0, len(raw))
	if len(raw) == 0 {
		return fields, nil
	}
	if err := strictDecode(raw, &fields); err != nil {
		return nil, err
	}
	for i, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("field %d missing key", i)
		}
	}
	return fields, nil
}

func strictDecode(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      result,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
