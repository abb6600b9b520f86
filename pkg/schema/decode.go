package schema

import (
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

// DecodeRecord parses a YAML or JSON document into a Record. Scalars keep
// their decoded kind (string, int, float64, bool, nil) so the validator sees
// the same shapes it would get from an interactive session.
func DecodeRecord(data []byte) (Record, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: decode record: %w", err)
	}
	record := make(Record, len(raw))
	for key, value := range raw {
		switch value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("schema: decode record: field %q must be a scalar", key)
		}
		record[key] = value
	}
	return record, nil
}

// DecodeForm maps an HTML form submission onto the fields of s. Unchecked
// checkboxes are absent from a submission and decode to false. Keys the
// schema does not know are dropped.
func DecodeForm(s *Schema, values url.Values) Record {
	if s == nil {
		s = New()
	}
	record := make(Record, len(s.fields))
	for _, field := range s.fields {
		if field.Widget == WidgetCheckbox {
			record[field.Name] = boolValue(values.Get(field.Name))
			continue
		}
		if _, ok := values[field.Name]; ok {
			record[field.Name] = values.Get(field.Name)
		}
	}
	return record
}
