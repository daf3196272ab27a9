package plugin

import (
	"sort"

	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
)

// FieldSpec declares one setting a hook expects.
type FieldSpec struct {
	// Type is the declared data type, e.g. "str", "bool", "int", "list",
	// "dict".
	Type string
	// Default is the value used when configuration supplies none.
	Default interface{}
	// Description is a one-line description of the setting.
	Description string
	// Required marks settings configuration must supply.
	Required bool
}

// Schema declares the settings a hook expects, keyed by setting name.
type Schema map[string]FieldSpec

// Resolve validates raw configuration values against the schema and builds
// the resolved settings map. Settings absent from raw fall back to their
// declared defaults; missing required settings are collected into a single
// ValidationError. Raw keys the schema does not declare are ignored.
func (s Schema) Resolve(raw map[string]interface{}) (publish.Settings, error) {
	ve := &ValidationError{}
	settings := make(publish.Settings, len(s))

	// Deterministic resolution order keeps multi-error messages stable.
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := s[name]
		value, supplied := raw[name]
		if !supplied {
			if spec.Required {
				ve.Addf("setting %q is required", name)
				continue
			}
			value = spec.Default
		}

		setting := publish.NewSetting(name, spec.Type, spec.Default).
			WithDescription(spec.Description)
		setting.SetValue(value)
		settings[name] = setting
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return settings, nil
}
