package publish

import "fmt"

// Setting is a single named configuration value for a work unit, carrying
// the type and default its schema declared.
type Setting struct {
	name         string
	kind         string
	defaultValue interface{}
	value        interface{}
	description  string
}

// NewSetting creates a setting with its value initialized to the default.
func NewSetting(name, kind string, defaultValue interface{}) *Setting {
	return &Setting{
		name:         name,
		kind:         kind,
		defaultValue: defaultValue,
		value:        defaultValue,
	}
}

// WithDescription sets the setting's description.
func (s *Setting) WithDescription(description string) *Setting {
	s.description = description
	return s
}

// Name returns the setting name.
func (s *Setting) Name() string { return s.name }

// Type returns the declared data type of the setting.
func (s *Setting) Type() string { return s.kind }

// Default returns the setting's default value.
func (s *Setting) Default() interface{} { return s.defaultValue }

// Value returns the current value of the setting.
func (s *Setting) Value() interface{} { return s.value }

// SetValue replaces the current value.
func (s *Setting) SetValue(value interface{}) { s.value = value }

// Description returns the setting's description.
func (s *Setting) Description() string { return s.description }

// String returns the current value rendered as a string.
func (s *Setting) String() string {
	return fmt.Sprintf("%v", s.value)
}

// Settings is the configuration snapshot handed to every lifecycle call of a
// work unit. Replacement is wholesale: assigning a new Settings map never
// merges with the old one.
type Settings map[string]*Setting

// Get returns the named setting.
func (s Settings) Get(name string) (*Setting, bool) {
	setting, ok := s[name]
	return setting, ok
}

// Value returns the named setting's current value, or nil if absent.
func (s Settings) Value(name string) interface{} {
	if setting, ok := s[name]; ok {
		return setting.Value()
	}
	return nil
}

// String returns the named setting's value as a string, or "" if absent.
func (s Settings) String(name string) string {
	if setting, ok := s[name]; ok && setting.Value() != nil {
		return fmt.Sprintf("%v", setting.Value())
	}
	return ""
}

// Bool returns the named setting's value as a bool, or false if absent or
// not a bool.
func (s Settings) Bool(name string) bool {
	v, _ := s.Value(name).(bool)
	return v
}

// Int returns the named setting's value as an int, or 0 if absent or not an
// integer.
func (s Settings) Int(name string) int {
	switch v := s.Value(name).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Strings returns the named setting's value as a string slice, or nil.
// Config decoders produce []interface{}, which is converted element-wise;
// non-string elements are skipped.
func (s Settings) Strings(name string) []string {
	switch v := s.Value(name).(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// StringMap returns the named setting's value as a string-keyed map, or nil.
func (s Settings) StringMap(name string) map[string]interface{} {
	v, _ := s.Value(name).(map[string]interface{})
	return v
}

// Clone returns a deep copy of the settings map. Map and slice values are
// copied one level deep; other values are treated as immutable.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	clone := make(Settings, len(s))
	for name, setting := range s {
		clone[name] = &Setting{
			name:         setting.name,
			kind:         setting.kind,
			defaultValue: setting.defaultValue,
			value:        cloneValue(setting.value),
			description:  setting.description,
		}
	}
	return clone
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case []interface{}:
		list := make([]interface{}, len(val))
		for i, item := range val {
			list[i] = cloneValue(item)
		}
		return list
	case []string:
		list := make([]string, len(val))
		copy(list, val)
		return list
	default:
		return v
	}
}
