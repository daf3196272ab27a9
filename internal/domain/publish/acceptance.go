package publish

import "github.com/felixgeelhaar/stagecraft/internal/ports"

// Acceptance is the result of a strategy's accept evaluation for one target.
//
// The visible/enabled/checked flags are tri-state: a strategy that leaves
// them unset gets the documented defaults (all true) when the unit applies
// the result. ExtraInfo carries free-form diagnostic payload that is echoed
// into the acceptance log entry.
type Acceptance struct {
	accepted  bool
	visible   *bool
	enabled   *bool
	checked   *bool
	extraInfo []ports.Field
}

// Accepted creates an acceptance result.
func Accepted() Acceptance {
	return Acceptance{accepted: true}
}

// Rejected creates a rejection result.
func Rejected() Acceptance {
	return Acceptance{}
}

// WithVisible sets the visible flag on the result.
func (a Acceptance) WithVisible(visible bool) Acceptance {
	a.visible = &visible
	return a
}

// WithEnabled sets the enabled flag on the result.
func (a Acceptance) WithEnabled(enabled bool) Acceptance {
	a.enabled = &enabled
	return a
}

// WithChecked sets the checked flag on the result.
func (a Acceptance) WithChecked(checked bool) Acceptance {
	a.checked = &checked
	return a
}

// WithExtraInfo appends diagnostic fields to the result.
func (a Acceptance) WithExtraInfo(fields ...ports.Field) Acceptance {
	a.extraInfo = append(a.extraInfo, fields...)
	return a
}

// IsAccepted reports whether the strategy accepted the target.
func (a Acceptance) IsAccepted() bool { return a.accepted }

// ExtraInfo returns the diagnostic fields attached to the result.
func (a Acceptance) ExtraInfo() []ports.Field { return a.extraInfo }

// visibleOr returns the visible flag, or def when the strategy left it unset.
func (a Acceptance) visibleOr(def bool) bool {
	if a.visible == nil {
		return def
	}
	return *a.visible
}

func (a Acceptance) enabledOr(def bool) bool {
	if a.enabled == nil {
		return def
	}
	return *a.enabled
}

func (a Acceptance) checkedOr(def bool) bool {
	if a.checked == nil {
		return def
	}
	return *a.checked
}
