// Package publish models the unit of work at the center of the publication
// pipeline: one plugin strategy paired with one collected item, plus the
// accept/validate/execute/finalize lifecycle that pairing goes through.
package publish

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// WorkUnit binds one strategy instance to one target item with a settings
// snapshot. It owns the derived acceptance state:
//
//   - accepted: the strategy has accepted this unit in its latest evaluation
//   - visible:  the unit should be surfaced to a user (it is processed either way)
//   - enabled:  a user may toggle the checked flag
//   - checked:  the unit is slated to run
//
// The strategy and target bindings are immutable for the unit's lifetime;
// pairing a strategy with a different target means creating a new unit.
// Lifecycle operations are meant to be driven sequentially by a single owner;
// the unit carries no internal synchronization.
type WorkUnit struct {
	strategy Strategy
	target   Target
	settings Settings

	accepted bool
	visible  bool
	enabled  bool
	checked  bool
}

// NewWorkUnit creates a unit binding strategy to target and registers it
// with both, strategy first. If either registration fails the creation fails
// as a whole and no partially-registered unit remains reachable.
func NewWorkUnit(ctx context.Context, strategy Strategy, target Target, settings Settings) (*WorkUnit, error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	if target == nil {
		return nil, ErrNilTarget
	}

	u := &WorkUnit{
		strategy: strategy,
		target:   target,
		settings: settings,
		accepted: false,
		visible:  true,
		enabled:  true,
		checked:  true,
	}

	if err := strategy.AddUnit(u); err != nil {
		return nil, &RegistrationError{Plugin: strategy.Name(), Item: target.Name(), Err: err}
	}
	if err := target.AddUnit(u); err != nil {
		// Roll back the strategy-side registration so the failed unit is
		// not reachable from anywhere.
		strategy.RemoveUnit(u)
		return nil, &RegistrationError{Plugin: strategy.Name(), Item: target.Name(), Err: err}
	}

	strategy.Logger().Debug(ctx, "created work unit",
		ports.F("plugin", strategy.Name()),
		ports.F("item", target.Name()),
	)

	return u, nil
}

// String returns a human-readable identification of the unit.
func (u *WorkUnit) String() string {
	return fmt.Sprintf("<WorkUnit: %s for %s>", u.strategy.Name(), u.target.Name())
}

// IsSameType reports whether both units are bound to the same strategy
// instance, independent of target or settings.
func (u *WorkUnit) IsSameType(other *WorkUnit) bool {
	return other != nil && u.strategy == other.strategy
}

// Strategy returns the strategy bound to this unit.
func (u *WorkUnit) Strategy() Strategy { return u.strategy }

// Target returns the target bound to this unit.
func (u *WorkUnit) Target() Target { return u.target }

// Settings returns the unit's current settings snapshot.
func (u *WorkUnit) Settings() Settings { return u.settings }

// SetSettings replaces the settings snapshot wholesale. Keys present only in
// the old snapshot are gone after replacement.
func (u *WorkUnit) SetSettings(settings Settings) { u.settings = settings }

// Accepted reports whether the strategy accepted this unit in its latest
// evaluation.
func (u *WorkUnit) Accepted() bool { return u.accepted }

// Visible reports whether the unit should be surfaced to a user. Invisible
// units are still processed.
func (u *WorkUnit) Visible() bool { return u.visible }

// Enabled reports whether a user may toggle the checked flag.
func (u *WorkUnit) Enabled() bool { return u.enabled }

// Checked reports whether the unit is slated to run.
func (u *WorkUnit) Checked() bool { return u.checked }

// SetChecked records a user's toggle of the checked flag.
func (u *WorkUnit) SetChecked(checked bool) { u.checked = checked }

// Accept runs the strategy's accept evaluation and applies the result to the
// unit's state. It may be called many times over the unit's life, typically
// once per settings edit cycle.
//
// On acceptance, visible and enabled follow the result (defaulting to true
// when unset); checked is adopted from the result only on the first
// transition into the accepted state, so a user's manual toggle survives
// re-evaluation. On rejection the unit is forced off and un-clickable while
// visible keeps its prior value.
func (u *WorkUnit) Accept(ctx context.Context) {
	result := u.strategy.RunAccept(ctx, u.settings, u.target)

	logger := u.strategy.Logger()
	fields := make([]ports.Field, 0, 2+len(result.ExtraInfo()))
	fields = append(fields,
		ports.F("plugin", u.strategy.Name()),
		ports.F("item", u.target.Name()),
	)
	fields = append(fields, result.ExtraInfo()...)

	if result.IsAccepted() {
		logger.Info(ctx, "plugin accepted item", fields...)

		u.visible = result.visibleOr(true)
		u.enabled = result.enabledOr(true)

		if !u.accepted {
			u.accepted = true
			u.checked = result.checkedOr(true)
		}
		return
	}

	logger.Info(ctx, "plugin rejected item", fields...)
	u.accepted = false
	u.enabled = false
	u.checked = false
}

// Validate runs the strategy's validate evaluation and returns its result
// unchanged. The unit's own state is not touched and strategy failures
// propagate to the caller as-is.
func (u *WorkUnit) Validate(ctx context.Context) (bool, error) {
	return u.strategy.RunValidate(ctx, u.settings, u.target)
}

// Execute runs the strategy's publish step. Side effects and failures are
// entirely the strategy's responsibility.
func (u *WorkUnit) Execute(ctx context.Context) error {
	return u.strategy.RunPublish(ctx, u.settings, u.target)
}

// Finalize runs the strategy's finalize step. Same propagation contract as
// Execute.
func (u *WorkUnit) Finalize(ctx context.Context) error {
	return u.strategy.RunFinalize(ctx, u.settings, u.target)
}
