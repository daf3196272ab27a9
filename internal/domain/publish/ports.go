package publish

import (
	"context"

	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// Strategy is the plugin-side behavior bound to a WorkUnit. A strategy keeps
// its own collection of bound units so it can enumerate and re-evaluate them.
//
// RunAccept must never fail: a strategy that cannot evaluate an item reports
// a rejection instead. RunValidate, RunPublish and RunFinalize may fail and
// their errors reach the pipeline driver untranslated.
type Strategy interface {
	// Name identifies this strategy instance in log output.
	Name() string

	// Logger is the structured logger acceptance and rejection reports go to.
	Logger() ports.Logger

	// AddUnit registers a unit with this strategy.
	AddUnit(u *WorkUnit) error

	// RemoveUnit unregisters a unit. It reports whether the unit was bound.
	RemoveUnit(u *WorkUnit) bool

	RunAccept(ctx context.Context, settings Settings, target Target) Acceptance
	RunValidate(ctx context.Context, settings Settings, target Target) (bool, error)
	RunPublish(ctx context.Context, settings Settings, target Target) error
	RunFinalize(ctx context.Context, settings Settings, target Target) error
}

// Target is the data node a WorkUnit operates on. Its tree structure and
// metadata are the item layer's concern; the unit only needs identity and
// unit registration.
type Target interface {
	// Name identifies this target in log output.
	Name() string

	// AddUnit registers a unit with this target.
	AddUnit(u *WorkUnit) error

	// RemoveUnit unregisters a unit. It reports whether the unit was bound.
	RemoveUnit(u *WorkUnit) bool
}
