// Package plugin wraps publish and collector hooks into the strategy
// objects the pipeline binds work units to. The wrappers own naming,
// logging, settings resolution and the error containment contract: accept
// evaluation never fails, validate/publish/finalize failures propagate, and
// collector failures are logged and contained.
package plugin

import (
	"context"

	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// PublishHook is the author-facing surface of a publish plugin. Hook methods
// receive the plugin's logger so diagnostic output lands under the plugin's
// name.
type PublishHook interface {
	// Description returns a human-readable description of what the hook
	// publishes.
	Description() string

	// SettingsSchema declares the settings the hook expects in its
	// accept/validate/publish/finalize calls.
	SettingsSchema() Schema

	// ItemFilters returns the item type patterns this hook is interested
	// in. Patterns may contain globs, e.g. "file.*" or "maya.*".
	ItemFilters() []string

	// Accept decides whether the hook can operate on the item. It must
	// not fail; a hook that cannot evaluate an item returns a rejection.
	Accept(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) publish.Acceptance

	// Validate checks that the item is publishable with the given
	// settings.
	Validate(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) (bool, error)

	// Publish performs the publish step.
	Publish(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) error

	// Finalize performs post-publish cleanup and reporting.
	Finalize(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) error
}

// CollectorHook is the author-facing surface of a collector. It analyzes a
// source path and parents the items it finds under the given parent item.
type CollectorHook interface {
	// SettingsSchema declares the settings the hook expects.
	SettingsSchema() Schema

	// ProcessPath analyzes path (a file or directory) and creates items
	// under parent. It returns the items it created.
	ProcessPath(ctx context.Context, logger ports.Logger, settings publish.Settings, parent *item.Item, path string) ([]*item.Item, error)
}
