package basic

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/plugin"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// PublishFiles is the built-in publish hook. It copies a collected file into
// the configured publish directory. It keys off the "path" property the
// collector sets, so it works for any file-backed item.
type PublishFiles struct {
	fsys ports.FileSystem
}

// NewPublishFiles creates the hook over the given filesystem.
func NewPublishFiles(fsys ports.FileSystem) *PublishFiles {
	return &PublishFiles{fsys: fsys}
}

// Description returns what the hook does.
func (p *PublishFiles) Description() string {
	return "Copies the file into the publish directory so other users can pick it up."
}

// SettingsSchema declares the hook's settings.
func (p *PublishFiles) SettingsSchema() plugin.Schema {
	return plugin.Schema{
		"Publish Directory": {
			Type:        "str",
			Required:    true,
			Description: "Directory the published files are copied into.",
		},
		"Override Existing": {
			Type:        "bool",
			Default:     false,
			Description: "Replace a file already present in the publish directory.",
		},
		"Item Type Settings": {
			Type:        "dict",
			Default:     nil,
			Description: "Per item type overrides of the settings above.",
		},
	}
}

// ItemFilters matches every file item the collector produces.
func (p *PublishFiles) ItemFilters() []string {
	return []string{"file.*"}
}

// Accept takes any item carrying a path property. Items without one cannot
// be published by this hook and are rejected invisibly.
func (p *PublishFiles) Accept(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) publish.Acceptance {
	path := it.StringProperty("path")
	if path == "" {
		logger.Debug(ctx, "item has no path property", ports.F("item", it.Name()))
		return publish.Rejected().WithVisible(false)
	}
	return publish.Accepted()
}

// Validate checks the source is still a publishable file and that the
// publish target is writable without clobbering an existing publish.
func (p *PublishFiles) Validate(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) (bool, error) {
	path := it.StringProperty("path")
	info, err := p.fsys.GetFileInfo(path)
	if err != nil {
		logger.Error(ctx, "source file no longer exists", ports.F("path", path))
		return false, nil
	}
	if info.IsDir {
		logger.Error(ctx, "source path is a directory", ports.F("path", path))
		return false, nil
	}

	target := p.publishPath(settings, path)
	if p.fsys.Exists(target) && !settings.Bool("Override Existing") {
		logger.Error(ctx, "publish target already exists",
			ports.F("target", target),
		)
		return false, nil
	}

	return true, nil
}

// Publish copies the file into the publish directory and records the publish
// path on the item for downstream plugins.
func (p *PublishFiles) Publish(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) error {
	path := it.StringProperty("path")
	target := p.publishPath(settings, path)

	if err := p.fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create publish directory: %w", err)
	}
	// Overridden publishes are removed first so the copy never inherits a
	// stale mode from the old file.
	if p.fsys.Exists(target) {
		if err := p.fsys.Remove(target); err != nil {
			return fmt.Errorf("failed to replace existing publish %s: %w", target, err)
		}
	}
	if err := p.fsys.CopyFile(path, target); err != nil {
		return fmt.Errorf("failed to copy %s to publish directory: %w", path, err)
	}

	it.SetProperty("publish_path", target)
	return nil
}

// Finalize reports where the publish landed.
func (p *PublishFiles) Finalize(ctx context.Context, logger ports.Logger, settings publish.Settings, it *item.Item) error {
	logger.Info(ctx, "file published",
		ports.F("item", it.Name()),
		ports.F("publish_path", it.StringProperty("publish_path")),
	)
	return nil
}

// publishPath resolves where the source file lands in the publish area.
func (p *PublishFiles) publishPath(settings publish.Settings, path string) string {
	dir := ports.ExpandPath(settings.String("Publish Directory"))
	return filepath.Join(dir, filepath.Base(path))
}

// Ensure PublishFiles satisfies the publish hook contract.
var _ plugin.PublishHook = (*PublishFiles)(nil)
