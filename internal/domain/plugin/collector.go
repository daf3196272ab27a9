package plugin

import (
	"context"

	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// Collector wraps a CollectorHook. Unlike publish plugins, collector
// failures never abort the pipeline: a path the hook cannot process is
// logged and skipped so the remaining sources still collect.
type Collector struct {
	name     string
	hook     CollectorHook
	logger   ports.Logger
	settings publish.Settings
}

// NewCollector creates a collector instance. Raw settings are resolved
// against the hook's schema.
func NewCollector(name string, hook CollectorHook, raw map[string]interface{}, logger ports.Logger) (*Collector, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if hook == nil {
		return nil, ErrNilHook
	}

	settings, err := hook.SettingsSchema().Resolve(raw)
	if err != nil {
		return nil, err
	}

	return &Collector{
		name:     name,
		hook:     hook,
		logger:   logger.With(ports.F("collector", name)),
		settings: settings,
	}, nil
}

// Name returns the collector instance name.
func (c *Collector) Name() string { return c.name }

// Settings returns the collector's resolved settings.
func (c *Collector) Settings() publish.Settings { return c.settings }

// RunProcessPath executes the hook for one source path, containing hook
// failures and panics. It returns the items the hook created, which is
// empty when the hook failed.
func (c *Collector) RunProcessPath(ctx context.Context, parent *item.Item, path string) (items []*item.Item) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(ctx, "error processing path",
				ports.F("path", path),
				ports.F("error", (&HookPanicError{Plugin: c.name, Value: r}).Error()),
			)
			items = nil
		}
	}()

	items, err := c.hook.ProcessPath(ctx, c.logger, c.settings, parent, path)
	if err != nil {
		c.logger.Error(ctx, "error processing path",
			ports.F("path", path),
			ports.F("error", err.Error()),
		)
		return nil
	}
	return items
}
