package plugin

import (
	"context"
	"path"

	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// Plugin wraps a PublishHook into a publish.Strategy. Each Plugin reflects
// one configured instance of a hook: it carries the instance name, the
// resolved instance settings, the plugin logger, and the collection of work
// units bound to it.
type Plugin struct {
	name     string
	hook     PublishHook
	logger   ports.Logger
	settings publish.Settings
	units    []*publish.WorkUnit
	cache    *settingsCache
}

// New creates a plugin instance. Raw settings are resolved against the
// hook's schema; resolution failures fail the construction.
func New(name string, hook PublishHook, raw map[string]interface{}, logger ports.Logger) (*Plugin, error) {
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

	return &Plugin{
		name:     name,
		hook:     hook,
		logger:   logger.With(ports.F("plugin", name)),
		settings: settings,
		cache:    newSettingsCache(),
	}, nil
}

// Name returns the plugin instance name.
func (p *Plugin) Name() string { return p.name }

// Logger returns the plugin's logger.
func (p *Plugin) Logger() ports.Logger { return p.logger }

// Description returns the hook's description.
func (p *Plugin) Description() string { return p.hook.Description() }

// Settings returns the plugin's resolved instance settings.
func (p *Plugin) Settings() publish.Settings { return p.settings }

// ItemFilters returns the hook's item type patterns.
func (p *Plugin) ItemFilters() []string { return p.hook.ItemFilters() }

// MatchesItem reports whether the item's type matches one of the hook's
// item filters.
func (p *Plugin) MatchesItem(it *item.Item) bool {
	for _, pattern := range p.hook.ItemFilters() {
		if ok, err := path.Match(pattern, it.Type()); err == nil && ok {
			return true
		}
	}
	return false
}

// Units returns the work units bound to this plugin.
func (p *Plugin) Units() []*publish.WorkUnit { return p.units }

// AddUnit registers a work unit with this plugin.
func (p *Plugin) AddUnit(u *publish.WorkUnit) error {
	if u == nil {
		return publish.ErrNilUnit
	}
	p.units = append(p.units, u)
	return nil
}

// RemoveUnit unregisters a work unit. It reports whether the unit was bound.
func (p *Plugin) RemoveUnit(u *publish.WorkUnit) bool {
	for i, existing := range p.units {
		if existing == u {
			p.units = append(p.units[:i], p.units[i+1:]...)
			return true
		}
	}
	return false
}

// InitUnitSettings produces the settings snapshot for a unit pairing this
// plugin with the item. The snapshot starts from a deep copy of the
// instance settings with any "Item Type Settings" overrides for the item's
// type applied, and is cached per item type.
func (p *Plugin) InitUnitSettings(ctx context.Context, it *item.Item) publish.Settings {
	if cached, ok := p.cache.get(it.Type()); ok {
		return cached
	}

	settings := p.settings.Clone()

	if overrides := p.settings.StringMap("Item Type Settings"); overrides != nil {
		raw, exists := overrides[it.Type()]
		typed, ok := raw.(map[string]interface{})
		switch {
		case !exists:
			// Most item types have no override entry.
			p.logger.Debug(ctx, "no item type settings for item type",
				ports.F("item_type", it.Type()),
			)
		case !ok:
			p.logger.Warn(ctx, "item type settings entry is not a map",
				ports.F("item_type", it.Type()),
			)
		}
		for name, value := range typed {
			if setting, exists := settings.Get(name); exists {
				setting.SetValue(value)
			} else {
				settings[name] = publish.NewSetting(name, "", nil)
				settings[name].SetValue(value)
			}
		}
	}

	p.cache.add(it.Type(), settings)
	return p.cache.mustGet(it.Type())
}

// RunAccept executes the hook's accept evaluation. It never fails: a hook
// panic or a target that is not an item is reported as a rejection.
func (p *Plugin) RunAccept(ctx context.Context, settings publish.Settings, target publish.Target) (result publish.Acceptance) {
	defer func() {
		if r := recover(); r != nil {
			err := &HookPanicError{Plugin: p.name, Value: r}
			p.logger.Error(ctx, "error running accept", ports.F("error", err.Error()))
			result = publish.Rejected().WithExtraInfo(ports.F("error", err.Error()))
		}
	}()

	it, ok := target.(*item.Item)
	if !ok {
		p.logger.Error(ctx, "accept target is not an item", ports.F("target", target.Name()))
		return publish.Rejected()
	}

	return p.hook.Accept(ctx, p.logger, settings, it)
}

// RunValidate executes the hook's validation. The boolean outcome is logged
// either way; hook failures are logged and propagate to the caller.
func (p *Plugin) RunValidate(ctx context.Context, settings publish.Settings, target publish.Target) (bool, error) {
	it, ok := target.(*item.Item)
	if !ok {
		return false, &TargetTypeError{Plugin: p.name, Target: target.Name()}
	}

	status, err := p.hook.Validate(ctx, p.logger, settings, it)
	if err != nil {
		p.logger.Error(ctx, "error validating",
			ports.F("item", it.Name()),
			ports.F("error", err.Error()),
		)
		return false, err
	}

	if status {
		p.logger.Info(ctx, "validation successful", ports.F("item", it.Name()))
	} else {
		p.logger.Error(ctx, "validation failed", ports.F("item", it.Name()))
	}

	return status, nil
}

// RunPublish executes the hook's publish step. Failures are logged and
// propagate; success is reported at info.
func (p *Plugin) RunPublish(ctx context.Context, settings publish.Settings, target publish.Target) error {
	it, ok := target.(*item.Item)
	if !ok {
		return &TargetTypeError{Plugin: p.name, Target: target.Name()}
	}

	if err := p.hook.Publish(ctx, p.logger, settings, it); err != nil {
		p.logger.Error(ctx, "error publishing",
			ports.F("item", it.Name()),
			ports.F("error", err.Error()),
		)
		return err
	}

	p.logger.Info(ctx, "publish complete", ports.F("item", it.Name()))
	return nil
}

// RunFinalize executes the hook's finalize step. Same contract as
// RunPublish.
func (p *Plugin) RunFinalize(ctx context.Context, settings publish.Settings, target publish.Target) error {
	it, ok := target.(*item.Item)
	if !ok {
		return &TargetTypeError{Plugin: p.name, Target: target.Name()}
	}

	if err := p.hook.Finalize(ctx, p.logger, settings, it); err != nil {
		p.logger.Error(ctx, "error finalizing",
			ports.F("item", it.Name()),
			ports.F("error", err.Error()),
		)
		return err
	}

	p.logger.Info(ctx, "finalize complete", ports.F("item", it.Name()))
	return nil
}

// Ensure Plugin implements the unit's strategy contract.
var _ publish.Strategy = (*Plugin)(nil)
