// Package pipeline drives the publish lifecycle over a collected item tree:
// collect sources, attach work units by matching plugins to items, then run
// the validate, execute and finalize passes in order. A small state machine
// tracks where a run is so callers can re-collect and re-validate safely.
package pipeline

import (
	"context"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/plugin"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// Report summarizes one pipeline run for presentation.
type Report struct {
	ItemCount      int
	UnitCount      int
	AcceptedCount  int
	PublishedCount int
	Failures       []*UnitError
}

// Manager owns one publish session: the item tree, the configured collector
// and plugin instances, and the run state machine. It is not safe for
// concurrent use; one session belongs to one caller.
type Manager struct {
	collector *plugin.Collector
	plugins   *plugin.Registry
	logger    ports.Logger

	root   *item.Item
	interp *statekit.Interpreter[runContext]
}

// NewManager creates a manager over the given collector and plugin registry.
func NewManager(collector *plugin.Collector, plugins *plugin.Registry, logger ports.Logger) (*Manager, error) {
	if collector == nil {
		return nil, ErrNoCollector
	}

	interp, err := newRunMachine()
	if err != nil {
		return nil, err
	}
	interp.Start()

	return &Manager{
		collector: collector,
		plugins:   plugins,
		logger:    logger.With(ports.F("component", "pipeline")),
		root:      item.NewRoot(),
		interp:    interp,
	}, nil
}

// Root returns the session's item tree root.
func (m *Manager) Root() *item.Item { return m.root }

// State returns the run machine's current state.
func (m *Manager) State() State {
	return State(m.interp.State().Value)
}

func (m *Manager) send(event string) {
	m.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

// Collect builds a fresh item tree from the given source paths and attaches
// work units to every collected item. Re-collecting discards the previous
// tree and its units.
func (m *Manager) Collect(ctx context.Context, sources []string) error {
	// A finished or failed run has to pass through idle before it can
	// collect again.
	if s := m.State(); s == StateDone || s == StateFailed {
		m.send(EventReset)
	}
	m.send(EventCollect)

	m.root = item.NewRoot()
	m.detachAll()

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			m.send(EventFail)
			return err
		}
		items := m.collector.RunProcessPath(ctx, m.root, source)
		m.logger.Debug(ctx, "collected source",
			ports.F("source", source),
			ports.F("items", len(items)),
		)
	}

	if err := m.attachUnits(ctx); err != nil {
		m.send(EventFail)
		return err
	}

	m.send(EventCollected)
	m.logger.Info(ctx, "collection complete",
		ports.F("items", len(m.root.Descendants())),
		ports.F("units", len(m.units())),
	)
	return nil
}

// detachAll unbinds every unit from its plugin so a re-collect starts clean.
// The old item tree is dropped wholesale, so only the plugin side needs
// explicit removal.
func (m *Manager) detachAll() {
	for _, p := range m.plugins.List() {
		for _, u := range append([]*publish.WorkUnit(nil), p.Units()...) {
			p.RemoveUnit(u)
		}
	}
}

// attachUnits pairs every plugin with every collected item whose type
// matches the plugin's filters, then runs the accept evaluation on each new
// unit. Plugins are visited in registration order so unit order is stable.
func (m *Manager) attachUnits(ctx context.Context) error {
	for _, it := range m.root.Descendants() {
		for _, p := range m.plugins.List() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !p.MatchesItem(it) {
				continue
			}

			settings := p.InitUnitSettings(ctx, it)
			u, err := publish.NewWorkUnit(ctx, p, it, settings)
			if err != nil {
				m.logger.Error(ctx, "failed to create work unit",
					ports.F("plugin", p.Name()),
					ports.F("item", it.Name()),
					ports.F("error", err.Error()),
				)
				continue
			}
			u.Accept(ctx)
		}
	}
	return nil
}

// Reevaluate re-runs every unit's accept evaluation in place, typically
// after a settings edit. Units keep their identity, so a user's checked
// toggle survives as long as the plugin keeps accepting.
func (m *Manager) Reevaluate(ctx context.Context) error {
	if m.State() != StateReady {
		return ErrNotReady
	}
	for _, u := range m.units() {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.Accept(ctx)
	}
	return nil
}

// units returns every unit in the session, item tree order.
func (m *Manager) units() []*publish.WorkUnit {
	var all []*publish.WorkUnit
	for _, it := range m.root.Descendants() {
		all = append(all, it.Units()...)
	}
	return all
}

// activeUnits returns the units the passes operate on: accepted by their
// plugin and checked to run.
func (m *Manager) activeUnits() []*publish.WorkUnit {
	var active []*publish.WorkUnit
	for _, u := range m.units() {
		if u.Accepted() && u.Checked() {
			active = append(active, u)
		}
	}
	return active
}

// Validate runs the validation pass over every active unit. Unlike the
// execute pass it does not stop at the first failure; every unit gets its
// say and all failures come back together.
func (m *Manager) Validate(ctx context.Context) error {
	if m.State() != StateReady {
		return ErrNotReady
	}
	m.send(EventValidate)

	var failures []*UnitError
	for _, u := range m.activeUnits() {
		if err := ctx.Err(); err != nil {
			m.send(EventFail)
			return err
		}

		ok, err := u.Validate(ctx)
		switch {
		case err != nil:
			failures = append(failures, m.unitError(ctx, u, "validate", err))
		case !ok:
			failures = append(failures, m.unitError(ctx, u, "validate", ErrValidationFailed))
		}
	}

	m.send(EventValidated)
	if len(failures) > 0 {
		return &ValidationFailures{Failures: failures}
	}
	return nil
}

// Publish runs the execute pass and then the finalize pass over every active
// unit. The first failure in either pass aborts the run; work already done
// by earlier units stands.
func (m *Manager) Publish(ctx context.Context) error {
	if m.State() != StateReady {
		return ErrNotReady
	}
	m.send(EventPublish)

	active := m.activeUnits()
	for _, u := range active {
		if err := ctx.Err(); err != nil {
			m.send(EventFail)
			return err
		}
		if err := u.Execute(ctx); err != nil {
			m.send(EventFail)
			return m.unitError(ctx, u, "publish", err)
		}
	}

	m.send(EventFinalize)
	for _, u := range active {
		if err := ctx.Err(); err != nil {
			m.send(EventFail)
			return err
		}
		if err := u.Finalize(ctx); err != nil {
			m.send(EventFail)
			return m.unitError(ctx, u, "finalize", err)
		}
	}

	m.send(EventComplete)
	m.logger.Info(ctx, "publish complete", ports.F("units", len(active)))
	return nil
}

// Run drives a complete session: collect, validate, publish. Validation
// failures stop the run before any publish side effects happen. A manager
// that already finished a run starts over from a clean slate.
func (m *Manager) Run(ctx context.Context, sources []string) (*Report, error) {
	if m.State() != StateIdle {
		m.Reset()
	}
	if err := m.Collect(ctx, sources); err != nil {
		return m.report(), err
	}
	if err := m.Validate(ctx); err != nil {
		if vf, ok := err.(*ValidationFailures); ok {
			r := m.report()
			r.Failures = vf.Failures
			return r, err
		}
		return m.report(), err
	}
	if err := m.Publish(ctx); err != nil {
		r := m.report()
		if uerr, ok := err.(*UnitError); ok {
			r.Failures = append(r.Failures, uerr)
		}
		return r, err
	}

	r := m.report()
	r.PublishedCount = r.AcceptedCount
	return r, nil
}

// Reset returns the machine to idle and discards the item tree, keeping the
// configured collector and plugins.
func (m *Manager) Reset() {
	m.root = item.NewRoot()
	m.detachAll()
	m.send(EventReset)
}

func (m *Manager) report() *Report {
	r := &Report{
		ItemCount: len(m.root.Descendants()),
		UnitCount: len(m.units()),
	}
	r.AcceptedCount = len(m.activeUnits())
	return r
}

func (m *Manager) unitError(ctx context.Context, u *publish.WorkUnit, phase string, err error) *UnitError {
	uerr := &UnitError{
		Plugin: u.Strategy().Name(),
		Item:   u.Target().Name(),
		Phase:  phase,
		Err:    err,
	}
	m.logger.Error(ctx, "unit failed",
		ports.F("plugin", uerr.Plugin),
		ports.F("item", uerr.Item),
		ports.F("phase", phase),
		ports.F("error", err.Error()),
	)
	return uerr
}
