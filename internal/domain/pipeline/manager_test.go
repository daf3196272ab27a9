package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/stagecraft/internal/adapters/logging"
	"github.com/felixgeelhaar/stagecraft/internal/domain/item"
	"github.com/felixgeelhaar/stagecraft/internal/domain/plugin"
	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

// pathCollectorHook creates one "file.test" item per source path.
type pathCollectorHook struct {
	failOn string
}

func (h *pathCollectorHook) SettingsSchema() plugin.Schema {
	return plugin.Schema{}
}

func (h *pathCollectorHook) ProcessPath(_ context.Context, _ ports.Logger, _ publish.Settings, parent *item.Item, path string) ([]*item.Item, error) {
	if h.failOn != "" && path == h.failOn {
		return nil, errors.New("cannot read source")
	}
	it := parent.CreateItem("file.test", "Test File", path)
	it.SetProperty("path", path)
	return []*item.Item{it}, nil
}

// recordingHook counts lifecycle calls and fails on demand.
type recordingHook struct {
	filters []string

	acceptResult publish.Acceptance
	validateOK   bool
	validateErr  error
	publishErr   error
	finalizeErr  error

	accepts   int
	validates int
	publishes int
	finalizes int
}

func newRecordingHook() *recordingHook {
	return &recordingHook{
		filters:      []string{"file.*"},
		acceptResult: publish.Accepted(),
		validateOK:   true,
	}
}

func (h *recordingHook) Description() string           { return "records lifecycle calls" }
func (h *recordingHook) SettingsSchema() plugin.Schema { return plugin.Schema{} }
func (h *recordingHook) ItemFilters() []string         { return h.filters }

func (h *recordingHook) Accept(context.Context, ports.Logger, publish.Settings, *item.Item) publish.Acceptance {
	h.accepts++
	return h.acceptResult
}

func (h *recordingHook) Validate(context.Context, ports.Logger, publish.Settings, *item.Item) (bool, error) {
	h.validates++
	return h.validateOK, h.validateErr
}

func (h *recordingHook) Publish(context.Context, ports.Logger, publish.Settings, *item.Item) error {
	h.publishes++
	return h.publishErr
}

func (h *recordingHook) Finalize(context.Context, ports.Logger, publish.Settings, *item.Item) error {
	h.finalizes++
	return h.finalizeErr
}

func newTestManager(t *testing.T, collectorHook plugin.CollectorHook, hooks map[string]*recordingHook) (*Manager, *plugin.Registry) {
	t.Helper()
	logger := logging.NewNopLogger()

	collector, err := plugin.NewCollector("collect-files", collectorHook, nil, logger)
	require.NoError(t, err)

	registry := plugin.NewRegistry()
	for name, hook := range hooks {
		p, err := plugin.New(name, hook, nil, logger)
		require.NoError(t, err)
		require.NoError(t, registry.Register(p))
	}

	m, err := NewManager(collector, registry, logger)
	require.NoError(t, err)
	return m, registry
}

func TestNewManager(t *testing.T) {
	t.Run("requires a collector", func(t *testing.T) {
		logger := logging.NewNopLogger()
		_, err := NewManager(nil, plugin.NewRegistry(), logger)
		assert.ErrorIs(t, err, ErrNoCollector)
	})

	t.Run("starts idle with an empty tree", func(t *testing.T) {
		m, _ := newTestManager(t, &pathCollectorHook{}, nil)
		assert.Equal(t, StateIdle, m.State())
		assert.Empty(t, m.Root().Children())
	})
}

func TestManagerCollect(t *testing.T) {
	t.Run("builds items and attaches units", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})

		err := m.Collect(context.Background(), []string{"/a.ma", "/b.ma"})
		require.NoError(t, err)

		assert.Equal(t, StateReady, m.State())
		assert.Len(t, m.Root().Children(), 2)
		assert.Equal(t, 2, hook.accepts)
		for _, it := range m.Root().Children() {
			require.Len(t, it.Units(), 1)
			assert.True(t, it.Units()[0].Accepted())
		}
	})

	t.Run("skips failing sources and keeps collecting", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{failOn: "/bad"}, map[string]*recordingHook{"publish": hook})

		err := m.Collect(context.Background(), []string{"/bad", "/good.ma"})
		require.NoError(t, err)

		require.Len(t, m.Root().Children(), 1)
		assert.Equal(t, "/good.ma", m.Root().Children()[0].Name())
	})

	t.Run("non-matching plugins attach nothing", func(t *testing.T) {
		hook := newRecordingHook()
		hook.filters = []string{"maya.*"}
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})

		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma"}))
		assert.Zero(t, hook.accepts)
		assert.Empty(t, m.Root().Children()[0].Units())
	})

	t.Run("re-collect discards the previous tree and units", func(t *testing.T) {
		hook := newRecordingHook()
		m, registry := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})

		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma", "/b.ma"}))
		require.NoError(t, m.Collect(context.Background(), []string{"/c.ma"}))

		assert.Len(t, m.Root().Children(), 1)
		p, err := registry.Get("publish")
		require.NoError(t, err)
		assert.Len(t, p.Units(), 1)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})

		err := m.Collect(ctx, []string{"/a.ma"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateFailed, m.State())
	})
}

func TestManagerValidate(t *testing.T) {
	t.Run("requires collection first", func(t *testing.T) {
		m, _ := newTestManager(t, &pathCollectorHook{}, nil)
		assert.ErrorIs(t, m.Validate(context.Background()), ErrNotReady)
	})

	t.Run("passes when every unit validates", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma", "/b.ma"}))

		require.NoError(t, m.Validate(context.Background()))
		assert.Equal(t, 2, hook.validates)
		assert.Equal(t, StateReady, m.State())
	})

	t.Run("collects every failure instead of stopping at the first", func(t *testing.T) {
		hook := newRecordingHook()
		hook.validateOK = false
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma", "/b.ma"}))

		err := m.Validate(context.Background())
		require.Error(t, err)
		require.True(t, IsValidationFailures(err))

		var vf *ValidationFailures
		require.ErrorAs(t, err, &vf)
		assert.Len(t, vf.Failures, 2)
		assert.ErrorIs(t, vf.Failures[0], ErrValidationFailed)
		assert.Equal(t, 2, hook.validates)
	})

	t.Run("hook errors become unit failures", func(t *testing.T) {
		hook := newRecordingHook()
		hook.validateErr = errors.New("missing frame range")
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma"}))

		err := m.Validate(context.Background())
		var vf *ValidationFailures
		require.ErrorAs(t, err, &vf)
		require.Len(t, vf.Failures, 1)
		assert.Equal(t, "validate", vf.Failures[0].Phase)
		assert.Equal(t, "publish", vf.Failures[0].Plugin)
		assert.ErrorIs(t, vf.Failures[0], hook.validateErr)
	})

	t.Run("unchecked units are skipped", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma"}))

		m.Root().Children()[0].Units()[0].SetChecked(false)
		require.NoError(t, m.Validate(context.Background()))
		assert.Zero(t, hook.validates)
	})
}

func TestManagerPublish(t *testing.T) {
	t.Run("executes then finalizes every active unit", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma", "/b.ma"}))

		require.NoError(t, m.Publish(context.Background()))
		assert.Equal(t, 2, hook.publishes)
		assert.Equal(t, 2, hook.finalizes)
		assert.Equal(t, StateDone, m.State())
	})

	t.Run("first execute failure aborts before finalize", func(t *testing.T) {
		hook := newRecordingHook()
		hook.publishErr = errors.New("disk full")
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma", "/b.ma"}))

		err := m.Publish(context.Background())
		require.Error(t, err)

		var uerr *UnitError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "publish", uerr.Phase)
		assert.Equal(t, 1, hook.publishes)
		assert.Zero(t, hook.finalizes)
		assert.Equal(t, StateFailed, m.State())
	})

	t.Run("finalize failure surfaces after all executes ran", func(t *testing.T) {
		hook := newRecordingHook()
		hook.finalizeErr = errors.New("cleanup failed")
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma", "/b.ma"}))

		err := m.Publish(context.Background())
		var uerr *UnitError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "finalize", uerr.Phase)
		assert.Equal(t, 2, hook.publishes)
		assert.Equal(t, StateFailed, m.State())
	})

	t.Run("requires collection first", func(t *testing.T) {
		m, _ := newTestManager(t, &pathCollectorHook{}, nil)
		assert.ErrorIs(t, m.Publish(context.Background()), ErrNotReady)
	})
}

func TestManagerReevaluate(t *testing.T) {
	t.Run("preserves a user's checked toggle", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma"}))

		u := m.Root().Children()[0].Units()[0]
		u.SetChecked(false)

		require.NoError(t, m.Reevaluate(context.Background()))
		assert.True(t, u.Accepted())
		assert.False(t, u.Checked())
	})

	t.Run("rejection turns units off in place", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
		require.NoError(t, m.Collect(context.Background(), []string{"/a.ma"}))

		hook.acceptResult = publish.Rejected()
		require.NoError(t, m.Reevaluate(context.Background()))

		u := m.Root().Children()[0].Units()[0]
		assert.False(t, u.Accepted())
		assert.False(t, u.Checked())
	})
}

func TestManagerRun(t *testing.T) {
	t.Run("full run reports counts", func(t *testing.T) {
		hook := newRecordingHook()
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})

		report, err := m.Run(context.Background(), []string{"/a.ma", "/b.ma"})
		require.NoError(t, err)

		assert.Equal(t, 2, report.ItemCount)
		assert.Equal(t, 2, report.UnitCount)
		assert.Equal(t, 2, report.AcceptedCount)
		assert.Equal(t, 2, report.PublishedCount)
		assert.Empty(t, report.Failures)
		assert.Equal(t, StateDone, m.State())
	})

	t.Run("validation failures stop the run before publishing", func(t *testing.T) {
		hook := newRecordingHook()
		hook.validateOK = false
		m, _ := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})

		report, err := m.Run(context.Background(), []string{"/a.ma"})
		require.Error(t, err)
		assert.True(t, IsValidationFailures(err))
		assert.Len(t, report.Failures, 1)
		assert.Zero(t, hook.publishes)
	})
}

func TestManagerReset(t *testing.T) {
	hook := newRecordingHook()
	m, registry := newTestManager(t, &pathCollectorHook{}, map[string]*recordingHook{"publish": hook})
	require.NoError(t, m.Collect(context.Background(), []string{"/a.ma"}))
	require.NoError(t, m.Publish(context.Background()))

	m.Reset()

	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.Root().Children())
	p, err := registry.Get("publish")
	require.NoError(t, err)
	assert.Empty(t, p.Units())
}
