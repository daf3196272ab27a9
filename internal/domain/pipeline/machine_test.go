package pipeline

import (
	"testing"

	"github.com/felixgeelhaar/statekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMachine(t *testing.T) {
	send := func(interp *statekit.Interpreter[runContext], event string) State {
		interp.Send(statekit.Event{Type: statekit.EventType(event)})
		return State(interp.State().Value)
	}

	t.Run("happy path walks collect to done", func(t *testing.T) {
		interp, err := newRunMachine()
		require.NoError(t, err)
		interp.Start()

		assert.Equal(t, StateIdle, State(interp.State().Value))
		assert.Equal(t, StateCollecting, send(interp, EventCollect))
		assert.Equal(t, StateReady, send(interp, EventCollected))
		assert.Equal(t, StateValidating, send(interp, EventValidate))
		assert.Equal(t, StateReady, send(interp, EventValidated))
		assert.Equal(t, StatePublishing, send(interp, EventPublish))
		assert.Equal(t, StateFinalizing, send(interp, EventFinalize))
		assert.Equal(t, StateDone, send(interp, EventComplete))
	})

	t.Run("ready allows re-collecting", func(t *testing.T) {
		interp, err := newRunMachine()
		require.NoError(t, err)
		interp.Start()

		send(interp, EventCollect)
		send(interp, EventCollected)
		assert.Equal(t, StateCollecting, send(interp, EventCollect))
	})

	t.Run("publish is not reachable from idle", func(t *testing.T) {
		interp, err := newRunMachine()
		require.NoError(t, err)
		interp.Start()

		assert.Equal(t, StateIdle, send(interp, EventPublish))
	})

	t.Run("failed resets back to idle", func(t *testing.T) {
		interp, err := newRunMachine()
		require.NoError(t, err)
		interp.Start()

		send(interp, EventCollect)
		send(interp, EventCollected)
		send(interp, EventPublish)
		assert.Equal(t, StateFailed, send(interp, EventFail))
		assert.Equal(t, StateIdle, send(interp, EventReset))
	})
}
