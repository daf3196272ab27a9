package pipeline

import (
	"github.com/felixgeelhaar/statekit"
)

// State represents the pipeline run's current state.
type State string

const (
	// StateIdle indicates nothing has been collected yet.
	StateIdle State = "idle"
	// StateCollecting indicates the collector is building the item tree.
	StateCollecting State = "collecting"
	// StateReady indicates units are attached and acceptance has run.
	StateReady State = "ready"
	// StateValidating indicates the validation pass is running.
	StateValidating State = "validating"
	// StatePublishing indicates the execute pass is running.
	StatePublishing State = "publishing"
	// StateFinalizing indicates the finalize pass is running.
	StateFinalizing State = "finalizing"
	// StateDone indicates the run completed.
	StateDone State = "done"
	// StateFailed indicates a pass aborted.
	StateFailed State = "failed"
)

// Event types for the run state machine.
const (
	EventCollect   = "COLLECT"
	EventCollected = "COLLECTED"
	EventValidate  = "VALIDATE"
	EventValidated = "VALIDATED"
	EventPublish   = "PUBLISH"
	EventFinalize  = "FINALIZE"
	EventComplete  = "COMPLETE"
	EventFail      = "FAIL"
	EventReset     = "RESET"
)

// runContext is the statekit context type; run bookkeeping lives on the
// Manager, the machine only tracks where the run is.
type runContext struct{}

// newRunMachine constructs the state machine tracking a publish run.
//
// A run may re-collect and re-validate from ready any number of times (the
// user edits settings and retries); publishing is only reachable from ready.
func newRunMachine() (*statekit.Interpreter[runContext], error) {
	machine, err := statekit.NewMachine[runContext]("publish-run").
		WithInitial("idle").
		WithContext(runContext{}).
		// Idle state
		State("idle").
		On(EventCollect).Target("collecting").Done().
		// Collecting state
		State("collecting").
		On(EventCollected).Target("ready").
		On(EventFail).Target("failed").Done().
		// Ready state (units attached, awaiting a pass or a re-collect)
		State("ready").
		On(EventCollect).Target("collecting").
		On(EventValidate).Target("validating").
		On(EventPublish).Target("publishing").Done().
		// Validating state
		State("validating").
		On(EventValidated).Target("ready").
		On(EventFail).Target("failed").Done().
		// Publishing state
		State("publishing").
		On(EventFinalize).Target("finalizing").
		On(EventFail).Target("failed").Done().
		// Finalizing state
		State("finalizing").
		On(EventComplete).Target("done").
		On(EventFail).Target("failed").Done().
		// Done state
		State("done").
		On(EventReset).Target("idle").Done().
		// Failed state
		State("failed").
		On(EventReset).Target("idle").Done().
		Build()
	if err != nil {
		return nil, err
	}

	return statekit.NewInterpreter(machine), nil
}
