package kbd

import "time"

// KeyStateMachine (KSM) models the activation of a single watched key.
//
// A KSM observes every event the engine sees, but its own transitions are
// defined in terms of events on its watched key, "any other key press", and
// the Poll tick. It receives Event values and optionally yields a
// KeyActionSet; the orchestrator is responsible for turning those into
// externally visible Actions and for mutating the layer stack.
//
// Implementations must not retain a reference back to the orchestrator:
// machines are values (or pointers to values) the orchestrator exclusively
// owns, created on a KeyPress for which no machine currently exists, and
// dropped once Finished reports true, after their CleanupActions have been
// collected.
type KeyStateMachine[Id comparable, T any] interface {
	// WatchedKey returns the key this machine is responsible for.
	WatchedKey() Id

	// Transition advances the machine's state given an event and the wall
	// clock time it was observed at, optionally returning a KeyActionSet to
	// apply. Once Finished returns true, Transition must return
	// (KeyActionSet[T]{}, false) without mutating state: it is an
	// idempotent terminal.
	Transition(event Event[Id], now time.Time) (KeyActionSet[T], bool)

	// Finished reports whether the machine has reached an accepting state.
	// Once true, it stays true.
	Finished() bool

	// CleanupActions returns the action sets the orchestrator should apply
	// when dropping this machine, typically the inverse of an earlier
	// emission. Valid to read at any time, and stable once Finished is
	// true.
	CleanupActions() []KeyActionSet[T]
}

// otherKeyPress reports whether event is a KeyPress for a key other than
// watched. Shared by every KSM that needs to notice interference from
// another key (HoldKSM, EagerHoldKSM, DoubleTapKSM, DoubleTapHoldKSM).
func otherKeyPress[Id comparable](event Event[Id], watched Id) bool {
	key, ok := event.KeyID()
	return ok && event.IsKeyPress() && key != watched
}

// watchedKeyPress reports whether event is a KeyPress for watched.
func watchedKeyPress[Id comparable](event Event[Id], watched Id) bool {
	key, ok := event.KeyID()
	return ok && event.IsKeyPress() && key == watched
}

// watchedKeyRelease reports whether event is a KeyRelease for watched.
func watchedKeyRelease[Id comparable](event Event[Id], watched Id) bool {
	key, ok := event.KeyID()
	return ok && event.IsKeyRelease() && key == watched
}
