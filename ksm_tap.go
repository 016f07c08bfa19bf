package kbd

import "time"

// TapKSM implements the Tap activation mode: emit tap on press, finish on
// release.
type TapKSM[Id comparable, T any] struct {
	watched  Id
	tap      KeyActionSet[T]
	finished bool
	cleanup  [1]KeyActionSet[T]
}

// NewTapKSM constructs a TapKSM watching key, precomputing cleanup as
// [tap.Invert()] so that finishing on release retracts whatever the press
// sent.
func NewTapKSM[Id comparable, T any](watched Id, tap KeyActionSet[T]) *TapKSM[Id, T] {
	return &TapKSM[Id, T]{
		watched: watched,
		tap:     tap,
		cleanup: [1]KeyActionSet[T]{tap.Invert()},
	}
}

// WatchedKey implements KeyStateMachine.
func (k *TapKSM[Id, T]) WatchedKey() Id {
	return k.watched
}

// Finished implements KeyStateMachine.
func (k *TapKSM[Id, T]) Finished() bool {
	return k.finished
}

// CleanupActions implements KeyStateMachine.
func (k *TapKSM[Id, T]) CleanupActions() []KeyActionSet[T] {
	return k.cleanup[:]
}

// Transition implements KeyStateMachine.
func (k *TapKSM[Id, T]) Transition(event Event[Id], _ time.Time) (KeyActionSet[T], bool) {
	if k.finished {
		return KeyActionSet[T]{}, false
	}
	switch {
	case watchedKeyPress(event, k.watched):
		return k.tap, true
	case watchedKeyRelease(event, k.watched):
		k.finished = true
	}
	return KeyActionSet[T]{}, false
}
