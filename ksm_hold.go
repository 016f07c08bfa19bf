package kbd

import "time"

type holdState uint8

const (
	holdCreated holdState = iota
	holdWaiting
	holdHeld
	holdReleased
	holdFinished
)

// HoldKSM implements the lazy Hold activation mode: a key press starts a
// timer; if the threshold elapses, or another key is pressed, before the
// watched key is released, the key commits to its hold action, otherwise
// it taps.
type HoldKSM[Id comparable, T any] struct {
	watched   Id
	tap, hold KeyActionSet[T]
	threshold time.Duration

	state      holdState
	timerStart time.Time
	cleanup    [1]KeyActionSet[T]
}

// NewHoldKSM constructs a HoldKSM watching key, committing to hold once
// threshold elapses (or another key is pressed) while waiting.
func NewHoldKSM[Id comparable, T any](watched Id, tap, hold KeyActionSet[T], threshold time.Duration) *HoldKSM[Id, T] {
	return &HoldKSM[Id, T]{
		watched:   watched,
		tap:       tap,
		hold:      hold,
		threshold: threshold,
		state:     holdCreated,
	}
}

// WatchedKey implements KeyStateMachine.
func (k *HoldKSM[Id, T]) WatchedKey() Id {
	return k.watched
}

// Finished implements KeyStateMachine.
func (k *HoldKSM[Id, T]) Finished() bool {
	return k.state == holdFinished
}

// CleanupActions implements KeyStateMachine.
//
// The lazy Hold machine has no cleanup set upfront: unlike Tap, its first
// emission isn't known until it commits to tap or hold. Each time it emits,
// it records the inverse of that emission as its cleanup, so whichever
// action it last sent gets retracted when it finishes.
func (k *HoldKSM[Id, T]) CleanupActions() []KeyActionSet[T] {
	return k.cleanup[:]
}

// Transition implements KeyStateMachine.
func (k *HoldKSM[Id, T]) Transition(event Event[Id], now time.Time) (KeyActionSet[T], bool) {
	switch k.state {
	case holdCreated:
		if watchedKeyPress(event, k.watched) {
			k.timerStart = now
			k.state = holdWaiting
		}
		return KeyActionSet[T]{}, false

	case holdWaiting:
		if now.Sub(k.timerStart) >= k.threshold || otherKeyPress(event, k.watched) {
			k.state = holdHeld
			k.cleanup[0] = k.hold.Invert()
			return k.hold, true
		}
		if watchedKeyRelease(event, k.watched) {
			k.state = holdReleased
			k.cleanup[0] = k.tap.Invert()
			return k.tap, true
		}
		return KeyActionSet[T]{}, false

	case holdReleased:
		k.state = holdFinished
		return KeyActionSet[T]{}, false

	case holdHeld:
		if watchedKeyRelease(event, k.watched) {
			k.state = holdFinished
		}
		return KeyActionSet[T]{}, false

	default: // holdFinished
		return KeyActionSet[T]{}, false
	}
}
