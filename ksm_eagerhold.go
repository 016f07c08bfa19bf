package kbd

import "time"

type eagerHoldState uint8

const (
	eagerCreated eagerHoldState = iota
	eagerWaiting
	eagerHeld
	eagerReleased
	eagerFinished
)

// EagerHoldKSM implements the Eager-Hold activation mode: the hold action
// is committed at press time and retracted if the key is released before
// the threshold elapses, in which case the tap action fires instead.
type EagerHoldKSM[Id comparable, T any] struct {
	watched   Id
	tap, hold KeyActionSet[T]
	threshold time.Duration

	state      eagerHoldState
	timerStart time.Time
	cleanup    [1]KeyActionSet[T]
}

// NewEagerHoldKSM constructs an EagerHoldKSM watching key.
func NewEagerHoldKSM[Id comparable, T any](watched Id, tap, hold KeyActionSet[T], threshold time.Duration) *EagerHoldKSM[Id, T] {
	return &EagerHoldKSM[Id, T]{
		watched:   watched,
		tap:       tap,
		hold:      hold,
		threshold: threshold,
		state:     eagerCreated,
	}
}

// WatchedKey implements KeyStateMachine.
func (k *EagerHoldKSM[Id, T]) WatchedKey() Id {
	return k.watched
}

// Finished implements KeyStateMachine.
func (k *EagerHoldKSM[Id, T]) Finished() bool {
	return k.state == eagerFinished
}

// CleanupActions implements KeyStateMachine.
func (k *EagerHoldKSM[Id, T]) CleanupActions() []KeyActionSet[T] {
	return k.cleanup[:]
}

// Transition implements KeyStateMachine.
func (k *EagerHoldKSM[Id, T]) Transition(event Event[Id], now time.Time) (KeyActionSet[T], bool) {
	switch k.state {
	case eagerCreated:
		if watchedKeyPress(event, k.watched) {
			k.timerStart = now
			k.state = eagerWaiting
			k.cleanup[0] = k.hold.Invert()
			return k.hold, true
		}
		return KeyActionSet[T]{}, false

	case eagerWaiting:
		if now.Sub(k.timerStart) >= k.threshold || otherKeyPress(event, k.watched) {
			k.state = eagerHeld
			return KeyActionSet[T]{}, false
		}
		if watchedKeyRelease(event, k.watched) {
			k.state = eagerReleased
			retract := k.hold.Invert()
			k.cleanup[0] = retract
			return retract, true
		}
		return KeyActionSet[T]{}, false

	case eagerReleased:
		k.state = eagerFinished
		k.cleanup[0] = k.tap.Invert()
		return k.tap, true

	case eagerHeld:
		if watchedKeyRelease(event, k.watched) {
			k.state = eagerFinished
		}
		return KeyActionSet[T]{}, false

	default: // eagerFinished
		return KeyActionSet[T]{}, false
	}
}
