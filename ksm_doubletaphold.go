package kbd

import "time"

type doubleTapHoldState uint8

const (
	dthCreated doubleTapHoldState = iota
	dthWaiting
	dthHeld
	dthReleased
	dthFinished
)

// DoubleTapHoldKSM implements the Double-Tap-Hold activation mode: the
// union of Hold and Double-Tap. While waiting, the key commits to hold on
// threshold expiry or interference from another key, exactly like Hold;
// releasing first opens a retap window during which a second press emits
// double_tap instead of tap.
type DoubleTapHoldKSM[Id comparable, T any] struct {
	watched              Id
	tap, hold, doubleTap KeyActionSet[T]
	holdThreshold        time.Duration
	retap                time.Duration

	state      doubleTapHoldState
	timerStart time.Time
	releasedAt time.Time
	cleanup    [1]KeyActionSet[T]
}

// NewDoubleTapHoldKSM constructs a DoubleTapHoldKSM watching key.
func NewDoubleTapHoldKSM[Id comparable, T any](watched Id, tap, hold, doubleTap KeyActionSet[T], holdThreshold, retap time.Duration) *DoubleTapHoldKSM[Id, T] {
	return &DoubleTapHoldKSM[Id, T]{
		watched:       watched,
		tap:           tap,
		hold:          hold,
		doubleTap:     doubleTap,
		holdThreshold: holdThreshold,
		retap:         retap,
		state:         dthCreated,
	}
}

// WatchedKey implements KeyStateMachine.
func (k *DoubleTapHoldKSM[Id, T]) WatchedKey() Id {
	return k.watched
}

// Finished implements KeyStateMachine.
func (k *DoubleTapHoldKSM[Id, T]) Finished() bool {
	return k.state == dthFinished
}

// CleanupActions implements KeyStateMachine.
func (k *DoubleTapHoldKSM[Id, T]) CleanupActions() []KeyActionSet[T] {
	return k.cleanup[:]
}

// Transition implements KeyStateMachine.
func (k *DoubleTapHoldKSM[Id, T]) Transition(event Event[Id], now time.Time) (KeyActionSet[T], bool) {
	switch k.state {
	case dthCreated:
		if watchedKeyPress(event, k.watched) {
			k.timerStart = now
			k.state = dthWaiting
		}
		return KeyActionSet[T]{}, false

	case dthWaiting:
		if now.Sub(k.timerStart) >= k.holdThreshold || otherKeyPress(event, k.watched) {
			k.state = dthHeld
			k.cleanup[0] = k.hold.Invert()
			return k.hold, true
		}
		if watchedKeyRelease(event, k.watched) {
			k.releasedAt = now
			k.state = dthReleased
		}
		return KeyActionSet[T]{}, false

	case dthReleased:
		if now.Sub(k.releasedAt) > k.retap {
			return k.finishWith(k.tap)
		}
		if watchedKeyPress(event, k.watched) {
			return k.finishWith(k.doubleTap)
		}
		if otherKeyPress(event, k.watched) {
			return k.finishWith(k.tap)
		}
		return KeyActionSet[T]{}, false

	case dthHeld:
		if watchedKeyRelease(event, k.watched) {
			k.state = dthFinished
		}
		return KeyActionSet[T]{}, false

	default: // dthFinished
		return KeyActionSet[T]{}, false
	}
}

func (k *DoubleTapHoldKSM[Id, T]) finishWith(set KeyActionSet[T]) (KeyActionSet[T], bool) {
	k.state = dthFinished
	k.cleanup[0] = set.Invert()
	return set, true
}
