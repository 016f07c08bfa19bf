package kbd

import "time"

type doubleTapState uint8

const (
	dtCreated doubleTapState = iota
	dtFirstTap
	dtFirstRelease
	dtFinished
)

// DoubleTapKSM implements the Double-Tap activation mode: the first tap
// either gives up (emitting tap) after the hold threshold elapses or is
// interrupted by another key, or is followed by a second press within the
// retap window (emitting double_tap).
type DoubleTapKSM[Id comparable, T any] struct {
	watched        Id
	tap, doubleTap KeyActionSet[T]
	retap          time.Duration
	giveUp         time.Duration

	state      doubleTapState
	createdAt  time.Time
	releasedAt time.Time
	cleanup    [1]KeyActionSet[T]
}

// NewDoubleTapKSM constructs a DoubleTapKSM watching key. retap is the
// window after the first release within which a second press counts as a
// double tap; giveUp is how long the first tap waits before committing to
// a plain tap.
func NewDoubleTapKSM[Id comparable, T any](watched Id, tap, doubleTap KeyActionSet[T], retap, giveUp time.Duration) *DoubleTapKSM[Id, T] {
	return &DoubleTapKSM[Id, T]{
		watched:   watched,
		tap:       tap,
		doubleTap: doubleTap,
		retap:     retap,
		giveUp:    giveUp,
		state:     dtCreated,
	}
}

// WatchedKey implements KeyStateMachine.
func (k *DoubleTapKSM[Id, T]) WatchedKey() Id {
	return k.watched
}

// Finished implements KeyStateMachine.
func (k *DoubleTapKSM[Id, T]) Finished() bool {
	return k.state == dtFinished
}

// CleanupActions implements KeyStateMachine.
func (k *DoubleTapKSM[Id, T]) CleanupActions() []KeyActionSet[T] {
	return k.cleanup[:]
}

// Transition implements KeyStateMachine.
func (k *DoubleTapKSM[Id, T]) Transition(event Event[Id], now time.Time) (KeyActionSet[T], bool) {
	switch k.state {
	case dtCreated:
		if watchedKeyPress(event, k.watched) {
			k.createdAt = now
			k.state = dtFirstTap
		}
		return KeyActionSet[T]{}, false

	case dtFirstTap:
		if watchedKeyRelease(event, k.watched) {
			k.releasedAt = now
			k.state = dtFirstRelease
			return KeyActionSet[T]{}, false
		}
		if now.Sub(k.createdAt) > k.giveUp || event.IsKeyPress() {
			return k.finishWithTap()
		}
		return KeyActionSet[T]{}, false

	case dtFirstRelease:
		if now.Sub(k.releasedAt) > k.retap {
			return k.finishWithTap()
		}
		if watchedKeyPress(event, k.watched) {
			k.state = dtFinished
			k.cleanup[0] = k.doubleTap.Invert()
			return k.doubleTap, true
		}
		if otherKeyPress(event, k.watched) {
			return k.finishWithTap()
		}
		return KeyActionSet[T]{}, false

	default: // dtFinished
		return KeyActionSet[T]{}, false
	}
}

func (k *DoubleTapKSM[Id, T]) finishWithTap() (KeyActionSet[T], bool) {
	k.state = dtFinished
	k.cleanup[0] = k.tap.Invert()
	return k.tap, true
}
