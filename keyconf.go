package kbd

// KeyConfKind discriminates the variants of KeyConf.
type KeyConfKind uint8

const (
	// KeyConfTap configures a key that fires its tap action on press and
	// retracts it on release.
	KeyConfTap KeyConfKind = iota
	// KeyConfHold configures a key that lazily commits to a hold action
	// once a threshold elapses or another key is pressed, otherwise taps.
	KeyConfHold
	// KeyConfEagerHold configures a key that eagerly commits to a hold
	// action on press, retracting it if released before the threshold.
	KeyConfEagerHold
	// KeyConfDoubleTap configures a key whose second tap, within a retap
	// window, fires a distinct action from a single tap.
	KeyConfDoubleTap
	// KeyConfDoubleTapHold configures a key combining Hold and DoubleTap
	// behavior.
	KeyConfDoubleTapHold
)

// String returns a human-readable name for the key configuration kind.
func (k KeyConfKind) String() string {
	switch k {
	case KeyConfTap:
		return "Tap"
	case KeyConfHold:
		return "Hold"
	case KeyConfEagerHold:
		return "EagerHold"
	case KeyConfDoubleTap:
		return "DoubleTap"
	case KeyConfDoubleTapHold:
		return "DoubleTapHold"
	default:
		return "Unknown"
	}
}

// KeyConf is a per-key behavior specification: a tagged variant over Tap,
// Hold, EagerHold, DoubleTap and DoubleTapHold. Which fields are meaningful
// depends on Kind; construct instances with the Tap/Hold/EagerHold/
// DoubleTap/DoubleTapHold helper functions rather than populating the
// struct directly.
type KeyConf[T any] struct {
	Kind      KeyConfKind
	Tap       KeyActionSet[T]
	Hold      KeyActionSet[T]
	DoubleTap KeyActionSet[T]
}

// Tap builds a Tap KeyConf.
func Tap[T any](tap KeyActionSet[T]) KeyConf[T] {
	return KeyConf[T]{Kind: KeyConfTap, Tap: tap}
}

// Hold builds a Hold (lazy) KeyConf.
func Hold[T any](tap, hold KeyActionSet[T]) KeyConf[T] {
	return KeyConf[T]{Kind: KeyConfHold, Tap: tap, Hold: hold}
}

// EagerHold builds an EagerHold KeyConf.
func EagerHold[T any](tap, hold KeyActionSet[T]) KeyConf[T] {
	return KeyConf[T]{Kind: KeyConfEagerHold, Tap: tap, Hold: hold}
}

// DoubleTap builds a DoubleTap KeyConf.
func DoubleTap[T any](tap, doubleTap KeyActionSet[T]) KeyConf[T] {
	return KeyConf[T]{Kind: KeyConfDoubleTap, Tap: tap, DoubleTap: doubleTap}
}

// DoubleTapHold builds a DoubleTapHold KeyConf.
func DoubleTapHold[T any](tap, hold, doubleTap KeyActionSet[T]) KeyConf[T] {
	return KeyConf[T]{Kind: KeyConfDoubleTapHold, Tap: tap, Hold: hold, DoubleTap: doubleTap}
}
