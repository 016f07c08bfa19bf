package kbd

// LayerId identifies a layer in the layer stack. A small integer.
type LayerId int32

// KeyActionKind discriminates the variants of KeyAction.
type KeyActionKind uint8

const (
	// KeyActionSendKey begins transmitting the given code.
	KeyActionSendKey KeyActionKind = iota
	// KeyActionStopKey ends transmitting the given code.
	KeyActionStopKey
	// KeyActionPushLayer pushes a layer onto the layer stack.
	KeyActionPushLayer
	// KeyActionPopLayer removes a layer from the layer stack.
	KeyActionPopLayer
	// KeyActionNoOp does nothing.
	KeyActionNoOp
)

// String returns a human-readable name for the key action kind.
func (k KeyActionKind) String() string {
	switch k {
	case KeyActionSendKey:
		return "SendKey"
	case KeyActionStopKey:
		return "StopKey"
	case KeyActionPushLayer:
		return "PushLayer"
	case KeyActionPopLayer:
		return "PopLayer"
	case KeyActionNoOp:
		return "NoOp"
	default:
		return "Unknown"
	}
}

// KeyAction is an internal effect unit produced by a key state machine.
// Exactly one of Code (for SendKey/StopKey) or Layer (for PushLayer/PopLayer)
// is meaningful, depending on Kind.
type KeyAction[T any] struct {
	Kind  KeyActionKind
	Code  T
	Layer LayerId
}

// SendKeyAction constructs a SendKey KeyAction.
func SendKeyAction[T any](code T) KeyAction[T] {
	return KeyAction[T]{Kind: KeyActionSendKey, Code: code}
}

// StopKeyAction constructs a StopKey KeyAction.
func StopKeyAction[T any](code T) KeyAction[T] {
	return KeyAction[T]{Kind: KeyActionStopKey, Code: code}
}

// PushLayerAction constructs a PushLayer KeyAction.
func PushLayerAction[T any](layer LayerId) KeyAction[T] {
	return KeyAction[T]{Kind: KeyActionPushLayer, Layer: layer}
}

// PopLayerAction constructs a PopLayer KeyAction.
func PopLayerAction[T any](layer LayerId) KeyAction[T] {
	return KeyAction[T]{Kind: KeyActionPopLayer, Layer: layer}
}

// NoOpAction constructs a NoOp KeyAction.
func NoOpAction[T any]() KeyAction[T] {
	return KeyAction[T]{Kind: KeyActionNoOp}
}

// Invert returns the inverse of the action: SendKey<->StopKey,
// PushLayer<->PopLayer, NoOp<->NoOp. Invert is a pure, total involution:
// a.Invert().Invert() == a for all a.
func (a KeyAction[T]) Invert() KeyAction[T] {
	switch a.Kind {
	case KeyActionSendKey:
		return KeyAction[T]{Kind: KeyActionStopKey, Code: a.Code}
	case KeyActionStopKey:
		return KeyAction[T]{Kind: KeyActionSendKey, Code: a.Code}
	case KeyActionPushLayer:
		return KeyAction[T]{Kind: KeyActionPopLayer, Layer: a.Layer}
	case KeyActionPopLayer:
		return KeyAction[T]{Kind: KeyActionPushLayer, Layer: a.Layer}
	default:
		return a
	}
}

// maxKeyActions is the cardinality bound on a KeyActionSet: a fixed-capacity
// inline array instead of a general sequence, since no activation mode needs
// more than three actions per transition.
const maxKeyActions = 3

// KeyActionSet is a bounded sequence of 1..3 KeyActions, executed atomically
// and in order by the orchestrator. The zero value is not a valid
// KeyActionSet; construct one with NewKeyActionSet.
type KeyActionSet[T any] struct {
	actions [maxKeyActions]KeyAction[T]
	n       uint8
}

// NewKeyActionSet builds a KeyActionSet from 1 to 3 KeyActions, in
// declaration order. It panics if given zero or more than maxKeyActions
// actions, since KeyActionSet models a modeling-time invariant, not a
// runtime one: callers construct these from static key configuration.
func NewKeyActionSet[T any](actions ...KeyAction[T]) KeyActionSet[T] {
	if len(actions) == 0 || len(actions) > maxKeyActions {
		panic("kbd: KeyActionSet must contain between 1 and 3 actions")
	}
	var s KeyActionSet[T]
	s.n = uint8(len(actions))
	copy(s.actions[:], actions)
	return s
}

// Actions returns the set's members in declaration order. The returned
// slice aliases the set's internal storage and must not be mutated.
func (s KeyActionSet[T]) Actions() []KeyAction[T] {
	return s.actions[:s.n]
}

// Invert returns a new set of the same cardinality with each KeyAction
// inverted pointwise. The order of the inverted set is unchanged: inversion
// is applied to each element, not to their sequence.
func (s KeyActionSet[T]) Invert() KeyActionSet[T] {
	var out KeyActionSet[T]
	out.n = s.n
	for i := 0; i < int(s.n); i++ {
		out.actions[i] = s.actions[i].Invert()
	}
	return out
}
