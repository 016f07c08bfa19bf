package kbd

// layerStack is an ordered sequence of LayerIds; the active layer is the
// last entry, or a configured default layer when empty.
type layerStack struct {
	layers []LayerId
}

// active returns the top of the stack, or def if the stack is empty.
func (s *layerStack) active(def LayerId) LayerId {
	if len(s.layers) == 0 {
		return def
	}
	return s.layers[len(s.layers)-1]
}

// push appends a layer to the top of the stack.
func (s *layerStack) push(layer LayerId) {
	s.layers = append(s.layers, layer)
}

// pop removes the topmost occurrence of layer from the stack, if present.
//
// Popping whichever layer happens to be on top, regardless of which LayerId
// accompanied PopLayer, is wrong whenever pushes from different keys
// overlap (key A pushes L1, key B pushes L2, key A releases: popping the
// stack top removes L2, not L1, the one A actually pushed). Removing the
// topmost occurrence of the requested LayerId keeps push/pop symmetric
// per-layer regardless of interleaving.
func (s *layerStack) pop(layer LayerId) (found bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i] == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns a copy of the current stack contents, oldest first.
func (s *layerStack) snapshot() []LayerId {
	out := make([]LayerId, len(s.layers))
	copy(out, s.layers)
	return out
}
