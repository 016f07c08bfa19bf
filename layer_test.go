package kbd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayerStackActiveDefaultsWhenEmpty(t *testing.T) {
	var s layerStack
	assert.Equal(t, LayerId(0), s.active(0))
	assert.Equal(t, LayerId(7), s.active(7))
}

func TestLayerStackPushPopMatchingLayer(t *testing.T) {
	var s layerStack
	s.push(1)
	assert.Equal(t, LayerId(1), s.active(0))
	s.pop(1)
	assert.Equal(t, LayerId(0), s.active(0))
	assert.Empty(t, s.snapshot())
}

// TestLayerStackPopTopmostOccurrence exercises the PopLayer semantics when
// two keys push different layers and the first one releases: only its own
// layer is removed, not whatever happens to be on top.
func TestLayerStackPopTopmostOccurrence(t *testing.T) {
	var s layerStack
	s.push(1) // key A pushes L1
	s.push(2) // key B pushes L2
	assert.Equal(t, LayerId(2), s.active(0))

	s.pop(1) // key A releases, popping L1 specifically
	assert.Equal(t, []LayerId{2}, s.snapshot())
	assert.Equal(t, LayerId(2), s.active(0))
}

func TestLayerStackPopAbsentLayerIsNoop(t *testing.T) {
	var s layerStack
	s.push(1)
	s.pop(99)
	assert.Equal(t, []LayerId{1}, s.snapshot())
}
