package kbd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMapperMissReturnsFalse(t *testing.T) {
	m := NewTableMapper[int, int]()
	_, ok := m.GetConf(0, 5)
	assert.False(t, ok)
}

func TestTableMapperHitReturnsConf(t *testing.T) {
	m := NewTableMapper[int, int]()
	conf := Tap(NewKeyActionSet(SendKeyAction(10)))
	m.Set(0, 5, conf)

	got, ok := m.GetConf(0, 5)
	require.True(t, ok)
	assert.Equal(t, conf, got)
}

func TestTableMapperIsolatesLayers(t *testing.T) {
	m := NewTableMapper[int, int]()
	m.Set(1, 3, Tap(NewKeyActionSet(SendKeyAction(33))))

	_, ok := m.GetConf(0, 3)
	assert.False(t, ok)

	got, ok := m.GetConf(1, 3)
	require.True(t, ok)
	assert.Equal(t, KeyConfTap, got.Kind)
}

func TestMapOrEchoMapperEchoesUnconfiguredKeys(t *testing.T) {
	m := NewMapOrEchoMapper[int]()
	conf, ok := m.GetConf(0, 42)
	require.True(t, ok)
	assert.Equal(t, KeyConfTap, conf.Kind)
	assert.Equal(t, []KeyAction[int]{SendKeyAction(42)}, conf.Tap.Actions())
}

func TestMapOrEchoMapperPrefersConfiguredEntry(t *testing.T) {
	m := NewMapOrEchoMapper[int]()
	m.Set(0, 42, Tap(NewKeyActionSet(SendKeyAction(99))))

	conf, ok := m.GetConf(0, 42)
	require.True(t, ok)
	assert.Equal(t, []KeyAction[int]{SendKeyAction(99)}, conf.Tap.Actions())
}
