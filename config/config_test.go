package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-kbd"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCapsLockHoldRemap(t *testing.T) {
	path := writeTempConfig(t, `
layers:
  - layer: 0
    keys:
      - key: KEY_CAPSLOCK
        mode: hold
        tap: ["send:KEY_ESC"]
        hold: ["send:KEY_LEFTCTRL"]
`)

	mapper, err := Load(path)
	require.NoError(t, err)

	conf, ok := mapper.GetConf(0, 58) // KEY_CAPSLOCK
	require.True(t, ok)
	assert.Equal(t, kbd.KeyConfHold, conf.Kind)
	assert.Equal(t, []kbd.KeyAction[uint16]{kbd.SendKeyAction[uint16](1)}, conf.Tap.Actions())
	assert.Equal(t, []kbd.KeyAction[uint16]{kbd.SendKeyAction[uint16](29)}, conf.Hold.Actions())
}

func TestLoadLayerPushAndArrowRemap(t *testing.T) {
	path := writeTempConfig(t, `
layers:
  - layer: 0
    keys:
      - key: KEY_CAPSLOCK
        mode: tap
        tap: ["push_layer:1"]
  - layer: 1
    keys:
      - key: KEY_J
        mode: tap
        tap: ["send:KEY_DOWN"]
`)

	mapper, err := Load(path)
	require.NoError(t, err)

	capsConf, ok := mapper.GetConf(0, 58)
	require.True(t, ok)
	assert.Equal(t, []kbd.KeyAction[uint16]{kbd.PushLayerAction[uint16](1)}, capsConf.Tap.Actions())

	jConf, ok := mapper.GetConf(1, 36) // KEY_J
	require.True(t, ok)
	assert.Equal(t, []kbd.KeyAction[uint16]{kbd.SendKeyAction[uint16](108)}, jConf.Tap.Actions())

	// Unlisted (layer, key) pairs echo through.
	echoed, ok := mapper.GetConf(0, 36)
	require.True(t, ok)
	assert.Equal(t, []kbd.KeyAction[uint16]{kbd.SendKeyAction[uint16](36)}, echoed.Tap.Actions())
}

func TestLoadUnknownKeyNameFails(t *testing.T) {
	path := writeTempConfig(t, `
layers:
  - layer: 0
    keys:
      - key: KEY_NOT_A_REAL_KEY
        mode: tap
        tap: ["send:KEY_ESC"]
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
