// Package config loads a static key-mapping file into a kbd.MapOrEchoMapper,
// giving the surrounding program a configuration surface instead of a
// hardcoded table. Entries are written with symbolic EV_KEY names rather
// than numeric scan codes, resolved via the package's keyCodes table.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/joeycumines/go-kbd"
)

// fileConfig is the root of a mapping file: a list of layers, each
// contributing a list of per-key configurations.
type fileConfig struct {
	Layers []fileLayer `mapstructure:"layers"`
}

type fileLayer struct {
	Layer int32         `mapstructure:"layer"`
	Keys  []fileKeyConf `mapstructure:"keys"`
}

// fileKeyConf is one (layer, key) entry. Mode selects which of Tap, Hold,
// and DoubleTap are meaningful, mirroring kbd.KeyConfKind.
type fileKeyConf struct {
	Key       string   `mapstructure:"key"`
	Mode      string   `mapstructure:"mode"`
	Tap       []string `mapstructure:"tap"`
	Hold      []string `mapstructure:"hold"`
	DoubleTap []string `mapstructure:"double_tap"`
}

// Load reads the YAML mapping file at path and builds a MapOrEchoMapper
// from it. Keys absent from the file fall through to MapOrEchoMapper's
// echo behavior, so a mapping file only needs to list the keys it remaps.
func Load(path string) (*kbd.MapOrEchoMapper[uint16], error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &kbd.ConfigError{Path: path, Op: "read", Err: err}
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &kbd.ConfigError{Path: path, Op: "parse", Err: err}
	}

	mapper := kbd.NewMapOrEchoMapper[uint16]()
	for _, layer := range cfg.Layers {
		for _, entry := range layer.Keys {
			key, ok := resolveKeyCode(entry.Key)
			if !ok {
				return nil, &kbd.ConfigError{Path: path, Op: "resolve key", Err: fmt.Errorf("unknown key name %q", entry.Key)}
			}
			conf, err := buildKeyConf(entry)
			if err != nil {
				return nil, &kbd.ConfigError{Path: path, Op: fmt.Sprintf("key %s", entry.Key), Err: err}
			}
			mapper.Set(kbd.LayerId(layer.Layer), key, conf)
		}
	}
	return mapper, nil
}

func buildKeyConf(entry fileKeyConf) (kbd.KeyConf[uint16], error) {
	tap, err := parseActionSet(entry.Tap)
	if err != nil {
		return kbd.KeyConf[uint16]{}, fmt.Errorf("tap: %w", err)
	}

	switch strings.ToLower(entry.Mode) {
	case "tap", "":
		return kbd.Tap(tap), nil
	case "hold":
		hold, err := parseActionSet(entry.Hold)
		if err != nil {
			return kbd.KeyConf[uint16]{}, fmt.Errorf("hold: %w", err)
		}
		return kbd.Hold(tap, hold), nil
	case "eager_hold":
		hold, err := parseActionSet(entry.Hold)
		if err != nil {
			return kbd.KeyConf[uint16]{}, fmt.Errorf("hold: %w", err)
		}
		return kbd.EagerHold(tap, hold), nil
	case "double_tap":
		dt, err := parseActionSet(entry.DoubleTap)
		if err != nil {
			return kbd.KeyConf[uint16]{}, fmt.Errorf("double_tap: %w", err)
		}
		return kbd.DoubleTap(tap, dt), nil
	case "double_tap_hold":
		hold, err := parseActionSet(entry.Hold)
		if err != nil {
			return kbd.KeyConf[uint16]{}, fmt.Errorf("hold: %w", err)
		}
		dt, err := parseActionSet(entry.DoubleTap)
		if err != nil {
			return kbd.KeyConf[uint16]{}, fmt.Errorf("double_tap: %w", err)
		}
		return kbd.DoubleTapHold(tap, hold, dt), nil
	default:
		return kbd.KeyConf[uint16]{}, fmt.Errorf("unknown mode %q", entry.Mode)
	}
}

// parseActionSet parses 1..3 action strings into a KeyActionSet. Each
// string is one of: "send:KEY_NAME", "stop:KEY_NAME", "push_layer:N",
// "pop_layer:N", "noop".
func parseActionSet(raw []string) (kbd.KeyActionSet[uint16], error) {
	if len(raw) == 0 {
		return kbd.KeyActionSet[uint16]{}, fmt.Errorf("at least one action is required")
	}
	actions := make([]kbd.KeyAction[uint16], 0, len(raw))
	for _, s := range raw {
		a, err := parseAction(s)
		if err != nil {
			return kbd.KeyActionSet[uint16]{}, err
		}
		actions = append(actions, a)
	}
	return kbd.NewKeyActionSet(actions...), nil
}

func parseAction(s string) (kbd.KeyAction[uint16], error) {
	kind, arg, _ := strings.Cut(s, ":")
	switch kind {
	case "send":
		code, ok := resolveKeyCode(arg)
		if !ok {
			return kbd.KeyAction[uint16]{}, fmt.Errorf("unknown key name %q", arg)
		}
		return kbd.SendKeyAction(code), nil
	case "stop":
		code, ok := resolveKeyCode(arg)
		if !ok {
			return kbd.KeyAction[uint16]{}, fmt.Errorf("unknown key name %q", arg)
		}
		return kbd.StopKeyAction(code), nil
	case "push_layer":
		layer, err := strconv.Atoi(arg)
		if err != nil {
			return kbd.KeyAction[uint16]{}, fmt.Errorf("push_layer: %w", err)
		}
		return kbd.PushLayerAction[uint16](kbd.LayerId(layer)), nil
	case "pop_layer":
		layer, err := strconv.Atoi(arg)
		if err != nil {
			return kbd.KeyAction[uint16]{}, fmt.Errorf("pop_layer: %w", err)
		}
		return kbd.PopLayerAction[uint16](kbd.LayerId(layer)), nil
	case "noop":
		return kbd.NoOpAction[uint16](), nil
	default:
		return kbd.KeyAction[uint16]{}, fmt.Errorf("unknown action %q", s)
	}
}
