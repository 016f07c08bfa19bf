package config

// keyCodes maps the symbolic Linux EV_KEY names used in mapping files to
// their numeric scan codes, per linux/input-event-codes.h. Only the subset
// exercised by the example mappings and common remaps is listed; extend as
// needed.
var keyCodes = map[string]uint16{
	"KEY_ESC":       1,
	"KEY_1":         2,
	"KEY_2":         3,
	"KEY_3":         4,
	"KEY_4":         5,
	"KEY_5":         6,
	"KEY_6":         7,
	"KEY_7":         8,
	"KEY_8":         9,
	"KEY_9":         10,
	"KEY_0":         11,
	"KEY_TAB":       15,
	"KEY_Q":         16,
	"KEY_W":         17,
	"KEY_E":         18,
	"KEY_R":         19,
	"KEY_T":         20,
	"KEY_Y":         21,
	"KEY_U":         22,
	"KEY_I":         23,
	"KEY_O":         24,
	"KEY_P":         25,
	"KEY_ENTER":     28,
	"KEY_LEFTCTRL":  29,
	"KEY_A":         30,
	"KEY_S":         31,
	"KEY_D":         32,
	"KEY_F":         33,
	"KEY_G":         34,
	"KEY_H":         35,
	"KEY_J":         36,
	"KEY_K":         37,
	"KEY_L":         38,
	"KEY_LEFTSHIFT": 42,
	"KEY_Z":         44,
	"KEY_X":         45,
	"KEY_C":         46,
	"KEY_V":         47,
	"KEY_B":         48,
	"KEY_N":         49,
	"KEY_M":         50,
	"KEY_SPACE":     57,
	"KEY_CAPSLOCK":  58,
	"KEY_LEFTALT":   56,
	"KEY_LEFT":      105,
	"KEY_RIGHT":     106,
	"KEY_UP":        103,
	"KEY_DOWN":      108,
}

// resolveKeyCode looks up a symbolic key name, returning the scan code and
// whether it was recognized.
func resolveKeyCode(name string) (uint16, bool) {
	code, ok := keyCodes[name]
	return code, ok
}
