// Package output emits key events on a Linux uinput virtual device,
// translating kbd.Action values into struct input_event records, built
// directly on /dev/uinput ioctls via golang.org/x/sys/unix instead of a
// uinput wrapper library.
package output

import (
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-kbd"
)

// Linux input-event-codes.h / uinput.h constants this package needs.
const (
	evSyn = 0x00
	evKey = 0x01

	synReport = 0

	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	// maxKeyCode bounds the EV_KEY range the virtual device advertises
	// support for; the kernel's key codes run from 0 to KEY_MAX (0x2ff,
	// i.e. 767, in current headers), so enabling every code below 768
	// covers exactly that range.
	maxKeyCode = 768
)

// uinputUserDev mirrors struct uinput_user_dev from linux/uinput.h: a name
// buffer followed by a struct input_id, ff_effects_max, and four
// absolute-axis arrays. Only the name is populated; bus/vendor/product/
// version and the geometry fields stay zero, matching a keyboard with no
// absolute axes.
type uinputUserDev struct {
	Name       [80]byte
	Bustype    uint16
	Vendor     uint16
	Product    uint16
	Version    uint16
	FFEffectsMax uint32
	Absmax     [64]int32
	Absmin     [64]int32
	Absfuzz    [64]int32
	Absflat    [64]int32
}

// Device wraps an open /dev/uinput virtual keyboard.
type Device struct {
	fd int
}

// Open creates and registers a virtual keyboard device named name,
// enabling EV_KEY and every key code up to maxKeyCode. uinputPath is
// typically "/dev/uinput".
func Open(uinputPath, name string) (*Device, error) {
	fd, err := unix.Open(uinputPath, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, &kbd.DeviceError{Device: uinputPath, Op: "open", Err: err}
	}
	d := &Device{fd: fd}

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		_ = unix.Close(fd)
		return nil, &kbd.DeviceError{Device: uinputPath, Op: "UI_SET_EVBIT", Err: err}
	}
	for code := 0; code < maxKeyCode; code++ {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, code); err != nil {
			_ = unix.Close(fd)
			return nil, &kbd.DeviceError{Device: uinputPath, Op: "UI_SET_KEYBIT", Err: err}
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:], name)
	if err := writeStruct(fd, &dev); err != nil {
		_ = unix.Close(fd)
		return nil, &kbd.DeviceError{Device: uinputPath, Op: "write uinput_user_dev", Err: err}
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		_ = unix.Close(fd)
		return nil, &kbd.DeviceError{Device: uinputPath, Op: "UI_DEV_CREATE", Err: err}
	}

	return d, nil
}

// Close destroys the virtual device.
func (d *Device) Close() error {
	_ = unix.IoctlSetInt(d.fd, uiDevDestroy, 0)
	return unix.Close(d.fd)
}

// EmitActions writes one input_event per action, followed by a trailing
// SYN_REPORT: a report is a chain of events terminated by a sync record, so
// downstream consumers see all of them atomically.
func (d *Device) EmitActions(actions []kbd.Action[uint16]) error {
	now := time.Now()
	for _, action := range actions {
		var value int32
		switch action.Kind {
		case kbd.ActionSendCode:
			value = 1
		case kbd.ActionStop:
			value = 0
		}
		if err := writeEvent(d.fd, now, evKey, action.Code, value); err != nil {
			return &kbd.DeviceError{Device: "uinput", Op: "write", Err: err}
		}
	}
	if err := writeEvent(d.fd, now, evSyn, synReport, 0); err != nil {
		return &kbd.DeviceError{Device: "uinput", Op: "write SYN_REPORT", Err: err}
	}
	return nil
}

// writeEvent encodes and writes one struct input_event: a 16-byte timeval
// (seconds, microseconds, both 8 bytes on a 64-bit kernel), followed by
// u16 type, u16 code, s32 value.
func writeEvent(fd int, t time.Time, evType uint16, code uint16, value int32) error {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(t.Unix()))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(t.Nanosecond()/1000))
	binary.LittleEndian.PutUint16(buf[16:18], evType)
	binary.LittleEndian.PutUint16(buf[18:20], code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(value))
	_, err := unix.Write(fd, buf[:])
	return err
}

// writeStruct serializes dev's fixed-size fields in declaration order and
// writes them as a single uinput_user_dev record.
func writeStruct(fd int, dev *uinputUserDev) error {
	buf := make([]byte, 0, 80+8+4+4*64*4)
	buf = append(buf, dev.Name[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, dev.Bustype)
	buf = binary.LittleEndian.AppendUint16(buf, dev.Vendor)
	buf = binary.LittleEndian.AppendUint16(buf, dev.Product)
	buf = binary.LittleEndian.AppendUint16(buf, dev.Version)
	buf = binary.LittleEndian.AppendUint32(buf, dev.FFEffectsMax)
	for _, arr := range [][64]int32{dev.Absmax, dev.Absmin, dev.Absfuzz, dev.Absflat} {
		for _, v := range arr {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
		}
	}
	_, err := unix.Write(fd, buf)
	return err
}
