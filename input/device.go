// Package input reads key events from a Linux evdev character device,
// translating the kernel's struct input_event records into kbd.Event
// values, built on direct golang.org/x/sys/unix syscalls instead of an
// evdev wrapper library.
package input

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-kbd"
)

// Linux input-event-codes.h constants this package needs. Kept as plain
// package constants rather than a dependency, since golang.org/x/sys/unix
// does not define the evdev/uinput-specific ones (only generic ioctl and
// epoll constants are present there).
const (
	evSyn = 0x00
	evKey = 0x01

	keyValueRelease = 0
	keyValuePress   = 1
	keyValueRepeat  = 2
)

// eviocgrab is the EVIOCGRAB ioctl request number: _IOW('E', 0x90, int).
const eviocgrab = 0x40044590

// inputEventSize is sizeof(struct input_event) on a 64-bit Linux kernel
// with 64-bit timeval (two 8-byte fields), followed by u16 type, u16 code,
// s32 value: 16 + 2 + 2 + 4 = 24 bytes.
const inputEventSize = 24

// Device wraps an open evdev character device file descriptor.
type Device struct {
	path string
	fd   int
}

// Open opens the evdev device at path for non-blocking reads. If grab is
// true, the device is exclusively grabbed via EVIOCGRAB so other consumers
// (notably the X11/Wayland input stack) stop seeing the physical events,
// mirroring how a virtual keyboard program takes over its source device.
func Open(path string, grab bool) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, &kbd.DeviceError{Device: path, Op: "open", Err: err}
	}
	d := &Device{path: path, fd: fd}
	if grab {
		if err := d.grab(); err != nil {
			_ = unix.Close(fd)
			return nil, err
		}
	}
	return d, nil
}

func (d *Device) grab() error {
	// EVIOCGRAB takes an int argument; nonzero grabs, zero releases.
	if err := unix.IoctlSetInt(d.fd, eviocgrab, 1); err != nil {
		return &kbd.DeviceError{Device: d.path, Op: "EVIOCGRAB", Err: err}
	}
	return nil
}

// Fd returns the underlying file descriptor, for registration with a
// waiter.Waiter.
func (d *Device) Fd() int {
	return d.fd
}

// Close releases the device, including any exclusive grab.
func (d *Device) Close() error {
	return unix.Close(d.fd)
}

// ReadEvent reads and decodes the next input_event record from the device.
// ok is false, with a nil error, for records this package intentionally
// discards: non-EV_KEY events (notably EV_SYN) and key repeats (value ==
// 2). This does not special-case SYN_DROPPED recovery: a dropped-event
// condition is left for the caller to notice via its own symptoms (stuck
// keys), not handled here.
func (d *Device) ReadEvent() (event kbd.Event[uint16], ok bool, err error) {
	var buf [inputEventSize]byte
	n, readErr := unix.Read(d.fd, buf[:])
	if readErr != nil {
		if readErr == unix.EAGAIN || readErr == unix.EWOULDBLOCK {
			return kbd.Event[uint16]{}, false, nil
		}
		return kbd.Event[uint16]{}, false, &kbd.DeviceError{Device: d.path, Op: "read", Err: readErr}
	}
	if n != inputEventSize {
		return kbd.Event[uint16]{}, false, &kbd.DeviceError{Device: d.path, Op: "read", Err: fmt.Errorf("short read: got %d bytes, want %d", n, inputEventSize)}
	}

	evType := binary.LittleEndian.Uint16(buf[16:18])
	evCode := binary.LittleEndian.Uint16(buf[18:20])
	evValue := int32(binary.LittleEndian.Uint32(buf[20:24]))

	if evType != evKey {
		return kbd.Event[uint16]{}, false, nil
	}
	switch evValue {
	case keyValuePress:
		return kbd.KeyPress(evCode), true, nil
	case keyValueRelease:
		return kbd.KeyRelease(evCode), true, nil
	default: // keyValueRepeat and anything else
		return kbd.Event[uint16]{}, false, nil
	}
}

