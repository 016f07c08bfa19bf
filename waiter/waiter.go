// Package waiter multiplexes a blocking read on an input device's file
// descriptor with a timeout, so a driver loop can inject kbd.PollEvent values at
// a cadence shorter than the shortest configured activation threshold. It
// talks to epoll directly via golang.org/x/sys/unix rather than through a
// wrapper package.
package waiter

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/joeycumines/go-kbd"
)

// Waiter wraps a single epoll instance monitoring exactly one file
// descriptor for readability, matching the one-device, one-source shape of
// the surrounding program.
type Waiter struct {
	epfd int
}

// New creates an epoll instance and registers fd for EPOLLIN.
func New(fd int) (*Waiter, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, &kbd.DeviceError{Device: "epoll", Op: "epoll_create1", Err: err}
	}
	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
		_ = unix.Close(epfd)
		return nil, &kbd.DeviceError{Device: "epoll", Op: "epoll_ctl", Err: err}
	}
	return &Waiter{epfd: epfd}, nil
}

// Close releases the epoll instance.
func (w *Waiter) Close() error {
	return unix.Close(w.epfd)
}

// Wait blocks until the monitored file descriptor is readable or timeout
// elapses, returning ready == true in the former case. A zero or negative
// timeout blocks indefinitely, matching unix.EpollWait's -1 convention.
func (w *Waiter) Wait(timeout time.Duration) (ready bool, err error) {
	timeoutMs := -1
	if timeout > 0 {
		timeoutMs = int(timeout.Milliseconds())
	}

	var events [1]unix.EpollEvent
	n, err := unix.EpollWait(w.epfd, events[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, &kbd.DeviceError{Device: "epoll", Op: "epoll_wait", Err: err}
	}
	return n > 0, nil
}

// PollInterval returns the cadence a driver loop should call Wait at so
// that a Poll is injected at least once every
// min(all configured thresholds) / 2, well inside any single activation
// threshold. settings is the Engine's Settings.
func PollInterval(settings kbd.Settings) time.Duration {
	min := settings.HoldDelay
	for _, d := range []time.Duration{
		settings.DoubleTapRetapDelay,
		settings.DoubleTapHoldDelay,
		settings.DoubleTapHoldRetapDelay,
		settings.DoubleTapHoldHoldDelay,
	} {
		if d < min {
			min = d
		}
	}
	return min / 2
}
