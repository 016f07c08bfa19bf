package kbd

import "time"

// Clock is a capability for sampling the wall clock. Key state machines
// only ever observe time through values the engine passes into Transition,
// but the engine itself needs a source to sample from, and tests need to
// inject a fake clock to make timeout thresholds deterministic.
type Clock func() time.Time

// systemClock is the default Clock, backed by time.Now.
func systemClock() time.Time {
	return time.Now()
}
