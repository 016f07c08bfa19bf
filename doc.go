// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package kbd implements a programmable virtual keyboard's logic engine.
//
// The engine turns a time-ordered stream of raw key events into a
// time-ordered stream of synthesized actions, running each key through a
// configurable activation model (tap, hold, eager-hold, double-tap,
// double-tap-hold). It is decoupled from any particular input or output
// device: callers drive it with Event values and collect the Action values
// it returns, and are free to source those events from a real keyboard (see
// the sibling input, output and waiter packages), from a test fixture, or
// from anything else that can produce a time-ordered event stream.
//
// The engine is single-threaded and cooperative: Transition must be called
// serially by one driver, performs no I/O, and blocks on nothing. Timeouts
// inside key state machines are evaluated against a wall clock sampled
// during a Transition call, not background timers, so callers must inject a
// Poll event at a cadence shorter than the shortest configured threshold for
// timeout-based transitions to fire promptly.
package kbd
