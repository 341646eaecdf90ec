package mc2

import "errors"

// ErrUnknownClient marks a plan that dispatches an act to a client id
// the Executor never registered an actor for. It indicates a bug in the
// checker harness, not in the system under test, and is always raised
// as a panic.
var ErrUnknownClient = errors.New("mc2: unknown client id")
