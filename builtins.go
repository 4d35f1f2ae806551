package lox

import "time"

// clockFn implements Lox's sole native function, `clock()`, returning
// seconds since the Unix epoch as a float — spec §4.4 restricts the
// standard library to exactly this one native.
type clockFn struct{}

func (clockFn) Arity() int { return 0 }

func (clockFn) Call(interp *Interpreter, arguments []Value) Value {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

func (clockFn) String() string { return "<native fn>" }

// registerNatives seeds globals with every native binding Lox exposes.
func registerNatives(globals *Env) {
	globals.Define("clock", clockFn{})
}
