package interp

import "time"

// clockFunction is the sole native builtin, exposing wall-clock time in
// fractional seconds so Lox programs can measure their own runtime.
type clockFunction struct{}

func (clockFunction) Type() string   { return "function" }
func (clockFunction) String() string { return "<native-fn>" }
func (clockFunction) Arity() int     { return 0 }

func (clockFunction) Call(_ *Interpreter, _ []Value) (Value, error) {
	return FloatValue{Value: float64(time.Now().UnixNano()) / 1e9}, nil
}

// defineGlobals populates env with every native builtin.
func defineGlobals(env *Environment) {
	env.Define("clock", clockFunction{})
}
