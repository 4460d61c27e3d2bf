// Package construct holds the construction types: named algorithms that
// compute a value from the values of their parents. Types are immutable
// and shared by every node built from them; a Registry maps names to
// types.
package construct

import (
	"github.com/chazu/compass/pkg/value"
)

// Arg describes one argument slot of a construction type.
type Arg struct {
	Kind     value.Kind
	Usage    string
	Optional bool // the slot may be left out
	Variadic bool // the last slot may repeat zero or more times
}

// Type is a construction type. Calc receives its arguments aligned to
// Args: a skipped optional slot holds nil and a variadic tail is appended
// as is. Calc is only ever invoked through Eval, after the arguments have
// been checked.
type Type struct {
	Name      string
	Args      []Arg
	Result    value.Kind
	Calc      func(args []value.Value) value.Value
	Transform bool // the last argument is the object being transformed
}

// Match is the outcome of matching a selection against a type.
type Match int

const (
	NotGood     Match = iota // the selection cannot become valid arguments
	NotComplete              // a valid prefix; more arguments are needed
	Complete                 // the selection is a full argument list
)

func (m Match) String() string {
	switch m {
	case NotGood:
		return "not-good"
	case NotComplete:
		return "not-complete"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

func accepts(kind value.Kind, v value.Value) bool {
	return v != nil && v.Kind().Inherits(kind)
}

// bind aligns args to t.Args.
func (t *Type) bind(args []value.Value) ([]value.Value, Match) {
	out := make([]value.Value, 0, len(t.Args))
	i := 0
	for _, a := range t.Args {
		if a.Variadic {
			for ; i < len(args); i++ {
				if !accepts(a.Kind, args[i]) {
					return nil, NotGood
				}
				out = append(out, args[i])
			}
			return out, Complete
		}
		if i >= len(args) {
			if a.Optional {
				out = append(out, nil)
				continue
			}
			return nil, NotComplete
		}
		if !accepts(a.Kind, args[i]) {
			if a.Optional {
				out = append(out, nil)
				continue
			}
			return nil, NotGood
		}
		out = append(out, args[i])
		i++
	}
	if i < len(args) {
		return nil, NotGood
	}
	return out, Complete
}

// Wants reports how well args match t.
func (t *Type) Wants(args []value.Value) Match {
	_, m := t.bind(args)
	return m
}

// CheckArgs reports whether args are a complete, correctly typed argument
// list for t.
func (t *Type) CheckArgs(args []value.Value) bool {
	return t.Wants(args) == Complete
}

// MinArgs returns the smallest number of arguments t accepts.
func (t *Type) MinArgs() int {
	n := 0
	for _, a := range t.Args {
		if !a.Optional && !a.Variadic {
			n++
		}
	}
	return n
}

// MaxArgs returns the largest number of arguments t accepts, or -1 when
// the last slot is variadic.
func (t *Type) MaxArgs() int {
	if len(t.Args) > 0 && t.Args[len(t.Args)-1].Variadic {
		return -1
	}
	return len(t.Args)
}

// AcceptsArity reports whether t can take n arguments.
func (t *Type) AcceptsArity(n int) bool {
	max := t.MaxArgs()
	return n >= t.MinArgs() && (max < 0 || n <= max)
}

// Eval computes the type's value. A wrong argument count or kind, or any
// Invalid argument, yields Invalid without invoking Calc.
func (t *Type) Eval(args []value.Value) value.Value {
	for _, a := range args {
		if !value.IsValid(a) {
			return value.Invalid{}
		}
	}
	bound, m := t.bind(args)
	if m != Complete {
		return value.Invalid{}
	}
	ret := t.Calc(bound)
	if ret == nil {
		return value.Invalid{}
	}
	return ret
}

// ArgAccepts reports whether slot i of t takes a value of kind k. Slots
// past the end repeat the variadic slot.
func (t *Type) ArgAccepts(i int, k value.Kind) bool {
	if len(t.Args) == 0 {
		return false
	}
	if i >= len(t.Args) {
		last := t.Args[len(t.Args)-1]
		return last.Variadic && k.Inherits(last.Kind)
	}
	return k.Inherits(t.Args[i].Kind)
}
