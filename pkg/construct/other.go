package construct

import (
	"strconv"
	"strings"

	"github.com/chazu/compass/pkg/value"
)

// FormatLabel substitutes %1..%n in text with the display strings of
// args. Higher numbers are replaced first so that %1 does not eat the
// front of %10.
func FormatLabel(text string, args []value.Value) string {
	for i := len(args); i >= 1; i-- {
		text = strings.ReplaceAll(text, "%"+strconv.Itoa(i), args[i-1].String())
	}
	return text
}

func otherTypes() []*Type {
	return []*Type{
		{
			Name: "Locus",
			Args: []Arg{
				arg(value.KindHierarchy, "compiled construction"),
				arg(value.KindCurve, "curve the moving point follows"),
				variadic(value.KindAny, "fixed input"),
			},
			Result: value.KindLocus,
			Calc: func(args []value.Value) value.Value {
				h := args[0].(value.Hierarchy)
				return value.NewLocus(h.Program, args[1].(value.Curve), args[2:])
			},
		},
		{
			Name: "TextLabel",
			Args: []Arg{
				arg(value.KindPoint, "anchor"),
				arg(value.KindString, "text"),
				variadic(value.KindAny, "argument"),
			},
			Result: value.KindTextLabel,
			Calc: func(args []value.Value) value.Value {
				text := FormatLabel(string(args[1].(value.String)), args[2:])
				return value.NewTextLabel(coord(args[0]), text)
			},
		},
	}
}
