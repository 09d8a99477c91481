package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Namer maps symbol refs to printable names.
type Namer interface {
	Name(Ref) string
}

// Format renders a type in annotation notation. A nil namer prints refs as #id.
func Format(t Type, n Namer) string {
	switch tt := t.(type) {
	case nil:
		return "<nil>"
	case *ClassType:
		return name(n, tt.Symbol)
	case *AppliedType:
		return fmt.Sprintf("%s[%s]", name(n, tt.Klass), formatAll(tt.Targs, n))
	case *TupleType:
		return fmt.Sprintf("[%s]", formatAll(tt.Elems, n))
	case *LiteralType:
		return formatLiteral(tt)
	case *LambdaParam:
		return name(n, tt.Definition)
	case *OrType:
		return fmt.Sprintf("T.any(%s)", formatAll(flatten(tt, isOr), n))
	case *AndType:
		return fmt.Sprintf("T.all(%s)", formatAll(flatten(tt, isAnd), n))
	default:
		return tt.String()
	}
}

func name(n Namer, sym Ref) string {
	if n == nil {
		return fmt.Sprintf("#%d", sym)
	}
	return n.Name(sym)
}

func formatAll(all []Type, n Namer) string {
	parts := make([]string, len(all))
	for i, t := range all {
		parts[i] = Format(t, n)
	}
	return strings.Join(parts, ", ")
}

func formatLiteral(t *LiteralType) string {
	switch t.Kind {
	case LitInteger:
		return strconv.FormatInt(t.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case LitBool:
		return strconv.FormatBool(t.Bool)
	case LitString:
		return strconv.Quote(t.Str)
	case LitSymbol:
		return ":" + t.Str
	default:
		return "<bad literal>"
	}
}

func isOr(t Type) (Type, Type, bool) {
	if or, ok := t.(*OrType); ok {
		return or.Left, or.Right, true
	}
	return nil, nil, false
}

func isAnd(t Type) (Type, Type, bool) {
	if and, ok := t.(*AndType); ok {
		return and.Left, and.Right, true
	}
	return nil, nil, false
}

// flatten collects the operands of a left leaning fold for display only.
func flatten(t Type, split func(Type) (Type, Type, bool)) []Type {
	left, right, ok := split(t)
	if !ok {
		return []Type{t}
	}
	return append(flatten(left, split), flatten(right, split)...)
}
