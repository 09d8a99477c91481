package resolver

import (
	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

// interpretTCombinator resolves a T.<selector>(args) call.
func interpretTCombinator(ctx Context, send *ast.Send) types.Type {
	switch send.Fun {
	case names.Nilable:
		if len(send.Args) != 1 {
			ctx.typeErr(send.Loc(), "T.nilable only takes a single argument")
			return types.Dynamic
		}
		return types.Or(GetResultType(ctx, send.Args[0]), types.NewClass(symbols.NilClass))
	case names.All:
		if len(send.Args) == 0 {
			ctx.typeErr(send.Loc(), "T.all needs at least one argument")
			return types.Dynamic
		}
		return foldArgs(ctx, send.Args, GetResultType, types.And)
	case names.Any:
		if len(send.Args) == 0 {
			ctx.typeErr(send.Loc(), "T.any needs at least one argument")
			return types.Dynamic
		}
		return foldArgs(ctx, send.Args, GetResultType, types.Or)
	case names.Enum:
		return interpretEnum(ctx, send)
	case names.ClassOf:
		return interpretClassOf(ctx, send)
	case names.Untyped:
		return types.Dynamic
	case names.Noreturn:
		return types.Bottom
	default:
		ctx.typeErr(send.Loc(), "Unsupported method T.%s", send.Fun)
		return types.Dynamic
	}
}

// foldArgs resolves every expression and left folds them, so (a, b, c) becomes
// join(join(a, b), c). exprs must not be empty.
func foldArgs(
	ctx Context,
	exprs []ast.Expression,
	resolve func(Context, ast.Expression) types.Type,
	join func(types.Type, types.Type) types.Type,
) types.Type {
	result := resolve(ctx, exprs[0])
	for _, expr := range exprs[1:] {
		result = join(result, resolve(ctx, expr))
	}
	return result
}

func interpretEnum(ctx Context, send *ast.Send) types.Type {
	if len(send.Args) != 1 {
		ctx.typeErr(send.Loc(), "enum only takes a single argument")
		return types.Dynamic
	}
	arr, isArray := send.Args[0].(*ast.Array)
	if !isArray {
		// enums built from constants are accepted without checking.
		return types.Bottom
	} else if len(arr.Elems) == 0 {
		ctx.typeErr(send.Loc(), "enum([]) is invalid")
		return types.Dynamic
	}
	return foldArgs(ctx, arr.Elems, getResultLiteral, types.Or)
}

func interpretClassOf(ctx Context, send *ast.Send) types.Type {
	if len(send.Args) != 1 {
		ctx.typeErr(send.Loc(), "T.class_of only takes a single argument")
		return types.Dynamic
	}
	obj, isIdent := send.Args[0].(*ast.Ident)
	if !isIdent {
		ctx.typeErr(send.Loc(), "T.class_of needs a Class as its argument")
		return types.Dynamic
	}
	singleton := ctx.Table.SingletonClass(Dealias(ctx.Table, obj.Symbol))
	if !singleton.Exists() {
		ctx.typeErr(send.Loc(), "Unknown class")
		return types.Dynamic
	}
	return types.NewClass(singleton)
}
