package resolver

import (
	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

// silentBareGeneric are generic classes that may be written without type
// arguments and without a diagnostic.
var silentBareGeneric = map[types.Ref]bool{
	symbols.Hash:   true,
	symbols.Array:  true,
	symbols.Set:    true,
	symbols.Struct: true,
	symbols.File:   true,
}

// GetResultType resolves an annotation expression to a type. Malformed
// annotations are reported to the context sink and resolve to types.Dynamic.
func GetResultType(ctx Context, expr ast.Expression) types.Type {
	var result types.Type
	switch ex := expr.(type) {
	case *ast.Array:
		elems := make([]types.Type, len(ex.Elems))
		for i, elem := range ex.Elems {
			elems[i] = GetResultType(ctx, elem)
		}
		result = types.NewTuple(elems)
	case *ast.Ident:
		result = resolveIdent(ctx, ex)
	case *ast.Send:
		result = resolveSend(ctx, ex)
	case *ast.Self:
		result = ctx.Table.SelfType(ctx.Table.EnclosingClass(ctx.Owner))
	default:
		ctx.typeErr(locOf(expr), "Unsupported type syntax")
		result = types.Dynamic
	}
	return types.Enforce(result)
}

func resolveIdent(ctx Context, ident *ast.Ident) types.Type {
	sym := Dealias(ctx.Table, ident.Symbol)
	switch {
	case ctx.Table.IsClass(sym):
		members := ctx.Table.TypeMembers(sym)
		if len(members) == 0 {
			return types.NewClass(sym)
		}
		targs := dynamicSlots(len(members))
		if sym == symbols.Hash {
			for len(targs) < 3 {
				targs = append(targs, types.Dynamic)
			}
		}
		if !silentBareGeneric[ident.Symbol] {
			ctx.typeErr(ident.Loc(), "Malformed type declaration. Generic class without type arguments %s", ident)
		}
		return types.NewApplied(sym, targs)
	case ctx.Table.IsTypeMember(sym):
		return &types.LambdaParam{Definition: sym}
	default:
		ctx.typeErr(ident.Loc(), "Malformed type declaration. Not a class type %s", ident)
		return types.Dynamic
	}
}

func resolveSend(ctx Context, send *ast.Send) types.Type {
	if IsTProc(send) {
		return resolveProc(ctx, send)
	}

	recv, isIdent := send.Recv.(*ast.Ident)
	if !isIdent {
		ctx.typeErr(send.Loc(), "Malformed type declaration. Unknown type syntax %s", send)
		return types.Dynamic
	}
	switch {
	case recv.Symbol == symbols.T:
		return interpretTCombinator(ctx, send)
	case recv.Symbol == symbols.Magic && send.Fun == names.Splat:
		return types.Bottom
	case send.Fun == names.SingletonClass:
		if singleton := ctx.Table.SingletonClass(Dealias(ctx.Table, recv.Symbol)); singleton.Exists() {
			return types.NewClass(singleton)
		}
	}

	if send.Fun != names.SquareBrackets {
		ctx.typeErr(send.Loc(), "Malformed type declaration. Unknown type syntax %s", send)
	}
	return resolveApplication(ctx, send, recv)
}

func resolveApplication(ctx Context, send *ast.Send, recv *ast.Ident) types.Type {
	switch recv.Symbol {
	case symbols.TArray:
		if len(send.Args) != 1 {
			ctx.typeErr(send.Loc(), "Malformed T::Array[]: Expected 1 type argument")
			return types.Dynamic
		}
		return types.NewApplied(symbols.Array, []types.Type{GetResultType(ctx, send.Args[0])})
	case symbols.THash:
		if len(send.Args) != 2 {
			ctx.typeErr(send.Loc(), "Malformed T::Hash[]: Expected 2 type arguments")
			return types.Dynamic
		}
		return types.NewApplied(symbols.Hash, []types.Type{
			GetResultType(ctx, send.Args[0]),
			GetResultType(ctx, send.Args[1]),
			types.Dynamic,
		})
	case symbols.TEnumerable:
		if len(send.Args) != 1 {
			ctx.typeErr(send.Loc(), "Malformed T::Enumerable[]: Expected 1 type argument")
			return types.Dynamic
		}
		return types.NewApplied(symbols.Enumerable, []types.Type{GetResultType(ctx, send.Args[0])})
	}

	if !ctx.Table.IsClass(recv.Symbol) {
		ctx.typeErr(recv.Loc(), "Malformed type declaration. Not a class type %s", recv)
		return types.Dynamic
	}
	members := ctx.Table.TypeMembers(recv.Symbol)
	if len(send.Args) != len(members) {
		ctx.typeErr(send.Loc(), "Malformed %s[]: Expected %d type arguments, got %d",
			ctx.Table.Name(recv.Symbol), len(members), len(send.Args))
		return types.Dynamic
	}
	targs := make([]types.Type, len(send.Args))
	for i, arg := range send.Args {
		targs[i] = GetResultType(ctx, arg)
	}
	return types.NewApplied(recv.Symbol, targs)
}

// resolveProc builds the ProcN application for a T.proc chain. The first type
// argument is the return type, the rest are the parameters in order.
func resolveProc(ctx Context, send *ast.Send) types.Type {
	sig := ParseSig(ctx, send)
	targs := make([]types.Type, 0, len(sig.ArgTypes)+1)
	if sig.Returns == nil {
		ctx.typeErr(send.Loc(), "Malformed T.proc: You must specify a return type.")
		targs = append(targs, types.Dynamic)
	} else {
		targs = append(targs, sig.Returns)
	}
	for _, arg := range sig.ArgTypes {
		targs = append(targs, arg.Type)
	}

	arity := len(targs) - 1
	if arity > conf.MAXPROCARITY {
		ctx.typeErr(send.Loc(), "Malformed T.proc: Too many arguments (max %d)", conf.MAXPROCARITY)
		return types.Dynamic
	}
	return types.NewApplied(symbols.Proc(arity), targs)
}

func dynamicSlots(n int) []types.Type {
	slots := make([]types.Type, n)
	for i := range slots {
		slots[i] = types.Dynamic
	}
	return slots
}
