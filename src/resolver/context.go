package resolver

import (
	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/types"
)

type (
	// SymbolTable is the read-only view of symbols the resolver needs.
	// Queries on a ref that does not exist return zero values.
	SymbolTable interface {
		types.Namer
		Exists(types.Ref) bool
		IsClass(types.Ref) bool
		IsStaticField(types.Ref) bool
		IsTypeMember(types.Ref) bool
		TypeMembers(types.Ref) []types.Ref
		ResultType(types.Ref) types.Type
		AttachedClass(types.Ref) types.Ref
		SingletonClass(types.Ref) types.Ref
		EnclosingClass(types.Ref) types.Ref
		SelfType(types.Ref) types.Type
	}
	// Context is everything a resolution needs. Owner is the symbol, usually a
	// method, that the annotation appears in and decides what self means.
	Context struct {
		Table SymbolTable
		Owner types.Ref
		Sink  lerrors.Sink
	}
)

func (ctx Context) typeErr(loc ast.LineInfo, format string, args ...any) {
	ctx.report(loc, lerrors.InvalidTypeDeclaration, format, args...)
}

func (ctx Context) sigErr(loc ast.LineInfo, format string, args ...any) {
	ctx.report(loc, lerrors.InvalidMethodSignature, format, args...)
}

func (ctx Context) report(loc ast.LineInfo, kind lerrors.ErrorKind, format string, args ...any) {
	if ctx.Sink == nil {
		return
	}
	ctx.Sink.Report(loc, kind, format, args...)
}
