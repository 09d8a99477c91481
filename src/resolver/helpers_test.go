package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

type fixture struct {
	tbl                              *symbols.Table
	box, boxElem, pair, widget       types.Ref
	crate, dict, limit, fetch, pairA types.Ref
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	var err error
	f := fixture{tbl: symbols.New()}
	f.box, err = f.tbl.DefineClass("Box", "Elem")
	require.NoError(t, err)
	f.boxElem = f.tbl.TypeMembers(f.box)[0]
	f.pair, err = f.tbl.DefineClass("Pair", "A", "B")
	require.NoError(t, err)
	f.pairA = f.tbl.TypeMembers(f.pair)[0]
	f.widget, err = f.tbl.DefineClass("Widget")
	require.NoError(t, err)
	f.crate, err = f.tbl.AliasClass("Crate", f.box)
	require.NoError(t, err)
	f.dict, err = f.tbl.AliasClass("Dict", symbols.Hash)
	require.NoError(t, err)
	f.limit, err = f.tbl.DefineStaticField(f.widget, "LIMIT", types.NewClass(symbols.Integer))
	require.NoError(t, err)
	f.fetch, err = f.tbl.DefineMethod(f.box, "fetch")
	require.NoError(t, err)
	return f
}

func (f fixture) ctx(sink lerrors.Sink) Context {
	return Context{Table: f.tbl, Owner: f.fetch, Sink: sink}
}

// c is a constant reference, NoSymbol when the name is not defined.
func (f fixture) c(name string) *ast.Ident {
	ref, _ := f.tbl.Lookup(name)
	return ast.NewIdent(name, ref)
}

func (f fixture) resolve(expr ast.Expression) (types.Type, []string) {
	sink := &lerrors.Collector{}
	typ := GetResultType(f.ctx(sink), expr)
	return typ, messages(sink)
}

func (f fixture) parseSig(send *ast.Send) (ParsedSig, []string) {
	sink := &lerrors.Collector{}
	sig := ParseSig(f.ctx(sink), send)
	return sig, messages(sink)
}

func messages(sink *lerrors.Collector) []string {
	var msgs []string
	for _, err := range sink.Errors() {
		msgs = append(msgs, err.Err.Error())
	}
	return msgs
}

func tCall(fun names.Name, args ...ast.Expression) *ast.Send {
	return ast.NewSend(ast.NewIdent("T", symbols.T), fun, args...)
}

func index(recv ast.Expression, args ...ast.Expression) *ast.Send {
	return ast.NewSend(recv, names.SquareBrackets, args...)
}

func class(ref types.Ref) types.Type { return types.NewClass(ref) }

func applied(ref types.Ref, targs ...types.Type) types.Type { return types.NewApplied(ref, targs) }
