package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

func chain(head *ast.Send, funs ...names.Name) *ast.Send {
	for _, fun := range funs {
		head = ast.NewSend(head, fun)
	}
	return head
}

func TestIsSig(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cases := []struct {
		send     *ast.Send
		expected bool
	}{
		{ast.NewSelfSend(names.Sig), true},
		{ast.NewSend(&ast.Self{}, names.Sig), true},
		{ast.NewSend(ast.NewSelfSend(names.Sig), names.Returns, f.c("String")), true},
		{chain(ast.NewSelfSend(names.Sig), names.Abstract, names.Checked), true},
		{ast.NewSend(ast.NewIdent("T", symbols.T), names.Sig), false},
		{ast.NewSend(ast.NewSelfSend("foo"), names.Returns, f.c("String")), false},
		{ast.NewSend(&ast.Local{Name: "sig"}, names.Returns), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, IsSig(tc.send), tc.send.String())
	}
	assert.False(t, IsSig(nil))
}

func TestIsTProc(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cases := []struct {
		send     *ast.Send
		expected bool
	}{
		{tCall(names.Proc), true},
		{ast.NewSend(tCall(names.Proc), names.Returns, f.c("String")), true},
		{ast.NewSelfSend(names.Proc), false},
		{ast.NewSend(f.c("Box"), names.Proc), false},
		{ast.NewSend(ast.NewIdent("T", types.NoSymbol), names.Proc), false},
		{tCall(names.Nilable, f.c("String")), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, IsTProc(tc.send), tc.send.String())
	}
}

func TestParseSig(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	head := ast.NewSelfSend(names.Sig, ast.NewHash("a", f.c("Integer"), "b", index(f.c("Box"), f.c("String"))))
	send := chain(ast.NewSend(head, names.Returns, f.c("String")), names.Override, names.Checked)

	sig, msgs := f.parseSig(send)
	assert.Empty(t, msgs)
	assert.Equal(t, SigSeen{Sig: true, Args: true, Returns: true, Override: true, Checked: true}, sig.Seen)
	require.Len(t, sig.ArgTypes, 2)
	assert.Equal(t, "a", sig.ArgTypes[0].Name)
	assert.True(t, types.Equal(class(symbols.Integer), sig.ArgTypes[0].Type))
	assert.Equal(t, "b", sig.ArgTypes[1].Name)
	assert.True(t, types.Equal(applied(f.box, class(symbols.String)), sig.ArgTypes[1].Type))
	assert.True(t, types.Equal(class(symbols.String), sig.Returns))

	sig, msgs = f.parseSig(chain(ast.NewSelfSend(names.Sig), names.Abstract, names.Implementation, names.Overridable))
	assert.Empty(t, msgs)
	assert.Equal(t, SigSeen{Sig: true, Abstract: true, Implementation: true, Overridable: true}, sig.Seen)
	assert.Empty(t, sig.ArgTypes)
	assert.Nil(t, sig.Returns)

	sig, msgs = f.parseSig(ast.NewSend(tCall(names.Proc), names.Returns, f.c("Integer")))
	assert.Empty(t, msgs)
	assert.True(t, sig.Seen.Proc)
	assert.False(t, sig.Seen.Sig)
}

func TestParseSigArgLoc(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	loc := ast.LineInfo{Filename: "box.rb", Line: 2, Column: 6}
	hash := &ast.Hash{
		Keys:   []ast.Expression{&ast.SymbolLit{LineInfo: loc, Name: "item"}},
		Values: []ast.Expression{f.c("Integer")},
	}
	sig, _ := f.parseSig(ast.NewSelfSend(names.Sig, hash))
	require.Len(t, sig.ArgTypes, 1)
	assert.Equal(t, loc, sig.ArgTypes[0].Loc)
}

func TestParseSigMalformed(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cases := []struct {
		send     *ast.Send
		args     []string
		returns  types.Type
		argsSeen bool
		msgs     []string
	}{
		{
			send: ast.NewSend(
				ast.NewSelfSend(names.Sig, ast.NewHash("a", f.c("Integer"))),
				names.Sig, ast.NewHash("b", f.c("String"))),
			args:     []string{"a"},
			argsSeen: true,
			msgs:     []string{"Malformed `sig`: Found multiple argument lists"},
		},
		{
			send:     ast.NewSend(ast.NewSelfSend(names.Sig), names.Sig, ast.NewHash("b", f.c("String"))),
			argsSeen: true,
			msgs:     []string{"Malformed `sig`: Found multiple argument lists"},
		},
		{
			send:     ast.NewSend(ast.NewSelfSend(names.Sig), names.Proc, ast.NewHash("b", f.c("String"))),
			argsSeen: true,
			msgs:     []string{"Malformed `sig`: Found multiple argument lists"},
		},
		{
			send:     ast.NewSelfSend(names.Sig, ast.NewHash("a", f.c("Integer")), ast.NewHash("b", f.c("String"))),
			argsSeen: true,
			msgs:     []string{"Wrong number of args to `sig`. Got 2, expected 0-1"},
		},
		{
			send:     ast.NewSelfSend(names.Sig, f.c("Integer")),
			argsSeen: true,
			msgs:     []string{"Malformed `sig`; Expected a hash of arguments => types."},
		},
		{
			send: ast.NewSelfSend(names.Sig, &ast.Hash{
				Keys:   []ast.Expression{ast.NewSymbol("a"), ast.NewSymbol("b")},
				Values: []ast.Expression{f.c("Integer")},
			}),
			argsSeen: true,
			msgs:     []string{"Malformed `sig`; Expected a hash of arguments => types."},
		},
		{
			send: ast.NewSelfSend(names.Sig, &ast.Hash{
				Keys:   []ast.Expression{ast.NewString("a"), ast.NewSymbol("b")},
				Values: []ast.Expression{f.c("Integer"), f.c("String")},
			}),
			args:     []string{"b"},
			argsSeen: true,
			msgs:     []string{"Malformed `sig`; argument names must be symbols"},
		},
		{
			send: ast.NewSend(ast.NewSelfSend(names.Sig), names.Returns),
			msgs: []string{"Wrong number of args to `sig.returns`. Got 0, expected 1"},
		},
		{
			send:    ast.NewSend(ast.NewSelfSend(names.Sig), names.Returns, f.c("Integer"), f.c("String")),
			returns: class(symbols.Integer),
			msgs:    []string{"Wrong number of args to `sig.returns`. Got 2, expected 1"},
		},
		{
			send: ast.NewSend(ast.NewSelfSend(names.Sig), "params"),
			msgs: []string{"Unknown `sig` builder method params."},
		},
		{
			send:    ast.NewSend(ast.NewSelfSend(names.Sig), names.Returns, f.c("Missing")),
			returns: types.Dynamic,
			msgs:    []string{"Malformed type declaration. Not a class type Missing"},
		},
	}
	for _, tc := range cases {
		sink := &lerrors.Collector{}
		sig := ParseSig(f.ctx(sink), tc.send)
		var args []string
		for _, arg := range sig.ArgTypes {
			args = append(args, arg.Name)
		}
		assert.Equal(t, tc.args, args, tc.send.String())
		assert.Equal(t, tc.argsSeen, sig.Seen.Args, tc.send.String())
		assert.Equal(t, tc.msgs, messages(sink), tc.send.String())
		if tc.returns == nil {
			assert.Nil(t, sig.Returns)
		} else {
			assert.True(t, types.Equal(tc.returns, sig.Returns))
		}
		for _, err := range sink.Errors() {
			if err.Err.Error() != "Malformed type declaration. Not a class type Missing" {
				assert.Equal(t, lerrors.InvalidMethodSignature, err.Kind)
			}
		}
	}
}

func TestParseSigWithoutSig(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	defer func() {
		_, isInvariant := recover().(*types.InvariantError)
		assert.True(t, isInvariant)
	}()
	ParseSig(f.ctx(lerrors.Discard), ast.NewSend(f.c("Integer"), names.Returns, f.c("String")))
}

func TestChainLengthGuard(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	longest := ast.NewSelfSend(names.Sig)
	for i := 1; i < conf.MAXCHAINLENGTH; i++ {
		longest = ast.NewSend(longest, names.Checked)
	}
	assert.NotPanics(t, func() {
		assert.True(t, IsSig(longest))
		sig := ParseSig(f.ctx(lerrors.Discard), longest)
		assert.True(t, sig.Seen.Checked)
	})

	tooLong := ast.NewSend(longest, names.Checked)
	assert.Panics(t, func() { IsSig(tooLong) })
	assert.Panics(t, func() { IsTProc(tooLong) })
	assert.Panics(t, func() { ParseSig(f.ctx(lerrors.Discard), tooLong) })
}
