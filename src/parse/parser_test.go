package parse

import (
	"strings"
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

func testTable(t *testing.T) *symbols.Table {
	t.Helper()
	tbl := symbols.New()
	_, err := tbl.DefineClass("Box", "Elem")
	require.NoError(t, err)
	return tbl
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()
	tbl := testTable(t)
	tests := []struct {
		src, expected string
	}{
		{"Integer", "Integer"},
		{"::Integer", "Integer"},
		{"T::Array[String]", "T::Array[String]"},
		{"T.nilable(String)", "T.nilable(String)"},
		{"T.any(Integer, String, NilClass)", "T.any(Integer, String, NilClass)"},
		{"sig(a: Integer, :b => String).returns(Box[String])", "sig(a: Integer, b: String).returns(Box[String])"},
		{"sig({a: Integer})", "sig(a: Integer)"},
		{"sig({\"a\" => Integer})", "sig({\"a\" => Integer})"},
		{"sig.abstract.returns(T.untyped)", "sig.abstract.returns(T.untyped)"},
		{"sig", "sig"},
		{"sig()", "sig"},
		{`T.enum([1, -2, 1.5, "a", 'b', :c, true, false, nil])`, `T.enum([1, -2, 1.5, "a", "b", :c, true, false, nil])`},
		{"T.proc(x: Integer).returns(String)", "T.proc(x: Integer).returns(String)"},
		{"self", "self"},
		{"Box.singleton_class", "Box.singleton_class"},
		{"T.class_of(Box)", "T.class_of(Box)"},
		{"*args", "*args"},
		{"[Integer, [String]]", "[Integer, [String]]"},
		{"{\"k\" => Integer}", "{\"k\" => Integer}"},
		{"(Integer)", "Integer"},
		{"foo", "foo"},
		{"Box[]", "Box[]"},
		{"T.nilable(\n  String,\n)", "T.nilable(String)"},
	}
	for _, test := range tests {
		expr, err := Expr("test", test.src, tbl)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.expected, expr.String(), test.src)
	}
}

func TestParseResolvesConstants(t *testing.T) {
	t.Parallel()
	tbl := testTable(t)
	box, _ := tbl.Lookup("Box")
	elem, _ := tbl.Lookup("Box::Elem")
	tests := []struct {
		src string
		sym types.Ref
	}{
		{"T", symbols.T},
		{"T::Hash", symbols.THash},
		{"Box", box},
		{"Box::Elem", elem},
		{"Missing", types.NoSymbol},
		{"Box::Missing", types.NoSymbol},
	}
	for _, test := range tests {
		expr, err := Expr("test", test.src, tbl)
		require.NoError(t, err)
		ident, isIdent := expr.(*ast.Ident)
		require.True(t, isIdent, test.src)
		assert.Equal(t, test.sym, ident.Symbol, test.src)
		assert.Equal(t, test.src, ident.Name)
	}

	expr, err := Expr("test", "Box", nil)
	require.NoError(t, err)
	assert.Equal(t, types.NoSymbol, expr.(*ast.Ident).Symbol)
}

func TestParseShapes(t *testing.T) {
	t.Parallel()
	tbl := testTable(t)

	expr, err := Expr("test", "sig(a: Integer).returns(String)", tbl)
	require.NoError(t, err)
	returns, isSend := expr.(*ast.Send)
	require.True(t, isSend)
	assert.Equal(t, names.Returns, returns.Fun)
	assert.Equal(t, ast.LineInfo{Filename: "test", Line: 1, Column: 17}, returns.LineInfo)
	sig, isSend := returns.Recv.(*ast.Send)
	require.True(t, isSend)
	assert.Equal(t, names.Sig, sig.Fun)
	self, isSelf := sig.Recv.(*ast.Self)
	require.True(t, isSelf)
	assert.True(t, self.Implicit)
	require.Len(t, sig.Args, 1)
	hash, isHash := sig.Args[0].(*ast.Hash)
	require.True(t, isHash)
	assert.Equal(t, &ast.SymbolLit{LineInfo: ast.LineInfo{Filename: "test", Line: 1, Column: 5}, Name: "a"}, hash.Keys[0])

	expr, err = Expr("test", "*rest", tbl)
	require.NoError(t, err)
	splat := expr.(*ast.Send)
	assert.Equal(t, names.Splat, splat.Fun)
	assert.Equal(t, symbols.Magic, splat.Recv.(*ast.Ident).Symbol)
	assert.IsType(t, &ast.Local{}, splat.Args[0])

	expr, err = Expr("test", "self", tbl)
	require.NoError(t, err)
	assert.False(t, expr.(*ast.Self).Implicit)

	expr, err = Expr("test", "Box[Integer]", tbl)
	require.NoError(t, err)
	index := expr.(*ast.Send)
	assert.Equal(t, names.SquareBrackets, index.Fun)
	assert.Len(t, index.Args, 1)

	expr, err = Expr("test", "sig(Integer, a: String)", tbl)
	require.NoError(t, err)
	mixed := expr.(*ast.Send)
	require.Len(t, mixed.Args, 2)
	assert.IsType(t, &ast.Ident{}, mixed.Args[0])
	assert.IsType(t, &ast.Hash{}, mixed.Args[1])
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tbl := testTable(t)
	tests := []struct {
		src        string
		kind       lerrors.ErrorKind
		incomplete bool
	}{
		{"T.nilable(String", lerrors.ParserErr, true},
		{"[Integer,", lerrors.ParserErr, true},
		{`"open`, lerrors.LexerErr, true},
		{`Integer "open`, lerrors.LexerErr, true},
		{"", lerrors.ParserErr, true},
		{"Integer String", lerrors.ParserErr, false},
		{"T.(String)", lerrors.ParserErr, false},
		{"{Integer}", lerrors.ParserErr, false},
		{"[Integer String]", lerrors.ParserErr, false},
		{"a: Integer", lerrors.ParserErr, false},
		{"-Integer", lerrors.ParserErr, false},
		{"Box::box", lerrors.ParserErr, false},
		{"T.nilable(@)", lerrors.LexerErr, false},
		{"A→", lerrors.LexerErr, false},
		{"Integer→String", lerrors.LexerErr, false},
	}
	for _, test := range tests {
		_, err := Expr("test", test.src, tbl)
		require.Error(t, err, test.src)
		var lerr *lerrors.Error
		require.ErrorAs(t, err, &lerr, test.src)
		assert.Equal(t, test.kind, lerr.Kind, test.src)
		assert.Equal(t, test.incomplete, IsIncomplete(err), test.src)
		assert.Equal(t, "test", lerr.Filename, test.src)
	}
}

func TestParseErrorLocation(t *testing.T) {
	t.Parallel()
	_, err := Expr("box.rb", "T.any(Integer String)", nil)
	var lerr *lerrors.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, int64(1), lerr.Line)
	assert.Equal(t, int64(15), lerr.Column)
	assert.True(t, strings.HasPrefix(lerr.Error(), "Parse Error: box.rb:1:15"))
}

func TestParseChainLimit(t *testing.T) {
	t.Parallel()
	src := "sig" + strings.Repeat(".checked", conf.MAXCHAINLENGTH-1)
	_, err := Expr("test", src, nil)
	require.NoError(t, err)

	_, err = Expr("test", src+".checked", nil)
	var lerr *lerrors.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lerrors.ParserErr, lerr.Kind)
}
