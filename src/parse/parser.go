// Package parse reads annotations written in the host notation, such as
// sig(a: Integer).returns(T.nilable(String)), into ast expressions. It only
// knows the annotation subset of the notation: constants, literals, arrays,
// hashes, method calls with keyword arguments, index application and splats.
//
// Constants are resolved to symbols while reading. A constant that is not in
// the table is kept as an Ident with NoSymbol so the resolver can report it.
package parse

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/conf"
	"github.com/tanema/sigtype/src/lerrors"
	"github.com/tanema/sigtype/src/names"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

type (
	// SymbolLookup finds symbols by their full name, e.g. T::Array.
	SymbolLookup interface {
		Lookup(name string) (types.Ref, bool)
	}
	// Parser reads one annotation at a time.
	Parser struct {
		lex   *lexer
		table SymbolLookup
	}
)

// ErrIncomplete is wrapped by the error returned when the input ends in the
// middle of an annotation. A repl can read another line and try again.
var ErrIncomplete = errors.New("unexpected end of annotation")

// Expr reads a single annotation from src. table may be nil, in which case
// every constant is left unresolved.
func Expr(filename, src string, table SymbolLookup) (ast.Expression, error) {
	return ExprAt(ast.LineInfo{Filename: filename, Line: 1}, src, table)
}

// ExprAt is Expr for source that starts at loc, for annotations embedded in a
// larger file.
func ExprAt(loc ast.LineInfo, src string, table SymbolLookup) (ast.Expression, error) {
	p := &Parser{lex: newLexer(loc, strings.NewReader(src)), table: table}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tk, err := p.peek(); err != nil {
		return nil, err
	} else if tk.Kind != tokenEOS {
		return nil, p.parseErr(tk, fmt.Errorf("unexpected %v after annotation", tk))
	}
	return expr, nil
}

// IsIncomplete reports if err came from input that ended too early.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

func (p *Parser) parseErr(tk *token, err error) error {
	if err == nil {
		return nil
	}
	var lerr *lerrors.Error
	if errors.As(err, &lerr) {
		return err
	}
	loc := p.lex.LineInfo
	if tk != nil {
		loc = tk.LineInfo
	}
	return &lerrors.Error{LineInfo: loc, Kind: lerrors.ParserErr, Err: err}
}

func (p *Parser) peek() (*token, error) {
	return p.lex.Peek()
}

func (p *Parser) consumeToken(tt tokenType) (*token, error) {
	tk, err := p.lex.Next()
	if errors.Is(err, io.EOF) {
		return nil, p.parseErr(nil, fmt.Errorf("expected %q: %w", tt, ErrIncomplete))
	} else if err != nil {
		return nil, err
	} else if tt != tk.Kind {
		return nil, p.parseErr(tk, fmt.Errorf("expected %q but consumed %q", tt, tk.Kind))
	}
	return tk, nil
}

func (p *Parser) take() (*token, error) {
	tk, err := p.lex.Next()
	if errors.Is(err, io.EOF) {
		return nil, p.parseErr(nil, ErrIncomplete)
	}
	return tk, err
}

func (p *Parser) accept(tt tokenType) (bool, error) {
	tk, err := p.peek()
	if err != nil {
		return false, err
	} else if tk.Kind != tt {
		return false, nil
	}
	_, err = p.take()
	return true, err
}

// expression := '*' expression | postfix.
func (p *Parser) expression() (ast.Expression, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, err
	} else if tk.Kind == tokenSplat {
		if _, err := p.take(); err != nil {
			return nil, err
		}
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		magic, _ := p.lookup("<Magic>", symbols.Magic)
		return &ast.Send{
			LineInfo: tk.LineInfo,
			Recv:     &ast.Ident{LineInfo: tk.LineInfo, Name: "<Magic>", Symbol: magic},
			Fun:      names.Splat,
			Args:     []ast.Expression{inner},
		}, nil
	}
	return p.postfix()
}

// postfix := primary { '.' name [args] | '[' list ']' }.
func (p *Parser) postfix() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		tk, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tk.Kind {
		case tokenPeriod:
			if _, err := p.take(); err != nil {
				return nil, err
			}
			name, err := p.methodName()
			if err != nil {
				return nil, err
			}
			args, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.Send{LineInfo: name.LineInfo, Recv: expr, Fun: names.Name(name.StringVal), Args: args}
		case tokenOpenBracket:
			if _, err := p.take(); err != nil {
				return nil, err
			}
			args, err := p.list(tokenCloseBracket)
			if err != nil {
				return nil, err
			}
			expr = &ast.Send{LineInfo: tk.LineInfo, Recv: expr, Fun: names.SquareBrackets, Args: args}
		default:
			return expr, nil
		}
		if chainLength(expr) > conf.MAXCHAINLENGTH {
			return nil, p.parseErr(tk, fmt.Errorf("call chain longer than %d calls", conf.MAXCHAINLENGTH))
		}
	}
}

func chainLength(expr ast.Expression) int {
	length := 0
	for send, isSend := expr.(*ast.Send); isSend; send, isSend = send.Recv.(*ast.Send) {
		length++
	}
	return length
}

func (p *Parser) methodName() (*token, error) {
	tk, err := p.take()
	if err != nil {
		return nil, err
	}
	switch tk.Kind {
	case tokenIdentifier, tokenConstant:
		return tk, nil
	case tokenTrue, tokenFalse, tokenNil, tokenSelf:
		return &token{Kind: tokenIdentifier, StringVal: string(tk.Kind), LineInfo: tk.LineInfo}, nil
	default:
		return nil, p.parseErr(tk, fmt.Errorf("expected method name but found %v", tk))
	}
}

func (p *Parser) primary() (ast.Expression, error) {
	tk, err := p.take()
	if err != nil {
		return nil, err
	}
	switch tk.Kind {
	case tokenInteger:
		return &ast.IntLit{LineInfo: tk.LineInfo, Value: tk.IntVal}, nil
	case tokenFloat:
		return &ast.FloatLit{LineInfo: tk.LineInfo, Value: tk.FloatVal}, nil
	case tokenMinus:
		return p.negative(tk)
	case tokenString:
		return &ast.StringLit{LineInfo: tk.LineInfo, Value: tk.StringVal}, nil
	case tokenSymbol:
		return &ast.SymbolLit{LineInfo: tk.LineInfo, Name: tk.StringVal}, nil
	case tokenTrue, tokenFalse:
		return &ast.BoolLit{LineInfo: tk.LineInfo, Value: tk.Kind == tokenTrue}, nil
	case tokenNil:
		return &ast.NilLit{LineInfo: tk.LineInfo}, nil
	case tokenSelf:
		return &ast.Self{LineInfo: tk.LineInfo}, nil
	case tokenConstant, tokenDoubleColon:
		return p.constant(tk)
	case tokenIdentifier:
		return p.identifier(tk)
	case tokenOpenBracket:
		elems, err := p.list(tokenCloseBracket)
		if err != nil {
			return nil, err
		}
		return &ast.Array{LineInfo: tk.LineInfo, Elems: elems}, nil
	case tokenOpenCurly:
		return p.hash(tk)
	case tokenOpenParen:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		_, err = p.consumeToken(tokenCloseParen)
		return expr, err
	default:
		return nil, p.parseErr(tk, fmt.Errorf("unexpected %v", tk))
	}
}

func (p *Parser) negative(minus *token) (ast.Expression, error) {
	tk, err := p.take()
	if err != nil {
		return nil, err
	}
	switch tk.Kind {
	case tokenInteger:
		return &ast.IntLit{LineInfo: minus.LineInfo, Value: -tk.IntVal}, nil
	case tokenFloat:
		return &ast.FloatLit{LineInfo: minus.LineInfo, Value: -tk.FloatVal}, nil
	default:
		return nil, p.parseErr(tk, fmt.Errorf("expected number after - but found %v", tk))
	}
}

// constant := ['::'] Const { '::' Const }.
func (p *Parser) constant(first *token) (ast.Expression, error) {
	tk := first
	if first.Kind == tokenDoubleColon {
		var err error
		if tk, err = p.consumeToken(tokenConstant); err != nil {
			return nil, err
		}
	}
	path := []string{tk.StringVal}
	for {
		next, err := p.peek()
		if err != nil {
			return nil, err
		} else if next.Kind != tokenDoubleColon {
			break
		}
		if _, err := p.take(); err != nil {
			return nil, err
		}
		part, err := p.consumeToken(tokenConstant)
		if err != nil {
			return nil, err
		}
		path = append(path, part.StringVal)
	}
	name := strings.Join(path, "::")
	sym, _ := p.lookup(name, types.NoSymbol)
	return &ast.Ident{LineInfo: first.LineInfo, Name: name, Symbol: sym}, nil
}

func (p *Parser) lookup(name string, fallback types.Ref) (types.Ref, bool) {
	if p.table == nil {
		return fallback, false
	}
	ref, found := p.table.Lookup(name)
	if !found {
		return fallback, false
	}
	return ref, true
}

// identifier is a call on implicit self when it has arguments or a chained
// call, otherwise an unresolved local name.
func (p *Parser) identifier(tk *token) (ast.Expression, error) {
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch next.Kind {
	case tokenOpenParen, tokenPeriod:
		args, err := p.callArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Send{
			LineInfo: tk.LineInfo,
			Recv:     &ast.Self{LineInfo: tk.LineInfo, Implicit: true},
			Fun:      names.Name(tk.StringVal),
			Args:     args,
		}, nil
	default:
		return &ast.Local{LineInfo: tk.LineInfo, Name: tk.StringVal}, nil
	}
}

// callArgs reads an optional parenthesised argument list. Keyword and rocket
// pairs are gathered into one trailing hash argument.
func (p *Parser) callArgs() ([]ast.Expression, error) {
	open, err := p.accept(tokenOpenParen)
	if err != nil || !open {
		return nil, err
	}
	var args []ast.Expression
	var kwargs *ast.Hash
	for {
		if done, err := p.accept(tokenCloseParen); err != nil {
			return nil, err
		} else if done {
			break
		}
		key, value, err := p.item()
		if err != nil {
			return nil, err
		}
		if key == nil {
			args = append(args, value)
		} else {
			if kwargs == nil {
				kwargs = &ast.Hash{LineInfo: key.Loc()}
			}
			kwargs.Keys = append(kwargs.Keys, key)
			kwargs.Values = append(kwargs.Values, value)
		}
		if err := p.separator(tokenCloseParen); err != nil {
			return nil, err
		}
	}
	if kwargs != nil {
		args = append(args, kwargs)
	}
	if args == nil {
		args = []ast.Expression{}
	}
	return args, nil
}

func (p *Parser) hash(open *token) (ast.Expression, error) {
	hash := &ast.Hash{LineInfo: open.LineInfo}
	for {
		if done, err := p.accept(tokenCloseCurly); err != nil {
			return nil, err
		} else if done {
			return hash, nil
		}
		key, value, err := p.item()
		if err != nil {
			return nil, err
		} else if key == nil {
			return nil, p.parseErr(nil, fmt.Errorf("expected key => value in hash near %v", value))
		}
		hash.Keys = append(hash.Keys, key)
		hash.Values = append(hash.Values, value)
		if err := p.separator(tokenCloseCurly); err != nil {
			return nil, err
		}
	}
}

// item reads either a plain expression or a key value pair, label: value or
// key => value. key is nil for a plain expression.
func (p *Parser) item() (ast.Expression, ast.Expression, error) {
	tk, err := p.peek()
	if err != nil {
		return nil, nil, err
	}
	if tk.Kind == tokenLabel {
		if _, err := p.take(); err != nil {
			return nil, nil, err
		}
		value, err := p.expression()
		return &ast.SymbolLit{LineInfo: tk.LineInfo, Name: tk.StringVal}, value, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, nil, err
	}
	if rocket, err := p.accept(tokenRocket); err != nil {
		return nil, nil, err
	} else if !rocket {
		return nil, expr, nil
	}
	value, err := p.expression()
	return expr, value, err
}

func (p *Parser) list(closing tokenType) ([]ast.Expression, error) {
	exprs := []ast.Expression{}
	for {
		if done, err := p.accept(closing); err != nil {
			return nil, err
		} else if done {
			return exprs, nil
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if err := p.separator(closing); err != nil {
			return nil, err
		}
	}
}

// separator consumes the comma between items, leaving a closing token alone.
func (p *Parser) separator(closing tokenType) error {
	tk, err := p.peek()
	if err != nil {
		return err
	}
	switch tk.Kind {
	case tokenComma:
		_, err := p.take()
		return err
	case closing:
		return nil
	case tokenEOS:
		return p.parseErr(tk, fmt.Errorf("expected %q: %w", closing, ErrIncomplete))
	default:
		return p.parseErr(tk, fmt.Errorf("expected , or %q but found %v", closing, tk))
	}
}
