// Package lerrors is the unified diagnostics package for reading and resolving
// annotations so that every problem is formatted and collected the same way.
package lerrors

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tanema/sigtype/src/ast"
)

type (
	// ErrorKind is an enum to describe where the error originates from.
	ErrorKind int
	// Error captures a single diagnostic. It distinguishes between malformed
	// type declarations, malformed signatures and problems reading source.
	Error struct {
		ast.LineInfo
		Kind ErrorKind
		Err  error
	}
	// Sink receives diagnostics. Implementations used from more than one
	// goroutine must make Report safe for concurrent use.
	Sink interface {
		Report(loc ast.LineInfo, kind ErrorKind, format string, args ...any)
	}
	// Collector is a Sink that keeps every diagnostic and is safe for
	// concurrent use.
	Collector struct {
		mut  sync.Mutex
		errs []*Error
	}
	discard struct{}
)

const (
	// InvalidTypeDeclaration is a malformed type annotation.
	InvalidTypeDeclaration ErrorKind = iota
	// InvalidMethodSignature is a malformed signature builder chain.
	InvalidMethodSignature
	// ParserErr is an error that originates from reading annotation source.
	ParserErr
	// LexerErr is an error that originates from the lexer.
	LexerErr
)

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

func (kind ErrorKind) String() string {
	switch kind {
	case InvalidTypeDeclaration:
		return "invalid type declaration"
	case InvalidMethodSignature:
		return "invalid method signature"
	case ParserErr:
		return "parse error"
	case LexerErr:
		return "lex error"
	default:
		return fmt.Sprintf("error(%d)", int(kind))
	}
}

func (err *Error) Error() string {
	switch err.Kind {
	case ParserErr:
		return fmt.Sprintf(`Parse Error: %s:%v:%v %v`, err.Filename, err.Line, err.Column, err.Err)
	case LexerErr:
		return fmt.Sprintf("Lex Error: %s:%v:%v %v", err.Filename, err.Line, err.Column, err.Err)
	default:
		return fmt.Sprintf("%s:%v:%v %v", err.Filename, err.Line, err.Column, err.Err)
	}
}

func (err *Error) Unwrap() error { return err.Err }

// Report appends a diagnostic.
func (c *Collector) Report(loc ast.LineInfo, kind ErrorKind, format string, args ...any) {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.errs = append(c.errs, &Error{LineInfo: loc, Kind: kind, Err: fmt.Errorf(format, args...)})
}

// Errors returns a copy of the diagnostics in report order.
func (c *Collector) Errors() []*Error {
	c.mut.Lock()
	defer c.mut.Unlock()
	return append([]*Error(nil), c.errs...)
}

// Sorted returns a copy of the diagnostics ordered by location, then kind.
// Report order across goroutines is not stable, this is.
func (c *Collector) Sorted() []*Error {
	errs := c.Errors()
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i], errs[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		} else if a.Line != b.Line {
			return a.Line < b.Line
		} else if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Kind < b.Kind
	})
	return errs
}

// Len is the number of diagnostics reported so far.
func (c *Collector) Len() int {
	c.mut.Lock()
	defer c.mut.Unlock()
	return len(c.errs)
}

// Reset drops every collected diagnostic.
func (c *Collector) Reset() {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.errs = nil
}

func (discard) Report(ast.LineInfo, ErrorKind, string, ...any) {}
