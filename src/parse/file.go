package parse

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/lerrors"
)

// Decl is one named annotation from an annotation file.
type Decl struct {
	Name string
	Loc  ast.LineInfo
	Expr ast.Expression
}

type pendingDecl struct {
	name  string
	loc   ast.LineInfo
	start ast.LineInfo
	src   strings.Builder
}

// File reads an annotation file made of name = annotation lines. Blank lines
// and lines starting with # are skipped. An annotation continues onto the next
// line while it is incomplete, for instance while a bracket is still open.
func File(filename string, src io.Reader, table SymbolLookup) ([]Decl, error) {
	var decls []Decl
	var pending *pendingDecl
	var lastErr error
	scanner := bufio.NewScanner(src)
	for lineNo := int64(1); scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if pending == nil {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			var err error
			if pending, err = startDecl(filename, lineNo, line); err != nil {
				return nil, err
			}
		} else {
			pending.src.WriteString("\n" + line)
		}

		expr, err := ExprAt(pending.start, pending.src.String(), table)
		if IsIncomplete(err) {
			lastErr = err
			continue
		} else if err != nil {
			return nil, err
		}
		decls = append(decls, Decl{Name: pending.name, Loc: pending.loc, Expr: expr})
		pending = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	} else if pending != nil {
		return nil, lastErr
	}
	return decls, nil
}

func startDecl(filename string, lineNo int64, line string) (*pendingDecl, error) {
	eq := assignIndex(line)
	name := ""
	if eq >= 0 {
		name = strings.TrimSpace(line[:eq])
	}
	nameCol := int64(strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) }) + 1)
	if !validDeclName(name) {
		return nil, &lerrors.Error{
			LineInfo: ast.LineInfo{Filename: filename, Line: lineNo, Column: nameCol},
			Kind:     lerrors.ParserErr,
			Err:      errors.New("expected name = annotation"),
		}
	}
	pending := &pendingDecl{
		name:  name,
		loc:   ast.LineInfo{Filename: filename, Line: lineNo, Column: nameCol},
		start: ast.LineInfo{Filename: filename, Line: lineNo, Column: int64(eq + 1)},
	}
	pending.src.WriteString(line[eq+1:])
	return pending, nil
}

// assignIndex finds the = that separates a name from its annotation, skipping
// the => of hash pairs.
func assignIndex(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] == '=' && (i+1 >= len(line) || line[i+1] != '>') {
			return i
		}
	}
	return -1
}

func validDeclName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if !isIdentPart(ch) && ch != '#' && ch != '.' && ch != ':' && ch != '?' && ch != '!' {
			return false
		}
	}
	return true
}
