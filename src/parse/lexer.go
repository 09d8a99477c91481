package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/lerrors"
)

var escapeCodes = map[rune]rune{
	'a':  '\x07', // bell
	'b':  '\x08', // backspace
	'e':  '\x1B', // escape
	'f':  '\x0C', // form feed
	'n':  '\n',   // newline
	'r':  '\r',   // carriage return
	's':  ' ',    // space
	't':  '\t',   // tab
	'v':  '\x0B', // vertical tab
	'0':  '\x00', // null
	'\\': '\\',   // backslash
	'"':  '"',    // quote
	'\'': '\'',   // apostrophe
}

type lexer struct {
	rdr    *bufio.Reader
	peeked []*token
	ast.LineInfo
}

func newLexer(start ast.LineInfo, src io.Reader) *lexer {
	if start.Line == 0 {
		start.Line = 1
	}
	return &lexer{
		LineInfo: start,
		rdr:      bufio.NewReaderSize(src, 4096),
		peeked:   []*token{},
	}
}

func (lex *lexer) errf(msg string, data ...any) error {
	return lex.err(fmt.Errorf(msg, data...))
}

// err wraps err with the current location. Running out of input part way
// through a token is reported as incomplete.
func (lex *lexer) err(err error) error {
	if errors.Is(err, io.EOF) {
		err = ErrIncomplete
	}
	return &lerrors.Error{
		LineInfo: lex.LineInfo,
		Kind:     lerrors.LexerErr,
		Err:      err,
	}
}

func (lex *lexer) peek() rune {
	return lex.peekAt(0)
}

// peekAt decodes the rune that starts offset bytes ahead. Callers only skip
// over ascii runes.
func (lex *lexer) peekAt(offset int) rune {
	chs, _ := lex.rdr.Peek(offset + utf8.UTFMax)
	if len(chs) <= offset {
		return 0
	}
	ch, _ := utf8.DecodeRune(chs[offset:])
	return ch
}

func (lex *lexer) next() (rune, error) {
	ch, _, err := lex.rdr.ReadRune()
	if err != nil {
		return ch, lex.err(err)
	}
	if ch == '\n' {
		lex.Line++
		lex.Column = 0
	} else {
		lex.Column++
	}
	return ch, nil
}

func (lex *lexer) mustNext(expected rune) error {
	ch, err := lex.next()
	if err != nil {
		return err
	} else if ch != expected {
		return lex.errf("expected rune %v but found %v", string(expected), string(ch))
	}
	return nil
}

// skipWhitespace also drops comments, which run from # to the end of the line.
func (lex *lexer) skipWhitespace() error {
	inComment := false
	for {
		tk := lex.peek()
		switch {
		case tk == 0:
			return nil
		case tk == '\n':
			inComment = false
		case tk == '#':
			inComment = true
		case !inComment && tk != ' ' && tk != '\t' && tk != '\r':
			return nil
		}
		if _, err := lex.next(); err != nil {
			return err
		}
	}
}

func (lex *lexer) tokenAt(tk tokenType, start ast.LineInfo) (*token, error) {
	return &token{Kind: tk, LineInfo: start}, nil
}

func (lex *lexer) takeTokenAt(tk tokenType, start ast.LineInfo) (*token, error) {
	_, err := lex.next()
	return &token{Kind: tk, LineInfo: start}, err
}

// Peek returns the next token without consuming it. At the end of input it
// returns an EOS token rather than an error.
func (lex *lexer) Peek() (*token, error) {
	if len(lex.peeked) == 0 {
		tk, err := lex.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			return &token{Kind: tokenEOS, LineInfo: lex.LineInfo}, err
		} else if err != nil {
			return &token{Kind: tokenEOS, LineInfo: lex.LineInfo}, nil
		}
		lex.peeked = append(lex.peeked, tk)
	}
	return lex.peeked[len(lex.peeked)-1], nil
}

// Next consumes a token. It returns io.EOF once the input is exhausted.
func (lex *lexer) Next() (*token, error) {
	if len(lex.peeked) != 0 {
		top := lex.peeked[len(lex.peeked)-1]
		lex.peeked = lex.peeked[:len(lex.peeked)-1]
		return top, nil
	}
	if err := lex.skipWhitespace(); err != nil {
		return nil, err
	} else if _, err := lex.rdr.Peek(1); errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	ch, err := lex.next()
	if err != nil {
		return nil, err
	}
	start := lex.LineInfo
	peekCh := lex.peek()
	switch {
	case ch == ':' && peekCh == ':':
		return lex.takeTokenAt(tokenDoubleColon, start)
	case ch == ':' && peekCh == '"', ch == ':' && peekCh == '\'':
		quote, _ := lex.next()
		tk, err := lex.parseString(quote, start)
		if err != nil {
			return nil, err
		}
		tk.Kind = tokenSymbol
		return tk, nil
	case ch == ':' && isIdentStart(peekCh):
		return lex.parseSymbol(start)
	case ch == ':':
		return lex.tokenAt(tokenColon, start)
	case ch == '=' && peekCh == '>':
		return lex.takeTokenAt(tokenRocket, start)
	case ch == '-':
		return lex.tokenAt(tokenMinus, start)
	case ch == '*':
		return lex.tokenAt(tokenSplat, start)
	case ch == ',':
		return lex.tokenAt(tokenComma, start)
	case ch == '.':
		return lex.tokenAt(tokenPeriod, start)
	case ch == '(':
		return lex.tokenAt(tokenOpenParen, start)
	case ch == ')':
		return lex.tokenAt(tokenCloseParen, start)
	case ch == '{':
		return lex.tokenAt(tokenOpenCurly, start)
	case ch == '}':
		return lex.tokenAt(tokenCloseCurly, start)
	case ch == '[':
		return lex.tokenAt(tokenOpenBracket, start)
	case ch == ']':
		return lex.tokenAt(tokenCloseBracket, start)
	case ch == '"' || ch == '\'':
		return lex.parseString(ch, start)
	case unicode.IsDigit(ch):
		return lex.parseNumber(ch, start)
	case isIdentStart(ch):
		return lex.parseIdentifier(ch, start)
	}
	return nil, lex.errf("unexpected character %v", string(ch))
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func (lex *lexer) consumeIdent(ident *bytes.Buffer) error {
	for isIdentPart(lex.peek()) {
		if err := lex.writeNext(ident); err != nil {
			return err
		}
	}
	if ch := lex.peek(); ch == '?' || ch == '!' {
		return lex.writeNext(ident)
	}
	return nil
}

// parseIdentifier reads a name. A name directly followed by a single colon is
// a hash label, a: Integer.
func (lex *lexer) parseIdentifier(first rune, start ast.LineInfo) (*token, error) {
	var ident bytes.Buffer
	ident.WriteRune(first)
	if err := lex.consumeIdent(&ident); err != nil {
		return nil, err
	}

	strVal := ident.String()
	if lex.peek() == ':' && lex.peekAt(1) != ':' {
		if _, err := lex.next(); err != nil {
			return nil, err
		}
		return &token{Kind: tokenLabel, StringVal: strVal, LineInfo: start}, nil
	} else if kw, ok := keywords[strVal]; ok {
		return lex.tokenAt(kw, start)
	}
	kind := tokenIdentifier
	if unicode.IsUpper(first) {
		kind = tokenConstant
	}
	return &token{Kind: kind, StringVal: strVal, LineInfo: start}, nil
}

func (lex *lexer) parseSymbol(start ast.LineInfo) (*token, error) {
	var name bytes.Buffer
	if err := lex.consumeIdent(&name); err != nil {
		return nil, err
	}
	return &token{Kind: tokenSymbol, StringVal: name.String(), LineInfo: start}, nil
}

// parseString reads a quoted string. Single quoted strings only understand
// the \\ and \' escapes.
func (lex *lexer) parseString(delimiter rune, start ast.LineInfo) (*token, error) {
	var str bytes.Buffer
	for {
		ch, err := lex.next()
		if err != nil {
			return nil, err
		}
		switch {
		case ch == delimiter:
			return &token{Kind: tokenString, StringVal: str.String(), LineInfo: start}, nil
		case ch != '\\':
			str.WriteRune(ch)
			continue
		}

		esc, err := lex.next()
		if err != nil {
			return nil, err
		} else if delimiter == '\'' {
			if esc != '\\' && esc != '\'' {
				str.WriteRune('\\')
			}
			str.WriteRune(esc)
		} else if code, ok := escapeCodes[esc]; ok {
			str.WriteRune(code)
		} else if esc == 'u' {
			if err := lex.parseUnicode(&str); err != nil {
				return nil, err
			}
		} else {
			return nil, lex.errf("unexpected escape code \\%s", string(esc))
		}
	}
}

func (lex *lexer) parseUnicode(str *bytes.Buffer) error {
	if err := lex.mustNext('{'); err != nil {
		return err
	}
	var hexNumber bytes.Buffer
	for isHexDigit(lex.peek()) {
		if err := lex.writeNext(&hexNumber); err != nil {
			return err
		}
	}
	ivalue, err := strconv.ParseInt(hexNumber.String(), 16, 32)
	if err != nil {
		return lex.err(fmt.Errorf("parse unicode escape: %w", errors.Unwrap(err)))
	}
	str.WriteRune(rune(ivalue))
	return lex.mustNext('}')
}

// parseNumber reads decimal and hex integers and decimal floats. Underscores
// may separate digits. A period only starts a fraction when a digit follows, so
// 1.abs is a call on 1.
func (lex *lexer) parseNumber(first rune, start ast.LineInfo) (*token, error) {
	var number bytes.Buffer
	number.WriteRune(first)

	if peekCh := lex.peek(); first == '0' && (peekCh == 'x' || peekCh == 'X') {
		if err := lex.writeNext(&number); err != nil {
			return nil, err
		} else if err := lex.consumeDigits(&number, true); err != nil {
			return nil, err
		}
		return lex.intToken(number.String(), start)
	}

	if err := lex.consumeDigits(&number, false); err != nil {
		return nil, err
	}
	isFloat := false
	if lex.peek() == '.' && unicode.IsDigit(lex.peekAt(1)) {
		isFloat = true
		if err := lex.writeNext(&number); err != nil {
			return nil, err
		} else if err := lex.consumeDigits(&number, false); err != nil {
			return nil, err
		}
	}
	if peekCh := lex.peek(); peekCh == 'e' || peekCh == 'E' {
		isFloat = true
		if err := lex.parseExponent(&number); err != nil {
			return nil, err
		}
	}

	if isFloat {
		fval, err := strconv.ParseFloat(number.String(), 64)
		if err != nil {
			return nil, lex.err(fmt.Errorf("parse float: %w", errors.Unwrap(err)))
		}
		return &token{Kind: tokenFloat, FloatVal: fval, LineInfo: start}, nil
	}
	return lex.intToken(number.String(), start)
}

func (lex *lexer) intToken(src string, start ast.LineInfo) (*token, error) {
	if !strings.HasPrefix(src, "0x") && !strings.HasPrefix(src, "0X") {
		src = strings.TrimLeft(src, "0")
		if len(src) == 0 {
			return &token{Kind: tokenInteger, IntVal: 0, LineInfo: start}, nil
		}
	}
	ivalue, err := strconv.ParseInt(src, 0, 64)
	if err != nil {
		return nil, lex.err(fmt.Errorf("parse int: %w", errors.Unwrap(err)))
	}
	return &token{Kind: tokenInteger, IntVal: ivalue, LineInfo: start}, nil
}

func (lex *lexer) consumeDigits(number *bytes.Buffer, withHex bool) error {
	for {
		ch := lex.peek()
		if ch == '_' {
			if _, err := lex.next(); err != nil {
				return err
			}
			continue
		} else if !unicode.IsDigit(ch) && (!withHex || !isHexDigit(ch)) {
			return nil
		} else if err := lex.writeNext(number); err != nil {
			return err
		}
	}
}

func (lex *lexer) parseExponent(number *bytes.Buffer) error {
	if err := lex.writeNext(number); err != nil {
		return err
	}
	if tk := lex.peek(); tk == '-' || tk == '+' {
		if err := lex.writeNext(number); err != nil {
			return err
		}
	}
	return lex.consumeDigits(number, false)
}

func (lex *lexer) writeNext(buf *bytes.Buffer) error {
	ch, err := lex.next()
	if err != nil {
		return err
	}
	buf.WriteRune(ch)
	return nil
}

func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
