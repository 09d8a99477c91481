package parse

import (
	"fmt"

	"github.com/tanema/sigtype/src/ast"
)

type (
	tokenType string
	token     struct {
		ast.LineInfo
		Kind      tokenType
		StringVal string
		FloatVal  float64
		IntVal    int64
	}
)

const (
	tokenMinus        tokenType = "-"
	tokenSplat        tokenType = "*"
	tokenColon        tokenType = ":"
	tokenDoubleColon  tokenType = "::"
	tokenRocket       tokenType = "=>"
	tokenComma        tokenType = ","
	tokenPeriod       tokenType = "."
	tokenOpenParen    tokenType = "("
	tokenCloseParen   tokenType = ")"
	tokenOpenCurly    tokenType = "{"
	tokenCloseCurly   tokenType = "}"
	tokenOpenBracket  tokenType = "["
	tokenCloseBracket tokenType = "]"
	tokenTrue         tokenType = "true"
	tokenFalse        tokenType = "false"
	tokenNil          tokenType = "nil"
	tokenSelf         tokenType = "self"
	tokenFloat        tokenType = "float"
	tokenInteger      tokenType = "integer"
	tokenIdentifier   tokenType = "identifier"
	tokenConstant     tokenType = "constant"
	tokenLabel        tokenType = "label"
	tokenString       tokenType = "string"
	tokenSymbol       tokenType = "symbol"
	tokenEOS          tokenType = "<EOS>"
)

var keywords = map[string]tokenType{
	string(tokenTrue):  tokenTrue,
	string(tokenFalse): tokenFalse,
	string(tokenNil):   tokenNil,
	string(tokenSelf):  tokenSelf,
}

func (tk *token) String() string {
	switch tk.Kind {
	case tokenFloat:
		return fmt.Sprintf("f%v", tk.FloatVal)
	case tokenInteger:
		return fmt.Sprintf("i%v", tk.IntVal)
	case tokenIdentifier, tokenConstant:
		return fmt.Sprintf("<%v>", tk.StringVal)
	case tokenLabel:
		return fmt.Sprintf("%v:", tk.StringVal)
	case tokenString:
		return fmt.Sprintf("%q", tk.StringVal)
	case tokenSymbol:
		return ":" + tk.StringVal
	default:
		return string(tk.Kind)
	}
}
