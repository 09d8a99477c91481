package resolver

import (
	"github.com/tanema/sigtype/src/ast"
	"github.com/tanema/sigtype/src/symbols"
	"github.com/tanema/sigtype/src/types"
)

func getResultLiteral(ctx Context, expr ast.Expression) types.Type {
	var result types.Type
	switch lit := expr.(type) {
	case *ast.IntLit:
		result = types.IntLiteral(lit.Value, symbols.Integer)
	case *ast.FloatLit:
		result = types.FloatLiteral(lit.Value, symbols.Float)
	case *ast.BoolLit:
		klass := symbols.FalseClass
		if lit.Value {
			klass = symbols.TrueClass
		}
		result = types.BoolLiteral(lit.Value, klass)
	case *ast.StringLit:
		result = types.StringLiteral(lit.Value, symbols.String)
	case *ast.SymbolLit:
		result = types.SymbolLiteral(lit.Name, symbols.Symbol)
	default:
		ctx.typeErr(locOf(expr), "Unsupported type literal")
		result = types.Dynamic
	}
	return types.Enforce(result)
}

func locOf(expr ast.Expression) ast.LineInfo {
	if expr == nil {
		return ast.LineInfo{}
	}
	return expr.Loc()
}
