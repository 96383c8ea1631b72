package ast

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/kievzenit/cfront/internal/sexpr"
)

var primitiveSymbolNames = func() map[PrimitiveType]string {
	names := make(map[PrimitiveType]string, len(primitiveSymbols))
	for symbol, kind := range primitiveSymbols {
		names[kind] = symbol
	}
	return names
}()

// Encode converts a translation unit back into its s-expression form.
// Spans are not written.
func Encode(unit *TranslationUnit) *sexpr.Node {
	items := []*sexpr.Node{sexpr.NewSymbol("unit")}
	for _, stmt := range unit.Stmts {
		items = append(items, encodeTopStmt(stmt))
	}
	return sexpr.NewList(items...)
}

// Format renders a translation unit as a single-line s-expression.
func Format(unit *TranslationUnit) string {
	return Encode(unit).String()
}

// EncodeExpr converts a single expression to its s-expression form.
func EncodeExpr(expr Expr) *sexpr.Node {
	return encodeExpr(expr)
}

func list(head string, items ...*sexpr.Node) *sexpr.Node {
	return sexpr.NewList(append([]*sexpr.Node{sexpr.NewSymbol(head)}, items...)...)
}

func encodeTopStmt(stmt TopStmt) *sexpr.Node {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		return encodeVarDecl(s)
	case *FuncDeclStmt:
		return encodeSignature("func-decl", s)
	case *FuncDefStmt:
		node := encodeSignature("func", &s.FuncDeclStmt)
		node.Items = append(node.Items, encodeBlock(s.Body))
		return node
	default:
		panic(fmt.Sprintf("unexpected top-level statement %T", stmt))
	}
}

func encodeVarDecl(v *VarDeclStmt) *sexpr.Node {
	node := list("var", encodeQualifiedType(v.Type), sexpr.NewSymbol(v.Name))
	for _, part := range v.ArrayParts {
		node.Items = append(node.Items, encodeArrayPart(part))
	}
	if v.Value != nil {
		node.Items = append(node.Items, list("init", encodeExpr(v.Value)))
	}
	return node
}

func encodeArrayPart(part ArrayPart) *sexpr.Node {
	if part.Length == nil {
		return list("array")
	}
	return list("array", encodeExpr(part.Length))
}

func encodeSignature(head string, f *FuncDeclStmt) *sexpr.Node {
	params := list("params")
	for _, p := range f.Args {
		param := list("param", encodeQualifiedType(p.Type))
		if p.Name != "" {
			param.Items = append(param.Items, sexpr.NewSymbol(p.Name))
		}
		for _, part := range p.ArrayParts {
			param.Items = append(param.Items, encodeArrayPart(part))
		}
		params.Items = append(params.Items, param)
	}
	if f.Variadic {
		params.Items = append(params.Items, sexpr.NewSymbol("..."))
	}
	return list(head, encodeQualifiedType(f.ReturnType), sexpr.NewSymbol(f.Name), params)
}

func encodeQualifiedType(t *QualifiedTypeNode) *sexpr.Node {
	inner := encodeType(t.Inner)
	if t.Const {
		return list("const", inner)
	}
	return inner
}

func encodeType(t TypeNode) *sexpr.Node {
	switch t := t.(type) {
	case *PrimitiveTypeNode:
		return sexpr.NewSymbol(primitiveSymbolNames[t.Kind])
	case *PointerTypeNode:
		return list("ptr", encodeQualifiedType(t.To))
	default:
		panic(fmt.Sprintf("unexpected type node %T", t))
	}
}

func encodeBlock(block *ScopeStmt) *sexpr.Node {
	node := list("block")
	for _, stmt := range block.Stmts {
		node.Items = append(node.Items, encodeStmt(stmt))
	}
	return node
}

func encodeOptionalExpr(expr Expr) *sexpr.Node {
	if expr == nil {
		return sexpr.NewSymbol("_")
	}
	return encodeExpr(expr)
}

func encodeStmt(stmt Stmt) *sexpr.Node {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		return encodeVarDecl(s)
	case *FuncDeclStmt:
		return encodeSignature("func-decl", s)
	case *ScopeStmt:
		return encodeBlock(s)
	case *ExprStmt:
		return list("expr", encodeExpr(s.Expr))
	case *IfStmt:
		node := list("if", encodeExpr(s.Cond), encodeBlock(s.Body))
		if s.Else != nil {
			node.Items = append(node.Items, encodeBlock(s.Else))
		}
		return node
	case *WhileStmt:
		return list("while", encodeExpr(s.Cond), encodeBlock(s.Body))
	case *ForStmt:
		init := sexpr.NewSymbol("_")
		if s.Init != nil {
			init = encodeStmt(s.Init)
		}
		return list("for", init, encodeOptionalExpr(s.Cond), encodeOptionalExpr(s.Iter), encodeBlock(s.Body))
	case *SwitchStmt:
		node := list("switch", encodeExpr(s.Expr))
		for _, c := range s.Cases {
			if c.Value == nil {
				node.Items = append(node.Items, list("default", encodeBlock(c.Body)))
			} else {
				node.Items = append(node.Items, list("case", encodeExpr(c.Value), encodeBlock(c.Body)))
			}
		}
		return node
	case *BreakStmt:
		return list("break")
	case *ContinueStmt:
		return list("continue")
	case *ReturnStmt:
		if s.Expr == nil {
			return list("return")
		}
		return list("return", encodeExpr(s.Expr))
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func encodeInt(e *IntExpr) *sexpr.Node {
	v := e.Value
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
	}
	abs := new(big.Int).Abs(v)

	switch {
	case e.Base == Hex:
		return sexpr.NewInteger(sign + "0x" + abs.Text(16))
	case e.Base == Octal && abs.Sign() != 0:
		return sexpr.NewInteger(sign + "0" + abs.Text(8))
	default:
		return sexpr.NewInteger(v.String())
	}
}

// FormatFloat writes a float so that it reads back as a float atom.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	text := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

func encodeExpr(expr Expr) *sexpr.Node {
	switch e := expr.(type) {
	case *IntExpr:
		return encodeInt(e)
	case *CharExpr:
		return list("char", sexpr.NewInteger(strconv.Itoa(int(e.Value))))
	case *FloatExpr:
		text := FormatFloat(e.Value)
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return sexpr.NewSymbol(text)
		}
		return sexpr.NewFloat(text)
	case *StringExpr:
		return sexpr.NewString(e.Value)
	case *IdentExpr:
		return sexpr.NewSymbol(e.Value)
	case *AssignExpr:
		return list("=", encodeExpr(e.Left), encodeExpr(e.Right))
	case *CallExpr:
		node := list("call", sexpr.NewSymbol(e.Name))
		for _, arg := range e.Args {
			node.Items = append(node.Items, encodeExpr(arg))
		}
		return node
	case *ArraySubscriptExpr:
		return list("index", encodeExpr(e.Left), encodeExpr(e.Index))
	case *CastExpr:
		return list("cast", encodeQualifiedType(e.CastToType), encodeExpr(e.Expr))
	case *UnaryExpr:
		return list(e.Op.String(), encodeExpr(e.Right))
	case *BinaryExpr:
		return list(e.Op.String(), encodeExpr(e.Left), encodeExpr(e.Right))
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}
