package ast

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/kievzenit/cfront/internal/sexpr"
	"github.com/kievzenit/cfront/internal/span"
)

var (
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// FitsInt128 reports whether v is representable as a 128-bit signed integer.
func FitsInt128(v *big.Int) bool {
	return v.Cmp(minInt128) >= 0 && v.Cmp(maxInt128) <= 0
}

var primitiveSymbols = map[string]PrimitiveType{
	"void":           Void,
	"char":           Char,
	"signed-char":    SignedChar,
	"unsigned-char":  UnsignedChar,
	"short":          SignedShortInt,
	"unsigned-short": UnsignedShortInt,
	"int":            SignedInt,
	"unsigned":       UnsignedInt,
	"long":           SignedLongInt,
	"unsigned-long":  UnsignedLongInt,
	"float":          Float,
	"double":         Double,
	"long-double":    LongDouble,
}

// Decode builds a translation unit from its s-expression form:
//
//	(unit
//	  (var (const int) limit (init 10))
//	  (func int main (params) (block (return limit))))
func Decode(node *sexpr.Node) (*TranslationUnit, error) {
	if node.Head() != "unit" {
		return nil, fmt.Errorf("expected (unit ...), got %s", node)
	}

	unit := &TranslationUnit{Span: spanOf(node)}
	for _, item := range node.Args() {
		top, err := decodeTopStmt(item)
		if err != nil {
			return nil, err
		}
		unit.Stmts = append(unit.Stmts, top)
	}
	return unit, nil
}

// DecodeString parses and decodes a translation unit in one step.
func DecodeString(input string) (*TranslationUnit, error) {
	node, err := sexpr.Parse(input)
	if err != nil {
		return nil, err
	}
	return Decode(node)
}

// DecodeExpr decodes a single expression.
func DecodeExpr(node *sexpr.Node) (Expr, error) {
	return decodeExpr(node)
}

func spanOf(node *sexpr.Node) span.Span {
	if node.Span == nil {
		return span.Span{}
	}
	return *node.Span
}

func decodeTopStmt(node *sexpr.Node) (TopStmt, error) {
	switch node.Head() {
	case "var":
		return decodeVarDecl(node)
	case "func-decl":
		return decodeFuncDecl(node)
	case "func":
		return decodeFuncDef(node)
	default:
		return nil, fmt.Errorf("expected top-level declaration, got %s", node)
	}
}

func decodeName(node *sexpr.Node) (string, span.Span, error) {
	if node.Type == sexpr.NodeSymbol && node.Text != "_" {
		return node.Text, span.Span{}, nil
	}
	if node.Head() == "id" && len(node.Args()) == 1 && node.Args()[0].Type == sexpr.NodeSymbol {
		return node.Args()[0].Text, spanOf(node), nil
	}
	return "", span.Span{}, fmt.Errorf("expected identifier, got %s", node)
}

func decodeVarDecl(node *sexpr.Node) (*VarDeclStmt, error) {
	args := node.Args()
	if len(args) < 2 {
		return nil, fmt.Errorf("var: expected type and name in %s", node)
	}

	qt, err := decodeQualifiedType(args[0])
	if err != nil {
		return nil, fmt.Errorf("var: %w", err)
	}
	name, nameSpan, err := decodeName(args[1])
	if err != nil {
		return nil, fmt.Errorf("var: %w", err)
	}

	decl := &VarDeclStmt{
		Span:     spanOf(node),
		Type:     qt,
		Name:     name,
		NameSpan: nameSpan,
	}
	for _, part := range args[2:] {
		switch part.Head() {
		case "array":
			arrayPart, err := decodeArrayPart(part)
			if err != nil {
				return nil, fmt.Errorf("var %s: %w", name, err)
			}
			decl.ArrayParts = append(decl.ArrayParts, arrayPart)
		case "init":
			if decl.Value != nil || len(part.Args()) != 1 {
				return nil, fmt.Errorf("var %s: malformed initializer %s", name, part)
			}
			value, err := decodeExpr(part.Args()[0])
			if err != nil {
				return nil, fmt.Errorf("var %s: %w", name, err)
			}
			decl.Value = value
			decl.ValueOpSpan = spanOf(part)
		default:
			return nil, fmt.Errorf("var %s: unexpected %s", name, part)
		}
	}
	return decl, nil
}

func decodeArrayPart(node *sexpr.Node) (ArrayPart, error) {
	switch len(node.Args()) {
	case 0:
		return ArrayPart{Span: spanOf(node)}, nil
	case 1:
		length, err := decodeExpr(node.Args()[0])
		if err != nil {
			return ArrayPart{}, err
		}
		return ArrayPart{Span: spanOf(node), Length: length}, nil
	default:
		return ArrayPart{}, fmt.Errorf("malformed array part %s", node)
	}
}

func decodeSignature(node *sexpr.Node, keyword string, arity int) (*FuncDeclStmt, error) {
	args := node.Args()
	if len(args) != arity {
		return nil, fmt.Errorf("%s: expected %d items in %s", keyword, arity, node)
	}

	returnType, err := decodeQualifiedType(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyword, err)
	}
	name, nameSpan, err := decodeName(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyword, err)
	}
	if args[2].Head() != "params" {
		return nil, fmt.Errorf("%s %s: expected (params ...), got %s", keyword, name, args[2])
	}

	decl := &FuncDeclStmt{
		Span:       spanOf(node),
		ReturnType: returnType,
		Name:       name,
		NameSpan:   nameSpan,
	}
	params := args[2].Args()
	for i, p := range params {
		if p.IsSymbol("...") {
			if i != len(params)-1 {
				return nil, fmt.Errorf("%s %s: ... must be the last parameter", keyword, name)
			}
			decl.Variadic = true
			continue
		}
		param, err := decodeParam(p)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", keyword, name, err)
		}
		decl.Args = append(decl.Args, param)
	}
	return decl, nil
}

func decodeParam(node *sexpr.Node) (FuncParam, error) {
	if node.Head() != "param" || len(node.Args()) == 0 {
		return FuncParam{}, fmt.Errorf("expected (param TYPE [NAME]), got %s", node)
	}

	args := node.Args()
	qt, err := decodeQualifiedType(args[0])
	if err != nil {
		return FuncParam{}, err
	}
	param := FuncParam{Span: spanOf(node), Type: qt}
	for _, rest := range args[1:] {
		if rest.Head() == "array" {
			part, err := decodeArrayPart(rest)
			if err != nil {
				return FuncParam{}, err
			}
			param.ArrayParts = append(param.ArrayParts, part)
			continue
		}
		if param.Name != "" {
			return FuncParam{}, fmt.Errorf("unexpected %s in %s", rest, node)
		}
		param.Name, param.NameSpan, err = decodeName(rest)
		if err != nil {
			return FuncParam{}, err
		}
	}
	return param, nil
}

func decodeFuncDecl(node *sexpr.Node) (*FuncDeclStmt, error) {
	return decodeSignature(node, "func-decl", 3)
}

func decodeFuncDef(node *sexpr.Node) (*FuncDefStmt, error) {
	if len(node.Args()) != 4 {
		return nil, fmt.Errorf("func: expected 4 items in %s", node)
	}
	signature := &sexpr.Node{Type: sexpr.NodeList, Items: node.Items[:4], Span: node.Span}
	decl, err := decodeSignature(signature, "func", 3)
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(node.Items[len(node.Items)-1])
	if err != nil {
		return nil, fmt.Errorf("func %s: %w", decl.Name, err)
	}
	return &FuncDefStmt{FuncDeclStmt: *decl, Body: body}, nil
}

func decodeQualifiedType(node *sexpr.Node) (*QualifiedTypeNode, error) {
	if node.Head() == "const" {
		if len(node.Args()) != 1 {
			return nil, fmt.Errorf("malformed type %s", node)
		}
		inner, err := decodeQualifiedType(node.Args()[0])
		if err != nil {
			return nil, err
		}
		if inner.Const {
			return nil, fmt.Errorf("duplicate const in %s", node)
		}
		inner.Const = true
		if node.Span != nil {
			inner.Span = *node.Span
		}
		return inner, nil
	}

	inner, err := decodeType(node)
	if err != nil {
		return nil, err
	}
	return &QualifiedTypeNode{Span: inner.NodeSpan(), Inner: inner}, nil
}

func decodeType(node *sexpr.Node) (TypeNode, error) {
	if node.Type == sexpr.NodeSymbol {
		kind, ok := primitiveSymbols[node.Text]
		if !ok {
			return nil, fmt.Errorf("unknown type %s", node.Text)
		}
		return &PrimitiveTypeNode{Kind: kind}, nil
	}

	switch node.Head() {
	case "ptr":
		if len(node.Args()) != 1 {
			return nil, fmt.Errorf("malformed type %s", node)
		}
		to, err := decodeQualifiedType(node.Args()[0])
		if err != nil {
			return nil, err
		}
		return &PointerTypeNode{Span: spanOf(node), To: to}, nil
	case "type":
		if len(node.Args()) != 1 {
			return nil, fmt.Errorf("malformed type %s", node)
		}
		prim, err := decodeType(node.Args()[0])
		if err != nil {
			return nil, err
		}
		if p, ok := prim.(*PrimitiveTypeNode); ok {
			p.Span = spanOf(node)
		}
		return prim, nil
	default:
		return nil, fmt.Errorf("expected type, got %s", node)
	}
}

func decodeBlock(node *sexpr.Node) (*ScopeStmt, error) {
	if node.Head() != "block" {
		return nil, fmt.Errorf("expected (block ...), got %s", node)
	}
	block := &ScopeStmt{Span: spanOf(node)}
	for _, item := range node.Args() {
		stmt, err := decodeStmt(item)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func decodeOptionalExpr(node *sexpr.Node) (Expr, error) {
	if node.IsSymbol("_") {
		return nil, nil
	}
	return decodeExpr(node)
}

func decodeStmt(node *sexpr.Node) (Stmt, error) {
	args := node.Args()
	s := spanOf(node)

	switch node.Head() {
	case "var":
		return decodeVarDecl(node)
	case "func-decl":
		return decodeFuncDecl(node)
	case "block":
		return decodeBlock(node)
	case "expr":
		if len(args) != 1 {
			return nil, fmt.Errorf("malformed statement %s", node)
		}
		expr, err := decodeExpr(args[0])
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Span: s, Expr: expr}, nil
	case "if":
		if len(args) != 2 && len(args) != 3 {
			return nil, fmt.Errorf("malformed statement %s", node)
		}
		cond, err := decodeExpr(args[0])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(args[1])
		if err != nil {
			return nil, err
		}
		stmt := &IfStmt{Span: s, Cond: cond, Body: body}
		if len(args) == 3 {
			if stmt.Else, err = decodeBlock(args[2]); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	case "while":
		if len(args) != 2 {
			return nil, fmt.Errorf("malformed statement %s", node)
		}
		cond, err := decodeExpr(args[0])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(args[1])
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Span: s, Cond: cond, Body: body}, nil
	case "for":
		if len(args) != 4 {
			return nil, fmt.Errorf("malformed statement %s", node)
		}
		stmt := &ForStmt{Span: s}
		if !args[0].IsSymbol("_") {
			init, err := decodeStmt(args[0])
			if err != nil {
				return nil, err
			}
			switch init.(type) {
			case *VarDeclStmt, *ExprStmt:
			default:
				return nil, fmt.Errorf("for: init must be a declaration or expression, got %s", args[0])
			}
			stmt.Init = init
		}
		var err error
		if stmt.Cond, err = decodeOptionalExpr(args[1]); err != nil {
			return nil, err
		}
		if stmt.Iter, err = decodeOptionalExpr(args[2]); err != nil {
			return nil, err
		}
		if stmt.Body, err = decodeBlock(args[3]); err != nil {
			return nil, err
		}
		return stmt, nil
	case "switch":
		if len(args) == 0 {
			return nil, fmt.Errorf("malformed statement %s", node)
		}
		expr, err := decodeExpr(args[0])
		if err != nil {
			return nil, err
		}
		stmt := &SwitchStmt{Span: s, Expr: expr}
		for _, c := range args[1:] {
			switchCase, err := decodeSwitchCase(c)
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, switchCase)
		}
		return stmt, nil
	case "break":
		return &BreakStmt{Span: s}, nil
	case "continue":
		return &ContinueStmt{Span: s}, nil
	case "return":
		stmt := &ReturnStmt{Span: s}
		switch len(args) {
		case 0:
		case 1:
			expr, err := decodeExpr(args[0])
			if err != nil {
				return nil, err
			}
			stmt.Expr = expr
		default:
			return nil, fmt.Errorf("malformed statement %s", node)
		}
		return stmt, nil
	default:
		return nil, fmt.Errorf("expected statement, got %s", node)
	}
}

func decodeSwitchCase(node *sexpr.Node) (SwitchCase, error) {
	args := node.Args()
	switch node.Head() {
	case "case":
		if len(args) != 2 {
			return SwitchCase{}, fmt.Errorf("malformed case %s", node)
		}
		value, err := decodeExpr(args[0])
		if err != nil {
			return SwitchCase{}, err
		}
		body, err := decodeBlock(args[1])
		if err != nil {
			return SwitchCase{}, err
		}
		return SwitchCase{Span: spanOf(node), Value: value, Body: body}, nil
	case "default":
		if len(args) != 1 {
			return SwitchCase{}, fmt.Errorf("malformed default %s", node)
		}
		body, err := decodeBlock(args[0])
		if err != nil {
			return SwitchCase{}, err
		}
		return SwitchCase{Span: spanOf(node), Body: body}, nil
	default:
		return SwitchCase{}, fmt.Errorf("expected case or default, got %s", node)
	}
}

func decodeIntLiteral(text string, s span.Span) (*IntExpr, error) {
	value, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %s", text)
	}
	if !FitsInt128(value) {
		return nil, fmt.Errorf("integer literal %s does not fit in 128 bits", text)
	}

	digits := strings.TrimLeft(text, "+-")
	base := Dec
	switch {
	case strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X"):
		base = Hex
	case len(digits) > 1 && digits[0] == '0':
		base = Octal
	}
	return &IntExpr{Span: s, Value: value, Base: base}, nil
}

func decodeAtom(node *sexpr.Node, s span.Span) (Expr, error) {
	switch node.Type {
	case sexpr.NodeInteger:
		return decodeIntLiteral(node.Text, s)
	case sexpr.NodeFloat:
		value, err := strconv.ParseFloat(node.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %s: %w", node.Text, err)
		}
		return &FloatExpr{Span: s, Value: value}, nil
	case sexpr.NodeString:
		return &StringExpr{Span: s, Value: node.Text}, nil
	case sexpr.NodeSymbol:
		switch node.Text {
		case "inf":
			return &FloatExpr{Span: s, Value: math.Inf(1)}, nil
		case "-inf":
			return &FloatExpr{Span: s, Value: math.Inf(-1)}, nil
		case "nan":
			return &FloatExpr{Span: s, Value: math.NaN()}, nil
		case "_":
			return nil, fmt.Errorf("unexpected _ in expression position")
		}
		return &IdentExpr{Span: s, Value: node.Text}, nil
	default:
		return nil, fmt.Errorf("expected atom, got %s", node)
	}
}

func decodeExpr(node *sexpr.Node) (Expr, error) {
	if node.IsAtom() {
		return decodeAtom(node, span.Span{})
	}

	head := node.Head()
	args := node.Args()
	s := spanOf(node)

	switch head {
	case "":
		return nil, fmt.Errorf("expected expression, got %s", node)
	case "lit", "id":
		if len(args) != 1 || !args[0].IsAtom() {
			return nil, fmt.Errorf("malformed %s", node)
		}
		return decodeAtom(args[0], s)
	case "char":
		if len(args) != 1 || args[0].Type != sexpr.NodeInteger {
			return nil, fmt.Errorf("malformed %s", node)
		}
		value, err := strconv.ParseUint(args[0].Text, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid char literal %s: %w", node, err)
		}
		return &CharExpr{Span: s, Value: byte(value)}, nil
	case "=":
		if len(args) != 2 {
			return nil, fmt.Errorf("malformed %s", node)
		}
		left, right, err := decodePair(args)
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Span: s, OpSpan: s, Left: left, Right: right}, nil
	case "index":
		if len(args) != 2 {
			return nil, fmt.Errorf("malformed %s", node)
		}
		left, index, err := decodePair(args)
		if err != nil {
			return nil, err
		}
		return &ArraySubscriptExpr{Span: s, Left: left, Index: index}, nil
	case "cast":
		if len(args) != 2 {
			return nil, fmt.Errorf("malformed %s", node)
		}
		qt, err := decodeQualifiedType(args[0])
		if err != nil {
			return nil, err
		}
		expr, err := decodeExpr(args[1])
		if err != nil {
			return nil, err
		}
		return &CastExpr{Span: s, CastToType: qt, Expr: expr}, nil
	case "call":
		if len(args) == 0 {
			return nil, fmt.Errorf("malformed %s", node)
		}
		name, nameSpan, err := decodeName(args[0])
		if err != nil {
			return nil, err
		}
		call := &CallExpr{Span: s, Name: name, NameSpan: nameSpan}
		for _, a := range args[1:] {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		return call, nil
	}

	if len(args) == 2 {
		if op, ok := BinaryOpFromSymbol(head); ok {
			left, right, err := decodePair(args)
			if err != nil {
				return nil, err
			}
			return &BinaryExpr{Span: s, OpSpan: s, Left: left, Op: op, Right: right}, nil
		}
	}
	if len(args) == 1 {
		if op, ok := UnaryOpFromSymbol(head); ok {
			right, err := decodeExpr(args[0])
			if err != nil {
				return nil, err
			}
			return &UnaryExpr{Span: s, OpSpan: s, Op: op, Right: right}, nil
		}
	}

	return nil, fmt.Errorf("expected expression, got %s", node)
}

func decodePair(args []*sexpr.Node) (Expr, Expr, error) {
	left, err := decodeExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := decodeExpr(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
