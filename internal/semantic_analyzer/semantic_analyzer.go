package semantic_analyzer

import (
	"fmt"

	"github.com/kievzenit/cfront/internal/ast"
	"github.com/kievzenit/cfront/internal/compiler_errors"
	"github.com/kievzenit/cfront/internal/ir"
	types "github.com/kievzenit/cfront/internal/ir/types"
	"github.com/kievzenit/cfront/internal/settings"
	"github.com/kievzenit/cfront/internal/span"
)

type (
	stmtResult = compiler_errors.AggregateResult[ir.StmtIr]
	exprResult = compiler_errors.AggregateResult[ir.ExprIr]
)

// SemanticAnalyzer lowers a translation unit to IR. Problems are reported
// as diagnostics next to whatever IR could still be built.
type SemanticAnalyzer struct {
	settings        settings.Settings
	translationUnit *ast.TranslationUnit

	table *ScopedTable
	tr    *TypeResolver
}

func NewSemanticAnalyzer(
	settings settings.Settings,
	translationUnit *ast.TranslationUnit) *SemanticAnalyzer {
	return &SemanticAnalyzer{
		settings:        settings,
		translationUnit: translationUnit,

		table: NewScopedTable(),
		tr:    NewTypeResolver(),
	}
}

func (sa *SemanticAnalyzer) target() settings.Target {
	return sa.settings.Target
}

func (sa *SemanticAnalyzer) enterScope() {
	sa.table.EnterScope()
}

func (sa *SemanticAnalyzer) exitScope() {
	sa.table.ExitScope()
}

// The builtin scope sits below the file scope.
func (sa *SemanticAnalyzer) isGlobalScope() bool {
	return sa.table.Depth() == 2
}

// Analyze lowers the whole unit. The returned result always holds a root;
// it is only complete when the result carries no diagnostics. Analyze must
// be called at most once.
func (sa *SemanticAnalyzer) Analyze() compiler_errors.AggregateResult[*ir.Root] {
	sa.defineBuiltInFunctions()

	res := compiler_errors.Ok(make([]ir.StmtIr, 0, len(sa.translationUnit.Stmts)))
	for _, topStmt := range sa.translationUnit.Stmts {
		compiler_errors.AddTo(sa.analyzeTopStmt(topStmt), &res, appendStmt)
	}

	return compiler_errors.Map(res, func(stmts []ir.StmtIr) *ir.Root {
		return &ir.Root{
			Global: &ir.Block{Stmts: stmts},
			Table:  sa.table.IntoTable(),
		}
	})
}

func appendStmt(stmts *[]ir.StmtIr, stmt ir.StmtIr) {
	if stmt != nil {
		*stmts = append(*stmts, stmt)
	}
}

func (sa *SemanticAnalyzer) defineBuiltInFunctions() {
	sa.table.Declare("printf", ir.Item{
		Name: "printf",
		Type: &types.FunctionType{
			ReturnType: sa.tr.IntType(),
			Params:     []types.Type{sa.tr.ConstStringType()},
			Variadic:   true,
		},
		IsConst: true,
		Global:  true,
	})
	sa.enterScope()
}

func (sa *SemanticAnalyzer) analyzeTopStmt(topStmt ast.TopStmt) stmtResult {
	switch s := topStmt.(type) {
	case *ast.FuncDefStmt:
		return sa.analyzeFuncDefStmt(s)
	case *ast.FuncDeclStmt:
		return sa.analyzeFuncDeclStmt(s)
	case *ast.VarDeclStmt:
		return sa.analyzeVarDeclStmt(s)
	default:
		panic(fmt.Sprintf("unexpected top-level statement %T", topStmt))
	}
}

type declarationType struct {
	Type    types.Type
	IsConst bool
}

func (sa *SemanticAnalyzer) analyzeVarDeclStmt(varDeclStmt *ast.VarDeclStmt) stmtResult {
	// The initializer is lowered before the name exists, so `int x = x;`
	// refers to an outer x.
	init := compiler_errors.Ok[ir.ExprIr](nil)
	if varDeclStmt.Value != nil {
		init = sa.analyzeRvalue(varDeclStmt.Value)
	}

	declared := compiler_errors.AndThen(
		sa.resolveDeclarationType(varDeclStmt),
		func(dt declarationType) compiler_errors.AggregateResult[*ir.IdentExprIr] {
			return sa.declareVariable(varDeclStmt, dt)
		},
	)

	return compiler_errors.AndThen(
		compiler_errors.Zip(declared, init),
		func(p compiler_errors.Pair[*ir.IdentExprIr, ir.ExprIr]) stmtResult {
			if p.Second == nil {
				return compiler_errors.Ok[ir.StmtIr](nil)
			}

			// The initializing assignment may write a const object.
			target := *p.First
			target.Const = false

			assignment := sa.assign(&target, p.Second, varDeclStmt.Span, varDeclStmt.ValueOpSpan)
			return compiler_errors.Map(assignment, func(expr ir.ExprIr) ir.StmtIr {
				return &ir.ExprStmtIr{Span: varDeclStmt.Span, Expr: expr}
			})
		},
	)
}

func (sa *SemanticAnalyzer) resolveDeclarationType(varDeclStmt *ast.VarDeclStmt) compiler_errors.AggregateResult[declarationType] {
	t, isConst := sa.tr.GetType(varDeclStmt.Type)
	b := compiler_errors.NewDiagnosticBuilder(varDeclStmt.Span)

	if types.IsVoid(t) {
		return compiler_errors.Err[declarationType](
			compiler_errors.NewDiagnosticBuilder(varDeclStmt.NameSpan).BuildVoidVariable(varDeclStmt.Name),
		)
	}

	switch len(varDeclStmt.ArrayParts) {
	case 0:
		return compiler_errors.Ok(declarationType{Type: t, IsConst: isConst})
	case 1:
	default:
		return compiler_errors.Err[declarationType](b.BuildUnimplemented("multi-dimensional arrays"))
	}

	if varDeclStmt.Value != nil {
		return compiler_errors.Err[declarationType](b.BuildUnimplemented("array initializers"))
	}

	part := varDeclStmt.ArrayParts[0]
	if part.Length == nil {
		return compiler_errors.Err[declarationType](
			compiler_errors.NewDiagnosticBuilder(part.Span).BuildUnimplemented("arrays of unknown length"),
		)
	}

	length, ok := arrayLength(part.Length)
	if !ok {
		return compiler_errors.Err[declarationType](
			compiler_errors.NewDiagnosticBuilder(part.Length.NodeSpan()).BuildUnimplemented("non-literal array lengths"),
		)
	}
	if length <= 0 {
		return compiler_errors.Err[declarationType](
			compiler_errors.NewDiagnosticBuilder(part.Length.NodeSpan()).BuildInvalidArraySize(varDeclStmt.Name),
		)
	}

	return compiler_errors.Ok(declarationType{
		Type:    &types.ArrayType{Element: t, ElementConst: isConst, Length: length},
		IsConst: isConst,
	})
}

// arrayLength reads a literal array length. Literals too large for int64
// come back as -1 so they are rejected as invalid sizes.
func arrayLength(expr ast.Expr) (int64, bool) {
	switch e := expr.(type) {
	case *ast.IntExpr:
		if !e.Value.IsInt64() {
			return -1, true
		}
		return e.Value.Int64(), true
	case *ast.CharExpr:
		return int64(e.Value), true
	default:
		return 0, false
	}
}

func (sa *SemanticAnalyzer) declareVariable(varDeclStmt *ast.VarDeclStmt, dt declarationType) compiler_errors.AggregateResult[*ir.IdentExprIr] {
	id, ok := sa.table.Declare(varDeclStmt.Name, ir.Item{
		Name:         varDeclStmt.Name,
		Type:         dt.Type,
		IsConst:      dt.IsConst,
		OriginalSpan: varDeclStmt.NameSpan,
		Global:       sa.isGlobalScope(),
		Initialized:  varDeclStmt.Value != nil,
	})
	if !ok {
		original := sa.table.Get(id).OriginalSpan
		return compiler_errors.Err[*ir.IdentExprIr](
			compiler_errors.NewDiagnosticBuilder(varDeclStmt.NameSpan).BuildAlreadyDefined(varDeclStmt.Name, original),
		)
	}

	return compiler_errors.Ok(&ir.IdentExprIr{
		Type:  dt.Type,
		Span:  varDeclStmt.NameSpan,
		Item:  id,
		Const: dt.IsConst,
	})
}

type paramDefinition struct {
	Name     string
	NameSpan span.Span
	Type     types.Type
	IsConst  bool
}

type signature struct {
	FunctionType *types.FunctionType
	Params       []paramDefinition
}

func (sa *SemanticAnalyzer) analyzeSignature(funcDeclStmt *ast.FuncDeclStmt, definition bool) compiler_errors.AggregateResult[signature] {
	returnType, _ := sa.tr.GetType(funcDeclStmt.ReturnType)
	sig := signature{
		FunctionType: &types.FunctionType{
			ReturnType: returnType,
			Params:     make([]types.Type, 0, len(funcDeclStmt.Args)),
			Variadic:   funcDeclStmt.Variadic,
		},
	}

	args := funcDeclStmt.Args
	if len(args) == 1 && args[0].Name == "" && len(args[0].ArrayParts) == 0 && !funcDeclStmt.Variadic {
		if t, _ := sa.tr.GetType(args[0].Type); types.IsVoid(t) {
			args = nil
		}
	}

	diagnostics := make([]*compiler_errors.Diagnostic, 0)
	for _, arg := range args {
		b := compiler_errors.NewDiagnosticBuilder(arg.Span)
		t, isConst := sa.tr.GetType(arg.Type)

		switch {
		case types.IsVoid(t):
			diagnostics = append(diagnostics, b.BuildVoidVariable(arg.Name))
			continue
		case len(arg.ArrayParts) > 0 && definition:
			diagnostics = append(diagnostics, b.BuildUnimplemented("array parameters"))
			continue
		case len(arg.ArrayParts) > 1:
			diagnostics = append(diagnostics, b.BuildUnimplemented("multi-dimensional arrays"))
			continue
		case len(arg.ArrayParts) == 1:
			t = types.NewPointerType(t, isConst)
			isConst = false
		}

		if definition && arg.Name == "" {
			diagnostics = append(diagnostics, b.BuildUnimplemented("unnamed parameters in function definitions"))
			continue
		}

		sig.FunctionType.Params = append(sig.FunctionType.Params, t)
		sig.Params = append(sig.Params, paramDefinition{
			Name:     arg.Name,
			NameSpan: arg.NameSpan,
			Type:     t,
			IsConst:  isConst,
		})
	}

	if len(diagnostics) > 0 {
		return compiler_errors.Err[signature](diagnostics...)
	}
	return compiler_errors.Ok(sig)
}

// declareFunction declares a prototype or definition. A later compatible
// declaration reuses the first item.
func (sa *SemanticAnalyzer) declareFunction(
	funcDeclStmt *ast.FuncDeclStmt,
	functionType *types.FunctionType,
	definition bool) compiler_errors.AggregateResult[ir.ItemID] {
	id, ok := sa.table.Declare(funcDeclStmt.Name, ir.Item{
		Name:         funcDeclStmt.Name,
		Type:         functionType,
		IsConst:      true,
		OriginalSpan: funcDeclStmt.NameSpan,
		Global:       sa.isGlobalScope(),
		Initialized:  definition,
		Defined:      definition,
	})
	if ok {
		return compiler_errors.Ok(id)
	}

	existing := sa.table.Get(id)
	b := compiler_errors.NewDiagnosticBuilder(funcDeclStmt.NameSpan)
	existingType, isFunction := existing.Type.(*types.FunctionType)
	switch {
	case !isFunction:
		return compiler_errors.Err[ir.ItemID](b.BuildAlreadyDefined(funcDeclStmt.Name, existing.OriginalSpan))
	case !existingType.SameAs(functionType):
		return compiler_errors.Err[ir.ItemID](b.BuildConflictingTypes(funcDeclStmt.Name, existing.OriginalSpan))
	case definition && existing.Defined:
		return compiler_errors.Err[ir.ItemID](b.BuildAlreadyDefined(funcDeclStmt.Name, existing.OriginalSpan))
	}

	if definition {
		existing.Defined = true
		existing.Initialized = true
	}
	return compiler_errors.Ok(id)
}

func (sa *SemanticAnalyzer) analyzeFuncDeclStmt(funcDeclStmt *ast.FuncDeclStmt) stmtResult {
	return compiler_errors.AndThen(
		sa.analyzeSignature(funcDeclStmt, false),
		func(sig signature) stmtResult {
			declared := sa.declareFunction(funcDeclStmt, sig.FunctionType, false)
			return compiler_errors.Map(declared, func(ir.ItemID) ir.StmtIr { return nil })
		},
	)
}

type funcParts = compiler_errors.Pair[compiler_errors.Pair[ir.ItemID, []ir.ItemID], []ir.StmtIr]

func (sa *SemanticAnalyzer) analyzeFuncDefStmt(funcDefStmt *ast.FuncDefStmt) stmtResult {
	return compiler_errors.AndThen(
		sa.analyzeSignature(&funcDefStmt.FuncDeclStmt, true),
		func(sig signature) stmtResult {
			function := sa.declareFunction(&funcDefStmt.FuncDeclStmt, sig.FunctionType, true)

			// Parameters share the scope of the outermost body block.
			sa.enterScope()
			defer sa.exitScope()

			params := sa.declareParams(sig.Params)
			fs := functionScope{
				name:       funcDefStmt.Name,
				returnType: sig.FunctionType.ReturnType,
				returnSpan: funcDefStmt.ReturnType.Span,
			}
			body := sa.analyzeStmts(funcDefStmt.Body.Stmts, fs)

			parts := compiler_errors.Zip(compiler_errors.Zip(function, params), body)
			return compiler_errors.Map(parts, func(p funcParts) ir.StmtIr {
				stmts := p.Second
				if types.IsVoid(fs.returnType) && !endsWithReturn(stmts) {
					stmts = append(stmts, &ir.ReturnStmtIr{Span: funcDefStmt.Body.Span})
				}

				return &ir.FuncDefStmtIr{
					Span:     funcDefStmt.Span,
					Function: p.First.First,
					Params:   p.First.Second,
					Body:     &ir.ScopeStmtIr{Span: funcDefStmt.Body.Span, Stmts: stmts},
				}
			})
		},
	)
}

func endsWithReturn(stmts []ir.StmtIr) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ir.ReturnStmtIr)
	return ok
}

func (sa *SemanticAnalyzer) declareParams(params []paramDefinition) compiler_errors.AggregateResult[[]ir.ItemID] {
	results := make([]compiler_errors.AggregateResult[ir.ItemID], 0, len(params))
	for _, param := range params {
		id, ok := sa.table.Declare(param.Name, ir.Item{
			Name:         param.Name,
			Type:         param.Type,
			IsConst:      param.IsConst,
			OriginalSpan: param.NameSpan,
			Initialized:  true,
		})
		if !ok {
			original := sa.table.Get(id).OriginalSpan
			results = append(results, compiler_errors.Err[ir.ItemID](
				compiler_errors.NewDiagnosticBuilder(param.NameSpan).BuildAlreadyDefined(param.Name, original),
			))
			continue
		}
		results = append(results, compiler_errors.Ok(id))
	}
	return compiler_errors.All(results)
}
