package compiler_errors

import (
	"bytes"
	"testing"

	"github.com/kievzenit/cfront/internal/span"
	"github.com/nalgeon/be"
)

type plainError string

func (e plainError) GetMessage() string { return string(e) }

func TestReportRendersLineAndColumn(t *testing.T) {
	source := []byte("int x;\nint x;\n")
	var out bytes.Buffer
	handler := NewErrorHandler(&out, "main.c", source)

	handler.AddDiagnostics([]*Diagnostic{
		NewDiagnosticBuilder(span.New(11, 1)).BuildAlreadyDefined("x", span.New(4, 1)),
	})
	be.True(t, handler.HasErrors())
	handler.Report()

	be.Equal(t, out.String(),
		"main.c:2:5: error[already-defined]: redefinition of 'x'\n"+
			"main.c:1:5: note: 'x' was first defined here\n")
}

func TestReportWithoutSource(t *testing.T) {
	var out bytes.Buffer
	handler := NewErrorHandler(&out, "tree.sexp", nil)
	handler.AddError(NewDiagnosticBuilder(span.New(3, 2)).BuildUndeclared("y"))
	handler.AddError(plainError("cannot read input"))
	handler.Report()

	be.Equal(t, out.String(),
		"tree.sexp:@3:2: error[undeclared]: use of undeclared identifier 'y'\n"+
			"ERROR: cannot read input\n")
}

func TestFailNowExits(t *testing.T) {
	var out bytes.Buffer
	handler := NewErrorHandler(&out, "a.c", nil).(*CompilerErrorHandler)
	code := -1
	handler.exit = func(c int) { code = c }

	handler.AddError(plainError("boom"))
	handler.FailNow()

	be.Equal(t, code, 1)
	be.Equal(t, out.String(), "Build failed with errors:\nERROR: boom\n")
}
