package compiler_errors

import (
	"fmt"
	"io"
	"os"

	"github.com/kievzenit/cfront/internal/span"
)

type CompilerError interface {
	GetMessage() string
}

type ErrorHandler interface {
	AddError(err CompilerError)
	AddDiagnostics(diagnostics []*Diagnostic)
	HasErrors() bool
	Report()
	FailNow()
}

type CompilerErrorHandler struct {
	errors []CompilerError
	writer io.Writer

	fileName string
	source   []byte

	exit func(code int)
}

// NewErrorHandler returns a handler that renders positions against source.
// source may be nil, in which case raw byte offsets are printed.
func NewErrorHandler(outputWriter io.Writer, fileName string, source []byte) ErrorHandler {
	return &CompilerErrorHandler{
		errors:   make([]CompilerError, 0),
		writer:   outputWriter,
		fileName: fileName,
		source:   source,
		exit:     os.Exit,
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) AddDiagnostics(diagnostics []*Diagnostic) {
	for _, d := range diagnostics {
		eh.AddError(d)
	}
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) position(s span.Span) string {
	if eh.source == nil {
		return fmt.Sprintf("%s:@%s", eh.fileName, s)
	}
	line, col := s.LineCol(eh.source)
	return fmt.Sprintf("%s:%d:%d", eh.fileName, line, col)
}

// Report writes every collected error without exiting.
func (eh *CompilerErrorHandler) Report() {
	for _, err := range eh.errors {
		d, ok := err.(*Diagnostic)
		if !ok {
			fmt.Fprintf(eh.writer, "ERROR: %s\n", err.GetMessage())
			continue
		}

		fmt.Fprintf(eh.writer, "%s: error[%s]: %s\n", eh.position(d.Span), d.Kind, d.Message)
		if d.Related != nil {
			fmt.Fprintf(eh.writer, "%s: note: %s\n", eh.position(*d.Related), d.RelatedMessage)
		}
	}
}

func (eh *CompilerErrorHandler) FailNow() {
	fmt.Fprintln(eh.writer, "Build failed with errors:")
	eh.Report()
	eh.exit(1)
}
