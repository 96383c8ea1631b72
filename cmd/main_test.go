package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"-target", "avr", "-fold", "prog.sexp"})
	be.Err(t, err, nil)
	be.Equal(t, opts.target, "avr")
	be.True(t, opts.fold)
	be.True(t, !opts.dumpAst)
	be.Equal(t, opts.treeFile, "prog.sexp")

	opts, err = parseOptions([]string{"prog.sexp"})
	be.Err(t, err, nil)
	be.Equal(t, opts.target, "x86_64")
}

func TestParseOptionsNeedsOneFile(t *testing.T) {
	_, err := parseOptions([]string{"-fold"})
	be.True(t, err != nil)

	_, err = parseOptions([]string{"a.sexp", "b.sexp"})
	be.True(t, err != nil)
}
