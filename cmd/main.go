package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kievzenit/cfront/internal/ast"
	"github.com/kievzenit/cfront/internal/compiler_errors"
	"github.com/kievzenit/cfront/internal/const_folder"
	"github.com/kievzenit/cfront/internal/semantic_analyzer"
	"github.com/kievzenit/cfront/internal/settings"
	"github.com/sanity-io/litter"
)

type options struct {
	target     string
	fold       bool
	dumpAst    bool
	sourceFile string
	treeFile   string
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("cfront", flag.ContinueOnError)
	fs.StringVar(&opts.target, "target", string(settings.X86_64), "target data model")
	fs.BoolVar(&opts.fold, "fold", false, "fold constants before lowering")
	fs.BoolVar(&opts.dumpAst, "dump-ast", false, "print the (folded) tree and stop")
	fs.StringVar(&opts.sourceFile, "source", "", "C source the tree was parsed from, used for line:col positions")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: cfront [flags] tree.sexp")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected exactly one tree file, got %d", fs.NArg())
	}
	opts.treeFile = fs.Arg(0)
	return opts, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cfront: ")

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	target, err := settings.ParseTarget(opts.target)
	if err != nil {
		log.Fatal(err)
	}

	treeData, err := os.ReadFile(opts.treeFile)
	if err != nil {
		log.Fatal(err)
	}

	var source []byte
	if opts.sourceFile != "" {
		source, err = os.ReadFile(opts.sourceFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	translationUnit, err := ast.DecodeString(string(treeData))
	if err != nil {
		log.Fatalf("%s: %v", opts.treeFile, err)
	}

	if opts.fold {
		translationUnit = const_folder.Fold(translationUnit)
	}
	if opts.dumpAst {
		fmt.Println(ast.Format(translationUnit))
		return
	}

	reportedName := opts.treeFile
	if opts.sourceFile != "" {
		reportedName = opts.sourceFile
	}
	eh := compiler_errors.NewErrorHandler(os.Stderr, reportedName, source)

	analyzer := semantic_analyzer.NewSemanticAnalyzer(settings.Settings{Target: target}, translationUnit)
	result := analyzer.Analyze()
	eh.AddDiagnostics(result.Diagnostics())
	if eh.HasErrors() {
		eh.FailNow()
	}

	root, _ := result.Value()
	litter.Dump(root)
}
