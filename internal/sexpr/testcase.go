package sexpr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType represents the type of input code fence in a test document.
type InputType string

const (
	InputTypeTree InputType = "c-ast"
)

// AssertionType represents the type of assertion code fence in a test document.
type AssertionType string

const (
	// AssertionTypeFolded holds the tree expected after constant folding.
	AssertionTypeFolded AssertionType = "folded"
	// AssertionTypeDiagnostics lists the expected diagnostic kinds, one per line.
	AssertionTypeDiagnostics AssertionType = "diagnostics"
)

type Assertion struct {
	Type    AssertionType
	Content string
	Parsed  *Node // nil for diagnostics assertions
	Line    int
}

// TestCase is one "Test: <name>" section of a markdown document.
type TestCase struct {
	Name       string
	Input      *Node
	InputText  string
	Assertions []Assertion
}

// ExtractTestCases parses a markdown document and extracts every test case.
// A test starts at a heading whose text begins with "Test: " and owns the
// fenced code blocks up to the next test heading.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validateTestCase(current); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := strings.TrimRight(extractCodeBlockContent(n, source), "\n")
			lineNum := getLineNumber(n, source)

			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
				}
				return ast.WalkContinue, nil
			}

			switch language {
			case string(InputTypeTree):
				if current.Input != nil {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, current.Name)
				}
				parsed, err := Parse(content)
				if err != nil {
					return ast.WalkStop, fmt.Errorf("line %d: failed to parse input in test '%s': %w", lineNum, current.Name, err)
				}
				current.Input = parsed
				current.InputText = content
			case string(AssertionTypeFolded):
				parsed, err := Parse(content)
				if err != nil {
					return ast.WalkStop, fmt.Errorf("line %d: failed to parse assertion in test '%s': %w", lineNum, current.Name, err)
				}
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionTypeFolded,
					Content: content,
					Parsed:  parsed,
					Line:    lineNum,
				})
			case string(AssertionTypeDiagnostics):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionTypeDiagnostics,
					Content: content,
					Line:    lineNum,
				})
			case "":
				// unlabeled fences are prose
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}

	return testCases, nil
}

// Lines splits a diagnostics assertion into its non-empty lines.
func (a Assertion) Lines() []string {
	var lines []string
	for _, line := range strings.Split(a.Content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}

	return buf.String()
}

func validateTestCase(testCase *TestCase) error {
	if testCase.Input == nil {
		return fmt.Errorf("test '%s' has no input fence", testCase.Name)
	}
	if len(testCase.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", testCase.Name)
	}
	return nil
}

func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	lineNum := 1
	for i := 0; i < startPos && i < len(source); i++ {
		if source[i] == '\n' {
			lineNum++
		}
	}
	return lineNum
}
