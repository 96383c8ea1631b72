package sexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kievzenit/cfront/internal/span"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenAtom
	tokenString
	tokenLParen
	tokenRParen
	tokenSpan
	tokenIllegal
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenAtom:
		return "atom"
	case tokenString:
		return "string"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenSpan:
		return "span"
	case tokenIllegal:
		return "illegal"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

type lexer struct {
	input    []rune
	position int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peekChar() rune {
	if l.position >= len(l.input) {
		return 0
	}
	return l.input[l.position]
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.position < len(l.input) {
		ch := l.input[l.position]
		if unicode.IsSpace(ch) {
			l.position++
			continue
		}
		if ch == ';' {
			for l.position < len(l.input) && l.input[l.position] != '\n' {
				l.position++
			}
			continue
		}
		return
	}
}

func isDelimiter(r rune) bool {
	return r == 0 || unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' || r == ';'
}

func (l *lexer) readAtom() string {
	start := l.position
	for l.position < len(l.input) && !isDelimiter(l.input[l.position]) {
		l.position++
	}
	return string(l.input[start:l.position])
}

// readString returns the raw quoted literal including both quotes.
func (l *lexer) readString() (string, error) {
	start := l.position
	l.position++ // opening quote
	for l.position < len(l.input) {
		switch l.input[l.position] {
		case '\\':
			l.position += 2
			continue
		case '"':
			l.position++
			return string(l.input[start:l.position]), nil
		}
		l.position++
	}
	return "", fmt.Errorf("position %d: unterminated string", start)
}

func (l *lexer) nextToken() token {
	l.skipWhitespaceAndComments()
	pos := l.position

	switch ch := l.peekChar(); ch {
	case 0:
		return token{Type: tokenEOF, Position: pos}
	case '(':
		l.position++
		return token{Type: tokenLParen, Position: pos}
	case ')':
		l.position++
		return token{Type: tokenRParen, Position: pos}
	case '"':
		raw, err := l.readString()
		if err != nil {
			return token{Type: tokenIllegal, Value: err.Error(), Position: pos}
		}
		return token{Type: tokenString, Value: raw, Position: pos}
	case '@':
		l.position++
		return token{Type: tokenSpan, Value: l.readAtom(), Position: pos}
	default:
		return token{Type: tokenAtom, Value: l.readAtom(), Position: pos}
	}
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("position %d: expected EOF but got %s", p.currentToken.Position, p.currentToken.Type)
	}

	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenAtom:
		p.nextToken()
		return classifyAtom(tok.Value), nil
	case tokenString:
		p.nextToken()
		value, err := strconv.Unquote(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("position %d: invalid string %s: %w", tok.Position, tok.Value, err)
		}
		return NewString(value), nil
	case tokenLParen:
		return p.parseList()
	case tokenIllegal:
		return nil, fmt.Errorf("%s", tok.Value)
	default:
		return nil, fmt.Errorf("position %d: unexpected token: %s", tok.Position, tok.Type)
	}
}

func (p *parser) parseList() (*Node, error) {
	start := p.currentToken.Position
	p.nextToken() // consume '('

	list := NewList()
	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		if p.currentToken.Type == tokenSpan {
			s, err := parseSpan(p.currentToken.Value)
			if err != nil {
				return nil, fmt.Errorf("position %d: %w", p.currentToken.Position, err)
			}
			list.Span = &s
			p.nextToken()
			continue
		}

		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("position %d: unclosed list", start)
	}
	p.nextToken() // consume ')'

	return list, nil
}

func parseSpan(text string) (span.Span, error) {
	startText, lengthText, ok := strings.Cut(text, ":")
	if !ok {
		return span.Span{}, fmt.Errorf("span %q must be written as @start:length", text)
	}
	start, err := strconv.Atoi(startText)
	if err != nil || start < 0 {
		return span.Span{}, fmt.Errorf("invalid span start %q", startText)
	}
	length, err := strconv.Atoi(lengthText)
	if err != nil || length < 0 {
		return span.Span{}, fmt.Errorf("invalid span length %q", lengthText)
	}
	return span.New(start, length), nil
}

func classifyAtom(text string) *Node {
	if isInteger(text) {
		return NewInteger(text)
	}
	if isFloat(text) {
		return NewFloat(text)
	}
	return NewSymbol(text)
}

func isInteger(text string) bool {
	digits := strings.TrimPrefix(strings.TrimPrefix(text, "-"), "+")
	if digits == "" {
		return false
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(digits), "0x"); ok {
		if rest == "" {
			return false
		}
		for _, r := range rest {
			if !strings.ContainsRune("0123456789abcdef", r) {
				return false
			}
		}
		return true
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isFloat(text string) bool {
	if !strings.ContainsAny(text, ".eE") || strings.Contains(strings.ToLower(text), "0x") {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}
