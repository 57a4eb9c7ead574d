package directive

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alnah/go-lit2html/internal/lexer"
)

// Statements.
type (
	stmt interface{ line() int }

	assignStmt struct {
		ln    int
		name  string
		op    string // "=" or "+="
		value expr
	}

	ifStmt struct {
		ln      int
		clauses []ifClause
		orelse  []stmt
	}

	ifClause struct {
		cond expr
		body []stmt
	}

	exprStmt struct {
		ln int
		x  expr
	}

	passStmt struct{ ln int }
)

// Expressions.
type (
	expr interface{ line() int }

	literal struct {
		ln int
		v  Value
	}

	nameExpr struct {
		ln   int
		name string
	}

	unaryExpr struct {
		ln int
		op string
		x  expr
	}

	binaryExpr struct {
		ln   int
		op   string
		x, y expr
	}

	compareExpr struct {
		ln    int
		ops   []string
		terms []expr
	}

	condExpr struct {
		ln               int
		cond, then, els expr
	}

	callExpr struct {
		ln   int
		fn   string
		args []expr
	}
)

func (s *assignStmt) line() int  { return s.ln }
func (s *ifStmt) line() int      { return s.ln }
func (s *exprStmt) line() int    { return s.ln }
func (s *passStmt) line() int    { return s.ln }
func (e *literal) line() int     { return e.ln }
func (e *nameExpr) line() int    { return e.ln }
func (e *unaryExpr) line() int   { return e.ln }
func (e *binaryExpr) line() int  { return e.ln }
func (e *compareExpr) line() int { return e.ln }
func (e *condExpr) line() int    { return e.ln }
func (e *callExpr) line() int    { return e.ln }

// keywords are reserved and cannot be assigned.
var keywords = map[string]bool{
	"if": true, "elif": true, "else": true, "pass": true,
	"and": true, "or": true, "not": true,
	"True": true, "False": true, "None": true,
}

// unsupported are Python keywords that start statements this language
// does not have.
var unsupported = map[string]bool{
	"import": true, "from": true, "def": true, "class": true, "for": true,
	"while": true, "return": true, "del": true, "global": true, "lambda": true,
	"try": true, "with": true, "raise": true, "assert": true, "yield": true,
}

var compareOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

type parser struct {
	toks []lexer.Token
	pos  int
}

// parse tokenizes and parses src into a statement list.
func parse(src string) ([]stmt, error) {
	all, err := lexer.Tokenize(src)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, errorf(lexErr.Pos.Line, "syntax error: %s", lexErr.Msg)
		}
		return nil, errorf(1, "syntax error: %v", err)
	}

	toks := all[:0:0]
	for _, tok := range all {
		if tok.Kind == lexer.Comment || tok.Kind == lexer.NL {
			continue
		}
		toks = append(toks, tok)
	}

	p := &parser{toks: toks}
	var body []stmt
	for p.peek().Kind != lexer.EOF {
		if p.peek().Kind == lexer.Newline {
			p.pos++
			continue
		}
		if p.peek().Kind == lexer.Indent {
			return nil, errorf(p.peek().Pos.Line, "unexpected indent")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, s...)
	}
	return body, nil
}

func (p *parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(text string) bool {
	if p.peek().Is(text) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(text string) error {
	if !p.accept(text) {
		tok := p.peek()
		return errorf(tok.Pos.Line, "syntax error: expected '%s', found %s", text, describe(tok))
	}
	return nil
}

func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.Newline:
		return "end of line"
	case lexer.EOF:
		return "end of directive"
	case lexer.Indent:
		return "indent"
	case lexer.Dedent:
		return "dedent"
	}
	return "'" + tok.Text + "'"
}

// statement parses one compound statement or one line of simple statements.
func (p *parser) statement() ([]stmt, error) {
	if p.peek().Is("if") {
		s, err := p.ifStatement()
		if err != nil {
			return nil, err
		}
		return []stmt{s}, nil
	}
	return p.simpleStatements()
}

func (p *parser) ifStatement() (stmt, error) {
	ln := p.advance().Pos.Line
	s := &ifStmt{ln: ln}
	for {
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		body, err := p.suite()
		if err != nil {
			return nil, err
		}
		s.clauses = append(s.clauses, ifClause{cond: cond, body: body})
		if !p.accept("elif") {
			break
		}
	}
	if p.accept("else") {
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		body, err := p.suite()
		if err != nil {
			return nil, err
		}
		s.orelse = body
	}
	return s, nil
}

// suite parses either an indented block or simple statements on the same
// line as the colon.
func (p *parser) suite() ([]stmt, error) {
	if p.peek().Kind != lexer.Newline {
		return p.simpleStatements()
	}
	p.advance()
	if p.peek().Kind != lexer.Indent {
		return nil, errorf(p.peek().Pos.Line, "expected an indented block")
	}
	p.advance()

	var body []stmt
	for p.peek().Kind != lexer.Dedent && p.peek().Kind != lexer.EOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, s...)
	}
	p.advance()
	return body, nil
}

func (p *parser) simpleStatements() ([]stmt, error) {
	var out []stmt
	for {
		s, err := p.simple()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if !p.accept(";") {
			break
		}
		if k := p.peek().Kind; k == lexer.Newline || k == lexer.EOF {
			break
		}
	}
	switch tok := p.peek(); tok.Kind {
	case lexer.Newline:
		p.advance()
	case lexer.EOF, lexer.Dedent:
	default:
		return nil, errorf(tok.Pos.Line, "syntax error: unexpected %s", describe(tok))
	}
	return out, nil
}

func (p *parser) simple() (stmt, error) {
	tok := p.peek()
	ln := tok.Pos.Line

	if tok.Kind == lexer.Name {
		switch {
		case tok.Text == "pass":
			p.advance()
			return &passStmt{ln: ln}, nil
		case unsupported[tok.Text]:
			return nil, errorf(ln, "unsupported statement '%s'", tok.Text)
		case tok.Text == "elif" || tok.Text == "else":
			return nil, errorf(ln, "syntax error: '%s' without matching 'if'", tok.Text)
		}
		if op := p.peekAt(1); op.Is("=") || op.Is("+=") {
			if keywords[tok.Text] {
				return nil, errorf(ln, "cannot assign to keyword '%s'", tok.Text)
			}
			p.pos += 2
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			return &assignStmt{ln: ln, name: tok.Text, op: op.Text, value: value}, nil
		}
	}

	x, err := p.expression()
	if err != nil {
		return nil, err
	}
	if op := p.peek(); op.Kind == lexer.Op && strings.HasSuffix(op.Text, "=") && !compareOps[op.Text] {
		return nil, errorf(op.Pos.Line, "unsupported assignment target or operator '%s'", op.Text)
	}
	return &exprStmt{ln: ln, x: x}, nil
}

// expression parses a conditional expression, the loosest binding form.
func (p *parser) expression() (expr, error) {
	x, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.peek().Is("if") {
		return x, nil
	}
	ln := p.advance().Pos.Line
	cond, err := p.or()
	if err != nil {
		return nil, err
	}
	if err := p.expect("else"); err != nil {
		return nil, err
	}
	els, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &condExpr{ln: ln, cond: cond, then: x, els: els}, nil
}

func (p *parser) or() (expr, error) {
	x, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek().Is("or") {
		ln := p.advance().Pos.Line
		y, err := p.and()
		if err != nil {
			return nil, err
		}
		x = &binaryExpr{ln: ln, op: "or", x: x, y: y}
	}
	return x, nil
}

func (p *parser) and() (expr, error) {
	x, err := p.not()
	if err != nil {
		return nil, err
	}
	for p.peek().Is("and") {
		ln := p.advance().Pos.Line
		y, err := p.not()
		if err != nil {
			return nil, err
		}
		x = &binaryExpr{ln: ln, op: "and", x: x, y: y}
	}
	return x, nil
}

func (p *parser) not() (expr, error) {
	if p.peek().Is("not") {
		ln := p.advance().Pos.Line
		x, err := p.not()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{ln: ln, op: "not", x: x}, nil
	}
	return p.comparison()
}

func (p *parser) comparison() (expr, error) {
	x, err := p.sum()
	if err != nil {
		return nil, err
	}
	if !compareOps[p.peek().Text] || p.peek().Kind != lexer.Op {
		return x, nil
	}
	c := &compareExpr{ln: p.peek().Pos.Line, terms: []expr{x}}
	for p.peek().Kind == lexer.Op && compareOps[p.peek().Text] {
		c.ops = append(c.ops, p.advance().Text)
		y, err := p.sum()
		if err != nil {
			return nil, err
		}
		c.terms = append(c.terms, y)
	}
	return c, nil
}

func (p *parser) sum() (expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().Is("+") || p.peek().Is("-") {
		op := p.advance()
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &binaryExpr{ln: op.Pos.Line, op: op.Text, x: x, y: y}
	}
	return x, nil
}

func (p *parser) term() (expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.peek().Is("*") || p.peek().Is("/") || p.peek().Is("//") || p.peek().Is("%") {
		op := p.advance()
		y, err := p.factor()
		if err != nil {
			return nil, err
		}
		x = &binaryExpr{ln: op.Pos.Line, op: op.Text, x: x, y: y}
	}
	return x, nil
}

func (p *parser) factor() (expr, error) {
	if p.peek().Is("-") || p.peek().Is("+") {
		op := p.advance()
		x, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{ln: op.Pos.Line, op: op.Text, x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (expr, error) {
	tok := p.peek()
	ln := tok.Pos.Line

	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return numberLiteral(tok)

	case lexer.String:
		var sb strings.Builder
		for p.peek().Kind == lexer.String {
			s, err := unquote(p.advance())
			if err != nil {
				return nil, err
			}
			sb.WriteString(s)
		}
		return &literal{ln: ln, v: String(sb.String())}, nil

	case lexer.Name:
		switch tok.Text {
		case "True", "False":
			p.advance()
			return &literal{ln: ln, v: Bool(tok.Text == "True")}, nil
		case "None":
			p.advance()
			return &literal{ln: ln, v: None()}, nil
		}
		if keywords[tok.Text] || unsupported[tok.Text] {
			return nil, errorf(ln, "syntax error: unexpected keyword '%s'", tok.Text)
		}
		p.advance()
		if !p.accept("(") {
			return &nameExpr{ln: ln, name: tok.Text}, nil
		}
		call := &callExpr{ln: ln, fn: tok.Text}
		for !p.peek().Is(")") {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			call.args = append(call.args, arg)
			if !p.accept(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return call, nil

	case lexer.Op:
		if tok.Text == "(" {
			p.advance()
			x, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		}
	}
	return nil, errorf(ln, "syntax error: unexpected %s", describe(tok))
}

func numberLiteral(tok lexer.Token) (expr, error) {
	text := tok.Text
	if strings.ContainsAny(text, ".jJ") || (!strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") && strings.ContainsAny(text, "eE")) {
		return nil, errorf(tok.Pos.Line, "only integer literals are supported, got %s", text)
	}
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return nil, errorf(tok.Pos.Line, "invalid integer literal %s", text)
	}
	return &literal{ln: tok.Pos.Line, v: Int(n)}, nil
}

// unquote decodes a Python string literal token.
func unquote(tok lexer.Token) (string, error) {
	text := tok.Text
	i := strings.IndexAny(text, `"'`)
	prefix := strings.ToLower(text[:i])
	body := text[i:]
	if strings.ContainsAny(prefix, "bf") {
		return "", errorf(tok.Pos.Line, "%s-strings are not supported", prefix)
	}

	q := body[:1]
	if strings.HasPrefix(body, strings.Repeat(q, 3)) && len(body) >= 6 {
		body = body[3 : len(body)-3]
	} else {
		body = body[1 : len(body)-1]
	}
	if strings.Contains(prefix, "r") {
		return body, nil
	}
	return unescape(body), nil
}

// unescape applies Python escape sequences. Unknown escapes are kept
// verbatim, as Python does.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if i+width < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32); err == nil {
					sb.WriteRune(rune(r))
					i += width
					continue
				}
			}
			sb.WriteByte('\\')
			sb.WriteByte(e)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String()
}
