// Package parser turns tracing-script source into a syntax tree. The tree is
// built exclusively through the ast constructors, bottom-up, and map/var
// nodes get their shared annotation from the symbol table as they are made.
// No partial tree is ever returned: any failure yields a nil root.
//
// The surface is a list of probes, each a spec, an optional predicate
// between slashes, and a braced statement list:
//
//	kprobe:vfs_read / pid == 42 / {
//	        @bytes[comm()] = sum(arg(2));
//	        if (arg(2) > 4096) { hits = hits + 1; }
//	}
//
// Map names carry a '@' sigil; bare identifiers are scalar variables. Inside
// a predicate '/' closes the expression, so division there must be
// parenthesized.
package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/symtab"
)

// ErrSyntax wraps all grammar-level parse failures.
var ErrSyntax = errors.New("syntax error")

// binPrec orders the binary operators; higher binds tighter.
var binPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

var binOps = map[string]ast.Op{
	"||": ast.OpLogOr,
	"&&": ast.OpLogAnd,
	"|":  ast.OpOr,
	"^":  ast.OpXor,
	"&":  ast.OpAnd,
	"==": ast.OpEq,
	"!=": ast.OpNe,
	"<":  ast.OpLt,
	">":  ast.OpGt,
	"<=": ast.OpLe,
	">=": ast.OpGe,
	"<<": ast.OpShl,
	">>": ast.OpShr,
	"+":  ast.OpAdd,
	"-":  ast.OpSub,
	"*":  ast.OpMul,
	"/":  ast.OpDiv,
	"%":  ast.OpMod,
}

// Parser consumes one script. It keeps a single token of lookahead.
type Parser struct {
	sc  *scanner
	cur token
	st  *symtab.Table

	// noDiv is set while parsing a predicate, where '/' terminates the
	// expression instead of dividing. Parentheses re-enable division.
	noDiv bool
}

// Parse reads a whole script from r and returns its root together with the
// symbol table holding the shared map/var annotations.
func Parse(r io.Reader) (*ast.Node, *symtab.Table, error) {
	st := symtab.New()

	p, err := New(r, st)
	if err != nil {
		return nil, nil, err
	}

	root, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}

	return root, st, nil
}

// New returns a parser reading from r, registering symbols in st.
func New(r io.Reader, st *symtab.Table) (*Parser, error) {
	sc, err := newScanner(r)
	if err != nil {
		return nil, err
	}

	p := &Parser{sc: sc, st: st}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse consumes the whole input and returns the script root.
func (p *Parser) Parse() (*ast.Node, error) {
	list := chain{}

	for p.cur.kind != tokEOF {
		probe, err := p.parseProbe()
		if err != nil {
			return nil, err
		}

		list.push(probe)
	}

	return ast.NewScript(list.head), nil
}

func (p *Parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

func (p *Parser) errf(format string, args ...any) error {
	pos := fmt.Sprintf("%d:%d", p.cur.line, p.cur.col)

	return fmt.Errorf("%s: %w: %s", pos, ErrSyntax, fmt.Sprintf(format, args...))
}

func (p *Parser) isPunct(text string) bool {
	return p.cur.kind == tokPunct && p.cur.text == text
}

func (p *Parser) expectPunct(text string) error {
	if !p.isPunct(text) {
		return p.errf("expected %q, found %q", text, p.cur.text)
	}

	return p.advance()
}

// parseProbe parses "pspec [/ pred /] { stmts }".
func (p *Parser) parseProbe() (*ast.Node, error) {
	pspec, err := p.parseProbeSpec()
	if err != nil {
		return nil, err
	}

	var pred *ast.Node

	if p.isPunct("/") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		p.noDiv = true
		pred, err = p.parseExpr()
		p.noDiv = false

		if err != nil {
			return nil, err
		}

		if err := p.expectPunct("/"); err != nil {
			return nil, err
		}
	}

	stmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewProbe(pspec, pred, stmts), nil
}

// parseProbeSpec reassembles a probe spec from identifier, ':', '*', and '.'
// tokens. Whitespace inside a spec is not significant.
func (p *Parser) parseProbeSpec() (string, error) {
	spec := ""

	for {
		switch {
		case p.cur.kind == tokIdent:
			spec += p.cur.text
		case p.isPunct(":") || p.isPunct("*") || p.isPunct("."):
			spec += p.cur.text
		default:
			if spec == "" {
				return "", p.errf("expected probe spec, found %q", p.cur.text)
			}

			return spec, nil
		}

		if err := p.advance(); err != nil {
			return "", err
		}
	}
}

// parseBlock parses "{ stmt* }" and returns the statement chain.
func (p *Parser) parseBlock() (*ast.Node, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	list := chain{}

	for !p.isPunct("}") {
		if p.cur.kind == tokEOF {
			return nil, p.errf("unterminated block")
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		list.push(stmt)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return list.head, nil
}

func (p *Parser) parseStmt() (*ast.Node, error) {
	if p.cur.kind == tokIdent {
		switch p.cur.text {
		case "if":
			return p.parseIf()
		case "unroll":
			return p.parseUnroll()
		case "return":
			return p.parseLeafStmt(ast.NewReturn)
		case "break":
			return p.parseLeafStmt(ast.NewBreak)
		case "continue":
			return p.parseLeafStmt(ast.NewContinue)
		}
	}

	stmt, err := p.parseSimpleStmt()
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseLeafStmt(mk func() *ast.Node) (*ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return mk(), nil
}

func (p *Parser) parseIf() (*ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var els *ast.Node

	if p.cur.kind == tokIdent && p.cur.text == "else" {
		if err := p.advance(); err != nil {
			return nil, err
		}

		els, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIf(cond, then, els), nil
}

func (p *Parser) parseUnroll() (*ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	if p.cur.kind != tokInt {
		return nil, p.errf("unroll count must be an integer literal")
	}

	count := p.cur.num

	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	stmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewUnroll(count, stmts), nil
}

// parseSimpleStmt parses assignments, map method calls, and call statements.
func (p *Parser) parseSimpleStmt() (*ast.Node, error) {
	if p.cur.kind == tokMapIdent {
		return p.parseMapStmt()
	}

	if p.cur.kind != tokIdent {
		return nil, p.errf("expected statement, found %q", p.cur.text)
	}

	name := p.cur.text

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.isPunct("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return ast.NewAssign(p.newVar(name), expr), nil
	}

	return p.parseCallRest(name)
}

// parseMapStmt parses "@m[...] = expr" and "@m.method(args)".
func (p *Parser) parseMapStmt() (*ast.Node, error) {
	mapNode, err := p.parseMapRef()
	if err != nil {
		return nil, err
	}

	switch {
	case p.isPunct("="):
		if err := p.advance(); err != nil {
			return nil, err
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return ast.NewAssign(mapNode, expr), nil

	case p.isPunct("."):
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.cur.kind != tokIdent {
			return nil, p.errf("expected method name, found %q", p.cur.text)
		}

		method := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		return ast.NewMethod(mapNode, ast.NewCall("", method, args)), nil
	}

	return nil, p.errf("map statement must assign or invoke a method")
}

// parseMapRef parses "@name" with an optional bracketed key list. A bare
// reference gets the default single empty-string key.
func (p *Parser) parseMapRef() (*ast.Node, error) {
	name := p.cur.text

	if err := p.advance(); err != nil {
		return nil, err
	}

	var rec *ast.Node

	if p.isPunct("[") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		keys, err := p.parseExprList("]")
		if err != nil {
			return nil, err
		}

		if keys == nil {
			return nil, p.errf("map key list is empty")
		}

		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}

		rec = ast.NewRec(keys)
	}

	n := ast.NewMap(name, rec)
	if err := p.st.Attach(n); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *Parser) newVar(name string) *ast.Node {
	n := ast.NewVar(name)

	// Attach cannot fail for a var node.
	_ = p.st.Attach(n)

	return n
}

// parseCallRest finishes "name(args)" or "module.func(args)"; the leading
// identifier is already consumed.
func (p *Parser) parseCallRest(name string) (*ast.Node, error) {
	module := ""

	if p.isPunct(".") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.cur.kind != tokIdent {
			return nil, p.errf("expected function name after %q.", name)
		}

		module = name
		name = p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return ast.NewCall(module, name, args), nil
}

// parseArgs parses "( expr, ... )", possibly empty.
func (p *Parser) parseArgs() (*ast.Node, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	args, err := p.parseExprList(")")
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	return args, nil
}

// parseExprList parses a comma-separated expression chain terminated by
// term, which is left unconsumed. An empty list yields nil.
func (p *Parser) parseExprList(term string) (*ast.Node, error) {
	if p.isPunct(term) {
		return nil, nil
	}

	list := chain{}

	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		list.push(expr)

		if !p.isPunct(",") {
			return list.head, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseExpr() (*ast.Node, error) {
	return p.parseBinary(1)
}

// parseBinary is a precedence climber over parseUnary.
func (p *Parser) parseBinary(minPrec int) (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.cur.kind == tokPunct {
		if p.noDiv && p.cur.text == "/" {
			break
		}

		prec, ok := binPrec[p.cur.text]
		if !ok || prec < minPrec {
			break
		}

		op := binOps[p.cur.text]

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		left = ast.NewBinop(left, op, right)
	}

	return left, nil
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	if p.isPunct("!") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return ast.NewNot(expr), nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	switch p.cur.kind {
	case tokInt:
		n := ast.NewInt(p.cur.num)

		return n, p.advance()

	case tokStr:
		n := ast.NewStr(p.cur.text)

		return n, p.advance()

	case tokMapIdent:
		return p.parseMapRef()

	case tokIdent:
		name := p.cur.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.isPunct("(") || p.isPunct(".") {
			return p.parseCallRest(name)
		}

		return p.newVar(name), nil

	case tokPunct:
		if p.cur.text == "(" {
			if err := p.advance(); err != nil {
				return nil, err
			}

			noDiv := p.noDiv
			p.noDiv = false

			expr, err := p.parseExpr()

			p.noDiv = noDiv

			if err != nil {
				return nil, err
			}

			return expr, p.expectPunct(")")
		}
	case tokEOF:
	}

	return nil, p.errf("expected expression, found %q", p.cur.text)
}

// chain accumulates a sibling list in insertion order.
type chain struct {
	head *ast.Node
	tail *ast.Node
}

func (c *chain) push(n *ast.Node) {
	if c.head == nil {
		c.head = n
	} else {
		c.tail.Next = n
	}

	c.tail = n
}
