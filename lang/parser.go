package lang

import (
	"fmt"

	"github.com/zkplex/zkplex-core/errs"
)

// Parser is a recursive-descent parser over the fixed-precedence grammar
// of spec.md §3.6:
//
//	Or      := And  ('OR'|'||'  And)*
//	And     := Cmp  ('AND'|'&&' Cmp)*
//	Cmp     := Add  (('>'|'<'|'>='|'<='|'=='|'!=') Add)?
//	Add     := Mul  (('+'|'-') Mul)*
//	Mul     := Unary(('*'|'/') Unary)*
//	Unary   := ('!'|'NOT'|'-') Unary | Primary
//	Primary := Number | Name | HashCall | '(' Or ')'
//
// inPreprocess gates whether HashCallNode is legal (spec.md §4.3: hash
// calls are only permitted in preprocess statements).
type Parser struct {
	lex          *Lexer
	cur          Token
	inPreprocess bool
}

// ParseExpr parses a single expression in src. inPreprocess enables hash
// calls.
func ParseExpr(src string, inPreprocess bool) (Node, error) {
	p := &Parser{lex: NewLexer(src), inPreprocess: inPreprocess}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokEOF {
		return nil, errs.Parse(fmt.Sprintf("unexpected trailing input at position %d: %q", p.cur.Pos, p.cur.Text))
	}
	return node, nil
}

// ParseStatement parses a full preprocess/circuit statement: either
// `name <== expr` or a bare boolean expression (spec.md §3.5).
func ParseStatement(src string, inPreprocess bool) (Statement, error) {
	trimmed := src
	if idx := findAssign(trimmed); idx >= 0 {
		target := trim(trimmed[:idx])
		exprSrc := trimmed[idx+len("<=="):]
		if !ValidTargetName(target) {
			return Statement{}, errs.Name(fmt.Sprintf("invalid assignment target %q", target), target)
		}
		expr, err := ParseExpr(exprSrc, inPreprocess)
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: KindAssignment, Target: target, Expr: expr, Source: src}, nil
	}
	expr, err := ParseExpr(trimmed, inPreprocess)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Kind: KindConstraint, Expr: expr, Source: src}, nil
}

func findAssign(s string) int {
	for i := 0; i+3 <= len(s); i++ {
		if s[i] == '<' && s[i+1] == '=' && s[i+2] == '=' {
			return i
		}
	}
	return -1
}

func trim(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}

// ValidTargetName reports whether a candidate assignment target is a
// bare identifier (not a parenthesized or compound expression).
func ValidTargetName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if i > 0 && !isLetter && !isDigit {
			return false
		}
	}
	return true
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return errs.Parse(err.Error())
	}
	p.cur = tok
	return nil
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.matchKeywordOrOp("OR", "||") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for p.matchKeywordOrOp("AND", "&&") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseCmp() (Node, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	var op Op
	switch {
	case p.cur.Kind == TokOp && p.cur.Text == ">":
		op = OpGt
	case p.cur.Kind == TokOp && p.cur.Text == "<":
		op = OpLt
	case p.cur.Kind == TokOp && p.cur.Text == ">=":
		op = OpGe
	case p.cur.Kind == TokOp && p.cur.Text == "<=":
		op = OpLe
	case p.cur.Kind == TokOp && p.cur.Text == "==":
		op = OpEq
	case p.cur.Kind == TokOp && p.cur.Text == "!=":
		op = OpNeq
	default:
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseAdd() (Node, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TokOp && (p.cur.Text == "+" || p.cur.Text == "-") {
		op := Op(p.cur.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMul() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TokOp && (p.cur.Text == "*" || p.cur.Text == "/") {
		op := Op(p.cur.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.cur.Kind == TokOp && p.cur.Text == "!" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNot, Operand: operand}, nil
	}
	if kw, ok := isKeyword(p.cur.Text); ok && p.cur.Kind == TokName && kw == "NOT" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNot, Operand: operand}, nil
	}
	if p.cur.Kind == TokOp && p.cur.Text == "-" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: OpNeg, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	switch {
	case p.cur.Kind == TokNumber:
		n := &NumberNode{Value: p.cur.Text}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case p.cur.Kind == TokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != TokRParen {
			return nil, errs.Parse(fmt.Sprintf("unbalanced parentheses at position %d", p.cur.Pos))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case p.cur.Kind == TokName:
		name := p.cur.Text
		if kw, ok := isKeyword(name); ok {
			return nil, errs.Parse(fmt.Sprintf("unexpected keyword %q at position %d", kw, p.cur.Pos))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if HashNames[name] && p.cur.Kind == TokLParen {
			return p.parseHashCall(name)
		}
		return &NameNode{Name: name}, nil
	default:
		return nil, errs.Parse(fmt.Sprintf("unexpected token %q at position %d", p.cur.Text, p.cur.Pos))
	}
}

func (p *Parser) parseHashCall(hashName string) (Node, error) {
	if !p.inPreprocess {
		return nil, errs.Parse(fmt.Sprintf("hash call %q used outside preprocess", hashName))
	}
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []HashArg
	for {
		arg, err := p.parseHashArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Kind == TokPipe {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.Kind != TokRParen {
		return nil, errs.Parse(fmt.Sprintf("expected ')' closing hash call at position %d", p.cur.Pos))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &HashCallNode{Hash: hashName, Args: args}, nil
}

func (p *Parser) parseHashArg() (HashArg, error) {
	if p.cur.Kind != TokName {
		return HashArg{}, errs.Parse(fmt.Sprintf("expected signal name in hash argument at position %d", p.cur.Pos))
	}
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return HashArg{}, err
	}
	if p.cur.Kind != TokLBrace {
		return HashArg{}, errs.Parse(fmt.Sprintf("missing mandatory format specifier for hash argument %q", name))
	}
	if err := p.advance(); err != nil {
		return HashArg{}, err
	}
	if p.cur.Kind != TokFormat {
		return HashArg{}, errs.Parse(fmt.Sprintf("invalid format specifier at position %d", p.cur.Pos))
	}
	format := p.cur.Text
	if err := p.advance(); err != nil {
		return HashArg{}, err
	}
	if p.cur.Kind != TokRBrace {
		return HashArg{}, errs.Parse(fmt.Sprintf("expected '}' closing format specifier at position %d", p.cur.Pos))
	}
	if err := p.advance(); err != nil {
		return HashArg{}, err
	}
	return HashArg{Name: name, Format: format}, nil
}

// matchKeywordOrOp reports whether the current token is either the
// keyword kw (case-sensitive, spec.md §4.3) or the symbolic alias op.
func (p *Parser) matchKeywordOrOp(kw, op string) bool {
	if p.cur.Kind == TokName && p.cur.Text == kw {
		return true
	}
	if p.cur.Kind == TokOp && p.cur.Text == op {
		return true
	}
	return false
}
