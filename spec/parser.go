package spec

import "github.com/dhamidi/vow/ml/parser"

// SyntaxError is a clause-grammar syntax error. Its span is a file
// coordinate because the lexer is anchored at the payload's position.
type SyntaxError struct {
	Span parser.Span
	Msg  string
}

func (e *SyntaxError) Error() string {
	return e.Span.Start.String() + ": " + e.Msg
}

// Result is the three-way outcome of parsing one annotation payload.
// Exactly one of the fields is set: Fragment on success, IsDecl when
// the payload turned out to be a host declaration that must be parsed
// with the host grammar, Err on a genuine syntax error.
type Result struct {
	Fragment Fragment
	IsDecl   bool
	Err      *SyntaxError
}

// Parse parses one annotation payload anchored at the given file
// position.
func Parse(payload string, anchor parser.Position) Result {
	p := &clauseParser{input: []byte(payload), base: anchor.Offset}
	p.tokenize(anchor)
	return p.parse()
}

type clauseParser struct {
	input  []byte
	base   int
	tokens []Token
	pos    int
	err    *SyntaxError
}

func (p *clauseParser) tokenize(anchor parser.Position) {
	l := NewLexer(p.input, anchor)
	for {
		tok := l.NextToken()
		if tok.Kind == TokenWhitespace {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *clauseParser) parse() Result {
	var frag Fragment
	switch p.peek().Kind {
	case TokenType, TokenVal:
		return Result{IsDecl: true}
	case TokenUse:
		frag = p.parseUse()
	case TokenAxiom:
		frag = p.parseAxiom()
	case TokenEphemeral, TokenMutable, TokenModel, TokenInvariant:
		frag = p.parseTypeSpec()
	case TokenRequires, TokenEnsures, TokenVariant, TokenPure, TokenDiverges:
		frag = p.parseFunSpec()
	case TokenFunction, TokenPredicate:
		frag = p.parseFunction()
	case TokenIdent:
		frag = p.parseValSpec()
	default:
		p.fail("expected a specification clause")
	}
	if p.err == nil && !p.check(TokenEOF) {
		p.fail("expected end of specification")
	}
	if p.err != nil {
		return Result{Err: p.err}
	}
	return Result{Fragment: frag}
}

func (p *clauseParser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *clauseParser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *clauseParser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *clauseParser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *clauseParser) expect(kind TokenKind) Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return tok
	}
	p.fail("expected '" + kind.String() + "'")
	return tok
}

// fail records the first error at the current token and leaves the
// parser in a state where every later stage is a no-op.
func (p *clauseParser) fail(msg string) {
	if p.err != nil {
		return
	}
	tok := p.peek()
	p.err = &SyntaxError{Span: tok.Span, Msg: msg}
	p.pos = len(p.tokens)
}

func (p *clauseParser) prevEnd() parser.Position {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.End
}

func (p *clauseParser) sliceText(from, to parser.Position) string {
	start := from.Offset - p.base
	end := to.Offset - p.base
	if start < 0 || end > len(p.input) || start > end {
		return ""
	}
	return string(p.input[start:end])
}

func (p *clauseParser) parseUse() Fragment {
	start := p.peek().Span.Start
	p.expect(TokenUse)
	path := ""
	for {
		tok := p.peek()
		if tok.Kind != TokenUpperIdent && tok.Kind != TokenIdent {
			p.fail("expected a module path")
			return nil
		}
		p.advance()
		if path != "" {
			path += "."
		}
		path += tok.Literal
		if tok.Kind == TokenUpperIdent && p.check(TokenDot) {
			p.advance()
			continue
		}
		break
	}
	return &Use{Path: path, S: parser.Span{Start: start, End: p.prevEnd()}}
}

func (p *clauseParser) parseAxiom() Fragment {
	start := p.peek().Span.Start
	p.expect(TokenAxiom)
	name := p.expect(TokenIdent)
	p.expect(TokenColon)
	term := p.parseTerm()
	if p.err != nil {
		return nil
	}
	return &Axiom{Name: name.Literal, Term: term, S: parser.Span{Start: start, End: p.prevEnd()}}
}

func (p *clauseParser) parseTypeSpec() Fragment {
	start := p.peek().Span.Start
	ts := &TypeSpec{}
	for p.err == nil {
		switch p.peek().Kind {
		case TokenEphemeral, TokenMutable:
			p.advance()
			ts.Ephemeral = true
		case TokenModel:
			p.advance()
			name := p.expect(TokenIdent)
			p.expect(TokenColon)
			typ := p.typeTextUntil(TokenEphemeral, TokenMutable, TokenModel, TokenInvariant)
			ts.Models = append(ts.Models, Model{
				Name: name.Literal,
				Type: typ,
				S:    parser.Span{Start: name.Span.Start, End: p.prevEnd()},
			})
		case TokenInvariant:
			p.advance()
			if term := p.parseTerm(); term != nil {
				ts.Invariants = append(ts.Invariants, term)
			}
		default:
			ts.S = parser.Span{Start: start, End: p.prevEnd()}
			return ts
		}
	}
	return nil
}

func (p *clauseParser) parseFunSpec() Fragment {
	start := p.peek().Span.Start
	contract := p.parseContract()
	if p.err != nil {
		return nil
	}
	return &FunSpec{Contract: contract, S: parser.Span{Start: start, End: p.prevEnd()}}
}

func (p *clauseParser) parseContract() Contract {
	var c Contract
	for p.err == nil {
		switch p.peek().Kind {
		case TokenRequires:
			p.advance()
			if term := p.parseTerm(); term != nil {
				c.Requires = append(c.Requires, term)
			}
		case TokenEnsures:
			p.advance()
			if term := p.parseTerm(); term != nil {
				c.Ensures = append(c.Ensures, term)
			}
		case TokenVariant:
			p.advance()
			if term := p.parseTerm(); term != nil {
				c.Variants = append(c.Variants, term)
			}
		case TokenPure:
			p.advance()
			c.Pure = true
		case TokenDiverges:
			p.advance()
			c.Diverges = true
		default:
			return c
		}
	}
	return c
}

func (p *clauseParser) parseFunction() Fragment {
	start := p.peek().Span.Start
	kw := p.advance()
	fn := &Function{IsPredicate: kw.Kind == TokenPredicate}

	name := p.expect(TokenIdent)
	fn.Name = name.Literal

	for p.check(TokenLParen) {
		p.advance()
		pname := p.expect(TokenIdent)
		p.expect(TokenColon)
		ptyp := p.typeTextUntil(TokenRParen)
		p.expect(TokenRParen)
		if p.err != nil {
			return nil
		}
		fn.Params = append(fn.Params, Param{Name: pname.Literal, Type: ptyp})
	}

	if !fn.IsPredicate {
		p.expect(TokenColon)
		fn.Result = p.typeTextUntil(TokenEQ,
			TokenRequires, TokenEnsures, TokenVariant, TokenPure, TokenDiverges)
	}

	if p.check(TokenEQ) {
		p.advance()
		fn.Body = p.parseTerm()
	}

	fn.Contract = p.parseContract()
	if p.err != nil {
		return nil
	}
	fn.S = parser.Span{Start: start, End: p.prevEnd()}
	return fn
}

func (p *clauseParser) parseValSpec() Fragment {
	start := p.peek().Span.Start
	vs := &ValSpec{}

	for {
		res := p.expect(TokenIdent)
		if p.err != nil {
			return nil
		}
		vs.Results = append(vs.Results, res.Literal)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	p.expect(TokenEQ)
	name := p.expect(TokenIdent)
	vs.Name = name.Literal

	for p.check(TokenIdent) {
		vs.Args = append(vs.Args, p.advance().Literal)
	}

	vs.Contract = p.parseContract()
	if p.err != nil {
		return nil
	}
	vs.S = parser.Span{Start: start, End: p.prevEnd()}
	return vs
}

// typeTextUntil consumes tokens up to (not including) one of the stop
// kinds or end of input and returns their source text verbatim.
func (p *clauseParser) typeTextUntil(stop ...TokenKind) string {
	from := p.peek().Span.Start
	consumed := false
	for !p.check(TokenEOF) && !p.match(stop...) {
		p.advance()
		consumed = true
	}
	if !consumed {
		p.fail("expected a type")
		return ""
	}
	return p.sliceText(from, p.prevEnd())
}

// Term parsing, lowest precedence first.

func (p *clauseParser) parseTerm() Term {
	return p.parseOr()
}

func (p *clauseParser) parseOr() Term {
	left := p.parseAnd()
	for p.err == nil && p.check(TokenOr) {
		p.advance()
		right := p.parseAnd()
		if p.err != nil {
			return nil
		}
		left = &Binary{Op: "||", Left: left, Right: right,
			S: parser.Span{Start: left.Span().Start, End: right.Span().End}}
	}
	return left
}

func (p *clauseParser) parseAnd() Term {
	left := p.parseNot()
	for p.err == nil && p.check(TokenAnd) {
		p.advance()
		right := p.parseNot()
		if p.err != nil {
			return nil
		}
		left = &Binary{Op: "&&", Left: left, Right: right,
			S: parser.Span{Start: left.Span().Start, End: right.Span().End}}
	}
	return left
}

func (p *clauseParser) parseNot() Term {
	if p.check(TokenNot) {
		tok := p.advance()
		operand := p.parseNot()
		if p.err != nil {
			return nil
		}
		return &Unary{Op: "not", Operand: operand,
			S: parser.Span{Start: tok.Span.Start, End: operand.Span().End}}
	}
	return p.parseCompare()
}

func (p *clauseParser) parseCompare() Term {
	left := p.parseAdditive()
	for p.err == nil && p.match(TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE) {
		op := p.advance()
		right := p.parseAdditive()
		if p.err != nil {
			return nil
		}
		left = &Binary{Op: op.Literal, Left: left, Right: right,
			S: parser.Span{Start: left.Span().Start, End: right.Span().End}}
	}
	return left
}

func (p *clauseParser) parseAdditive() Term {
	left := p.parseMultiplicative()
	for p.err == nil && p.match(TokenPlus, TokenMinus) {
		op := p.advance()
		right := p.parseMultiplicative()
		if p.err != nil {
			return nil
		}
		left = &Binary{Op: op.Literal, Left: left, Right: right,
			S: parser.Span{Start: left.Span().Start, End: right.Span().End}}
	}
	return left
}

func (p *clauseParser) parseMultiplicative() Term {
	left := p.parseUnary()
	for p.err == nil && p.match(TokenStar, TokenSlash) {
		op := p.advance()
		right := p.parseUnary()
		if p.err != nil {
			return nil
		}
		left = &Binary{Op: op.Literal, Left: left, Right: right,
			S: parser.Span{Start: left.Span().Start, End: right.Span().End}}
	}
	return left
}

func (p *clauseParser) parseUnary() Term {
	if p.check(TokenMinus) {
		tok := p.advance()
		operand := p.parseUnary()
		if p.err != nil {
			return nil
		}
		return &Unary{Op: "-", Operand: operand,
			S: parser.Span{Start: tok.Span.Start, End: operand.Span().End}}
	}
	return p.parseApply()
}

func (p *clauseParser) parseApply() Term {
	head := p.parseAtom()
	if p.err != nil {
		return nil
	}
	var args []Term
	for p.match(TokenIdent, TokenUpperIdent, TokenIntLiteral, TokenTrue, TokenFalse, TokenLParen) {
		arg := p.parseAtom()
		if p.err != nil {
			return nil
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return head
	}
	return &Apply{Fn: head, Args: args,
		S: parser.Span{Start: head.Span().Start, End: args[len(args)-1].Span().End}}
}

func (p *clauseParser) parseAtom() Term {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent, TokenUpperIdent:
		return p.parseIdent()
	case TokenIntLiteral:
		p.advance()
		return &IntLit{Value: tok.Literal, S: tok.Span}
	case TokenTrue:
		p.advance()
		return &BoolLit{Value: true, S: tok.Span}
	case TokenFalse:
		p.advance()
		return &BoolLit{Value: false, S: tok.Span}
	case TokenLParen:
		p.advance()
		inner := p.parseTerm()
		p.expect(TokenRParen)
		if p.err != nil {
			return nil
		}
		return inner
	}
	p.fail("expected a term")
	return nil
}

func (p *clauseParser) parseIdent() Term {
	start := p.peek().Span.Start
	var path []string
	for {
		tok := p.peek()
		if tok.Kind != TokenIdent && tok.Kind != TokenUpperIdent {
			p.fail("expected an identifier")
			return nil
		}
		p.advance()
		path = append(path, tok.Literal)
		if tok.Kind == TokenUpperIdent && p.check(TokenDot) {
			p.advance()
			continue
		}
		break
	}
	return &Ident{Path: path, S: parser.Span{Start: start, End: p.prevEnd()}}
}
