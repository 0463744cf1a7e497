package parser

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.start.File = path
	}
}

// WithStartAt anchors the parser at an absolute position in a larger
// file. Used when the input is a substring extracted from that file.
func WithStartAt(pos Position) Option {
	return func(p *Parser) {
		p.start = pos
	}
}

type parseFunc func(*Parser) *Node

type Parser struct {
	input  []byte
	start  Position
	lexer  *Lexer
	tokens []Token
	pos    int
	entry  parseFunc
}

// ParseInterface prepares a parser for a whole interface file.
func ParseInterface(input []byte, opts ...Option) *Parser {
	p := &Parser{
		input: input,
		start: Position{Line: 1, Column: 1},
		entry: (*Parser).parseInterface,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseGhostDecl prepares a parser that accepts exactly one type
// declaration group or one value declaration, followed by end of
// input. This is the restricted entry point used for declarations
// extracted from annotation payloads.
func ParseGhostDecl(input []byte, opts ...Option) *Parser {
	p := &Parser{
		input: input,
		start: Position{Line: 1, Column: 1},
		entry: (*Parser).parseGhostDecl,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Finish() *Node {
	p.lexer = NewLexerAt(p.input, p.start)
	p.tokens = nil
	p.pos = 0
	p.tokenize()
	return p.entry(p)
}

func (p *Parser) tokenize() {
	for {
		tok := p.lexer.NextToken()
		if tok.Kind == TokenWhitespace || tok.Kind == TokenComment {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	return n
}

func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.recoverTo(recoverTo)
	return node
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) {
		for _, kind := range kinds {
			if p.check(kind) {
				return
			}
		}
		p.advance()
	}
}

var itemStart = []TokenKind{
	TokenVal, TokenType, TokenModule, TokenOpen,
	TokenInclude, TokenException, TokenLBracketAtAt,
}

func (p *Parser) parseInterface() *Node {
	node := p.startNode(KindInterface)
	for !p.check(TokenEOF) {
		node.AddChild(p.parseItem())
	}
	return p.finishNode(node)
}

func (p *Parser) parseItem() *Node {
	switch p.peek().Kind {
	case TokenVal:
		return p.parseValDecl()
	case TokenType:
		return p.parseTypeGroup()
	case TokenModule:
		if p.peekN(1).Kind == TokenType {
			return p.parseModuleTypeDecl()
		}
		return p.parseModuleDecl()
	case TokenOpen:
		return p.parsePathDecl(KindOpenDecl, TokenOpen)
	case TokenInclude:
		return p.parsePathDecl(KindIncludeDecl, TokenInclude)
	case TokenException:
		return p.parseExceptionDecl()
	case TokenLBracketAtAt:
		return p.parseAttributeItem()
	}
	return p.errorNode("expected a signature item", itemStart,
		TokenVal, TokenType, TokenModule, TokenOpen, TokenInclude, TokenException, TokenLBracketAtAt)
}

func (p *Parser) parseValDecl() *Node {
	node := p.startNode(KindValDecl)
	p.expect(TokenVal)

	if name := p.expect(TokenIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected a value name", itemStart, TokenIdent))
		return p.finishNode(node)
	}

	if p.expect(TokenColon) == nil {
		node.AddChild(p.errorNode("expected ':' after value name", itemStart, TokenColon))
		return p.finishNode(node)
	}

	node.AddChild(p.parseTypeExpr())
	p.parseTrailingAttributes(node)
	return p.finishNode(node)
}

func (p *Parser) parseTypeGroup() *Node {
	node := p.startNode(KindTypeGroup)
	p.expect(TokenType)

	node.AddChild(p.parseTypeDecl())
	for p.check(TokenAnd) {
		p.advance()
		node.AddChild(p.parseTypeDecl())
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeDecl() *Node {
	node := p.startNode(KindTypeDecl)

	if p.check(TokenTypeVar) || (p.check(TokenLParen) && p.peekN(1).Kind == TokenTypeVar) {
		node.AddChild(p.parseTypeParams())
	}

	if name := p.expect(TokenIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected a type name", itemStart, TokenIdent))
		return p.finishNode(node)
	}

	if p.check(TokenAssign) {
		p.advance()
		node.AddChild(p.parseTypeBody())
	}

	p.parseTrailingAttributes(node)
	return p.finishNode(node)
}

func (p *Parser) parseTypeParams() *Node {
	node := p.startNode(KindTypeParams)
	if p.check(TokenTypeVar) {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindTypeVar, Token: &tok, Span: tok.Span})
		return p.finishNode(node)
	}
	p.expect(TokenLParen)
	for {
		if tok := p.expect(TokenTypeVar); tok != nil {
			node.AddChild(&Node{Kind: KindTypeVar, Token: tok, Span: tok.Span})
		} else {
			node.AddChild(p.errorNode("expected a type variable", []TokenKind{TokenRParen}, TokenTypeVar))
			break
		}
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseTypeBody() *Node {
	if p.check(TokenBar) || p.check(TokenUpperIdent) {
		return p.parseVariantBody()
	}
	if p.check(TokenLBrace) {
		return p.parseRecordBody()
	}
	return p.parseTypeExpr()
}

func (p *Parser) parseVariantBody() *Node {
	node := p.startNode(KindVariantBody)
	if p.check(TokenBar) {
		p.advance()
	}
	node.AddChild(p.parseConstructorDecl())
	for p.check(TokenBar) {
		p.advance()
		node.AddChild(p.parseConstructorDecl())
	}
	return p.finishNode(node)
}

func (p *Parser) parseConstructorDecl() *Node {
	node := p.startNode(KindConstructorDecl)
	if name := p.expect(TokenUpperIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected a constructor name", []TokenKind{TokenBar, TokenAnd}, TokenUpperIdent))
		return p.finishNode(node)
	}
	if p.check(TokenOf) {
		p.advance()
		node.AddChild(p.parseTypeExpr())
	}
	return p.finishNode(node)
}

func (p *Parser) parseRecordBody() *Node {
	node := p.startNode(KindRecordBody)
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		node.AddChild(p.parseFieldDecl())
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		break
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseFieldDecl() *Node {
	node := p.startNode(KindFieldDecl)
	if p.check(TokenMutable) {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
	}
	if name := p.expect(TokenIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected a field name", []TokenKind{TokenSemicolon, TokenRBrace}, TokenIdent))
		return p.finishNode(node)
	}
	if p.expect(TokenColon) == nil {
		node.AddChild(p.errorNode("expected ':' after field name", []TokenKind{TokenSemicolon, TokenRBrace}, TokenColon))
		return p.finishNode(node)
	}
	node.AddChild(p.parseTypeExpr())
	return p.finishNode(node)
}

// parseTypeExpr parses arrow types; arrows associate to the right.
func (p *Parser) parseTypeExpr() *Node {
	left := p.parseProductType()
	if !p.check(TokenArrow) {
		return left
	}
	node := &Node{Kind: KindArrowType, Span: Span{Start: left.Span.Start}}
	node.AddChild(left)
	p.advance()
	node.AddChild(p.parseTypeExpr())
	return p.finishNode(node)
}

func (p *Parser) parseProductType() *Node {
	left := p.parseAppType()
	if !p.check(TokenStar) {
		return left
	}
	node := &Node{Kind: KindProductType, Span: Span{Start: left.Span.Start}}
	node.AddChild(left)
	for p.check(TokenStar) {
		p.advance()
		node.AddChild(p.parseAppType())
	}
	return p.finishNode(node)
}

// parseAppType parses postfix type application, e.g. "int list".
func (p *Parser) parseAppType() *Node {
	left := p.parseAtomType()
	for p.check(TokenIdent) {
		tok := p.advance()
		node := &Node{Kind: KindTypeApp, Span: Span{Start: left.Span.Start}}
		node.AddChild(left)
		node.AddChild(&Node{Kind: KindTypeName, Token: &tok, Span: tok.Span})
		left = p.finishNode(node)
	}
	return left
}

func (p *Parser) parseAtomType() *Node {
	switch p.peek().Kind {
	case TokenTypeVar:
		tok := p.advance()
		return &Node{Kind: KindTypeVar, Token: &tok, Span: tok.Span}
	case TokenIdent, TokenUpperIdent:
		return p.parseQualifiedName()
	case TokenLParen:
		node := p.startNode(KindParenType)
		p.advance()
		node.AddChild(p.parseTypeExpr())
		p.expect(TokenRParen)
		return p.finishNode(node)
	}
	return p.errorNode("expected a type expression", itemStart, TokenIdent, TokenUpperIdent, TokenTypeVar, TokenLParen)
}

// parseQualifiedName parses "M.N.t" style paths. The final component
// may be a lowercase or uppercase identifier.
func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	for {
		tok := p.peek()
		if tok.Kind != TokenIdent && tok.Kind != TokenUpperIdent {
			node.AddChild(p.errorNode("expected an identifier", itemStart, TokenIdent, TokenUpperIdent))
			return p.finishNode(node)
		}
		p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		if tok.Kind == TokenUpperIdent && p.check(TokenDot) {
			p.advance()
			continue
		}
		break
	}
	return p.finishNode(node)
}

func (p *Parser) parseModuleDecl() *Node {
	node := p.startNode(KindModuleDecl)
	p.expect(TokenModule)

	if name := p.expect(TokenUpperIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected a module name", itemStart, TokenUpperIdent))
		return p.finishNode(node)
	}

	if p.expect(TokenColon) == nil {
		node.AddChild(p.errorNode("expected ':' after module name", itemStart, TokenColon))
		return p.finishNode(node)
	}

	node.AddChild(p.parseSignatureBody())
	p.parseTrailingAttributes(node)
	return p.finishNode(node)
}

func (p *Parser) parseModuleTypeDecl() *Node {
	node := p.startNode(KindModuleTypeDecl)
	p.expect(TokenModule)
	p.expect(TokenType)

	if name := p.expect(TokenUpperIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected a module type name", itemStart, TokenUpperIdent))
		return p.finishNode(node)
	}

	if p.expect(TokenAssign) == nil {
		node.AddChild(p.errorNode("expected '=' after module type name", itemStart, TokenAssign))
		return p.finishNode(node)
	}

	node.AddChild(p.parseSignatureBody())
	p.parseTrailingAttributes(node)
	return p.finishNode(node)
}

func (p *Parser) parseSignatureBody() *Node {
	node := p.startNode(KindInterface)
	if p.expect(TokenSig) == nil {
		node.AddChild(p.errorNode("expected 'sig'", itemStart, TokenSig))
		return p.finishNode(node)
	}
	for !p.check(TokenEnd) && !p.check(TokenEOF) {
		node.AddChild(p.parseItem())
	}
	if p.expect(TokenEnd) == nil {
		node.AddChild(p.errorNode("expected 'end'", itemStart, TokenEnd))
	}
	return p.finishNode(node)
}

func (p *Parser) parsePathDecl(kind NodeKind, keyword TokenKind) *Node {
	node := p.startNode(kind)
	p.expect(keyword)
	node.AddChild(p.parseQualifiedName())
	p.parseTrailingAttributes(node)
	return p.finishNode(node)
}

func (p *Parser) parseExceptionDecl() *Node {
	node := p.startNode(KindExceptionDecl)
	p.expect(TokenException)

	if name := p.expect(TokenUpperIdent); name != nil {
		node.AddChild(&Node{Kind: KindIdentifier, Token: name, Span: name.Span})
	} else {
		node.AddChild(p.errorNode("expected an exception name", itemStart, TokenUpperIdent))
		return p.finishNode(node)
	}

	if p.check(TokenOf) {
		p.advance()
		node.AddChild(p.parseTypeExpr())
	}
	p.parseTrailingAttributes(node)
	return p.finishNode(node)
}

func (p *Parser) parseTrailingAttributes(parent *Node) {
	for p.check(TokenLBracketAt) {
		parent.AddChild(p.parseAttribute(KindAttribute, TokenLBracketAt))
	}
}

func (p *Parser) parseAttributeItem() *Node {
	return p.parseAttribute(KindAttributeItem, TokenLBracketAtAt)
}

func (p *Parser) parseAttribute(kind NodeKind, opener TokenKind) *Node {
	node := p.startNode(kind)
	p.expect(opener)

	name := p.startNode(KindAttributeName)
	for {
		tok := p.peek()
		if tok.Kind != TokenIdent && tok.Kind != TokenUpperIdent && LookupKeyword(tok.Literal) == TokenIdent {
			name.AddChild(p.errorNode("expected an attribute name", []TokenKind{TokenRBracket}, TokenIdent))
			node.AddChild(p.finishNode(name))
			p.expect(TokenRBracket)
			return p.finishNode(node)
		}
		p.advance()
		name.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		if !p.check(TokenDot) {
			break
		}
		p.advance()
	}
	node.AddChild(p.finishNode(name))

	if p.check(TokenStringLiteral) {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindAttributePayload, Token: &tok, Span: tok.Span})
	}

	if p.expect(TokenRBracket) == nil {
		node.AddChild(p.errorNode("expected ']' to close attribute", itemStart, TokenRBracket))
	}
	return p.finishNode(node)
}

func (p *Parser) parseGhostDecl() *Node {
	var node *Node
	switch p.peek().Kind {
	case TokenType:
		node = p.parseTypeGroup()
	case TokenVal:
		node = p.parseValDecl()
	default:
		return p.errorNode("expected a type or value declaration", nil, TokenType, TokenVal)
	}
	if !p.check(TokenEOF) {
		node.AddChild(p.errorNode("expected end of declaration", nil, TokenEOF))
	}
	return node
}
