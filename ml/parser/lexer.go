package parser

type Lexer struct {
	input  []byte
	file   string
	base   int
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// NewLexerAt creates a lexer whose positions are anchored at start.
// It is used to lex text extracted from a larger file (an annotation
// payload) so that every reported position is already a coordinate in
// the original file, not in the extracted substring.
func NewLexerAt(input []byte, start Position) *Lexer {
	return &Lexer{
		input:  input,
		file:   start.File,
		base:   start.Offset,
		pos:    0,
		line:   start.Line,
		column: start.Column,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.base + l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '(' && l.peekN(1) == '*' {
		return l.scanComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if isLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' && isLetter(l.peekN(1)) {
		return l.scanTypeVar(startPos)
	}

	if ch == '"' {
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return l.token(TokenWhitespace, start)
}

// scanComment scans a (* ... *) comment, which may nest.
func (l *Lexer) scanComment(start Position) Token {
	l.advanceN(2)
	depth := 1
	for depth > 0 {
		if l.peek() == 0 {
			break
		}
		if l.peek() == '(' && l.peekN(1) == '*' {
			depth++
			l.advanceN(2)
			continue
		}
		if l.peek() == '*' && l.peekN(1) == ')' {
			depth--
			l.advanceN(2)
			continue
		}
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	first := l.peek()
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset-l.base : end.Offset-l.base])

	if first >= 'A' && first <= 'Z' {
		return Token{Kind: TokenUpperIdent, Span: Span{Start: start, End: end}, Literal: literal}
	}
	kind := LookupKeyword(literal)
	return Token{Kind: kind, Span: Span{Start: start, End: end}, Literal: literal}
}

func (l *Lexer) scanTypeVar(start Position) Token {
	l.advance()
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenTypeVar, start)
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	return l.token(TokenIntLiteral, start)
}

// scanStringLiteral keeps the raw bytes between the quotes intact;
// payload extraction relies on the content being an exact substring of
// the input so that positions inside it line up with the file.
func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.token(TokenStringLiteral, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)
	case '=':
		l.advance()
		return l.token(TokenAssign, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '|':
		l.advance()
		return l.token(TokenBar, start)

	case '[':
		if l.peekN(1) == '@' {
			if l.peekN(2) == '@' {
				l.advanceN(3)
				return l.token(TokenLBracketAtAt, start)
			}
			l.advanceN(2)
			return l.token(TokenLBracketAt, start)
		}
		l.advance()
		return l.token(TokenError, start)

	case '-':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset-l.base : end.Offset-l.base]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '\''
}
