package spec

import "github.com/dhamidi/vow/ml/parser"

// Lexer tokenizes specification clause text. It is always anchored at
// an absolute position in the file the text was extracted from, so
// every token span it produces is a file coordinate. This anchoring is
// what lets syntax errors in annotation payloads point at the real
// source instead of at offsets inside the payload string.
type Lexer struct {
	input  []byte
	file   string
	base   int
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, start parser.Position) *Lexer {
	return &Lexer{
		input:  input,
		file:   start.File,
		base:   start.Offset,
		pos:    0,
		line:   start.Line,
		column: start.Column,
	}
}

func (l *Lexer) Position() parser.Position {
	return parser.Position{
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
		return Token{Kind: TokenEOF, Span: parser.Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		for {
			ch := l.peek()
			if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
				l.advance()
			} else {
				break
			}
		}
		return l.token(TokenWhitespace, startPos)
	}

	if isLetter(ch) {
		first := ch
		for isLetterOrDigit(l.peek()) {
			l.advance()
		}
		end := l.Position()
		literal := string(l.input[startPos.Offset-l.base : end.Offset-l.base])
		if first >= 'A' && first <= 'Z' {
			return Token{Kind: TokenUpperIdent, Span: parser.Span{Start: startPos, End: end}, Literal: literal}
		}
		return Token{Kind: lookupKeyword(literal), Span: parser.Span{Start: startPos, End: end}, Literal: literal}
	}

	if isDigit(ch) {
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		return l.token(TokenIntLiteral, startPos)
	}

	if ch == '\'' && isLetter(l.peekN(1)) {
		l.advance()
		for isLetterOrDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenTypeVar, startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanOperator(start parser.Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)
	case '=':
		l.advance()
		return l.token(TokenEQ, start)
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)

	case '<':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}

	case '-':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start parser.Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    parser.Span{Start: start, End: end},
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
