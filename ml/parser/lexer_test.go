package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("val x : int"), "Test.vi")
	pos := lexer.Position()

	if pos.File != "Test.vi" {
		t.Errorf("File = %q, want %q", pos.File, "Test.vi")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"val", TokenVal},
		{"type", TokenType},
		{"and", TokenAnd},
		{"module", TokenModule},
		{"sig", TokenSig},
		{"end", TokenEnd},
		{"open", TokenOpen},
		{"include", TokenInclude},
		{"exception", TokenException},
		{"of", TokenOf},
		{"mutable", TokenMutable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.vi")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"foo", TokenIdent},
		{"snake_case", TokenIdent},
		{"with123", TokenIdent},
		{"x'", TokenIdent},
		{"Stack", TokenUpperIdent},
		{"M1", TokenUpperIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.vi")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerTypeVar(t *testing.T) {
	lexer := NewLexer([]byte("'a"), "test.vi")
	tok := lexer.NextToken()
	if tok.Kind != TokenTypeVar {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenTypeVar)
	}
	if tok.Literal != "'a" {
		t.Errorf("Literal = %q, want %q", tok.Literal, "'a")
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"(", TokenLParen},
		{")", TokenRParen},
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{"]", TokenRBracket},
		{":", TokenColon},
		{";", TokenSemicolon},
		{",", TokenComma},
		{".", TokenDot},
		{"=", TokenAssign},
		{"*", TokenStar},
		{"|", TokenBar},
		{"->", TokenArrow},
		{"[@", TokenLBracketAt},
		{"[@@", TokenLBracketAtAt},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.vi")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerAttributeMarkers(t *testing.T) {
	lexer := NewLexer([]byte(`[@vow "x"] [@@vow "y"]`), "test.vi")

	var kinds []TokenKind
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenWhitespace {
			continue
		}
		kinds = append(kinds, tok.Kind)
	}

	want := []TokenKind{
		TokenLBracketAt, TokenIdent, TokenStringLiteral, TokenRBracket,
		TokenLBracketAtAt, TokenIdent, TokenStringLiteral, TokenRBracket,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexerNestedComment(t *testing.T) {
	input := "(* outer (* inner *) outer *) val"
	lexer := NewLexer([]byte(input), "test.vi")

	tok := lexer.NextToken()
	if tok.Kind != TokenComment {
		t.Fatalf("Kind = %v, want %v", tok.Kind, TokenComment)
	}
	if tok.Literal != "(* outer (* inner *) outer *)" {
		t.Errorf("Literal = %q", tok.Literal)
	}

	lexer.NextToken() // whitespace
	tok = lexer.NextToken()
	if tok.Kind != TokenVal {
		t.Errorf("Kind after comment = %v, want %v", tok.Kind, TokenVal)
	}
}

func TestLexerStringLiteralKeepsRawBytes(t *testing.T) {
	input := `"a \n b \" c"`
	lexer := NewLexer([]byte(input), "test.vi")

	tok := lexer.NextToken()
	if tok.Kind != TokenStringLiteral {
		t.Fatalf("Kind = %v, want %v", tok.Kind, TokenStringLiteral)
	}
	// Escapes are not interpreted: the payload must stay an exact
	// substring of the input so positions inside it line up.
	if tok.Literal != input {
		t.Errorf("Literal = %q, want %q", tok.Literal, input)
	}
}

func TestLexerLineTracking(t *testing.T) {
	input := "val\ntype"
	lexer := NewLexer([]byte(input), "test.vi")

	tok := lexer.NextToken()
	if tok.Span.Start.Line != 1 || tok.Span.Start.Column != 1 {
		t.Errorf("first token at %d:%d, want 1:1", tok.Span.Start.Line, tok.Span.Start.Column)
	}

	lexer.NextToken() // whitespace
	tok = lexer.NextToken()
	if tok.Span.Start.Line != 2 || tok.Span.Start.Column != 1 {
		t.Errorf("second token at %d:%d, want 2:1", tok.Span.Start.Line, tok.Span.Start.Column)
	}
	if tok.Span.Start.Offset != 4 {
		t.Errorf("second token offset = %d, want 4", tok.Span.Start.Offset)
	}
}

func TestLexerAnchoredPositions(t *testing.T) {
	anchor := Position{File: "big.vi", Offset: 120, Line: 7, Column: 19}
	anchored := NewLexerAt([]byte("len = length xs"), anchor)
	tok := anchored.NextToken()

	if tok.Span.Start != anchor {
		t.Errorf("Start = %+v, want %+v", tok.Span.Start, anchor)
	}
	if tok.Span.End.Offset != 123 {
		t.Errorf("End.Offset = %d, want 123", tok.Span.End.Offset)
	}
	if tok.Span.End.Column != 22 {
		t.Errorf("End.Column = %d, want 22", tok.Span.End.Column)
	}
	if tok.Span.End.Line != 7 {
		t.Errorf("End.Line = %d, want 7", tok.Span.End.Line)
	}
	if tok.Literal != "len" {
		t.Errorf("Literal = %q, want %q", tok.Literal, "len")
	}
}

func TestLexerAnchoredMultiline(t *testing.T) {
	anchor := Position{File: "big.vi", Offset: 50, Line: 3, Column: 10}
	lexer := NewLexerAt([]byte("a\nb"), anchor)

	lexer.NextToken() // a
	lexer.NextToken() // newline
	tok := lexer.NextToken()

	if tok.Span.Start.Line != 4 {
		t.Errorf("Line = %d, want 4", tok.Span.Start.Line)
	}
	if tok.Span.Start.Column != 1 {
		t.Errorf("Column = %d, want 1", tok.Span.Start.Column)
	}
	if tok.Span.Start.Offset != 52 {
		t.Errorf("Offset = %d, want 52", tok.Span.Start.Offset)
	}
}
