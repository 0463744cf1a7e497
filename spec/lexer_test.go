package spec

import (
	"testing"

	"github.com/dhamidi/vow/ml/parser"
)

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"use", TokenUse},
		{"axiom", TokenAxiom},
		{"ephemeral", TokenEphemeral},
		{"mutable", TokenMutable},
		{"model", TokenModel},
		{"invariant", TokenInvariant},
		{"requires", TokenRequires},
		{"ensures", TokenEnsures},
		{"variant", TokenVariant},
		{"pure", TokenPure},
		{"diverges", TokenDiverges},
		{"function", TokenFunction},
		{"predicate", TokenPredicate},
		{"not", TokenNot},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"type", TokenType},
		{"val", TokenVal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), parser.Position{Line: 1, Column: 1})
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"=", TokenEQ},
		{"<>", TokenNE},
		{"<", TokenLT},
		{"<=", TokenLE},
		{">", TokenGT},
		{">=", TokenGE},
		{"&&", TokenAnd},
		{"||", TokenOr},
		{"+", TokenPlus},
		{"-", TokenMinus},
		{"*", TokenStar},
		{"/", TokenSlash},
		{"->", TokenArrow},
		{"(", TokenLParen},
		{")", TokenRParen},
		{":", TokenColon},
		{",", TokenComma},
		{".", TokenDot},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), parser.Position{Line: 1, Column: 1})
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
		})
	}
}

func TestLexerAnchoredSpans(t *testing.T) {
	anchor := parser.Position{File: "stack.vi", Offset: 77, Line: 5, Column: 21}
	lexer := NewLexer([]byte("size >= 0"), anchor)

	tok := lexer.NextToken()
	if tok.Span.Start != anchor {
		t.Errorf("Start = %+v, want %+v", tok.Span.Start, anchor)
	}
	if tok.Span.End.Offset != 81 {
		t.Errorf("End.Offset = %d, want 81", tok.Span.End.Offset)
	}

	lexer.NextToken() // whitespace
	tok = lexer.NextToken()
	if tok.Kind != TokenGE {
		t.Fatalf("Kind = %v, want %v", tok.Kind, TokenGE)
	}
	if tok.Span.Start.Offset != 82 || tok.Span.Start.Column != 26 {
		t.Errorf("GE at offset %d column %d, want 82/26",
			tok.Span.Start.Offset, tok.Span.Start.Column)
	}
	if tok.Span.Start.File != "stack.vi" {
		t.Errorf("File = %q, want stack.vi", tok.Span.Start.File)
	}
}
