package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment

	// Literals
	TokenIdent
	TokenUpperIdent
	TokenTypeVar
	TokenIntLiteral
	TokenStringLiteral

	// Keywords
	TokenVal
	TokenType
	TokenAnd
	TokenModule
	TokenSig
	TokenEnd
	TokenOpen
	TokenInclude
	TokenException
	TokenOf
	TokenMutable

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracketAt
	TokenLBracketAtAt
	TokenRBracket
	TokenColon
	TokenSemicolon
	TokenComma
	TokenDot
	TokenAssign
	TokenArrow
	TokenStar
	TokenBar
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenIdent:         "Identifier",
	TokenUpperIdent:    "UpperIdentifier",
	TokenTypeVar:       "TypeVar",
	TokenIntLiteral:    "IntLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenVal:           "val",
	TokenType:          "type",
	TokenAnd:           "and",
	TokenModule:        "module",
	TokenSig:           "sig",
	TokenEnd:           "end",
	TokenOpen:          "open",
	TokenInclude:       "include",
	TokenException:     "exception",
	TokenOf:            "of",
	TokenMutable:       "mutable",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracketAt:    "[@",
	TokenLBracketAtAt:  "[@@",
	TokenRBracket:      "]",
	TokenColon:         ":",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenAssign:        "=",
	TokenArrow:         "->",
	TokenStar:          "*",
	TokenBar:           "|",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"val":       TokenVal,
	"type":      TokenType,
	"and":       TokenAnd,
	"module":    TokenModule,
	"sig":       TokenSig,
	"end":       TokenEnd,
	"open":      TokenOpen,
	"include":   TokenInclude,
	"exception": TokenException,
	"of":        TokenOf,
	"mutable":   TokenMutable,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
