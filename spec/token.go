package spec

import "github.com/dhamidi/vow/ml/parser"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace

	TokenIdent
	TokenUpperIdent
	TokenIntLiteral

	// Clause keywords
	TokenUse
	TokenAxiom
	TokenEphemeral
	TokenMutable
	TokenModel
	TokenInvariant
	TokenRequires
	TokenEnsures
	TokenVariant
	TokenPure
	TokenDiverges
	TokenFunction
	TokenPredicate
	TokenNot
	TokenTrue
	TokenFalse

	// Host declaration keywords; seeing one of these first means the
	// payload is a declaration, not a clause.
	TokenType
	TokenVal

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenColon
	TokenComma
	TokenDot
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenArrow
	TokenTypeVar
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenError:      "Error",
	TokenWhitespace: "Whitespace",
	TokenIdent:      "Identifier",
	TokenUpperIdent: "UpperIdentifier",
	TokenIntLiteral: "IntLiteral",
	TokenUse:        "use",
	TokenAxiom:      "axiom",
	TokenEphemeral:  "ephemeral",
	TokenMutable:    "mutable",
	TokenModel:      "model",
	TokenInvariant:  "invariant",
	TokenRequires:   "requires",
	TokenEnsures:    "ensures",
	TokenVariant:    "variant",
	TokenPure:       "pure",
	TokenDiverges:   "diverges",
	TokenFunction:   "function",
	TokenPredicate:  "predicate",
	TokenNot:        "not",
	TokenTrue:       "true",
	TokenFalse:      "false",
	TokenType:       "type",
	TokenVal:        "val",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenColon:      ":",
	TokenComma:      ",",
	TokenDot:        ".",
	TokenEQ:         "=",
	TokenNE:         "<>",
	TokenLT:         "<",
	TokenLE:         "<=",
	TokenGT:         ">",
	TokenGE:         ">=",
	TokenAnd:        "&&",
	TokenOr:         "||",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenArrow:      "->",
	TokenTypeVar:    "TypeVar",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    parser.Span
	Literal string
}

var keywords = map[string]TokenKind{
	"use":       TokenUse,
	"axiom":     TokenAxiom,
	"ephemeral": TokenEphemeral,
	"mutable":   TokenMutable,
	"model":     TokenModel,
	"invariant": TokenInvariant,
	"requires":  TokenRequires,
	"ensures":   TokenEnsures,
	"variant":   TokenVariant,
	"pure":      TokenPure,
	"diverges":  TokenDiverges,
	"function":  TokenFunction,
	"predicate": TokenPredicate,
	"not":       TokenNot,
	"true":      TokenTrue,
	"false":     TokenFalse,
	"type":      TokenType,
	"val":       TokenVal,
}

func lookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
