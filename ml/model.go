package ml

import "github.com/dhamidi/vow/ml/parser"

type ItemKind int

const (
	ItemVal ItemKind = iota
	ItemTypeGroup
	ItemModule
	ItemModuleType
	ItemOpen
	ItemInclude
	ItemException
	ItemAttribute
)

var itemKindNames = map[ItemKind]string{
	ItemVal:        "val",
	ItemTypeGroup:  "type",
	ItemModule:     "module",
	ItemModuleType: "module type",
	ItemOpen:       "open",
	ItemInclude:    "include",
	ItemException:  "exception",
	ItemAttribute:  "attribute",
}

func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Item is one signature item of a parsed interface. Exactly one of the
// payload fields below is populated, according to Kind.
type Item struct {
	Kind ItemKind
	Span parser.Span

	Value     *ValDecl       // ItemVal
	Types     []*TypeDecl    // ItemTypeGroup; mutually recursive when len > 1
	Module    *ModuleDecl    // ItemModule, ItemModuleType
	Path      string         // ItemOpen, ItemInclude
	Exception *ExceptionDecl // ItemException
	Attr      *RawAnnotation // ItemAttribute

	// Attrs are trailing attributes on items that carry no attribute
	// list of their own (open, include, exception, module).
	Attrs []RawAnnotation
}

// RawAnnotation is one attribute as written in the source. The payload
// is the raw text between the quotes of the attribute's string
// argument; PayloadSpan locates that text in the original file and is
// the anchor used when the payload is lexed on its own.
type RawAnnotation struct {
	Name        string
	Payload     string
	PayloadSpan parser.Span
	Span        parser.Span
}

type ValDecl struct {
	Name  string
	Type  string
	Attrs []RawAnnotation
	Span  parser.Span
}

type TypeDecl struct {
	Name     string
	Params   []string
	Manifest string
	Attrs    []RawAnnotation
	Span     parser.Span
}

type ModuleDecl struct {
	Name  string
	Items []Item
	Span  parser.Span
}

type ExceptionDecl struct {
	Name string
	Arg  string
	Span parser.Span
}

// GhostDecl is the result of parsing an annotation payload with the
// host declaration grammar: exactly one type group or one value
// declaration.
type GhostDecl struct {
	Types []*TypeDecl
	Value *ValDecl
}

// ParseError is a host-grammar syntax error with a file position.
type ParseError struct {
	Span parser.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return e.Span.Start.String() + ": " + e.Msg
}
