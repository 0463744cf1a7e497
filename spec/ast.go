// Package spec defines the specification clause language: the AST for
// clause fragments and terms, and the parser that turns one annotation
// payload into one fragment.
package spec

import (
	"strings"

	"github.com/dhamidi/vow/ml/parser"
)

// Term is the interface implemented by all term nodes. Terms are
// purely structural; no names are resolved and nothing is typed.
type Term interface {
	term()
	Span() parser.Span
}

// Ident is a possibly qualified name, e.g. "x" or "List.length".
type Ident struct {
	Path []string
	S    parser.Span
}

func (t *Ident) term()             {}
func (t *Ident) Span() parser.Span { return t.S }

func (t *Ident) String() string {
	return strings.Join(t.Path, ".")
}

// IntLit is an integer literal, kept as source text.
type IntLit struct {
	Value string
	S     parser.Span
}

func (t *IntLit) term()             {}
func (t *IntLit) Span() parser.Span { return t.S }

type BoolLit struct {
	Value bool
	S     parser.Span
}

func (t *BoolLit) term()             {}
func (t *BoolLit) Span() parser.Span { return t.S }

type Unary struct {
	Op      string
	Operand Term
	S       parser.Span
}

func (t *Unary) term()             {}
func (t *Unary) Span() parser.Span { return t.S }

type Binary struct {
	Op    string
	Left  Term
	Right Term
	S     parser.Span
}

func (t *Binary) term()             {}
func (t *Binary) Span() parser.Span { return t.S }

// Apply is juxtaposition application: "f x y".
type Apply struct {
	Fn   Term
	Args []Term
	S    parser.Span
}

func (t *Apply) term()             {}
func (t *Apply) Span() parser.Span { return t.S }

// Fragment is the interface implemented by all clause fragments. One
// annotation payload parses to exactly one fragment.
type Fragment interface {
	fragment()
	FragmentSpan() parser.Span
}

// Model is one "model name : type" clause of a type specification.
type Model struct {
	Name string
	Type string
	S    parser.Span
}

// TypeSpec is the specification attached to one type declaration:
// mutability, model fields and invariants. The zero value is the
// explicit empty specification.
type TypeSpec struct {
	Ephemeral  bool
	Models     []Model
	Invariants []Term
	S          parser.Span
}

func (f *TypeSpec) fragment()                 {}
func (f *TypeSpec) FragmentSpan() parser.Span { return f.S }

// Contract is the pre/post part of a value or function specification.
type Contract struct {
	Requires []Term
	Ensures  []Term
	Variants []Term
	Pure     bool
	Diverges bool
}

// IsEmpty reports whether no clause of the contract is set.
func (c Contract) IsEmpty() bool {
	return len(c.Requires) == 0 && len(c.Ensures) == 0 && len(c.Variants) == 0 &&
		!c.Pure && !c.Diverges
}

// ValSpec is a value specification: a header naming the results, the
// value and its arguments, followed by contract clauses.
type ValSpec struct {
	Results  []string
	Name     string
	Args     []string
	Contract Contract
	S        parser.Span
}

func (f *ValSpec) fragment()                 {}
func (f *ValSpec) FragmentSpan() parser.Span { return f.S }

type Param struct {
	Name string
	Type string
}

// Function is a specification-only function or predicate declaration.
type Function struct {
	Name        string
	IsPredicate bool
	Params      []Param
	Result      string
	Body        Term
	Contract    Contract
	S           parser.Span
}

func (f *Function) fragment()                 {}
func (f *Function) FragmentSpan() parser.Span { return f.S }

// FunSpec is a run of loose contract clauses with no header; it
// attaches to the closest preceding function fragment.
type FunSpec struct {
	Contract Contract
	S        parser.Span
}

func (f *FunSpec) fragment()                 {}
func (f *FunSpec) FragmentSpan() parser.Span { return f.S }

type Axiom struct {
	Name string
	Term Term
	S    parser.Span
}

func (f *Axiom) fragment()                 {}
func (f *Axiom) FragmentSpan() parser.Span { return f.S }

type Use struct {
	Path string
	S    parser.Span
}

func (f *Use) fragment()                 {}
func (f *Use) FragmentSpan() parser.Span { return f.S }

// UnionTypeSpec folds two type specifications into one. Either side
// may be nil; the fold is associative, so any grouping of a run of
// specifications produces the same result.
func UnionTypeSpec(a, b *TypeSpec) *TypeSpec {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		out := *b
		return &out
	}
	if b == nil {
		out := *a
		return &out
	}
	out := TypeSpec{
		Ephemeral:  a.Ephemeral || b.Ephemeral,
		Models:     append(append([]Model{}, a.Models...), b.Models...),
		Invariants: append(append([]Term{}, a.Invariants...), b.Invariants...),
		S:          parser.Span{Start: a.S.Start, End: b.S.End},
	}
	return &out
}

// UnionContract folds two contracts, clause order preserved.
func UnionContract(a, b Contract) Contract {
	return Contract{
		Requires: append(append([]Term{}, a.Requires...), b.Requires...),
		Ensures:  append(append([]Term{}, a.Ensures...), b.Ensures...),
		Variants: append(append([]Term{}, a.Variants...), b.Variants...),
		Pure:     a.Pure || b.Pure,
		Diverges: a.Diverges || b.Diverges,
	}
}
