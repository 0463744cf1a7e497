package weave

import (
	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/ml/parser"
	"github.com/dhamidi/vow/spec"
)

type FragmentKind int

const (
	FragTypeSpec FragmentKind = iota
	FragValSpec
	FragFunction
	FragFunSpec
	FragAxiom
	FragUse
	FragGhostType
	FragGhostVal
)

var fragmentKindNames = map[FragmentKind]string{
	FragTypeSpec:  "type specification",
	FragValSpec:   "value specification",
	FragFunction:  "function",
	FragFunSpec:   "function contract",
	FragAxiom:     "axiom",
	FragUse:       "use directive",
	FragGhostType: "ghost type",
	FragGhostVal:  "ghost value",
}

func (k FragmentKind) String() string {
	if name, ok := fragmentKindNames[k]; ok {
		return name
	}
	return "unknown fragment"
}

// Fragment is the result of disambiguating one annotation: exactly one
// of the payload fields, matching Kind, is populated.
type Fragment struct {
	Kind FragmentKind
	Span parser.Span

	TypeSpec *spec.TypeSpec
	ValSpec  *spec.ValSpec
	Function *spec.Function
	FunSpec  *spec.FunSpec
	Axiom    *spec.Axiom
	Use      *spec.Use

	// Ghost declarations carry the raw host declaration; their own
	// attributes are classified when the fragment is resolved.
	GhostTypes []*ml.TypeDecl
	GhostVal   *ml.ValDecl
}

func fragmentFromClause(f spec.Fragment) Fragment {
	switch f := f.(type) {
	case *spec.TypeSpec:
		return Fragment{Kind: FragTypeSpec, Span: f.S, TypeSpec: f}
	case *spec.ValSpec:
		return Fragment{Kind: FragValSpec, Span: f.S, ValSpec: f}
	case *spec.Function:
		return Fragment{Kind: FragFunction, Span: f.S, Function: f}
	case *spec.FunSpec:
		return Fragment{Kind: FragFunSpec, Span: f.S, FunSpec: f}
	case *spec.Axiom:
		return Fragment{Kind: FragAxiom, Span: f.S, Axiom: f}
	case *spec.Use:
		return Fragment{Kind: FragUse, Span: f.S, Use: f}
	}
	panic("unknown specification fragment")
}
