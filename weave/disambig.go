package weave

import (
	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/spec"
)

// disambiguate turns one specification annotation into one fragment.
// The payload is tried against the clause grammar first; when that
// grammar reports the distinguished is-a-declaration outcome, the same
// payload is re-parsed from the same anchor with the host declaration
// grammar, restricted to one type group or one value declaration.
// Exactly one fragment comes out, or the error is a SyntaxError at
// file coordinates.
func (w *Weaver) disambiguate(a ml.RawAnnotation) (Fragment, error) {
	res := spec.Parse(a.Payload, a.PayloadSpan.Start)
	switch {
	case res.Err != nil:
		return Fragment{}, &Error{Kind: SyntaxError, Span: res.Err.Span, Msg: res.Err.Msg}
	case res.IsDecl:
		return w.ghostFragment(a)
	}
	return fragmentFromClause(res.Fragment), nil
}

func (w *Weaver) ghostFragment(a ml.RawAnnotation) (Fragment, error) {
	decl, err := ml.GhostDeclFromPayload(a.Payload, a.PayloadSpan.Start)
	if err != nil {
		if perr, ok := err.(*ml.ParseError); ok {
			return Fragment{}, &Error{Kind: SyntaxError, Span: perr.Span, Msg: perr.Msg}
		}
		return Fragment{}, err
	}
	switch {
	case len(decl.Types) > 0:
		return Fragment{Kind: FragGhostType, Span: a.Span, GhostTypes: decl.Types}, nil
	case decl.Value != nil:
		return Fragment{Kind: FragGhostVal, Span: a.Span, GhostVal: decl.Value}, nil
	}
	// The restricted host grammar can only produce the two shapes
	// above; anything else is a grammar contract breach, not user
	// input.
	panic("ghost declaration is neither a type group nor a value declaration")
}
