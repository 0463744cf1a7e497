package weave

import (
	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/spec"
)

// enrichTypeGroup attaches directly co-located type specifications to
// the members of one (possibly mutually recursive) type group. The
// extra specification, when non-nil, is folded into the last member;
// it carries what a ghost type consumed from the fragments following
// it. Fragments of any other kind float out of the group, which only
// the last member is allowed to do.
func (w *Weaver) enrichTypeGroup(types []*ml.TypeDecl, extra *spec.TypeSpec) ([]*TypeItem, []Fragment, error) {
	items := make([]*TypeItem, 0, len(types))
	var out []Fragment
	last := len(types) - 1

	for i, td := range types {
		specAttrs, _ := splitSpecAttrs(td.Attrs)

		var direct *spec.TypeSpec
		var floating []Fragment
		for _, a := range specAttrs {
			f, err := w.disambiguate(a)
			if err != nil {
				return nil, nil, err
			}
			if f.Kind == FragTypeSpec {
				direct = spec.UnionTypeSpec(direct, f.TypeSpec)
			} else {
				floating = append(floating, f)
			}
		}
		if i == last {
			direct = spec.UnionTypeSpec(direct, extra)
		}

		ts := spec.TypeSpec{}
		if direct != nil {
			ts = *direct
		}
		items = append(items, &TypeItem{
			Name:     td.Name,
			Params:   td.Params,
			Manifest: td.Manifest,
			Spec:     ts,
			Span:     td.Span,
		})

		if i != last && len(floating) > 0 {
			return nil, nil, &Error{
				Kind: FloatingNotAllowed,
				Span: td.Span,
				Msg:  "only the last declaration of a recursive group may carry trailing specification",
			}
		}
		if i == last {
			out = floating
		}
	}
	return items, out, nil
}

// enrichVal attaches a value specification to a value declaration. If
// the first specification fragment is a value specification it is
// attached directly; everything after it, whatever its kind, floats
// out to be resolved by the caller.
func (w *Weaver) enrichVal(v *ml.ValDecl) (*ValueItem, []Fragment, error) {
	specAttrs, _ := splitSpecAttrs(v.Attrs)

	var frags []Fragment
	for _, a := range specAttrs {
		f, err := w.disambiguate(a)
		if err != nil {
			return nil, nil, err
		}
		frags = append(frags, f)
	}

	item := &ValueItem{Name: v.Name, Type: v.Type, Span: v.Span}
	if len(frags) > 0 && frags[0].Kind == FragValSpec {
		item.Spec = frags[0].ValSpec
		frags = frags[1:]
	}
	return item, frags, nil
}
