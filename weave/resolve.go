package weave

import "github.com/dhamidi/vow/spec"

// resolve converts an ordered run of floating fragments into finalized
// items. It is one left-to-right scan; each anchor fragment consumes
// the maximal matching run that follows it and the scan continues
// after what was consumed. The function depends on nothing outside
// the run: the same run always yields the same items or the same
// error.
func (w *Weaver) resolve(run []Fragment) ([]Item, error) {
	var items []Item
	for i := 0; i < len(run); {
		f := run[i]
		switch f.Kind {
		case FragUse:
			items = append(items, Item{Kind: ItemUse, Span: f.Span, Use: f.Use})
			i++

		case FragAxiom:
			items = append(items, Item{Kind: ItemAxiom, Span: f.Span, Axiom: f.Axiom})
			i++

		case FragFunction:
			fn := *f.Function
			end := f.Span.End
			j := i + 1
			for j < len(run) && run[j].Kind == FragFunSpec {
				fn.Contract = spec.UnionContract(fn.Contract, run[j].FunSpec.Contract)
				end = run[j].Span.End
				j++
			}
			span := f.Span
			span.End = end
			items = append(items, Item{Kind: ItemFunction, Span: span, Function: &fn})
			i = j

		case FragGhostType:
			var extra *spec.TypeSpec
			end := f.Span.End
			j := i + 1
			for j < len(run) && run[j].Kind == FragTypeSpec {
				extra = spec.UnionTypeSpec(extra, run[j].TypeSpec)
				end = run[j].Span.End
				j++
			}
			types, out, err := w.enrichTypeGroup(f.GhostTypes, extra)
			if err != nil {
				return nil, err
			}
			if len(out) > 0 {
				// Nothing after a ghost type's consumption window can
				// pick these up.
				return nil, &Error{
					Kind: FloatingNotAllowed,
					Span: out[0].Span,
					Msg:  "floating specification inside a ghost type declaration",
				}
			}
			span := f.Span
			span.End = end
			items = append(items, Item{Kind: ItemGhostType, Span: span, Types: types})
			i = j

		case FragGhostVal:
			v, out, err := w.enrichVal(f.GhostVal)
			if err != nil {
				return nil, err
			}
			if len(out) > 0 {
				return nil, &Error{
					Kind: FloatingNotAllowed,
					Span: out[0].Span,
					Msg:  "floating specification inside a ghost value declaration",
				}
			}
			span := f.Span
			if v.Spec == nil && i+1 < len(run) && run[i+1].Kind == FragValSpec {
				v.Spec = run[i+1].ValSpec
				span.End = run[i+1].Span.End
				i++
			}
			items = append(items, Item{Kind: ItemGhostValue, Span: span, Value: v})
			i++

		case FragTypeSpec, FragValSpec, FragFunSpec:
			return nil, &Error{
				Kind: OrphanDeclSpec,
				Span: f.Span,
				Msg:  f.Kind.String() + " with no declaration to attach to",
			}

		default:
			panic("unknown fragment kind in floating run")
		}
	}
	return items, nil
}
