package weave

import "github.com/dhamidi/vow/ml"

type Weaver struct {
	reporter Reporter
}

// Weave runs the weaving pass over a parsed interface. Warnings go to
// the reporter; the first fatal error aborts the pass and no partial
// result is returned.
func Weave(items []ml.Item, reporter Reporter) ([]Item, error) {
	w := &Weaver{reporter: reporter}
	if reporter == nil {
		w.reporter = &CollectReporter{}
	}
	return w.signature(items)
}

// signature walks one signature's items in order. Bare specification
// attributes accumulate in a pending queue; the queue is flushed
// through the resolver before any genuine declaration is processed,
// and a declaration's own floating-out is resolved immediately after
// it, so the queue is empty between items. Nested signatures get a
// fresh queue; floating specification never crosses a module
// boundary.
func (w *Weaver) signature(items []ml.Item) ([]Item, error) {
	var out []Item
	queue := &pendingQueue{}

	flush := func() error {
		if queue.empty() {
			return nil
		}
		resolved, err := w.resolve(queue.drain())
		if err != nil {
			return err
		}
		out = append(out, resolved...)
		return nil
	}

	for i := range items {
		item := &items[i]
		switch item.Kind {
		case ml.ItemAttribute:
			if !IsSpecAttr(*item.Attr) {
				if err := flush(); err != nil {
					return nil, err
				}
				out = append(out, Item{Kind: ItemPass, Span: item.Span, Pass: item})
				continue
			}
			f, err := w.disambiguate(*item.Attr)
			if err != nil {
				return nil, err
			}
			queue.push(f)

		case ml.ItemVal:
			if err := flush(); err != nil {
				return nil, err
			}
			value, floating, err := w.enrichVal(item.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, Item{Kind: ItemValue, Span: item.Span, Value: value})
			resolved, err := w.resolve(floating)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved...)

		case ml.ItemTypeGroup:
			if err := flush(); err != nil {
				return nil, err
			}
			types, floating, err := w.enrichTypeGroup(item.Types, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, Item{Kind: ItemType, Span: item.Span, Types: types})
			resolved, err := w.resolve(floating)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved...)

		case ml.ItemModule, ml.ItemModuleType:
			if err := flush(); err != nil {
				return nil, err
			}
			w.warnUnsupported(item.Attrs)
			nested, err := w.signature(item.Module.Items)
			if err != nil {
				return nil, err
			}
			kind := ItemModule
			if item.Kind == ml.ItemModuleType {
				kind = ItemModuleType
			}
			out = append(out, Item{
				Kind: kind,
				Span: item.Span,
				Module: &ModuleItem{
					Name:  item.Module.Name,
					Items: nested,
					Span:  item.Module.Span,
				},
			})

		case ml.ItemOpen, ml.ItemInclude, ml.ItemException:
			if err := flush(); err != nil {
				return nil, err
			}
			w.warnUnsupported(item.Attrs)
			out = append(out, Item{Kind: ItemPass, Span: item.Span, Pass: item})
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}
