// Package format provides encoders for the woven intermediate AST and
// for raw syntax trees.
package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/vow/ml/parser"
	"github.com/dhamidi/vow/spec"
	"github.com/dhamidi/vow/weave"
)

// ItemsJSONEncoder writes a woven signature as JSON.
type ItemsJSONEncoder struct {
	w io.Writer
}

func NewItemsJSONEncoder(w io.Writer) *ItemsJSONEncoder {
	return &ItemsJSONEncoder{w: w}
}

func (e *ItemsJSONEncoder) Encode(items []weave.Item) error {
	text, err := e.MarshalText(items)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ItemsJSONEncoder) MarshalText(items []weave.Item) ([]byte, error) {
	return json.MarshalIndent(itemsToJSON(items), "", "  ")
}

type jsonItem struct {
	Kind     string        `json:"kind"`
	Span     jsonSpan      `json:"span"`
	Value    *jsonValue    `json:"value,omitempty"`
	Types    []jsonType    `json:"types,omitempty"`
	Function *jsonFunction `json:"function,omitempty"`
	Axiom    *jsonAxiom    `json:"axiom,omitempty"`
	Use      string        `json:"use,omitempty"`
	Module   *jsonModule   `json:"module,omitempty"`
	Pass     string        `json:"pass,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonValue struct {
	Name string    `json:"name"`
	Type string    `json:"type,omitempty"`
	Spec *jsonSpec `json:"spec,omitempty"`
}

type jsonSpec struct {
	Header   string   `json:"header,omitempty"`
	Requires []string `json:"requires,omitempty"`
	Ensures  []string `json:"ensures,omitempty"`
	Variants []string `json:"variants,omitempty"`
	Pure     bool     `json:"pure,omitempty"`
	Diverges bool     `json:"diverges,omitempty"`
}

type jsonType struct {
	Name       string     `json:"name"`
	Params     []string   `json:"params,omitempty"`
	Manifest   string     `json:"manifest,omitempty"`
	Ephemeral  bool       `json:"ephemeral,omitempty"`
	Models     []jsonPair `json:"models,omitempty"`
	Invariants []string   `json:"invariants,omitempty"`
}

type jsonPair struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonFunction struct {
	Name      string     `json:"name"`
	Predicate bool       `json:"predicate,omitempty"`
	Params    []jsonPair `json:"params,omitempty"`
	Result    string     `json:"result,omitempty"`
	Body      string     `json:"body,omitempty"`
	Contract  *jsonSpec  `json:"contract,omitempty"`
}

type jsonAxiom struct {
	Name string `json:"name"`
	Term string `json:"term"`
}

type jsonModule struct {
	Name       string     `json:"name"`
	ModuleType bool       `json:"moduleType,omitempty"`
	Items      []jsonItem `json:"items,omitempty"`
}

func itemsToJSON(items []weave.Item) []jsonItem {
	result := make([]jsonItem, 0, len(items))
	for _, it := range items {
		result = append(result, itemToJSON(it))
	}
	return result
}

func itemToJSON(it weave.Item) jsonItem {
	out := jsonItem{Kind: it.Kind.String(), Span: spanToJSON(it.Span)}
	switch it.Kind {
	case weave.ItemValue, weave.ItemGhostValue:
		out.Value = valueToJSON(it.Value)
	case weave.ItemType, weave.ItemGhostType:
		for _, t := range it.Types {
			out.Types = append(out.Types, typeToJSON(t))
		}
	case weave.ItemFunction:
		out.Function = functionToJSON(it.Function)
	case weave.ItemAxiom:
		out.Axiom = &jsonAxiom{Name: it.Axiom.Name, Term: TermString(it.Axiom.Term)}
	case weave.ItemUse:
		out.Use = it.Use.Path
	case weave.ItemModule, weave.ItemModuleType:
		out.Module = &jsonModule{
			Name:       it.Module.Name,
			ModuleType: it.Kind == weave.ItemModuleType,
			Items:      itemsToJSON(it.Module.Items),
		}
	case weave.ItemPass:
		out.Pass = it.Pass.Kind.String()
	}
	return out
}

func spanToJSON(span parser.Span) jsonSpan {
	return jsonSpan{
		Start: jsonPosition{Line: span.Start.Line, Column: span.Start.Column},
		End:   jsonPosition{Line: span.End.Line, Column: span.End.Column},
	}
}

func valueToJSON(v *weave.ValueItem) *jsonValue {
	out := &jsonValue{Name: v.Name, Type: v.Type}
	if v.Spec != nil {
		out.Spec = contractToJSON(v.Spec.Contract)
		if out.Spec == nil {
			out.Spec = &jsonSpec{}
		}
		out.Spec.Header = headerString(v.Spec)
	}
	return out
}

func headerString(vs *spec.ValSpec) string {
	header := ""
	for i, r := range vs.Results {
		if i > 0 {
			header += ", "
		}
		header += r
	}
	header += " = " + vs.Name
	for _, a := range vs.Args {
		header += " " + a
	}
	return header
}

func typeToJSON(t *weave.TypeItem) jsonType {
	out := jsonType{
		Name:      t.Name,
		Params:    t.Params,
		Manifest:  t.Manifest,
		Ephemeral: t.Spec.Ephemeral,
	}
	for _, m := range t.Spec.Models {
		out.Models = append(out.Models, jsonPair{Name: m.Name, Type: m.Type})
	}
	for _, inv := range t.Spec.Invariants {
		out.Invariants = append(out.Invariants, TermString(inv))
	}
	return out
}

func functionToJSON(fn *spec.Function) *jsonFunction {
	out := &jsonFunction{
		Name:      fn.Name,
		Predicate: fn.IsPredicate,
		Result:    fn.Result,
		Contract:  contractToJSON(fn.Contract),
	}
	for _, p := range fn.Params {
		out.Params = append(out.Params, jsonPair{Name: p.Name, Type: p.Type})
	}
	if fn.Body != nil {
		out.Body = TermString(fn.Body)
	}
	return out
}

func contractToJSON(c spec.Contract) *jsonSpec {
	if c.IsEmpty() {
		return nil
	}
	out := &jsonSpec{Pure: c.Pure, Diverges: c.Diverges}
	for _, t := range c.Requires {
		out.Requires = append(out.Requires, TermString(t))
	}
	for _, t := range c.Ensures {
		out.Ensures = append(out.Ensures, TermString(t))
	}
	for _, t := range c.Variants {
		out.Variants = append(out.Variants, TermString(t))
	}
	return out
}
