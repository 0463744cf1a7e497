package weave

import (
	"testing"

	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/spec"
)

func testWeaver() *Weaver {
	return &Weaver{reporter: &CollectReporter{}}
}

func specAttr(payload string) ml.RawAnnotation {
	return ml.RawAnnotation{Name: Prefix, Payload: payload}
}

func TestResolveGhostValInnerFloating(t *testing.T) {
	// A ghost value whose own declaration carries a non-value
	// fragment: the fragment would float out of the payload, which
	// has no surrounding signature to land in.
	w := testWeaver()
	run := []Fragment{{
		Kind: FragGhostVal,
		GhostVal: &ml.ValDecl{
			Name:  "pop",
			Attrs: []ml.RawAnnotation{specAttr("axiom posit : r > 0")},
		},
	}}

	_, err := w.resolve(run)
	if err == nil {
		t.Fatalf("expected an error")
	}
	werr := err.(*Error)
	if werr.Kind != FloatingNotAllowed {
		t.Errorf("Kind = %v, want %v", werr.Kind, FloatingNotAllowed)
	}
}

func TestResolveGhostTypeInnerFloating(t *testing.T) {
	w := testWeaver()
	run := []Fragment{{
		Kind: FragGhostType,
		GhostTypes: []*ml.TypeDecl{{
			Name:  "t",
			Attrs: []ml.RawAnnotation{specAttr("use List")},
		}},
	}}

	_, err := w.resolve(run)
	if err == nil {
		t.Fatalf("expected an error")
	}
	werr := err.(*Error)
	if werr.Kind != FloatingNotAllowed {
		t.Errorf("Kind = %v, want %v", werr.Kind, FloatingNotAllowed)
	}
}

func TestResolveGhostTypeMemberSpecs(t *testing.T) {
	w := testWeaver()
	run := []Fragment{{
		Kind: FragGhostType,
		GhostTypes: []*ml.TypeDecl{
			{Name: "t", Attrs: []ml.RawAnnotation{specAttr("ephemeral")}},
			{Name: "u"},
		},
	}}

	items, err := w.resolve(run)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	checkKinds(t, items, ItemGhostType)
	if !items[0].Types[0].Spec.Ephemeral {
		t.Errorf("t should be ephemeral")
	}
	if items[0].Types[1].Spec.Ephemeral {
		t.Errorf("u should not be ephemeral")
	}
}

func TestEnrichTypeGroupNonLastFloating(t *testing.T) {
	w := testWeaver()
	types := []*ml.TypeDecl{
		{Name: "t", Attrs: []ml.RawAnnotation{specAttr("axiom a : p")}},
		{Name: "u"},
	}

	_, _, err := w.enrichTypeGroup(types, nil)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.(*Error).Kind != FloatingNotAllowed {
		t.Errorf("Kind = %v, want %v", err.(*Error).Kind, FloatingNotAllowed)
	}
}

func TestEnrichTypeGroupLastFloatsOut(t *testing.T) {
	w := testWeaver()
	types := []*ml.TypeDecl{
		{Name: "t"},
		{Name: "u", Attrs: []ml.RawAnnotation{specAttr("axiom a : p")}},
	}

	items, out, err := w.enrichTypeGroup(types, nil)
	if err != nil {
		t.Fatalf("enrichTypeGroup: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if len(out) != 1 || out[0].Kind != FragAxiom {
		t.Errorf("floating = %+v, want one axiom", out)
	}
}

func TestEnrichTypeGroupExtraGoesToLastMember(t *testing.T) {
	w := testWeaver()
	types := []*ml.TypeDecl{{Name: "t"}, {Name: "u"}}
	extra := parseTypeSpecAttr(t, w, "model size : int")

	items, out, err := w.enrichTypeGroup(types, extra)
	if err != nil {
		t.Fatalf("enrichTypeGroup: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("floating = %+v, want none", out)
	}
	if len(items[0].Spec.Models) != 0 {
		t.Errorf("first member models = %+v, want none", items[0].Spec.Models)
	}
	if len(items[1].Spec.Models) != 1 {
		t.Errorf("last member models = %+v, want one", items[1].Spec.Models)
	}
}

func TestEnrichValAttachesFirstFragmentOnly(t *testing.T) {
	w := testWeaver()
	v := &ml.ValDecl{
		Name: "pop",
		Type: "t -> int",
		Attrs: []ml.RawAnnotation{
			specAttr("r = pop s"),
			specAttr("use List"),
			specAttr("axiom a : p"),
		},
	}

	item, out, err := w.enrichVal(v)
	if err != nil {
		t.Fatalf("enrichVal: %v", err)
	}
	if item.Spec == nil || item.Spec.Name != "pop" {
		t.Errorf("Spec = %+v", item.Spec)
	}
	if len(out) != 2 || out[0].Kind != FragUse || out[1].Kind != FragAxiom {
		t.Errorf("floating = %+v", out)
	}
}

func TestEnrichValIgnoresNonSpecAttrs(t *testing.T) {
	w := testWeaver()
	v := &ml.ValDecl{
		Name: "x",
		Attrs: []ml.RawAnnotation{
			{Name: "deprecated", Payload: "old"},
		},
	}

	item, out, err := w.enrichVal(v)
	if err != nil {
		t.Fatalf("enrichVal: %v", err)
	}
	if item.Spec != nil {
		t.Errorf("Spec = %+v, want nil", item.Spec)
	}
	if len(out) != 0 {
		t.Errorf("floating = %+v, want none", out)
	}
}

func parseTypeSpecAttr(t *testing.T, w *Weaver, payload string) *spec.TypeSpec {
	t.Helper()
	f, err := w.disambiguate(specAttr(payload))
	if err != nil {
		t.Fatalf("disambiguate(%q): %v", payload, err)
	}
	if f.Kind != FragTypeSpec {
		t.Fatalf("fragment kind = %v, want %v", f.Kind, FragTypeSpec)
	}
	return f.TypeSpec
}
