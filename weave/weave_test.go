package weave

import (
	"testing"

	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/ml/parser"
)

func weaveSource(t *testing.T, source string) ([]Item, *CollectReporter) {
	t.Helper()
	items, err := ml.InterfaceFromSource([]byte(source), parser.WithFile("test.vi"))
	if err != nil {
		t.Fatalf("InterfaceFromSource: %v", err)
	}
	reporter := &CollectReporter{}
	woven, err := Weave(items, reporter)
	if err != nil {
		t.Fatalf("Weave: %v", err)
	}
	return woven, reporter
}

func weaveSourceErr(t *testing.T, source string) *Error {
	t.Helper()
	items, err := ml.InterfaceFromSource([]byte(source), parser.WithFile("test.vi"))
	if err != nil {
		t.Fatalf("InterfaceFromSource: %v", err)
	}
	_, err = Weave(items, nil)
	if err == nil {
		t.Fatalf("expected a weave error")
	}
	werr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	return werr
}

func kinds(items []Item) []ItemKind {
	out := make([]ItemKind, 0, len(items))
	for _, it := range items {
		out = append(out, it.Kind)
	}
	return out
}

func checkKinds(t *testing.T, items []Item, want ...ItemKind) {
	t.Helper()
	got := kinds(items)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestWeaveValWithSpec(t *testing.T) {
	items, _ := weaveSource(t, `val pop : t -> int [@vow "r = pop s ensures r > 0"]`)

	checkKinds(t, items, ItemValue)
	v := items[0].Value
	if v.Name != "pop" {
		t.Errorf("Name = %q, want pop", v.Name)
	}
	if v.Spec == nil {
		t.Fatalf("expected an attached specification")
	}
	if v.Spec.Name != "pop" {
		t.Errorf("Spec.Name = %q, want pop", v.Spec.Name)
	}
	if len(v.Spec.Contract.Ensures) != 1 {
		t.Errorf("Ensures = %d, want 1", len(v.Spec.Contract.Ensures))
	}
}

func TestWeaveValWithoutSpec(t *testing.T) {
	items, _ := weaveSource(t, "val x : int")

	checkKinds(t, items, ItemValue)
	if items[0].Value.Spec != nil {
		t.Errorf("Spec = %+v, want nil", items[0].Value.Spec)
	}
}

func TestWeaveValSpecThenAxiomFloatsOut(t *testing.T) {
	items, _ := weaveSource(t,
		`val pop : t [@vow "r = pop s"] [@vow "axiom posit : r > 0"]`)

	checkKinds(t, items, ItemValue, ItemAxiom)
	if items[0].Value.Spec == nil {
		t.Errorf("expected the first fragment attached")
	}
	if items[1].Axiom.Name != "posit" {
		t.Errorf("axiom name = %q, want posit", items[1].Axiom.Name)
	}
}

func TestWeaveValSecondValSpecIsOrphan(t *testing.T) {
	err := weaveSourceErr(t,
		`val pop : t [@vow "r = pop s"] [@vow "r = pop s ensures r > 0"]`)

	if err.Kind != OrphanDeclSpec {
		t.Errorf("Kind = %v, want %v", err.Kind, OrphanDeclSpec)
	}
}

func TestWeaveValAxiomFirstLeavesSpecOrphan(t *testing.T) {
	// The value only attaches its first fragment; a value
	// specification behind an axiom has nothing to bind to.
	err := weaveSourceErr(t,
		`val pop : t [@vow "axiom posit : r > 0"] [@vow "r = pop s"]`)

	if err.Kind != OrphanDeclSpec {
		t.Errorf("Kind = %v, want %v", err.Kind, OrphanDeclSpec)
	}
}

func TestWeaveTypeGroupMemberSpecs(t *testing.T) {
	items, _ := weaveSource(t,
		`type t = int [@vow "ephemeral"] and u [@vow "model size : int"]`)

	checkKinds(t, items, ItemType)
	types := items[0].Types
	if len(types) != 2 {
		t.Fatalf("types = %d, want 2", len(types))
	}
	if !types[0].Spec.Ephemeral {
		t.Errorf("t should be ephemeral")
	}
	if len(types[1].Spec.Models) != 1 || types[1].Spec.Models[0].Name != "size" {
		t.Errorf("u models = %+v", types[1].Spec.Models)
	}
}

func TestWeaveTypeGroupFoldsRepeatedSpecs(t *testing.T) {
	items, _ := weaveSource(t,
		`type t [@vow "ephemeral"] [@vow "model size : int"] [@vow "invariant size >= 0"]`)

	spec := items[0].Types[0].Spec
	if !spec.Ephemeral || len(spec.Models) != 1 || len(spec.Invariants) != 1 {
		t.Errorf("folded spec = %+v", spec)
	}
}

func TestWeaveTypeUnspecifiedHasEmptySpec(t *testing.T) {
	items, _ := weaveSource(t, "type t = int")

	spec := items[0].Types[0].Spec
	if spec.Ephemeral || spec.Models != nil || spec.Invariants != nil {
		t.Errorf("spec = %+v, want the empty specification", spec)
	}
}

func TestWeaveTypeGroupLastMemberFloatsOut(t *testing.T) {
	items, _ := weaveSource(t, `type t and u [@vow "use List"]`)

	checkKinds(t, items, ItemType, ItemUse)
	if items[1].Use.Path != "List" {
		t.Errorf("Path = %q, want List", items[1].Use.Path)
	}
}

func TestWeaveTypeGroupNonLastMemberMayNotFloat(t *testing.T) {
	err := weaveSourceErr(t, `type t [@vow "use List"] and u`)

	if err.Kind != FloatingNotAllowed {
		t.Errorf("Kind = %v, want %v", err.Kind, FloatingNotAllowed)
	}
	// The error points at the offending group member.
	if err.Span.Start.Line != 1 || err.Span.Start.Column != 6 {
		t.Errorf("error at %d:%d, want 1:6", err.Span.Start.Line, err.Span.Start.Column)
	}
}

func TestWeaveFunctionCollectsTrailingContracts(t *testing.T) {
	items, _ := weaveSource(t, `
[@@vow "function double (x : int) : int = x + x"]
[@@vow "pure"]
[@@vow "ensures double x >= x"]
val x : int`)

	checkKinds(t, items, ItemFunction, ItemValue)
	fn := items[0].Function
	if fn.Name != "double" {
		t.Errorf("Name = %q, want double", fn.Name)
	}
	if !fn.Contract.Pure {
		t.Errorf("Pure = false, want true")
	}
	if len(fn.Contract.Ensures) != 1 {
		t.Errorf("Ensures = %d, want 1", len(fn.Contract.Ensures))
	}
}

func TestWeaveFloatingAxiomAndUse(t *testing.T) {
	items, _ := weaveSource(t, `
[@@vow "use Seq.Map"]
[@@vow "axiom total : size >= 0"]`)

	checkKinds(t, items, ItemUse, ItemAxiom)
}

func TestWeaveOrphanFragments(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"funspec", `[@@vow "requires p"]`},
		{"typespec", `[@@vow "ephemeral"]`},
		{"valspec", `[@@vow "r = pop s"]`},
		{"typespec before type decl", "[@@vow \"ephemeral\"]\ntype t"},
		{"typespec before module", "[@@vow \"ephemeral\"]\nmodule M : sig end"},
		{"two typespecs before val", "[@@vow \"ephemeral\"]\n[@@vow \"model size : int\"]\nval x : int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := weaveSourceErr(t, tt.source)
			if err.Kind != OrphanDeclSpec {
				t.Errorf("Kind = %v, want %v", err.Kind, OrphanDeclSpec)
			}
		})
	}
}

func TestWeaveOrphanErrorAtFirstFragment(t *testing.T) {
	// Floating type specification is never silently attached to an
	// unrelated later value declaration.
	err := weaveSourceErr(t,
		"[@@vow \"ephemeral\"]\n[@@vow \"model size : int\"]\nval x : int")

	if err.Kind != OrphanDeclSpec {
		t.Fatalf("Kind = %v, want %v", err.Kind, OrphanDeclSpec)
	}
	if err.Span.Start.Line != 1 || err.Span.Start.Column != 9 {
		t.Errorf("error at %d:%d, want 1:9 (the first fragment)",
			err.Span.Start.Line, err.Span.Start.Column)
	}
}

func TestWeaveGhostType(t *testing.T) {
	items, _ := weaveSource(t, `
[@@vow "type t = int"]
[@@vow "invariant valid"]
[@@vow "use List"]`)

	checkKinds(t, items, ItemGhostType, ItemUse)
	types := items[0].Types
	if len(types) != 1 || types[0].Name != "t" {
		t.Fatalf("types = %+v", types)
	}
	if len(types[0].Spec.Invariants) != 1 {
		t.Errorf("Invariants = %d, want 1", len(types[0].Spec.Invariants))
	}
}

func TestWeaveGhostTypeSpecFoldsIntoLastMember(t *testing.T) {
	items, _ := weaveSource(t, `
[@@vow "type t and u"]
[@@vow "ephemeral"]
[@@vow "model size : int"]`)

	checkKinds(t, items, ItemGhostType)
	types := items[0].Types
	if types[0].Spec.Ephemeral || len(types[0].Spec.Models) != 0 {
		t.Errorf("first member spec = %+v, want empty", types[0].Spec)
	}
	if !types[1].Spec.Ephemeral || len(types[1].Spec.Models) != 1 {
		t.Errorf("last member spec = %+v", types[1].Spec)
	}
}

func TestWeaveGhostValAbsorbsOneValSpec(t *testing.T) {
	items, _ := weaveSource(t, `
[@@vow "val pop : t -> int"]
[@@vow "r = pop s ensures r > 0"]`)

	checkKinds(t, items, ItemGhostValue)
	v := items[0].Value
	if v.Name != "pop" || v.Type != "t -> int" {
		t.Errorf("value = %+v", v)
	}
	if v.Spec == nil || len(v.Spec.Contract.Ensures) != 1 {
		t.Errorf("Spec = %+v", v.Spec)
	}
}

func TestWeaveGhostValSecondValSpecIsOrphan(t *testing.T) {
	err := weaveSourceErr(t, `
[@@vow "val pop : t -> int"]
[@@vow "r = pop s"]
[@@vow "r = pop s ensures r > 0"]`)

	if err.Kind != OrphanDeclSpec {
		t.Errorf("Kind = %v, want %v", err.Kind, OrphanDeclSpec)
	}
}

func TestWeaveGhostValWithoutSpec(t *testing.T) {
	items, _ := weaveSource(t, `[@@vow "val witness : t"]`)

	checkKinds(t, items, ItemGhostValue)
	if items[0].Value.Spec != nil {
		t.Errorf("Spec = %+v, want nil", items[0].Value.Spec)
	}
}

func TestWeaveModuleNesting(t *testing.T) {
	items, _ := weaveSource(t, `
module Stack : sig
  val push : int -> unit
  [@@vow "type model_t = int list"]
end`)

	checkKinds(t, items, ItemModule)
	m := items[0].Module
	if m.Name != "Stack" {
		t.Errorf("Name = %q, want Stack", m.Name)
	}
	checkKinds(t, m.Items, ItemValue, ItemGhostType)
}

func TestWeaveModuleBoundaryIsolatesQueue(t *testing.T) {
	// A fragment pending at the end of a nested signature must not
	// attach to anything after the module.
	err := weaveSourceErr(t, `
module M : sig
  [@@vow "requires p"]
end
[@@vow "val pop : t"]`)

	if err.Kind != OrphanDeclSpec {
		t.Errorf("Kind = %v, want %v", err.Kind, OrphanDeclSpec)
	}
}

func TestWeaveModuleTypeDecl(t *testing.T) {
	items, _ := weaveSource(t, "module type ORDERED = sig type t end")

	checkKinds(t, items, ItemModuleType)
	checkKinds(t, items[0].Module.Items, ItemType)
}

func TestWeaveUnsupportedPositionsWarn(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"open", `open List [@vow "use List"]`},
		{"include", `include Ordered [@vow "pure"]`},
		{"exception", `exception Empty [@vow "pure"]`},
		{"module", `module M : sig end [@vow "pure"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, reporter := weaveSource(t, tt.source)
			if len(reporter.Warnings) != 1 {
				t.Fatalf("warnings = %d, want 1", len(reporter.Warnings))
			}
			if reporter.Warnings[0].Msg != "specification not supported here" {
				t.Errorf("Msg = %q", reporter.Warnings[0].Msg)
			}
			if len(items) != 1 {
				t.Errorf("items = %v", kinds(items))
			}
		})
	}
}

func TestWeaveNonSpecAttributesPassThrough(t *testing.T) {
	items, reporter := weaveSource(t, `
[@@vow "use A"]
[@@doc "interface documentation"]
[@@vow "use B"]`)

	// The plain attribute flushes the queue, so order is preserved.
	checkKinds(t, items, ItemUse, ItemPass, ItemUse)
	if items[0].Use.Path != "A" || items[2].Use.Path != "B" {
		t.Errorf("paths = %q, %q", items[0].Use.Path, items[2].Use.Path)
	}
	if len(reporter.Warnings) != 0 {
		t.Errorf("warnings = %+v", reporter.Warnings)
	}
}

func TestWeaveNonSpecAttachedAttributeIgnored(t *testing.T) {
	items, reporter := weaveSource(t, `val x : int [@deprecated "old"]`)

	checkKinds(t, items, ItemValue)
	if items[0].Value.Spec != nil {
		t.Errorf("Spec = %+v, want nil", items[0].Value.Spec)
	}
	if len(reporter.Warnings) != 0 {
		t.Errorf("warnings = %+v", reporter.Warnings)
	}
}

func TestWeaveSyntaxErrorPositions(t *testing.T) {
	source := "val x : int\n  [@vow\n    \"use 42\"]\n"
	err := weaveSourceErr(t, source)

	if err.Kind != SyntaxError {
		t.Fatalf("Kind = %v, want %v", err.Kind, SyntaxError)
	}
	// "42" sits on line 3 of the file, column 10: positions inside a
	// payload are file coordinates, not payload offsets.
	if err.Span.Start.Line != 3 {
		t.Errorf("Line = %d, want 3", err.Span.Start.Line)
	}
	if err.Span.Start.Column != 10 {
		t.Errorf("Column = %d, want 10", err.Span.Start.Column)
	}
	if err.Span.Start.File != "test.vi" {
		t.Errorf("File = %q, want test.vi", err.Span.Start.File)
	}
}

func TestWeaveGhostDeclSyntaxError(t *testing.T) {
	err := weaveSourceErr(t, `[@@vow "type"]`)

	if err.Kind != SyntaxError {
		t.Errorf("Kind = %v, want %v", err.Kind, SyntaxError)
	}
}

func TestWeaveNilReporter(t *testing.T) {
	items, err := ml.InterfaceFromSource([]byte(`open List [@vow "pure"]`))
	if err != nil {
		t.Fatalf("InterfaceFromSource: %v", err)
	}
	woven, err := Weave(items, nil)
	if err != nil {
		t.Fatalf("Weave: %v", err)
	}
	if len(woven) != 1 {
		t.Errorf("items = %v", kinds(woven))
	}
}

func TestWeaveDeterministic(t *testing.T) {
	source := `
[@@vow "use List"]
[@@vow "type t = int"]
[@@vow "invariant valid"]
val pop : t [@vow "r = pop s"]`

	first, _ := weaveSource(t, source)
	second, _ := weaveSource(t, source)

	if len(first) != len(second) {
		t.Fatalf("item counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || first[i].Span != second[i].Span {
			t.Errorf("item %d differs: %v vs %v", i, first[i].Kind, second[i].Kind)
		}
	}
}
