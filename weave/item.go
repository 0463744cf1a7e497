// Package weave implements the weaving pass: it walks a parsed host
// interface whose annotations carry specification payloads and
// produces an intermediate AST in which every specification fragment
// is attached to the declaration, or synthesized ghost declaration,
// it describes.
package weave

import (
	"github.com/dhamidi/vow/ml"
	"github.com/dhamidi/vow/ml/parser"
	"github.com/dhamidi/vow/spec"
)

type ItemKind int

const (
	ItemValue ItemKind = iota
	ItemType
	ItemGhostValue
	ItemGhostType
	ItemFunction
	ItemAxiom
	ItemModule
	ItemModuleType
	ItemUse
	ItemPass
)

var itemKindNames = map[ItemKind]string{
	ItemValue:      "Value",
	ItemType:       "Type",
	ItemGhostValue: "GhostValue",
	ItemGhostType:  "GhostType",
	ItemFunction:   "Function",
	ItemAxiom:      "Axiom",
	ItemModule:     "Module",
	ItemModuleType: "ModuleType",
	ItemUse:        "Use",
	ItemPass:       "Pass",
}

func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Item is one item of the woven intermediate AST. Exactly one payload
// field is populated, according to Kind.
type Item struct {
	Kind ItemKind
	Span parser.Span

	Value    *ValueItem     // ItemValue, ItemGhostValue
	Types    []*TypeItem    // ItemType, ItemGhostType
	Function *spec.Function // ItemFunction
	Axiom    *spec.Axiom    // ItemAxiom
	Use      *spec.Use      // ItemUse
	Module   *ModuleItem    // ItemModule, ItemModuleType
	Pass     *ml.Item       // ItemPass: open/include/exception/plain attribute
}

// ValueItem is a value declaration with its woven specification.
// Spec is nil when the declaration carries none; a value accepts at
// most one directly attached specification.
type ValueItem struct {
	Name string
	Type string
	Spec *spec.ValSpec
	Span parser.Span
}

// TypeItem is one member of a woven type group. Spec is always
// present; the empty specification is explicit, never nil.
type TypeItem struct {
	Name     string
	Params   []string
	Manifest string
	Spec     spec.TypeSpec
	Span     parser.Span
}

type ModuleItem struct {
	Name  string
	Items []Item
	Span  parser.Span
}

func (it Item) String() string {
	return it.stringIndent(0)
}

func (it Item) stringIndent(indent int) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + it.Kind.String()
	switch it.Kind {
	case ItemValue, ItemGhostValue:
		result += " " + it.Value.Name
		if it.Value.Spec != nil {
			result += " (specified)"
		}
	case ItemType, ItemGhostType:
		for _, t := range it.Types {
			result += " " + t.Name
		}
	case ItemFunction:
		result += " " + it.Function.Name
	case ItemAxiom:
		result += " " + it.Axiom.Name
	case ItemUse:
		result += " " + it.Use.Path
	case ItemModule, ItemModuleType:
		result += " " + it.Module.Name
	case ItemPass:
		result += " " + it.Pass.Kind.String()
	}
	result += "\n"

	if it.Kind == ItemModule || it.Kind == ItemModuleType {
		for _, child := range it.Module.Items {
			result += child.stringIndent(indent + 1)
		}
	}
	return result
}
