package ml

import (
	"strings"

	"github.com/dhamidi/vow/ml/parser"
)

// InterfaceFromSource parses a whole interface file into its item
// model. The first syntax error aborts the parse.
func InterfaceFromSource(source []byte, opts ...parser.Option) ([]Item, error) {
	p := parser.ParseInterface(source, opts...)
	node := p.Finish()
	if err := errorFrom(node); err != nil {
		return nil, err
	}
	b := &builder{source: source}
	return b.items(node), nil
}

// GhostDeclFromPayload parses an annotation payload as exactly one
// type declaration group or one value declaration. The anchor is the
// payload's position in the original file; all spans in the result and
// in any error are file coordinates.
func GhostDeclFromPayload(payload string, anchor parser.Position) (*GhostDecl, error) {
	p := parser.ParseGhostDecl([]byte(payload), parser.WithStartAt(anchor))
	node := p.Finish()
	if err := errorFrom(node); err != nil {
		return nil, err
	}
	b := &builder{source: []byte(payload), base: anchor.Offset}
	switch node.Kind {
	case parser.KindTypeGroup:
		return &GhostDecl{Types: b.typeGroup(node)}, nil
	case parser.KindValDecl:
		return &GhostDecl{Value: b.valDecl(node)}, nil
	}
	return nil, &ParseError{Span: node.Span, Msg: "expected a type or value declaration"}
}

func errorFrom(node *parser.Node) error {
	e := node.FirstError()
	if e == nil {
		return nil
	}
	return &ParseError{Span: e.Span, Msg: e.Error.Message}
}

type builder struct {
	source []byte
	base   int
}

func (b *builder) text(span parser.Span) string {
	start := span.Start.Offset - b.base
	end := span.End.Offset - b.base
	if start < 0 || end > len(b.source) || start > end {
		return ""
	}
	return string(b.source[start:end])
}

func (b *builder) items(node *parser.Node) []Item {
	var result []Item
	for _, child := range node.Children {
		if item, ok := b.item(child); ok {
			result = append(result, item)
		}
	}
	return result
}

func (b *builder) item(node *parser.Node) (Item, bool) {
	switch node.Kind {
	case parser.KindValDecl:
		return Item{Kind: ItemVal, Span: node.Span, Value: b.valDecl(node)}, true
	case parser.KindTypeGroup:
		return Item{Kind: ItemTypeGroup, Span: node.Span, Types: b.typeGroup(node)}, true
	case parser.KindModuleDecl:
		return Item{Kind: ItemModule, Span: node.Span, Module: b.moduleDecl(node), Attrs: b.attributes(node)}, true
	case parser.KindModuleTypeDecl:
		return Item{Kind: ItemModuleType, Span: node.Span, Module: b.moduleDecl(node), Attrs: b.attributes(node)}, true
	case parser.KindOpenDecl:
		return Item{Kind: ItemOpen, Span: node.Span, Path: b.path(node), Attrs: b.attributes(node)}, true
	case parser.KindIncludeDecl:
		return Item{Kind: ItemInclude, Span: node.Span, Path: b.path(node), Attrs: b.attributes(node)}, true
	case parser.KindExceptionDecl:
		return Item{Kind: ItemException, Span: node.Span, Exception: b.exceptionDecl(node), Attrs: b.attributes(node)}, true
	case parser.KindAttributeItem:
		attr := b.annotation(node)
		return Item{Kind: ItemAttribute, Span: node.Span, Attr: &attr}, true
	}
	return Item{}, false
}

func (b *builder) valDecl(node *parser.Node) *ValDecl {
	v := &ValDecl{Span: node.Span, Attrs: b.attributes(node)}
	if name := node.FirstChildOfKind(parser.KindIdentifier); name != nil {
		v.Name = name.TokenLiteral()
	}
	if t := b.typeExprChild(node); t != nil {
		v.Type = b.text(t.Span)
	}
	return v
}

func (b *builder) typeGroup(node *parser.Node) []*TypeDecl {
	var result []*TypeDecl
	for _, child := range node.ChildrenOfKind(parser.KindTypeDecl) {
		result = append(result, b.typeDecl(child))
	}
	return result
}

func (b *builder) typeDecl(node *parser.Node) *TypeDecl {
	t := &TypeDecl{Span: node.Span, Attrs: b.attributes(node)}
	if name := node.FirstChildOfKind(parser.KindIdentifier); name != nil {
		t.Name = name.TokenLiteral()
	}
	if params := node.FirstChildOfKind(parser.KindTypeParams); params != nil {
		for _, tv := range params.ChildrenOfKind(parser.KindTypeVar) {
			t.Params = append(t.Params, tv.TokenLiteral())
		}
	}
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindIdentifier, parser.KindTypeParams, parser.KindAttribute, parser.KindError:
			continue
		}
		t.Manifest = b.text(child.Span)
		break
	}
	return t
}

func (b *builder) moduleDecl(node *parser.Node) *ModuleDecl {
	m := &ModuleDecl{Span: node.Span}
	if name := node.FirstChildOfKind(parser.KindIdentifier); name != nil {
		m.Name = name.TokenLiteral()
	}
	if body := node.FirstChildOfKind(parser.KindInterface); body != nil {
		m.Items = b.items(body)
	}
	return m
}

func (b *builder) exceptionDecl(node *parser.Node) *ExceptionDecl {
	e := &ExceptionDecl{Span: node.Span}
	if name := node.FirstChildOfKind(parser.KindIdentifier); name != nil {
		e.Name = name.TokenLiteral()
	}
	if t := b.typeExprChild(node); t != nil {
		e.Arg = b.text(t.Span)
	}
	return e
}

func (b *builder) path(node *parser.Node) string {
	qn := node.FirstChildOfKind(parser.KindQualifiedName)
	if qn == nil {
		return ""
	}
	var parts []string
	for _, id := range qn.ChildrenOfKind(parser.KindIdentifier) {
		parts = append(parts, id.TokenLiteral())
	}
	return strings.Join(parts, ".")
}

func (b *builder) typeExprChild(node *parser.Node) *parser.Node {
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindArrowType, parser.KindProductType, parser.KindTypeApp,
			parser.KindTypeName, parser.KindTypeVar, parser.KindParenType,
			parser.KindQualifiedName:
			return child
		}
	}
	return nil
}

func (b *builder) attributes(node *parser.Node) []RawAnnotation {
	var result []RawAnnotation
	for _, child := range node.ChildrenOfKind(parser.KindAttribute) {
		result = append(result, b.annotation(child))
	}
	return result
}

func (b *builder) annotation(node *parser.Node) RawAnnotation {
	a := RawAnnotation{Span: node.Span}
	if name := node.FirstChildOfKind(parser.KindAttributeName); name != nil {
		var parts []string
		for _, id := range name.ChildrenOfKind(parser.KindIdentifier) {
			parts = append(parts, id.TokenLiteral())
		}
		a.Name = strings.Join(parts, ".")
		a.PayloadSpan = parser.Span{Start: name.Span.End, End: name.Span.End}
	}
	if payload := node.FirstChildOfKind(parser.KindAttributePayload); payload != nil && payload.Token != nil {
		a.Payload = unquote(payload.Token.Literal)
		a.PayloadSpan = payloadSpan(payload.Token)
	}
	return a
}

func unquote(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		return literal[1 : len(literal)-1]
	}
	return literal
}

// payloadSpan is the span of the string literal's contents: one byte
// in from each quote. The start position is the anchor annotation
// payloads are lexed from.
func payloadSpan(tok *parser.Token) parser.Span {
	span := tok.Span
	if len(tok.Literal) >= 2 {
		span.Start.Offset++
		span.Start.Column++
		span.End.Offset--
		if span.End.Column > 1 {
			span.End.Column--
		}
	}
	return span
}
