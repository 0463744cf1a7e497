package parser

type NodeKind int

const (
	KindError NodeKind = iota

	// Interface level
	KindInterface
	KindValDecl
	KindTypeGroup
	KindTypeDecl
	KindModuleDecl
	KindModuleTypeDecl
	KindOpenDecl
	KindIncludeDecl
	KindExceptionDecl
	KindAttributeItem

	// Attributes
	KindAttribute
	KindAttributeName
	KindAttributePayload

	// Type expressions
	KindArrowType
	KindProductType
	KindTypeApp
	KindTypeName
	KindTypeVar
	KindParenType
	KindVariantBody
	KindConstructorDecl
	KindRecordBody
	KindFieldDecl
	KindTypeParams

	// Leaves
	KindIdentifier
	KindQualifiedName
)

var nodeKindNames = map[NodeKind]string{
	KindError:            "Error",
	KindInterface:        "Interface",
	KindValDecl:          "ValDecl",
	KindTypeGroup:        "TypeGroup",
	KindTypeDecl:         "TypeDecl",
	KindModuleDecl:       "ModuleDecl",
	KindModuleTypeDecl:   "ModuleTypeDecl",
	KindOpenDecl:         "OpenDecl",
	KindIncludeDecl:      "IncludeDecl",
	KindExceptionDecl:    "ExceptionDecl",
	KindAttributeItem:    "AttributeItem",
	KindAttribute:        "Attribute",
	KindAttributeName:    "AttributeName",
	KindAttributePayload: "AttributePayload",
	KindArrowType:        "ArrowType",
	KindProductType:      "ProductType",
	KindTypeApp:          "TypeApp",
	KindTypeName:         "TypeName",
	KindTypeVar:          "TypeVar",
	KindParenType:        "ParenType",
	KindVariantBody:      "VariantBody",
	KindConstructorDecl:  "ConstructorDecl",
	KindRecordBody:       "RecordBody",
	KindFieldDecl:        "FieldDecl",
	KindTypeParams:       "TypeParams",
	KindIdentifier:       "Identifier",
	KindQualifiedName:    "QualifiedName",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstError returns the first error node in a pre-order walk, or nil.
func (n *Node) FirstError() *Node {
	if n.Kind == KindError {
		return n
	}
	for _, child := range n.Children {
		if e := child.FirstError(); e != nil {
			return e
		}
	}
	return nil
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if showPositions {
		result += " [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]"
	}
	if n.Token != nil {
		result += " " + n.Token.Literal
	}
	if n.Error != nil {
		result += " ERROR: " + n.Error.Message
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
