package format

import (
	"strings"

	"github.com/dhamidi/vow/spec"
)

// TermString renders a term back to a readable, fully parenthesized
// source form.
func TermString(t spec.Term) string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t spec.Term) {
	switch t := t.(type) {
	case *spec.Ident:
		b.WriteString(strings.Join(t.Path, "."))
	case *spec.IntLit:
		b.WriteString(t.Value)
	case *spec.BoolLit:
		if t.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *spec.Unary:
		b.WriteString(t.Op)
		if t.Op == "not" {
			b.WriteString(" ")
		}
		writeOperand(b, t.Operand)
	case *spec.Binary:
		writeOperand(b, t.Left)
		b.WriteString(" " + t.Op + " ")
		writeOperand(b, t.Right)
	case *spec.Apply:
		writeOperand(b, t.Fn)
		for _, arg := range t.Args {
			b.WriteString(" ")
			writeOperand(b, arg)
		}
	}
}

func writeOperand(b *strings.Builder, t spec.Term) {
	switch t.(type) {
	case *spec.Binary, *spec.Apply, *spec.Unary:
		b.WriteString("(")
		writeTerm(b, t)
		b.WriteString(")")
	default:
		writeTerm(b, t)
	}
}
