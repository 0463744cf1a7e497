package weave

import "github.com/dhamidi/vow/ml/parser"

type ErrorKind int

const (
	// SyntaxError: an annotation payload is not valid under either
	// grammar attempted for it.
	SyntaxError ErrorKind = iota
	// FloatingNotAllowed: a floating specification fragment sits in a
	// position where attachment is structurally forbidden.
	FloatingNotAllowed
	// OrphanDeclSpec: a specification fragment has no eligible
	// declaration to attach to.
	OrphanDeclSpec
)

var errorKindNames = map[ErrorKind]string{
	SyntaxError:        "syntax error",
	FloatingNotAllowed: "floating specification not allowed here",
	OrphanDeclSpec:     "specification for a declaration that does not exist",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// Error is a fatal weaving diagnostic. Every failure of the pass is
// exactly one of the three kinds above, always with a source span.
type Error struct {
	Kind ErrorKind
	Span parser.Span
	Msg  string
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	return e.Span.Start.String() + ": " + msg
}

// Warning is a non-fatal diagnostic, reported and then ignored.
type Warning struct {
	Span parser.Span
	Msg  string
}

// Reporter receives non-fatal diagnostics during a weave.
type Reporter interface {
	Warn(span parser.Span, msg string)
}

// CollectReporter accumulates warnings in order.
type CollectReporter struct {
	Warnings []Warning
}

func (r *CollectReporter) Warn(span parser.Span, msg string) {
	r.Warnings = append(r.Warnings, Warning{Span: span, Msg: msg})
}
