package weave

import (
	"strings"

	"github.com/dhamidi/vow/ml"
)

// Prefix is the reserved attribute-name prefix that marks an
// annotation as specification-bearing.
const Prefix = "vow"

// IsSpecAttr reports whether an attribute carries specification,
// judged by its name alone, never by its payload.
func IsSpecAttr(a ml.RawAnnotation) bool {
	return a.Name == Prefix || strings.HasPrefix(a.Name, Prefix+".")
}

// splitSpecAttrs partitions an attribute list into specification
// attributes and the rest, preserving relative order in both halves.
func splitSpecAttrs(attrs []ml.RawAnnotation) (specs, others []ml.RawAnnotation) {
	for _, a := range attrs {
		if IsSpecAttr(a) {
			specs = append(specs, a)
		} else {
			others = append(others, a)
		}
	}
	return specs, others
}

const unsupportedMsg = "specification not supported here"

// warnUnsupported reports every specification attribute found on a
// node the pass does not traverse. Author intent in an unsupported
// position is surfaced, never failed on.
func (w *Weaver) warnUnsupported(attrs []ml.RawAnnotation) {
	for _, a := range attrs {
		if IsSpecAttr(a) {
			w.reporter.Warn(a.Span, unsupportedMsg)
		}
	}
}
