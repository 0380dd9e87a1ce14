package diag

import "millet/internal/source"

// Note is auxiliary context attached to a diagnostic, e.g. pointing at a
// conflicting earlier definition.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported problem, per the shape in spec.md §6.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Primary  source.Span
	Message  string
	Notes    []Note
}

// New builds a Diagnostic with no notes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError builds an error-severity Diagnostic.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote appends a Note and returns the (value-receiver) Diagnostic.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
