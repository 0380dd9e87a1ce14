package token

import "millet/internal/source"

// Token is one lexed token: its category, text, and source span.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}

// WithRange pairs a value with the Span it occupies, mirroring the
// {tokens:[WithRange<Token>]} shape from spec.md §4.3. Token already
// carries its own Span, and no package in this module constructs a
// WithRange.
type WithRange[T any] struct {
	Value T
	Span  source.Span
}
