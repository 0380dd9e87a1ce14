package diag

import "sort"

// Bag accumulates diagnostics for one file's analysis pass. Per spec.md §7,
// lex/parse/lower/statics errors never abort analysis: they accumulate
// here so the whole file gets a full diagnostic set.
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Len returns the number of diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the accumulated diagnostics. Callers must not mutate the
// returned slice's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic has SevError or above.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Merge appends other's items onto b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by (file, start, end, severity desc, code asc)
// for deterministic, stable output across runs.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Filter drops diagnostics whose severity was overridden to "ignore" by
// config, or remaps a code's severity per the diagnostics table in
// millet.toml (spec.md §6).
func (b *Bag) Filter(ignore map[Code]bool, override map[Code]Severity) {
	kept := b.items[:0]
	for _, d := range b.items {
		if ignore[d.Code] {
			continue
		}
		if sev, ok := override[d.Code]; ok {
			d.Severity = sev
		}
		kept = append(kept, d)
	}
	b.items = kept
}

// Truncate drops all but the first n diagnostics (call Sort first so
// "first" means most relevant by the usual ordering). n <= 0 is a no-op,
// matching the teacher's own `--max-diagnostics 0` meaning "unlimited".
func (b *Bag) Truncate(n int) {
	if n <= 0 || len(b.items) <= n {
		return
	}
	b.items = b.items[:n]
}
