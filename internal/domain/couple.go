package domain

// Couple is an unordered pair of person names, stored canonically with
// First <= Second so (a,b) and (b,a) collapse to the same key. A couple
// whose two names are equal is degenerate; degenerate couples are kept so
// candidate indexing stays uniform but can never be assigned.
type Couple struct {
	First  string
	Second string
}

func NewCouple(a, b string) Couple {
	if b < a {
		a, b = b, a
	}
	return Couple{First: a, Second: b}
}

// Degenerate reports whether the couple pairs a person with itself.
func (c Couple) Degenerate() bool { return c.First == c.Second }

// Contains reports whether the given person belongs to the couple.
func (c Couple) Contains(name string) bool {
	return c.First == name || c.Second == name
}

// Share is what an assigned couple has in common: the slots both members
// are free on and the AND of their sector masks.
type Share struct {
	Slots  []int
	Sector int
}

// Assignment maps each assigned couple to its shared availability and
// sector. Invariant: every person appears in at most one assigned couple.
type Assignment map[Couple]Share
