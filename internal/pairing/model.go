package pairing

import (
	"fmt"
	"visit-planner-service/internal/domain"
)

// Candidate is one boolean decision in the pairing model: "this couple is
// assigned". Degenerate self-pairs and pairs without common availability or
// sector are forced off before the search starts.
type Candidate struct {
	Couple domain.Couple
	Shared domain.Share

	// forcedOff pins the decision to false (degenerate pair, empty slot
	// intersection or zero sector overlap).
	forcedOff bool

	// weight is the candidate's contribution to the objective:
	// maxShared + len(Shared.Slots). Zero for forced-off candidates.
	weight int
}

// Model is the constraint model shared by both solve phases: one candidate
// per unordered pair (self-pairs included, forced off), an at-most-one
// constraint per person, and a linear satisfaction objective.
type Model struct {
	persons    []domain.Person
	candidates []Candidate

	// maxShared is the largest shared-slot count over all candidates; the
	// per-pair constant bonus that makes forming any couple dominate
	// slot-richness in the objective.
	maxShared int
}

// CreateCouples enumerates every unordered pair over the person set,
// including one degenerate self-pair per person. The canonical Couple key
// collapses (a,b)/(b,a) duplicates, so the result has exactly C(n,2)+n
// entries.
func CreateCouples(persons []domain.Person) []domain.Couple {
	couples := make([]domain.Couple, 0, len(persons)*(len(persons)+1)/2)
	for i := range persons {
		for j := i; j < len(persons); j++ {
			couples = append(couples, domain.NewCouple(persons[i].Name, persons[j].Name))
		}
	}
	return couples
}

// BuildModel constructs the shared model for a person set.
//
// Person names must be unique and non-empty: they are the identities the
// at-most-one constraints are expressed over, so a collision would silently
// merge two different people into one constraint.
func BuildModel(persons []domain.Person) (*Model, error) {
	if len(persons) == 0 {
		return nil, fmt.Errorf("build pairing model: empty person set")
	}

	byName := make(map[string]domain.Person, len(persons))
	for _, p := range persons {
		if p.Name == "" {
			return nil, fmt.Errorf("build pairing model: person with empty name")
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("build pairing model: duplicate person name %q", p.Name)
		}
		byName[p.Name] = p
	}

	couples := CreateCouples(persons)
	candidates := make([]Candidate, 0, len(couples))
	maxShared := 0

	for _, c := range couples {
		cand := Candidate{Couple: c}

		if c.Degenerate() {
			// A person cannot be coupled with itself.
			cand.forcedOff = true
			candidates = append(candidates, cand)
			continue
		}

		p1 := byName[c.First]
		p2 := byName[c.Second]
		cand.Shared = domain.Share{
			Slots:  p1.SharedSlots(p2),
			Sector: p1.SharedSector(p2),
		}

		// No sector in common or no availability in common: the couple
		// cannot happen.
		if cand.Shared.Sector == 0 || len(cand.Shared.Slots) == 0 {
			cand.forcedOff = true
		}

		if n := len(cand.Shared.Slots); n > maxShared {
			maxShared = n
		}
		candidates = append(candidates, cand)
	}

	m := &Model{
		persons:    persons,
		candidates: candidates,
		maxShared:  maxShared,
	}
	for i := range m.candidates {
		if !m.candidates[i].forcedOff {
			m.candidates[i].weight = m.maxShared + len(m.candidates[i].Shared.Slots)
		}
	}
	return m, nil
}

// Candidates returns the full candidate list, forced-off entries included.
func (m *Model) Candidates() []Candidate { return m.candidates }

// MaxShared returns the per-pair constant bonus of the objective.
func (m *Model) MaxShared() int { return m.maxShared }

// assignment materializes the chosen candidate indices into the couple ->
// shared availability/sector mapping handed back to callers.
func (m *Model) assignment(picked []int) domain.Assignment {
	out := make(domain.Assignment, len(picked))
	for _, idx := range picked {
		c := m.candidates[idx]
		out[c.Couple] = c.Shared
	}
	return out
}
