package pairing

import (
	"context"
	"sort"
)

// The search below is an exact depth-first branch-and-bound over the pair
// decision variables. Candidates are visited in weight-descending order and
// pruned against suffix weight sums, which keeps the tree small for the
// volunteer pool sizes this runs on (tens of persons). Ordering among
// enumerated solutions is an implementation detail callers must not rely
// on.

// checkEvery bounds how often the search polls the context.
const checkEvery = 1024

type searcher struct {
	model *Model

	// order holds the searchable (not forced-off) candidate indices,
	// sorted by descending weight with the couple key as tie-break so
	// repeated solves expand nodes identically.
	order  []int
	suffix []int

	used     map[string]bool
	nodes    int
	maxNodes int
	ctx      context.Context
	aborted  bool
}

func newSearcher(ctx context.Context, m *Model, maxNodes int) *searcher {
	order := make([]int, 0, len(m.candidates))
	for i, c := range m.candidates {
		if !c.forcedOff {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := m.candidates[order[a]], m.candidates[order[b]]
		if ca.weight != cb.weight {
			return ca.weight > cb.weight
		}
		if ca.Couple.First != cb.Couple.First {
			return ca.Couple.First < cb.Couple.First
		}
		return ca.Couple.Second < cb.Couple.Second
	})

	suffix := make([]int, len(order)+1)
	for k := len(order) - 1; k >= 0; k-- {
		suffix[k] = suffix[k+1] + m.candidates[order[k]].weight
	}

	return &searcher{
		model:    m,
		order:    order,
		suffix:   suffix,
		used:     make(map[string]bool),
		maxNodes: maxNodes,
		ctx:      ctx,
	}
}

func (s *searcher) visit() bool {
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.aborted = true
		return false
	}
	if s.nodes%checkEvery == 0 && s.ctx.Err() != nil {
		s.aborted = true
		return false
	}
	return true
}

func (s *searcher) free(idx int) bool {
	c := s.model.candidates[idx].Couple
	return !s.used[c.First] && !s.used[c.Second]
}

func (s *searcher) take(idx int) {
	c := s.model.candidates[idx].Couple
	s.used[c.First] = true
	s.used[c.Second] = true
}

func (s *searcher) release(idx int) {
	c := s.model.candidates[idx].Couple
	s.used[c.First] = false
	s.used[c.Second] = false
}

// maximize finds the best achievable objective value and one assignment
// reaching it. complete is false when the node budget or the context cut
// the search short; bestPicked then holds the incumbent, if any.
func (s *searcher) maximize() (bestValue int, bestPicked []int, complete bool) {
	// The empty assignment is always feasible: start from objective 0.
	bestValue = 0
	bestPicked = []int{}

	var picked []int
	var dfs func(k, value int)
	dfs = func(k, value int) {
		if s.aborted || !s.visit() {
			return
		}
		if value > bestValue {
			bestValue = value
			bestPicked = append([]int(nil), picked...)
		}
		if k == len(s.order) {
			return
		}
		// All remaining weight cannot beat the incumbent.
		if value+s.suffix[k] <= bestValue {
			return
		}

		idx := s.order[k]
		if s.free(idx) {
			s.take(idx)
			picked = append(picked, idx)
			dfs(k+1, value+s.model.candidates[idx].weight)
			picked = picked[:len(picked)-1]
			s.release(idx)
		}
		dfs(k+1, value)
	}
	dfs(0, 0)

	return bestValue, bestPicked, !s.aborted
}

// enumerate walks every assignment whose objective equals target and hands
// the chosen candidate indices to emit, one call per solution. emit
// returning false stops the search early (solution cap). The return values
// distinguish an exhausted search from a truncated one.
func (s *searcher) enumerate(target int, emit func(picked []int) bool) (count int, complete bool) {
	stopped := false

	var picked []int
	var dfs func(k, value int)
	dfs = func(k, value int) {
		if stopped || s.aborted || !s.visit() {
			return
		}
		// Weights are positive: overshoot or unreachable target prunes.
		if value > target || value+s.suffix[k] < target {
			return
		}
		if k == len(s.order) {
			if value == target {
				count++
				if !emit(append([]int(nil), picked...)) {
					stopped = true
				}
			}
			return
		}

		idx := s.order[k]
		if s.free(idx) {
			s.take(idx)
			picked = append(picked, idx)
			dfs(k+1, value+s.model.candidates[idx].weight)
			picked = picked[:len(picked)-1]
			s.release(idx)
		}
		dfs(k+1, value)
	}
	dfs(0, 0)

	return count, !s.aborted && !stopped
}
