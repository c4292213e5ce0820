package magnet

import "sort"

// IsIsomorphic reports whether a label-preserving bijection exists between
// the places and between the transitions of a and b that preserves the flow
// relation. The predicate is existential: any one witness bijection
// suffices. Markings are not compared; refinement preserves structure, not
// token placement.
func IsIsomorphic(a, b *Net) bool {
	if len(a.Places) != len(b.Places) ||
		len(a.Transitions) != len(b.Transitions) ||
		len(a.Arcs) != len(b.Arcs) {
		return false
	}
	ca := refineColors(a)
	cb := refineColors(b)
	if !samePartition(ca, cb) {
		return false
	}

	// Candidates per node of a are the b nodes in the same color class.
	candidates := make(map[string][]string, len(cb))
	for id, c := range cb {
		candidates[c] = append(candidates[c], id)
	}
	for c := range candidates {
		sort.Strings(candidates[c])
	}

	// Most constrained first: smallest candidate class, then id for
	// determinism.
	order := make([]string, 0, len(ca))
	for id := range ca {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		ci, cj := len(candidates[ca[order[i]]]), len(candidates[ca[order[j]]])
		if ci != cj {
			return ci < cj
		}
		return order[i] < order[j]
	})

	m := &matcher{a: a, b: b, colors: ca, candidates: candidates, mapping: map[string]string{}, used: map[string]bool{}}
	return m.extend(order)
}

type matcher struct {
	a, b       *Net
	colors     map[string]string
	candidates map[string][]string
	mapping    map[string]string
	used       map[string]bool
}

func (m *matcher) extend(remaining []string) bool {
	if len(remaining) == 0 {
		return true
	}
	x := remaining[0]
	for _, y := range m.candidates[m.colors[x]] {
		if m.used[y] || !m.consistent(x, y) {
			continue
		}
		m.mapping[x] = y
		m.used[y] = true
		if m.extend(remaining[1:]) {
			return true
		}
		delete(m.mapping, x)
		delete(m.used, y)
	}
	return false
}

// consistent checks that pairing x with y agrees with the flow relation
// against every node already mapped.
func (m *matcher) consistent(x, y string) bool {
	for ax, by := range m.mapping {
		if m.a.HasArc(x, ax) != m.b.HasArc(y, by) {
			return false
		}
		if m.a.HasArc(ax, x) != m.b.HasArc(by, y) {
			return false
		}
	}
	return true
}

// samePartition reports whether the two color maps induce identical
// class-size multisets; a mismatch refutes isomorphism without search.
func samePartition(ca, cb map[string]string) bool {
	count := func(cc map[string]string) map[string]int {
		out := map[string]int{}
		for _, c := range cc {
			out[c]++
		}
		return out
	}
	na, nb := count(ca), count(cb)
	if len(na) != len(nb) {
		return false
	}
	for c, k := range na {
		if nb[c] != k {
			return false
		}
	}
	return true
}
