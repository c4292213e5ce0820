package magnet

import "sort"

// Marking is a set of marked places. GWF-nets allow several initial and
// final places, so markings are sets rather than single nodes.
type Marking map[string]struct{}

func NewMarking(ids ...string) Marking {
	m := make(Marking, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func (m Marking) Has(id string) bool {
	_, ok := m[id]
	return ok
}

func (m Marking) Add(id string) { m[id] = struct{}{} }

func (m Marking) Clone() Marking {
	out := make(Marking, len(m))
	for id := range m {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the marked place ids in lexical order.
func (m Marking) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
