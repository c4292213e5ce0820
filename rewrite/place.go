package rewrite

import (
	"errors"
	"sort"

	"github.com/jt05610/magnet"
)

// PlaceDuplication expands a place into two parallel places sharing its
// input and output transitions. If the place is marked, both copies are.
// Interaction-labeled places stay whole: duplicating one would leave two
// places Merge fuses back into a single channel.
var PlaceDuplication = &Rule{
	name:       "place-duplication",
	anchor:     magnet.PlaceNode,
	applicable: unlabeledPlace,
	apply: func(n *magnet.Net, anchor string) (*magnet.Net, error) {
		p1 := &magnet.Place{ID: freshID(n, anchor+"_1")}
		p2 := &magnet.Place{ID: freshID(n, anchor+"_2")}
		var arcs []*magnet.Arc
		for _, a := range n.Inputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: a.Src, Dest: p1.ID}, &magnet.Arc{Src: a.Src, Dest: p2.ID})
		}
		for _, a := range n.Outputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: p1.ID, Dest: a.Dest}, &magnet.Arc{Src: p2.ID, Dest: a.Dest})
		}
		initial := replaceMark(n.Initial, anchor, p1.ID, p2.ID)
		final := replaceMark(n.Final, anchor, p1.ID, p2.ID)
		return rebuild(n, drop(anchor), []*magnet.Place{p1, p2}, nil, arcs, initial, final)
	},
}

// LocalTransition expands a place into place -> silent transition -> place.
// Inputs keep feeding the first place, outputs drain the second; initial
// membership moves to the first copy and final membership to the second.
// Channel places are excluded: Merge joins senders and receivers directly
// through the labeled place, so stretching one would be undone there.
var LocalTransition = &Rule{
	name:       "local-transition",
	anchor:     magnet.PlaceNode,
	applicable: unlabeledPlace,
	apply: func(n *magnet.Net, anchor string) (*magnet.Net, error) {
		p1 := &magnet.Place{ID: freshID(n, anchor+"_1")}
		p2 := &magnet.Place{ID: freshID(n, anchor+"_2")}
		t := &magnet.Transition{ID: freshID(n, anchor+"_t")}
		arcs := []*magnet.Arc{{Src: p1.ID, Dest: t.ID}, {Src: t.ID, Dest: p2.ID}}
		for _, a := range n.Inputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: a.Src, Dest: p1.ID})
		}
		for _, a := range n.Outputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: p2.ID, Dest: a.Dest})
		}
		initial := replaceMark(n.Initial, anchor, p1.ID)
		final := replaceMark(n.Final, anchor, p2.ID)
		return rebuild(n, drop(anchor), []*magnet.Place{p1, p2}, []*magnet.Transition{t}, arcs, initial, final)
	},
}

// PlaceSplit divides a place with several input transitions into two
// places, partitioning the inputs and sharing the outputs. Of the possible
// input partitions, only the canonical one is generated: inputs sorted by
// source id and cut in half. Targets needing a different partition of three
// or more inputs are reached through repeated splits or not at all.
var PlaceSplit = &Rule{
	name:   "place-split",
	anchor: magnet.PlaceNode,
	applicable: func(n *magnet.Net, anchor string) error {
		if err := unlabeledPlace(n, anchor); err != nil {
			return err
		}
		if len(n.Inputs(anchor)) < 2 {
			return errors.New("needs at least two input transitions")
		}
		return nil
	},
	apply: func(n *magnet.Net, anchor string) (*magnet.Net, error) {
		p1 := &magnet.Place{ID: freshID(n, anchor+"_1")}
		p2 := &magnet.Place{ID: freshID(n, anchor+"_2")}
		in := append([]*magnet.Arc(nil), n.Inputs(anchor)...)
		sort.Slice(in, func(i, j int) bool { return in[i].Src < in[j].Src })
		var arcs []*magnet.Arc
		half := len(in) / 2
		for i, a := range in {
			dest := p1.ID
			if i >= half {
				dest = p2.ID
			}
			arcs = append(arcs, &magnet.Arc{Src: a.Src, Dest: dest})
		}
		for _, a := range n.Outputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: p1.ID, Dest: a.Dest}, &magnet.Arc{Src: p2.ID, Dest: a.Dest})
		}
		initial := replaceMark(n.Initial, anchor, p1.ID, p2.ID)
		final := replaceMark(n.Final, anchor, p1.ID, p2.ID)
		return rebuild(n, drop(anchor), []*magnet.Place{p1, p2}, nil, arcs, initial, final)
	},
}

// PlaceMerge contracts the anchor place with a structural twin: another
// place fed by the same transitions and draining into the same transitions.
// It is the inverse of PlaceDuplication.
var PlaceMerge = &Rule{
	name:   "place-merge",
	anchor: magnet.PlaceNode,
	applicable: func(n *magnet.Net, anchor string) error {
		if err := unlabeledPlace(n, anchor); err != nil {
			return err
		}
		if twinPlace(n, anchor) == "" {
			return errors.New("no structural twin to merge with")
		}
		return nil
	},
	apply: func(n *magnet.Net, anchor string) (*magnet.Net, error) {
		twin := twinPlace(n, anchor)
		merged := &magnet.Place{ID: freshID(n, anchor+"_m")}
		var arcs []*magnet.Arc
		for _, a := range n.Inputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: a.Src, Dest: merged.ID})
		}
		for _, a := range n.Outputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: merged.ID, Dest: a.Dest})
		}
		initial := mergeMark(n.Initial, anchor, twin, merged.ID)
		final := mergeMark(n.Final, anchor, twin, merged.ID)
		return rebuild(n, drop(anchor, twin), []*magnet.Place{merged}, nil, arcs, initial, final)
	},
}

func anchorPlace(n *magnet.Net, anchor string) error {
	if n.Place(anchor) == nil {
		return errors.New("anchor is not a place of the net")
	}
	return nil
}

// unlabeledPlace additionally rejects interaction-labeled anchors. Rules
// that copy or contract places must leave every interaction label on
// exactly one place, or label fusion collapses the result under Merge.
func unlabeledPlace(n *magnet.Net, anchor string) error {
	if err := anchorPlace(n, anchor); err != nil {
		return err
	}
	if n.Place(anchor).Label != "" {
		return errors.New("anchor carries an interaction label")
	}
	return nil
}

// twinPlace finds the lexically smallest place sharing the anchor's exact
// input and output neighborhoods and interaction label.
func twinPlace(n *magnet.Net, anchor string) string {
	p := n.Place(anchor)
	twin := ""
	for _, q := range n.Places {
		if q.ID == anchor || q.Label != p.Label {
			continue
		}
		if sameEnds(n.Inputs(anchor), n.Inputs(q.ID), func(a *magnet.Arc) string { return a.Src }) &&
			sameEnds(n.Outputs(anchor), n.Outputs(q.ID), func(a *magnet.Arc) string { return a.Dest }) {
			if twin == "" || q.ID < twin {
				twin = q.ID
			}
		}
	}
	return twin
}

func sameEnds(a, b []*magnet.Arc, end func(*magnet.Arc) string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, x := range a {
		set[end(x)] = true
	}
	for _, y := range b {
		if !set[end(y)] {
			return false
		}
	}
	return true
}

func drop(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// replaceMark moves the anchor's membership in a marking to its
// replacement places.
func replaceMark(m magnet.Marking, anchor string, with ...string) magnet.Marking {
	out := m.Clone()
	if !out.Has(anchor) {
		return out
	}
	delete(out, anchor)
	for _, id := range with {
		out.Add(id)
	}
	return out
}

// mergeMark marks the merged place when either source place was marked.
func mergeMark(m magnet.Marking, a, b, merged string) magnet.Marking {
	out := m.Clone()
	marked := out.Has(a) || out.Has(b)
	delete(out, a)
	delete(out, b)
	if marked {
		out.Add(merged)
	}
	return out
}
