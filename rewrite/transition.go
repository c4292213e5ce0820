package rewrite

import (
	"errors"

	"github.com/jt05610/magnet"
)

// TransitionDuplication expands a transition into two parallel transitions
// sharing its input and output places and carrying the same label.
var TransitionDuplication = &Rule{
	name:       "transition-duplication",
	anchor:     magnet.TransitionNode,
	applicable: anchorTransition,
	apply: func(n *magnet.Net, anchor string) (*magnet.Net, error) {
		t := n.Transition(anchor)
		t1 := &magnet.Transition{ID: freshID(n, anchor+"_1"), Label: t.Label}
		t2 := &magnet.Transition{ID: freshID(n, anchor+"_2"), Label: t.Label}
		var arcs []*magnet.Arc
		for _, a := range n.Inputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: a.Src, Dest: t1.ID}, &magnet.Arc{Src: a.Src, Dest: t2.ID})
		}
		for _, a := range n.Outputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: t1.ID, Dest: a.Dest}, &magnet.Arc{Src: t2.ID, Dest: a.Dest})
		}
		return rebuild(n, drop(anchor), nil, []*magnet.Transition{t1, t2}, arcs, n.Initial, n.Final)
	},
}

// TransitionMerge contracts the anchor transition with a structural twin
// carrying the same label and neighborhoods. Inverse of duplication.
var TransitionMerge = &Rule{
	name:   "transition-merge",
	anchor: magnet.TransitionNode,
	applicable: func(n *magnet.Net, anchor string) error {
		if err := anchorTransition(n, anchor); err != nil {
			return err
		}
		if twinTransition(n, anchor) == "" {
			return errors.New("no structural twin to merge with")
		}
		return nil
	},
	apply: func(n *magnet.Net, anchor string) (*magnet.Net, error) {
		twin := twinTransition(n, anchor)
		t := n.Transition(anchor)
		merged := &magnet.Transition{ID: freshID(n, anchor+"_m"), Label: t.Label}
		var arcs []*magnet.Arc
		for _, a := range n.Inputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: a.Src, Dest: merged.ID})
		}
		for _, a := range n.Outputs(anchor) {
			arcs = append(arcs, &magnet.Arc{Src: merged.ID, Dest: a.Dest})
		}
		return rebuild(n, drop(anchor, twin), nil, []*magnet.Transition{merged}, arcs, n.Initial, n.Final)
	},
}

func anchorTransition(n *magnet.Net, anchor string) error {
	if n.Transition(anchor) == nil {
		return errors.New("anchor is not a transition of the net")
	}
	return nil
}

func twinTransition(n *magnet.Net, anchor string) string {
	t := n.Transition(anchor)
	twin := ""
	for _, u := range n.Transitions {
		if u.ID == anchor || u.Label != t.Label {
			continue
		}
		if sameEnds(n.Inputs(anchor), n.Inputs(u.ID), func(a *magnet.Arc) string { return a.Src }) &&
			sameEnds(n.Outputs(anchor), n.Outputs(u.ID), func(a *magnet.Arc) string { return a.Dest }) {
			if twin == "" || u.ID < twin {
				twin = u.ID
			}
		}
	}
	return twin
}
