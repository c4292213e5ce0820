package magnet

import (
	"fmt"
	"strings"
)

// Merge forms the disjoint union of the given nets, namespacing node ids
// per source net, then identifies shared interaction points:
//
//   - places declaring the same interaction label collapse into one place,
//   - transitions declaring the same synchronization label collapse into
//     one transition,
//   - each send/receive pair x!/x? is joined through the channel place
//     labeled x, which is materialized when no net declared it.
//
// Merging a single net is an id-relabeling, so the result is isomorphic to
// its input. Markings are the union of the source markings.
func Merge(nets []*Net) (*Net, error) {
	if len(nets) == 0 {
		return nil, &InvalidNetError{Reason: "nothing to merge"}
	}

	var (
		places      []*Place
		transitions []*Transition
		arcs        []*Arc
		initial     = Marking{}
		final       = Marking{}
		byLabel     = map[string]*Place{}      // interaction label -> shared place
		syncs       = map[string]*Transition{} // sync label -> shared transition
		arcSeen     = map[string]bool{}
		names       []string
	)

	addArc := func(src, dest string) {
		key := src + ">" + dest
		if arcSeen[key] {
			return
		}
		arcSeen[key] = true
		arcs = append(arcs, &Arc{Src: src, Dest: dest})
	}

	for i, n := range nets {
		prefix := n.ID
		if prefix == "" {
			prefix = fmt.Sprintf("n%d", i)
		}
		names = append(names, prefix)
		rename := make(map[string]string, len(n.Places)+len(n.Transitions))

		for _, p := range n.Places {
			if p.Label != "" {
				shared, ok := byLabel[p.Label]
				if !ok {
					shared = &Place{ID: "ch." + p.Label, Label: p.Label}
					byLabel[p.Label] = shared
					places = append(places, shared)
				}
				rename[p.ID] = shared.ID
				continue
			}
			np := &Place{ID: prefix + "." + p.ID}
			rename[p.ID] = np.ID
			places = append(places, np)
		}
		for _, t := range n.Transitions {
			if sync := syncLabel(t.Label); sync != "" {
				shared, ok := syncs[sync]
				if !ok {
					shared = &Transition{ID: "sync." + sync, Label: sync}
					syncs[sync] = shared
					transitions = append(transitions, shared)
				}
				rename[t.ID] = shared.ID
				continue
			}
			nt := &Transition{ID: prefix + "." + t.ID, Label: t.Label}
			rename[t.ID] = nt.ID
			transitions = append(transitions, nt)
		}
		for _, a := range n.Arcs {
			addArc(rename[a.Src], rename[a.Dest])
		}
		for id := range n.Initial {
			initial.Add(rename[id])
		}
		for id := range n.Final {
			final.Add(rename[id])
		}
	}

	// Join x! senders to x? receivers through the channel place labeled x.
	for _, t := range transitions {
		ch, ok := strings.CutSuffix(t.Label, "!")
		if !ok || ch == "" {
			continue
		}
		place, found := byLabel[ch]
		if !found {
			place = &Place{ID: "ch." + ch, Label: ch}
			byLabel[ch] = place
			places = append(places, place)
		}
		addArc(t.ID, place.ID)
		for _, r := range transitions {
			if r.Label == ch+"?" {
				addArc(place.ID, r.ID)
			}
		}
	}

	return New(strings.Join(names, "+"), places, transitions, arcs, initial, final)
}

// syncLabel reports the synchronization label of a transition, which is any
// non-empty interaction label that is not a send or a receive.
func syncLabel(label string) string {
	if label == "" || strings.HasSuffix(label, "!") || strings.HasSuffix(label, "?") {
		return ""
	}
	return label
}
