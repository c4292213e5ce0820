// Package rewrite holds the closed set of local, label-preserving
// structural transformations used by the refinement search. Every rule
// matches a single anchor node and its immediate neighborhood and returns a
// new net; inputs are never mutated.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/jt05610/magnet"
)

var ErrInapplicable = errors.New("transformation not applicable")

// InapplicableError reports that a rule's left-side constraint is unmet at
// the anchor. During neighborhood generation it is skipped, not surfaced.
type InapplicableError struct {
	Rule   string
	Anchor string
	Reason string
}

func (e *InapplicableError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Rule, e.Anchor, e.Reason)
}

func (e *InapplicableError) Unwrap() error { return ErrInapplicable }

// Rule is one transformation variant. The rule families are closed and
// fixed, so rules are plain values carrying their own constraint check and
// rewrite logic rather than an open interface.
type Rule struct {
	name       string
	anchor     magnet.NodeKind
	applicable func(n *magnet.Net, anchor string) error
	apply      func(n *magnet.Net, anchor string) (*magnet.Net, error)
}

func (r *Rule) Name() string               { return r.name }
func (r *Rule) AnchorKind() magnet.NodeKind { return r.anchor }

// Applicable reports whether the rule's left constraint holds at anchor.
func (r *Rule) Applicable(n *magnet.Net, anchor string) bool {
	return r.applicable(n, anchor) == nil
}

// Refine applies the rule at the anchor and returns the rewritten net.
func (r *Rule) Refine(n *magnet.Net, anchor string) (*magnet.Net, error) {
	if err := r.applicable(n, anchor); err != nil {
		return nil, &InapplicableError{Rule: r.name, Anchor: anchor, Reason: err.Error()}
	}
	return r.apply(n, anchor)
}

// Catalog returns the fixed rule set: the four place transformations and
// the two transition transformations.
func Catalog() []*Rule {
	return []*Rule{
		PlaceDuplication,
		LocalTransition,
		PlaceSplit,
		PlaceMerge,
		TransitionDuplication,
		TransitionMerge,
	}
}

// Get resolves a rule by name, for replaying recorded witness paths.
func Get(name string) (*Rule, error) {
	for _, r := range Catalog() {
		if r.name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("unknown transformation %q", name)
}

// freshID derives an id not present in the net.
func freshID(n *magnet.Net, base string) string {
	if n.Node(base) == nil {
		return base
	}
	for i := 2; ; i++ {
		id := fmt.Sprintf("%s%d", base, i)
		if n.Node(id) == nil {
			return id
		}
	}
}

// rebuild assembles a derived net: the base net minus dropped nodes (and
// every arc touching them) plus the additions. Node values are shared with
// the base net; only the containers are fresh.
func rebuild(n *magnet.Net, drop map[string]bool, places []*magnet.Place, transitions []*magnet.Transition, arcs []*magnet.Arc, initial, final magnet.Marking) (*magnet.Net, error) {
	pp := make([]*magnet.Place, 0, len(n.Places)+len(places))
	for _, p := range n.Places {
		if !drop[p.ID] {
			pp = append(pp, p)
		}
	}
	pp = append(pp, places...)
	tt := make([]*magnet.Transition, 0, len(n.Transitions)+len(transitions))
	for _, t := range n.Transitions {
		if !drop[t.ID] {
			tt = append(tt, t)
		}
	}
	tt = append(tt, transitions...)
	aa := make([]*magnet.Arc, 0, len(n.Arcs)+len(arcs))
	for _, a := range n.Arcs {
		if !drop[a.Src] && !drop[a.Dest] {
			aa = append(aa, a)
		}
	}
	aa = append(aa, arcs...)
	return magnet.New(n.ID, pp, tt, aa, initial, final)
}
