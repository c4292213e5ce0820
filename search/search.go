// Package search decides structural refinement: whether a target net is
// reachable from a start net through a finite sequence of the rewrite
// rules. The search is a bounded breadth-first walk over rule applications
// with canonical-hash deduplication and isomorphism as the goal test.
package search

import (
	"fmt"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/rewrite"
)

// Step records one applied (rule, anchor) pair of a witness path.
type Step struct {
	Rule   string `json:"rule"`
	Anchor string `json:"anchor"`
}

func (s Step) String() string { return s.Rule + "@" + s.Anchor }

// Witness is a successful refinement decision: the steps that rewrite the
// start net into a net isomorphic to the target. The witness is whichever
// path the search finds first; callers must not rely on it being shortest.
type Witness struct {
	Steps    []Step
	Explored int
}

// Limits bound the search. The state space is exponential in the worst
// case, so a budget is a mandatory parameter rather than a tuning knob.
type Limits struct {
	// MaxDepth bounds the length of candidate witness paths.
	MaxDepth int
	// MaxStates bounds the number of distinct states generated.
	MaxStates int
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = 6
	}
	if l.MaxStates <= 0 {
		l.MaxStates = 50000
	}
	return l
}

// NotRefinementError: the frontier was exhausted without reaching the
// target, refuting refinement under the given rules.
type NotRefinementError struct {
	Explored int
	Last     Step
}

func (e *NotRefinementError) Error() string {
	return fmt.Sprintf("not a refinement: frontier exhausted after %d states (last step %s)", e.Explored, e.Last)
}

// BudgetExceededError: the depth or expansion budget was reached before the
// frontier was exhausted. The refinement question stays undecided; retry
// with a larger budget.
type BudgetExceededError struct {
	Explored int
	Depth    int
	Last     Step
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("search budget exceeded at depth %d after %d states (last step %s)", e.Depth, e.Explored, e.Last)
}

type state struct {
	net  *magnet.Net
	path []Step
}

// Refine runs the bounded BFS from start toward a net isomorphic to
// target. Inapplicable (rule, anchor) pairs are skipped silently; states
// are deduplicated by canonical hash, which also pre-filters goal tests.
func Refine(start, target *magnet.Net, rules []*rewrite.Rule, limits Limits) (*Witness, error) {
	limits = limits.withDefaults()

	if magnet.IsIsomorphic(start, target) {
		return &Witness{Steps: []Step{}, Explored: 1}, nil
	}

	targetHash := magnet.CanonicalHash(target)
	visited := map[string]bool{magnet.CanonicalHash(start): true}
	frontier := []*state{{net: start}}
	explored := 1
	var last Step

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= limits.MaxDepth {
			return nil, &BudgetExceededError{Explored: explored, Depth: depth, Last: last}
		}
		var next []*state
		for _, s := range frontier {
			for _, r := range rules {
				for _, anchor := range anchors(s.net, r) {
					if !r.Applicable(s.net, anchor) {
						continue
					}
					derived, err := r.Refine(s.net, anchor)
					if err != nil {
						// The constraint can fail between the check and the
						// rewrite only through rule bugs; treat as
						// inapplicable either way.
						continue
					}
					h := magnet.CanonicalHash(derived)
					if visited[h] {
						continue
					}
					visited[h] = true
					explored++
					step := Step{Rule: r.Name(), Anchor: anchor}
					last = step
					path := append(append([]Step{}, s.path...), step)
					if h == targetHash && magnet.IsIsomorphic(derived, target) {
						return &Witness{Steps: path, Explored: explored}, nil
					}
					if explored >= limits.MaxStates {
						return nil, &BudgetExceededError{Explored: explored, Depth: depth + 1, Last: step}
					}
					next = append(next, &state{net: derived, path: path})
				}
			}
		}
		frontier = next
	}
	return nil, &NotRefinementError{Explored: explored, Last: last}
}

func anchors(n *magnet.Net, r *rewrite.Rule) []string {
	if r.AnchorKind() == magnet.PlaceNode {
		out := make([]string, len(n.Places))
		for i, p := range n.Places {
			out[i] = p.ID
		}
		return out
	}
	out := make([]string, len(n.Transitions))
	for i, t := range n.Transitions {
		out[i] = t.ID
	}
	return out
}
