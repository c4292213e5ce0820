// Package analysis derives linear-algebraic views of a net: the incidence
// matrix, firing vectors and a bounded reachability check between markings.
package analysis

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/jt05610/magnet"
)

type Net struct {
	*magnet.Net
}

// State is a token-count vector indexed like Net.Places.
type State []float64

func (net *Net) FiringVector(t int) *mat.Dense {
	v := make([]float64, len(net.Transitions))
	v[t] = 1
	return mat.NewDense(1, len(net.Transitions), v)
}

func (net *Net) arcNet(t *magnet.Transition, p *magnet.Place) float64 {
	ret := float64(0)
	if net.HasArc(t.ID, p.ID) {
		ret += 1
	}
	if net.HasArc(p.ID, t.ID) {
		ret -= 1
	}
	return ret
}

// Incidence is the transitions-by-places token flow matrix.
func (net *Net) Incidence() *mat.Dense {
	m := len(net.Places)
	n := len(net.Transitions)
	d := make([]float64, m*n)
	for i, trans := range net.Transitions {
		for j, place := range net.Places {
			d[i*m+j] = net.arcNet(trans, place)
		}
	}
	return mat.NewDense(n, m, d)
}

// StateOf renders a set marking as a 0/1 token vector.
func (net *Net) StateOf(marking magnet.Marking) *State {
	s := make(State, len(net.Places))
	for i, p := range net.Places {
		if marking.Has(p.ID) {
			s[i] = 1
		}
	}
	return &s
}

func (net *Net) enabled(s *State, t *magnet.Transition) bool {
	for _, arc := range net.Inputs(t.ID) {
		if (*s)[net.placeIndex(arc.Src)] < 1 {
			return false
		}
	}
	return true
}

func (net *Net) placeIndex(id string) int {
	for i, p := range net.Places {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// NextState fires t if enabled, computed with the incidence matrix.
func (net *Net) NextState(state *State, t *magnet.Transition) (*State, bool) {
	if !net.enabled(state, t) {
		return nil, false
	}
	var tIndex int
	for i := range net.Transitions {
		if net.Transitions[i].ID == t.ID {
			tIndex = i
			break
		}
	}

	s := mat.NewDense(1, len(*state), *state)
	f := net.FiringVector(tIndex)

	var result mat.Dense
	result.Mul(f, net.Incidence())

	var out mat.Dense
	out.Add(s, &result)
	ret := make(State, len(*state))
	for i := range ret {
		ret[i] = out.At(0, i)
	}
	return &ret, true
}

func serializeState(s *State) string {
	var ret string
	for _, v := range *s {
		ret += strconv.Itoa(int(v))
	}
	return ret
}

// maxStates caps the reachability exploration so unbounded nets terminate.
const maxStates = 10000

// Reachable reports whether target can be reached from initial by firing
// transitions, exploring at most maxStates markings.
func (net *Net) Reachable(initial, target *State) bool {
	want := serializeState(target)
	seen := map[string]bool{serializeState(initial): true}
	frontier := []*State{initial}
	for len(frontier) > 0 && len(seen) < maxStates {
		cur := frontier[0]
		frontier = frontier[1:]
		if serializeState(cur) == want {
			return true
		}
		for _, t := range net.Transitions {
			next, ok := net.NextState(cur, t)
			if !ok {
				continue
			}
			id := serializeState(next)
			if seen[id] {
				continue
			}
			seen[id] = true
			frontier = append(frontier, next)
		}
	}
	return false
}

// FinalReachable reports whether the net's final marking is reachable from
// its initial marking.
func (net *Net) FinalReachable() bool {
	return net.Reachable(net.StateOf(net.Initial), net.StateOf(net.Final))
}
