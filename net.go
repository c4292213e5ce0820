// Package magnet models generalized workflow nets (GWF-nets) for
// multi-agent process discovery. Nets are immutable value snapshots:
// every operation that changes structure returns a new net.
package magnet

type NodeKind int

const (
	PlaceNode NodeKind = iota
	TransitionNode
)

func (k NodeKind) String() string {
	if k == PlaceNode {
		return "place"
	}
	return "transition"
}

type Node interface {
	Kind() NodeKind
	Identifier() string
	// Interaction returns the interaction label, or "" for a local node.
	Interaction() string
}

// Place is a condition node. Label, when set, names a shared interaction
// point (message channel) identified across participant nets by Merge.
type Place struct {
	ID    string
	Label string
}

func NewPlace(id string, label ...string) *Place {
	l := ""
	if len(label) > 0 {
		l = label[0]
	}
	return &Place{ID: id, Label: l}
}

func (p *Place) Kind() NodeKind      { return PlaceNode }
func (p *Place) Identifier() string  { return p.ID }
func (p *Place) Interaction() string { return p.Label }
func (p *Place) String() string      { return p.ID }

// Transition is an action node. Label, when set, carries the interaction
// role: "x!" sends over channel x, "x?" receives, and any other label is a
// synchronous action shared by every participant declaring it.
type Transition struct {
	ID    string
	Label string
}

func NewTransition(id string, label ...string) *Transition {
	l := ""
	if len(label) > 0 {
		l = label[0]
	}
	return &Transition{ID: id, Label: l}
}

func (t *Transition) Kind() NodeKind      { return TransitionNode }
func (t *Transition) Identifier() string  { return t.ID }
func (t *Transition) Interaction() string { return t.Label }
func (t *Transition) String() string      { return t.ID }

// Arc is one element of the flow relation, held as an id pair rather than
// node pointers so that derived nets can share node values freely.
type Arc struct {
	Src  string
	Dest string
}

func NewArc(src, dest Node) *Arc {
	return &Arc{Src: src.Identifier(), Dest: dest.Identifier()}
}

// Net is a bipartite net with set-valued initial and final markings.
type Net struct {
	ID          string
	Places      []*Place
	Transitions []*Transition
	Arcs        []*Arc
	Initial     Marking
	Final       Marking

	index   map[string]Node
	inputs  map[string][]*Arc
	outputs map[string][]*Arc
}

// New validates the bipartite flow-relation invariant and that every arc
// and marking references a declared node, and builds the arc indices.
func New(id string, places []*Place, transitions []*Transition, arcs []*Arc, initial, final Marking) (*Net, error) {
	n := &Net{
		ID:          id,
		Places:      places,
		Transitions: transitions,
		Arcs:        arcs,
		Initial:     initial.Clone(),
		Final:       final.Clone(),
		index:       make(map[string]Node, len(places)+len(transitions)),
		inputs:      make(map[string][]*Arc),
		outputs:     make(map[string][]*Arc),
	}
	for _, p := range places {
		if _, ok := n.index[p.ID]; ok {
			return nil, &InvalidNetError{NetID: id, Reason: "duplicate node id " + p.ID}
		}
		n.index[p.ID] = p
	}
	for _, t := range transitions {
		if _, ok := n.index[t.ID]; ok {
			return nil, &InvalidNetError{NetID: id, Reason: "duplicate node id " + t.ID}
		}
		n.index[t.ID] = t
	}
	for _, a := range arcs {
		src, ok := n.index[a.Src]
		if !ok {
			return nil, &InvalidNetError{NetID: id, Reason: "arc references undeclared node " + a.Src}
		}
		dest, ok := n.index[a.Dest]
		if !ok {
			return nil, &InvalidNetError{NetID: id, Reason: "arc references undeclared node " + a.Dest}
		}
		if src.Kind() == dest.Kind() {
			return nil, &InvalidNetError{NetID: id, Reason: "arc " + a.Src + " > " + a.Dest + " connects two " + src.Kind().String() + "s"}
		}
		n.outputs[a.Src] = append(n.outputs[a.Src], a)
		n.inputs[a.Dest] = append(n.inputs[a.Dest], a)
	}
	for _, m := range []Marking{n.Initial, n.Final} {
		for id := range m {
			node, ok := n.index[id]
			if !ok || node.Kind() != PlaceNode {
				return nil, &InvalidNetError{NetID: n.ID, Reason: "marking references " + id + " which is not a declared place"}
			}
		}
	}
	return n, nil
}

func (n *Net) Node(id string) Node { return n.index[id] }

func (n *Net) Place(id string) *Place {
	if p, ok := n.index[id].(*Place); ok {
		return p
	}
	return nil
}

func (n *Net) Transition(id string) *Transition {
	if t, ok := n.index[id].(*Transition); ok {
		return t
	}
	return nil
}

func (n *Net) Inputs(id string) []*Arc  { return n.inputs[id] }
func (n *Net) Outputs(id string) []*Arc { return n.outputs[id] }

func (n *Net) HasArc(src, dest string) bool {
	for _, a := range n.outputs[src] {
		if a.Dest == dest {
			return true
		}
	}
	return false
}

// AddMarkings returns a copy of n whose initial marking is the set of
// places without incoming arcs and whose final marking is the set of places
// without outgoing arcs. Used after a Merge when the template does not
// carry explicit markings.
func AddMarkings(n *Net) *Net {
	initial := Marking{}
	final := Marking{}
	for _, p := range n.Places {
		if len(n.inputs[p.ID]) == 0 {
			initial.Add(p.ID)
		}
		if len(n.outputs[p.ID]) == 0 {
			final.Add(p.ID)
		}
	}
	out, err := New(n.ID, n.Places, n.Transitions, n.Arcs, initial, final)
	if err != nil {
		// n already passed validation; remarking cannot invalidate it.
		panic(err)
	}
	return out
}
