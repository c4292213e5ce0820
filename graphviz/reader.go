package graphviz

import (
	"io"

	"github.com/goccy/go-graphviz/cgraph"

	"github.com/jt05610/magnet"
)

// Reader recovers a net from a graphviz document produced by Writer. Shape
// and style attributes carry the node kinds and markings.
type Reader struct {
	g           *cgraph.Graph
	places      []*magnet.Place
	transitions []*magnet.Transition
	arcs        []*magnet.Arc
	initial     magnet.Marking
	final       magnet.Marking
}

func (r *Reader) Load(reader io.Reader) (*magnet.Net, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	r.g, err = cgraph.ParseBytes(bytes)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.g.Close()
	}()

	node := r.g.FirstNode()
	for node != nil {
		switch node.Get("shape") {
		case "circle", "doublecircle":
			p := &magnet.Place{ID: node.Name(), Label: node.Get("label")}
			r.places = append(r.places, p)
			if node.Get("shape") == "doublecircle" {
				r.final.Add(p.ID)
			}
			if node.Get("style") == "filled" {
				r.initial.Add(p.ID)
			}
		case "box":
			r.transitions = append(r.transitions, &magnet.Transition{
				ID:    node.Name(),
				Label: node.Get("label"),
			})
		}
		node = r.g.NextNode(node)
	}

	seen := make(map[string]bool)
	for n := r.g.FirstNode(); n != nil; n = r.g.NextNode(n) {
		for edge := r.g.FirstOut(n); edge != nil; edge = r.g.NextOut(edge) {
			if seen[edge.Name()] {
				continue
			}
			seen[edge.Name()] = true
			r.arcs = append(r.arcs, &magnet.Arc{
				Src:  n.Name(),
				Dest: edge.Node().Name(),
			})
		}
	}

	name := r.g.Name()
	if name == "" {
		name = "net"
	}
	return magnet.New(name, r.places, r.transitions, r.arcs, r.initial, r.final)
}

func Loader() *Reader {
	return &Reader{
		places:      make([]*magnet.Place, 0),
		transitions: make([]*magnet.Transition, 0),
		arcs:        make([]*magnet.Arc, 0),
		initial:     magnet.NewMarking(),
		final:       magnet.NewMarking(),
	}
}
