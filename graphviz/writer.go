// Package graphviz renders nets as graphviz documents. Places draw as
// circles (doubled on final places), transitions as boxes, and initial
// places are shaded so composed markings stand out.
package graphviz

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/jt05610/magnet"
)

type Writer struct {
	*Config
	g       *cgraph.Graph
	mapping map[string]*cgraph.Node
}

func (w *Writer) writePlace(n *magnet.Net, p *magnet.Place) error {
	node, err := w.g.CreateNode(p.ID)
	if err != nil {
		return err
	}
	node.SetShape(cgraph.CircleShape)
	if n.Final.Has(p.ID) {
		node.SetShape(cgraph.DoubleCircleShape)
	}
	if n.Initial.Has(p.ID) {
		node.SetStyle(cgraph.FilledNodeStyle)
		node.Set("fillcolor", "lightgrey")
	}
	node.SetLabel(p.Label)
	node.Set("fontname", string(w.Font))
	w.mapping[p.ID] = node
	return nil
}

func (w *Writer) writeTransition(t *magnet.Transition) error {
	node, err := w.g.CreateNode(t.ID)
	if err != nil {
		return err
	}
	node.SetShape(cgraph.BoxShape)
	node.SetLabel(t.Label)
	node.Set("fontname", string(w.Font))
	w.mapping[t.ID] = node
	return nil
}

func (w *Writer) writeArc(i int, a *magnet.Arc) error {
	src := w.mapping[a.Src]
	dst := w.mapping[a.Dest]
	_, err := w.g.CreateEdge(fmt.Sprintf("a%d", i), src, dst)
	return err
}

func (w *Writer) Flush(out io.Writer, n *magnet.Net) error {
	graph := graphviz.New()
	defer func() {
		_ = graph.Close()
	}()
	g, err := graph.Graph(graphviz.Name(w.name(n)))
	if err != nil {
		return err
	}
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	w.g = g
	for _, p := range n.Places {
		if err := w.writePlace(n, p); err != nil {
			return err
		}
	}
	for _, t := range n.Transitions {
		if err := w.writeTransition(t); err != nil {
			return err
		}
	}
	for i, a := range n.Arcs {
		if err := w.writeArc(i, a); err != nil {
			return err
		}
	}
	return graph.Render(w.g, graphviz.XDOT, out)
}

func (w *Writer) name(n *magnet.Net) string {
	if w.Name != "" {
		return w.Name
	}
	if n.ID != "" {
		return n.ID
	}
	return "magnet"
}

type Font string

const (
	Helvetica Font = "Helvetica"
	SansSerif Font = "sans-serif"
)

type RankDir string

const (
	LeftToRight RankDir = "LR"
	TopToBottom RankDir = "TB"
)

type Config struct {
	Name string
	Font
	RankDir
}

func New(config *Config) *Writer {
	if config.Font == "" {
		config.Font = Helvetica
	}
	if config.RankDir == "" {
		config.RankDir = LeftToRight
	}
	return &Writer{
		Config:  config,
		mapping: make(map[string]*cgraph.Node),
	}
}
