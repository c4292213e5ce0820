// Package netfile loads and saves nets from the YAML description format.
// Places map to their interaction label (empty for internal places) and
// transitions declare their label and flow inline, so small multi-agent
// models stay hand-editable.
package netfile

import (
	"context"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/file"
)

var _ file.Service = (*Service)(nil)

type Service struct {
}

type Netfile struct {
	Name        string                `yaml:"name"`
	Places      map[string]string     `yaml:"places"`
	Transitions map[string]Transition `yaml:"transitions"`
	Initial     []string              `yaml:"initial,omitempty"`
	Final       []string              `yaml:"final,omitempty"`
}

type Transition struct {
	Label   string      `yaml:"label,omitempty"`
	Inputs  interface{} `yaml:"inputs,omitempty"`
	Outputs interface{} `yaml:"outputs,omitempty"`
}

func asStrings(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []string:
		return val, nil
	case []interface{}:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected place id, got %T", item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected place id or list, got %T", v)
}

// Net builds the declared net. Places and transitions are ordered by id so
// repeated loads of the same file yield identical nets.
func (f *Netfile) Net() (*magnet.Net, error) {
	placeIDs := make([]string, 0, len(f.Places))
	for id := range f.Places {
		placeIDs = append(placeIDs, id)
	}
	sort.Strings(placeIDs)
	places := make([]*magnet.Place, len(placeIDs))
	for i, id := range placeIDs {
		places[i] = &magnet.Place{ID: id, Label: f.Places[id]}
	}

	transIDs := make([]string, 0, len(f.Transitions))
	for id := range f.Transitions {
		transIDs = append(transIDs, id)
	}
	sort.Strings(transIDs)
	transitions := make([]*magnet.Transition, len(transIDs))
	var arcs []*magnet.Arc
	for i, id := range transIDs {
		decl := f.Transitions[id]
		transitions[i] = &magnet.Transition{ID: id, Label: decl.Label}
		inputs, err := asStrings(decl.Inputs)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", id, err)
		}
		for _, in := range inputs {
			arcs = append(arcs, &magnet.Arc{Src: in, Dest: id})
		}
		outputs, err := asStrings(decl.Outputs)
		if err != nil {
			return nil, fmt.Errorf("transition %s: %w", id, err)
		}
		for _, out := range outputs {
			arcs = append(arcs, &magnet.Arc{Src: id, Dest: out})
		}
	}

	name := f.Name
	if name == "" {
		name = "net"
	}
	return magnet.New(name, places, transitions, arcs,
		magnet.NewMarking(f.Initial...), magnet.NewMarking(f.Final...))
}

// File describes an existing net in the document shape Net inverts.
func File(n *magnet.Net) *Netfile {
	f := &Netfile{
		Name:        n.ID,
		Places:      make(map[string]string, len(n.Places)),
		Transitions: make(map[string]Transition, len(n.Transitions)),
		Initial:     n.Initial.IDs(),
		Final:       n.Final.IDs(),
	}
	for _, p := range n.Places {
		f.Places[p.ID] = p.Label
	}
	for _, t := range n.Transitions {
		var inputs, outputs []string
		for _, a := range n.Inputs(t.ID) {
			inputs = append(inputs, a.Src)
		}
		for _, a := range n.Outputs(t.ID) {
			outputs = append(outputs, a.Dest)
		}
		sort.Strings(inputs)
		sort.Strings(outputs)
		f.Transitions[t.ID] = Transition{Label: t.Label, Inputs: inputs, Outputs: outputs}
	}
	return f
}

func (s *Service) Load(_ context.Context, r io.Reader) (*magnet.Net, error) {
	var f Netfile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding netfile: %w", err)
	}
	return f.Net()
}

func (s *Service) Save(_ context.Context, w io.Writer, n *magnet.Net) error {
	enc := yaml.NewEncoder(w)
	defer func() {
		_ = enc.Close()
	}()
	return enc.Encode(File(n))
}

func (s *Service) Format() file.Format {
	return file.YAML
}
