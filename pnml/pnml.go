// Package pnml reads and writes place/transition nets in the PNML
// interchange format, including the final-markings extension used by the
// common process mining toolkits.
package pnml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/file"
)

var _ file.Service = (*Service)(nil)

type Service struct {
}

const (
	pnmlNS    = "http://www.pnml.org/version-2009/grammar/pnml"
	ptNetType = "http://www.pnml.org/version-2009/grammar/ptnet"
)

type document struct {
	XMLName xml.Name `xml:"pnml"`
	XMLNS   string   `xml:"xmlns,attr,omitempty"`
	Net     net      `xml:"net"`
}

type net struct {
	ID            string        `xml:"id,attr"`
	Type          string        `xml:"type,attr,omitempty"`
	Page          page          `xml:"page"`
	FinalMarkings *finalMarking `xml:"finalmarkings>marking"`
}

type page struct {
	ID          string       `xml:"id,attr"`
	Places      []place      `xml:"place"`
	Transitions []transition `xml:"transition"`
	Arcs        []arc        `xml:"arc"`
}

type name struct {
	Text string `xml:"text"`
}

type place struct {
	ID      string `xml:"id,attr"`
	Name    *name  `xml:"name"`
	Initial *name  `xml:"initialMarking"`
}

type transition struct {
	ID   string `xml:"id,attr"`
	Name *name  `xml:"name"`
}

type arc struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type finalMarking struct {
	Places []finalPlace `xml:"place"`
}

type finalPlace struct {
	IDRef string `xml:"idref,attr"`
	Text  string `xml:"text"`
}

func (s *Service) Load(_ context.Context, r io.Reader) (*magnet.Net, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding pnml: %w", err)
	}

	pg := doc.Net.Page
	places := make([]*magnet.Place, len(pg.Places))
	initial := magnet.NewMarking()
	for i, p := range pg.Places {
		pl := &magnet.Place{ID: p.ID}
		if p.Name != nil {
			pl.Label = p.Name.Text
		}
		if p.Initial != nil && p.Initial.Text != "" && p.Initial.Text != "0" {
			initial.Add(p.ID)
		}
		places[i] = pl
	}
	transitions := make([]*magnet.Transition, len(pg.Transitions))
	for i, t := range pg.Transitions {
		tr := &magnet.Transition{ID: t.ID}
		if t.Name != nil {
			tr.Label = t.Name.Text
		}
		transitions[i] = tr
	}
	arcs := make([]*magnet.Arc, len(pg.Arcs))
	for i, a := range pg.Arcs {
		arcs[i] = &magnet.Arc{Src: a.Source, Dest: a.Target}
	}
	final := magnet.NewMarking()
	if doc.Net.FinalMarkings != nil {
		for _, fp := range doc.Net.FinalMarkings.Places {
			final.Add(fp.IDRef)
		}
	}

	id := doc.Net.ID
	if id == "" {
		id = "net"
	}
	return magnet.New(id, places, transitions, arcs, initial, final)
}

func (s *Service) Save(_ context.Context, w io.Writer, n *magnet.Net) error {
	pg := page{ID: "page0"}
	for _, p := range n.Places {
		out := place{ID: p.ID}
		if p.Label != "" {
			out.Name = &name{Text: p.Label}
		}
		if n.Initial.Has(p.ID) {
			out.Initial = &name{Text: "1"}
		}
		pg.Places = append(pg.Places, out)
	}
	for _, t := range n.Transitions {
		out := transition{ID: t.ID}
		if t.Label != "" {
			out.Name = &name{Text: t.Label}
		}
		pg.Transitions = append(pg.Transitions, out)
	}
	for i, a := range n.Arcs {
		pg.Arcs = append(pg.Arcs, arc{
			ID:     fmt.Sprintf("a%d", i),
			Source: a.Src,
			Target: a.Dest,
		})
	}

	doc := document{
		XMLNS: pnmlNS,
		Net:   net{ID: n.ID, Type: ptNetType, Page: pg},
	}
	if len(n.Final) > 0 {
		fm := &finalMarking{}
		for _, id := range n.Final.IDs() {
			fm.Places = append(fm.Places, finalPlace{IDRef: id, Text: "1"})
		}
		doc.Net.FinalMarkings = fm
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding pnml: %w", err)
	}
	return enc.Close()
}

func (s *Service) Format() file.Format {
	return file.PNML
}
