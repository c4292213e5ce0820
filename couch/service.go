// Package couch persists discovery runs in CouchDB so composed models and
// their refinement witnesses survive the process that produced them.
package couch

import (
	"context"
	"time"

	_ "github.com/go-kivik/couchdb/v3"
	"github.com/go-kivik/kivik/v3"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/compose"
	"github.com/jt05610/magnet/search"
)

type Service struct {
	cancel func()
	db     *kivik.DB
	revMap map[string]string
}

// Run is the stored form of a discovery result.
type Run struct {
	ID           string        `json:"_id"`
	Rev          string        `json:"_rev,omitempty"`
	Pattern      string        `json:"pattern"`
	CreatedAt    time.Time     `json:"createdAt"`
	Net          *Net          `json:"net"`
	Participants []Participant `json:"participants"`
}

type Net struct {
	ID          string       `json:"id"`
	Places      []Place      `json:"places"`
	Transitions []Transition `json:"transitions"`
	Arcs        []Arc        `json:"arcs"`
	Initial     []string     `json:"initial"`
	Final       []string     `json:"final"`
}

type Place struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type Transition struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type Arc struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

type Participant struct {
	ID       string        `json:"id"`
	Role     string        `json:"role"`
	Net      *Net          `json:"net"`
	Steps    []search.Step `json:"steps"`
	Explored int           `json:"explored"`
}

// Doc renders a net in its stored form.
func Doc(n *magnet.Net) *Net {
	doc := &Net{ID: n.ID, Initial: n.Initial.IDs(), Final: n.Final.IDs()}
	for _, p := range n.Places {
		doc.Places = append(doc.Places, Place{ID: p.ID, Label: p.Label})
	}
	for _, t := range n.Transitions {
		doc.Transitions = append(doc.Transitions, Transition{ID: t.ID, Label: t.Label})
	}
	for _, a := range n.Arcs {
		doc.Arcs = append(doc.Arcs, Arc{Src: a.Src, Dest: a.Dest})
	}
	return doc
}

// Net rebuilds the stored net.
func (d *Net) Net() (*magnet.Net, error) {
	places := make([]*magnet.Place, len(d.Places))
	for i, p := range d.Places {
		places[i] = &magnet.Place{ID: p.ID, Label: p.Label}
	}
	transitions := make([]*magnet.Transition, len(d.Transitions))
	for i, t := range d.Transitions {
		transitions[i] = &magnet.Transition{ID: t.ID, Label: t.Label}
	}
	arcs := make([]*magnet.Arc, len(d.Arcs))
	for i, a := range d.Arcs {
		arcs[i] = &magnet.Arc{Src: a.Src, Dest: a.Dest}
	}
	return magnet.New(d.ID, places, transitions, arcs,
		magnet.NewMarking(d.Initial...), magnet.NewMarking(d.Final...))
}

// NewRun converts a discovery result for storage.
func NewRun(res *compose.Result) *Run {
	run := &Run{
		ID:        res.RunID,
		Pattern:   res.Pattern,
		CreatedAt: time.Now().UTC(),
		Net:       Doc(res.Net),
	}
	for _, p := range res.Participants {
		stored := Participant{ID: p.ID, Role: p.Role, Net: Doc(p.Local)}
		if p.Witness != nil {
			stored.Steps = p.Witness.Steps
			stored.Explored = p.Witness.Explored
		}
		run.Participants = append(run.Participants, stored)
	}
	return run
}

func Open(uri string, name string) (*Service, error) {
	client, err := kivik.New("couch", uri)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	dbs, err := client.AllDBs(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	found := false
	for _, db := range dbs {
		if db == name {
			found = true
			break
		}
	}
	if !found {
		if err := client.CreateDB(ctx, name); err != nil {
			cancel()
			return nil, err
		}
	}
	return &Service{
		cancel: cancel,
		db:     client.DB(ctx, name),
		revMap: make(map[string]string),
	}, nil
}

func (s *Service) Close() error {
	s.cancel()
	return nil
}

func (s *Service) Add(ctx context.Context, res *compose.Result) (*Run, error) {
	run := NewRun(res)
	rev, err := s.db.Put(ctx, run.ID, run)
	if err != nil {
		return nil, err
	}
	s.revMap[run.ID] = rev
	run.Rev = rev
	return run, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	row := s.db.Get(ctx, id)
	if err := row.ScanDoc(&run); err != nil {
		return nil, err
	}
	s.revMap[id] = row.Rev
	return &run, nil
}

// List returns the stored runs for one pattern, or every run when pattern
// is empty.
func (s *Service) List(ctx context.Context, pattern string) ([]*Run, error) {
	selector := map[string]interface{}{}
	if pattern != "" {
		selector["pattern"] = pattern
	}
	rows, err := s.db.Find(ctx, map[string]interface{}{
		"selector": selector,
	}, kivik.Options{})
	if err != nil {
		return nil, err
	}
	ret := make([]*Run, 0)
	for rows.Next() {
		var run Run
		if err := rows.ScanDoc(&run); err != nil {
			return ret, err
		}
		ret = append(ret, &run)
	}
	return ret, nil
}

func (s *Service) Remove(ctx context.Context, id string) (*Run, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rev, err := s.db.Delete(ctx, id, s.revMap[id])
	if err != nil {
		return nil, err
	}
	s.revMap[id] = rev
	return run, nil
}
