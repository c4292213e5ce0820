// Package pattern holds the fixed catalog of canonical interface patterns
// (IP-1..IP-12). A pattern names the interaction shape among two or more
// participant roles; binding it to concrete participant ids instantiates
// per-participant views whose interaction labels let Merge identify the
// shared synchronization and message points.
package pattern

import (
	"fmt"
	"sort"

	"github.com/jt05610/magnet"
)

type Pattern struct {
	Name    string
	Summary string
	// Roles are the participant slots in binding order.
	Roles []string

	views map[string]viewFn
}

type viewFn func(v *view)

// Bind assigns concrete participant identifiers to the pattern's roles, in
// role order. The arity must match exactly.
func (p *Pattern) Bind(participants ...string) (*Binding, error) {
	if len(participants) != len(p.Roles) {
		return nil, fmt.Errorf("pattern %s: needs %d participants, got %d", p.Name, len(p.Roles), len(participants))
	}
	seen := map[string]string{}
	for i, id := range participants {
		if id == "" {
			return nil, fmt.Errorf("pattern %s: empty participant id for role %s", p.Name, p.Roles[i])
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("pattern %s: participant %s bound twice", p.Name, id)
		}
		seen[id] = p.Roles[i]
	}
	return &Binding{pattern: p, roleOf: seen}, nil
}

// Binding is a pattern with every role bound to a participant.
type Binding struct {
	pattern *Pattern
	roleOf  map[string]string
}

func (b *Binding) Pattern() *Pattern { return b.pattern }

// Role returns the role a participant is bound to.
func (b *Binding) Role(participant string) (string, bool) {
	role, ok := b.roleOf[participant]
	return role, ok
}

func (b *Binding) Participants() []string {
	out := make([]string, 0, len(b.roleOf))
	for id := range b.roleOf {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Net instantiates the participant's local view of the pattern: a GWF-net
// whose id namespace is the participant and whose interaction-relevant
// transitions carry the pattern's canonical labels.
func (b *Binding) Net(participant string) (*magnet.Net, error) {
	role, ok := b.roleOf[participant]
	if !ok {
		return nil, fmt.Errorf("pattern %s: participant %s is not bound", b.pattern.Name, participant)
	}
	fn := b.pattern.views[role]
	v := &view{}
	fn(v)
	return v.net(participant)
}

// view accumulates one role's local net.
type view struct {
	places      []*magnet.Place
	transitions []*magnet.Transition
	arcs        []*magnet.Arc
	initial     []string
	final       []string
}

func (v *view) place(id string) *view {
	v.places = append(v.places, magnet.NewPlace(id))
	return v
}

func (v *view) trans(id, label string) *view {
	v.transitions = append(v.transitions, magnet.NewTransition(id, label))
	return v
}

func (v *view) silent(id string) *view { return v.trans(id, "") }

func (v *view) flow(ids ...string) *view {
	for i := 1; i < len(ids); i++ {
		v.arcs = append(v.arcs, &magnet.Arc{Src: ids[i-1], Dest: ids[i]})
	}
	return v
}

func (v *view) start(ids ...string) *view {
	v.initial = append(v.initial, ids...)
	return v
}

func (v *view) end(ids ...string) *view {
	v.final = append(v.final, ids...)
	return v
}

func (v *view) net(participant string) (*magnet.Net, error) {
	return magnet.New(participant, v.places, v.transitions, v.arcs,
		magnet.NewMarking(v.initial...), magnet.NewMarking(v.final...))
}

// All returns the pattern catalog in order IP-1..IP-12. The catalog is
// built once and never mutated.
func All() []*Pattern {
	out := make([]*Pattern, len(catalog))
	copy(out, catalog)
	return out
}

func Get(name string) (*Pattern, error) {
	for _, p := range catalog {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown interface pattern %q", name)
}
