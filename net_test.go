package magnet_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jt05610/magnet"
)

func chain(id string, ids ...string) *magnet.Net {
	// ids alternate place, transition, place, ... building a simple path.
	var (
		pp   []*magnet.Place
		tt   []*magnet.Transition
		aa   []*magnet.Arc
		prev string
	)
	for i, nodeID := range ids {
		if i%2 == 0 {
			pp = append(pp, magnet.NewPlace(nodeID))
		} else {
			tt = append(tt, magnet.NewTransition(nodeID))
		}
		if i > 0 {
			aa = append(aa, &magnet.Arc{Src: prev, Dest: nodeID})
		}
		prev = nodeID
	}
	n, err := magnet.New(id, pp, tt, aa, magnet.NewMarking(ids[0]), magnet.NewMarking(ids[len(ids)-1]))
	if err != nil {
		panic(err)
	}
	return n
}

func TestNew_RejectsSameKindArc(t *testing.T) {
	p0 := magnet.NewPlace("p0")
	p1 := magnet.NewPlace("p1")
	_, err := magnet.New("bad", []*magnet.Place{p0, p1}, nil,
		[]*magnet.Arc{{Src: "p0", Dest: "p1"}}, nil, nil)
	if !errors.Is(err, magnet.ErrInvalidNet) {
		t.Fatalf("want ErrInvalidNet, got %v", err)
	}
}

func TestNew_RejectsDanglingArc(t *testing.T) {
	p0 := magnet.NewPlace("p0")
	t0 := magnet.NewTransition("t0")
	_, err := magnet.New("bad", []*magnet.Place{p0}, []*magnet.Transition{t0},
		[]*magnet.Arc{{Src: "t0", Dest: "ghost"}}, nil, nil)
	if !errors.Is(err, magnet.ErrInvalidNet) {
		t.Fatalf("want ErrInvalidNet, got %v", err)
	}
}

func TestNew_RejectsMarkingOnUndeclaredPlace(t *testing.T) {
	p0 := magnet.NewPlace("p0")
	_, err := magnet.New("bad", []*magnet.Place{p0}, nil, nil, magnet.NewMarking("ghost"), nil)
	if !errors.Is(err, magnet.ErrInvalidNet) {
		t.Fatalf("want ErrInvalidNet, got %v", err)
	}
}

func TestAddMarkings(t *testing.T) {
	n := chain("c", "p0", "t0", "p1", "t1", "p2")
	remarked := magnet.AddMarkings(n)
	if got := remarked.Initial.IDs(); len(got) != 1 || got[0] != "p0" {
		t.Fatalf("initial = %v, want [p0]", got)
	}
	if got := remarked.Final.IDs(); len(got) != 1 || got[0] != "p2" {
		t.Fatalf("final = %v, want [p2]", got)
	}
}

func TestIsIsomorphic_Reflexive(t *testing.T) {
	n := chain("c", "p0", "t0", "p1")
	if !magnet.IsIsomorphic(n, n) {
		t.Fatal("a net must be isomorphic to itself")
	}
}

func TestIsIsomorphic_SymmetricUnderRelabeling(t *testing.T) {
	a := chain("a", "p0", "t0", "p1", "t1", "p2")
	b := chain("b", "x", "fire", "y", "burn", "z")
	if !magnet.IsIsomorphic(a, b) {
		t.Fatal("relabeled chain must stay isomorphic")
	}
	if magnet.IsIsomorphic(a, b) != magnet.IsIsomorphic(b, a) {
		t.Fatal("isomorphism must be symmetric")
	}
}

func TestIsIsomorphic_DistinguishesLabels(t *testing.T) {
	p0, p1 := magnet.NewPlace("p0"), magnet.NewPlace("p1")
	send := magnet.NewTransition("t0", "a!")
	silent := magnet.NewTransition("t0")
	arcs := []*magnet.Arc{{Src: "p0", Dest: "t0"}, {Src: "t0", Dest: "p1"}}
	labeled, _ := magnet.New("l", []*magnet.Place{p0, p1}, []*magnet.Transition{send}, arcs, nil, nil)
	plain, _ := magnet.New("p", []*magnet.Place{p0, p1}, []*magnet.Transition{silent}, arcs, nil, nil)
	if magnet.IsIsomorphic(labeled, plain) {
		t.Fatal("interaction labels must be preserved by the bijection")
	}
}

func TestIsIsomorphic_DistinguishesFlow(t *testing.T) {
	// Same node counts, reversed arc.
	a := chain("a", "p0", "t0", "p1")
	p0, p1 := magnet.NewPlace("p0"), magnet.NewPlace("p1")
	t0 := magnet.NewTransition("t0")
	b, _ := magnet.New("b", []*magnet.Place{p0, p1}, []*magnet.Transition{t0},
		[]*magnet.Arc{{Src: "t0", Dest: "p0"}, {Src: "t0", Dest: "p1"}}, nil, nil)
	if magnet.IsIsomorphic(a, b) {
		t.Fatal("flow relation must be preserved")
	}
}

func TestCanonicalHash_RelabelingInvariant(t *testing.T) {
	a := chain("a", "p0", "t0", "p1", "t1", "p2")
	b := chain("b", "u", "v", "w", "x", "y")
	if magnet.CanonicalHash(a) != magnet.CanonicalHash(b) {
		t.Fatal("hash must be invariant under id relabeling")
	}
	c := chain("c", "p0", "t0", "p1")
	if magnet.CanonicalHash(a) == magnet.CanonicalHash(c) {
		t.Fatal("hash must differ for different node counts")
	}
}

func TestMerge_SingleNetIsIsomorphic(t *testing.T) {
	n := chain("solo", "p0", "t0", "p1", "t1", "p2")
	merged, err := magnet.Merge([]*magnet.Net{n})
	if err != nil {
		t.Fatal(err)
	}
	if !magnet.IsIsomorphic(merged, n) {
		t.Fatal("merge of a single net must be isomorphic to it")
	}
}

func TestMerge_FusesSharedInteractionPlace(t *testing.T) {
	// Sender: p0 -> a! -> p1 -> channel place "a".
	sp0, sp1 := magnet.NewPlace("p0"), magnet.NewPlace("p1")
	sch := magnet.NewPlace("pa", "a")
	st := magnet.NewTransition("send", "a!")
	sender, err := magnet.New("A",
		[]*magnet.Place{sp0, sp1, sch},
		[]*magnet.Transition{st},
		[]*magnet.Arc{{Src: "p0", Dest: "send"}, {Src: "send", Dest: "p1"}, {Src: "send", Dest: "pa"}},
		magnet.NewMarking("p0"), magnet.NewMarking("p1"))
	if err != nil {
		t.Fatal(err)
	}
	// Receiver: channel place "a" -> a? with p0 -> a? -> p1.
	rp0, rp1 := magnet.NewPlace("p0"), magnet.NewPlace("p1")
	rch := magnet.NewPlace("pa", "a")
	rt := magnet.NewTransition("recv", "a?")
	receiver, err := magnet.New("B",
		[]*magnet.Place{rp0, rp1, rch},
		[]*magnet.Transition{rt},
		[]*magnet.Arc{{Src: "p0", Dest: "recv"}, {Src: "recv", Dest: "p1"}, {Src: "pa", Dest: "recv"}},
		magnet.NewMarking("p0"), magnet.NewMarking("p1"))
	if err != nil {
		t.Fatal(err)
	}

	merged, err := magnet.Merge([]*magnet.Net{sender, receiver})
	if err != nil {
		t.Fatal(err)
	}
	// One shared interaction place per pair: |P1| + |P2| - 1.
	want := len(sender.Places) + len(receiver.Places) - 1
	if len(merged.Places) != want {
		t.Fatalf("merged places = %d, want %d", len(merged.Places), want)
	}
	if merged.Transitions[0].ID == merged.Transitions[1].ID {
		t.Fatal("send and receive transitions must stay distinct")
	}
}

func TestMerge_FusesSyncTransitions(t *testing.T) {
	mk := func(id string) *magnet.Net {
		p0, p1 := magnet.NewPlace("p0"), magnet.NewPlace("p1")
		s := magnet.NewTransition("t", "s")
		n, err := magnet.New(id, []*magnet.Place{p0, p1}, []*magnet.Transition{s},
			[]*magnet.Arc{{Src: "p0", Dest: "t"}, {Src: "t", Dest: "p1"}},
			magnet.NewMarking("p0"), magnet.NewMarking("p1"))
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	merged, err := magnet.Merge([]*magnet.Net{mk("A"), mk("B")})
	if err != nil {
		t.Fatal(err)
	}
	if len(merged.Transitions) != 1 {
		t.Fatalf("sync transitions must fuse, got %d transitions", len(merged.Transitions))
	}
	if len(merged.Places) != 4 {
		t.Fatalf("local places must stay disjoint, got %d", len(merged.Places))
	}
}

func ExampleMerge() {
	sender, _ := magnet.New("A",
		[]*magnet.Place{magnet.NewPlace("idle"), magnet.NewPlace("done")},
		[]*magnet.Transition{magnet.NewTransition("send", "order!")},
		[]*magnet.Arc{{Src: "idle", Dest: "send"}, {Src: "send", Dest: "done"}},
		magnet.NewMarking("idle"), magnet.NewMarking("done"))
	receiver, _ := magnet.New("B",
		[]*magnet.Place{magnet.NewPlace("idle"), magnet.NewPlace("done")},
		[]*magnet.Transition{magnet.NewTransition("recv", "order?")},
		[]*magnet.Arc{{Src: "idle", Dest: "recv"}, {Src: "recv", Dest: "done"}},
		magnet.NewMarking("idle"), magnet.NewMarking("done"))

	merged, _ := magnet.Merge([]*magnet.Net{sender, receiver})
	composed := magnet.AddMarkings(merged)
	fmt.Println(len(composed.Places), len(composed.Transitions), len(composed.Arcs))
	fmt.Println(composed.Initial.IDs())
	// Output:
	// 5 2 6
	// [A.idle B.idle]
}
