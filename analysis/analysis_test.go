package analysis_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/analysis"
)

func net() *analysis.Net {
	pp := make([]*magnet.Place, 4)
	for i := 0; i < 4; i++ {
		pp[i] = &magnet.Place{ID: fmt.Sprintf("p%d", i+1)}
	}
	tt := make([]*magnet.Transition, 3)
	for i := 0; i < 3; i++ {
		tt[i] = &magnet.Transition{ID: fmt.Sprintf("t%d", i+1)}
	}
	aa := []*magnet.Arc{
		{Src: "p1", Dest: "t1"},
		{Src: "t1", Dest: "p2"},
		{Src: "p2", Dest: "t2"},
		{Src: "t2", Dest: "p3"},
		{Src: "p3", Dest: "t1"},
		{Src: "t2", Dest: "p4"},
		{Src: "p4", Dest: "t3"},
		{Src: "t3", Dest: "p1"},
	}
	n, err := magnet.New("cycle", pp, tt, aa, magnet.NewMarking(), magnet.NewMarking())
	if err != nil {
		panic(err)
	}
	return &analysis.Net{Net: n}
}

func ExampleNet_Incidence() {
	aNet := net()
	inc := aNet.Incidence()
	fmt.Printf("┌%s┐\n", strings.Repeat(" ", 3*len(aNet.Places)-1))
	for i := range aNet.Transitions {
		fmt.Print("│")
		s := " "
		for j := range aNet.Places {
			if j == len(aNet.Places)-1 {
				s = ""
			}
			fmt.Printf("%2d%s", int(inc.At(i, j)), s)
		}
		fmt.Print("│\n")
	}
	fmt.Printf("└%s┘", strings.Repeat(" ", 3*len(aNet.Places)-1))
	// Output:
	// ┌           ┐
	// │-1  1 -1  0│
	// │ 0 -1  1  1│
	// │ 1  0  0 -1│
	// └           ┘
}

func TestFinalReachable(t *testing.T) {
	n, err := magnet.New("relay",
		[]*magnet.Place{{ID: "p0"}, {ID: "p1"}, {ID: "p2"}},
		[]*magnet.Transition{{ID: "t0"}, {ID: "t1"}},
		[]*magnet.Arc{
			{Src: "p0", Dest: "t0"},
			{Src: "t0", Dest: "p1"},
			{Src: "p1", Dest: "t1"},
			{Src: "t1", Dest: "p2"},
		},
		magnet.NewMarking("p0"),
		magnet.NewMarking("p2"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !(&analysis.Net{Net: n}).FinalReachable() {
		t.Error("final marking should be reachable")
	}
}

func TestFinalReachable_BlockedJoin(t *testing.T) {
	n, err := magnet.New("stuck",
		[]*magnet.Place{{ID: "p0"}, {ID: "wait"}, {ID: "p2"}},
		[]*magnet.Transition{{ID: "join"}},
		[]*magnet.Arc{
			{Src: "p0", Dest: "join"},
			{Src: "wait", Dest: "join"},
			{Src: "join", Dest: "p2"},
		},
		magnet.NewMarking("p0"),
		magnet.NewMarking("p2"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if (&analysis.Net{Net: n}).FinalReachable() {
		t.Error("join can never fire without the second token")
	}
}
