package couch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/compose"
	"github.com/jt05610/magnet/couch"
	"github.com/jt05610/magnet/search"
)

func relay(t *testing.T) *magnet.Net {
	t.Helper()
	n, err := magnet.New("relay",
		[]*magnet.Place{{ID: "p0"}, {ID: "ch.a", Label: "a"}, {ID: "p1"}},
		[]*magnet.Transition{{ID: "send", Label: "a!"}, {ID: "recv", Label: "a?"}},
		[]*magnet.Arc{
			{Src: "p0", Dest: "send"},
			{Src: "send", Dest: "ch.a"},
			{Src: "ch.a", Dest: "recv"},
			{Src: "recv", Dest: "p1"},
		},
		magnet.NewMarking("p0"),
		magnet.NewMarking("p1"),
	)
	require.NoError(t, err)
	return n
}

func TestDocRoundTrip(t *testing.T) {
	orig := relay(t)
	back, err := couch.Doc(orig).Net()
	require.NoError(t, err)
	assert.True(t, magnet.IsIsomorphic(orig, back))
	assert.Equal(t, orig.Initial.IDs(), back.Initial.IDs())
	assert.Equal(t, orig.Final.IDs(), back.Final.IDs())
}

func TestNewRun(t *testing.T) {
	n := relay(t)
	res := &compose.Result{
		RunID:   "run-1",
		Pattern: "IP-1",
		Net:     n,
		Participants: []compose.Participant{
			{
				ID:   "client",
				Role: "X",
				Local: n,
				Witness: &search.Witness{
					Steps:    []search.Step{{Rule: "local-transition", Anchor: "p0"}},
					Explored: 7,
				},
			},
		},
	}

	run := couch.NewRun(res)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "IP-1", run.Pattern)
	assert.False(t, run.CreatedAt.IsZero())
	require.Len(t, run.Participants, 1)
	assert.Equal(t, "X", run.Participants[0].Role)
	assert.Equal(t, 7, run.Participants[0].Explored)
	require.Len(t, run.Participants[0].Steps, 1)
	assert.Equal(t, "local-transition", run.Participants[0].Steps[0].Rule)
}
