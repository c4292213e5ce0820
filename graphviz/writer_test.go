package graphviz_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/graphviz"
)

func handoff(t *testing.T) *magnet.Net {
	t.Helper()
	n, err := magnet.New("handoff",
		[]*magnet.Place{{ID: "source"}, {ID: "ch.a", Label: "a"}, {ID: "sink"}},
		[]*magnet.Transition{{ID: "send", Label: "a!"}, {ID: "recv", Label: "a?"}},
		[]*magnet.Arc{
			{Src: "source", Dest: "send"},
			{Src: "send", Dest: "ch.a"},
			{Src: "ch.a", Dest: "recv"},
			{Src: "recv", Dest: "sink"},
		},
		magnet.NewMarking("source"),
		magnet.NewMarking("sink"),
	)
	require.NoError(t, err)
	return n
}

func TestWriter_Flush(t *testing.T) {
	w := graphviz.New(&graphviz.Config{RankDir: graphviz.LeftToRight})
	var buf bytes.Buffer
	require.NoError(t, w.Flush(&buf, handoff(t)))

	dot := buf.String()
	assert.Contains(t, dot, "handoff")
	assert.Contains(t, dot, "send")
	assert.Contains(t, dot, "doublecircle")
	assert.Contains(t, dot, "source")
}

func TestRoundTrip(t *testing.T) {
	orig := handoff(t)
	w := graphviz.New(&graphviz.Config{})
	var buf bytes.Buffer
	require.NoError(t, w.Flush(&buf, orig))

	back, err := graphviz.Loader().Load(&buf)
	require.NoError(t, err)
	assert.True(t, magnet.IsIsomorphic(orig, back))
	assert.Equal(t, orig.Initial.IDs(), back.Initial.IDs())
	assert.Equal(t, orig.Final.IDs(), back.Final.IDs())
}
