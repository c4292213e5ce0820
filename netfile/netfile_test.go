package netfile_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/netfile"
)

const courier = `name: courier
places:
  idle: ""
  busy: ""
  ch.req: req
transitions:
  take:
    label: req?
    inputs: [idle, ch.req]
    outputs: busy
  done:
    inputs: busy
    outputs: idle
initial: [idle, ch.req]
final: [idle]
`

func TestLoad(t *testing.T) {
	svc := &netfile.Service{}
	n, err := svc.Load(context.Background(), strings.NewReader(courier))
	require.NoError(t, err)

	assert.Equal(t, "courier", n.ID)
	assert.Len(t, n.Places, 3)
	assert.Len(t, n.Transitions, 2)
	assert.Len(t, n.Arcs, 5)
	assert.Equal(t, "req", n.Place("ch.req").Label)
	assert.Equal(t, "req?", n.Transition("take").Label)
	assert.Empty(t, n.Transition("done").Label)
	assert.True(t, n.HasArc("take", "busy"))
	assert.True(t, n.Initial.Has("ch.req"))
	assert.True(t, n.Final.Has("idle"))
}

func TestLoad_UnknownPlaceInFlow(t *testing.T) {
	svc := &netfile.Service{}
	_, err := svc.Load(context.Background(), strings.NewReader(strings.Replace(courier, "outputs: busy", "outputs: nowhere", 1)))
	assert.ErrorIs(t, err, magnet.ErrInvalidNet)
}

func TestLoadIsDeterministic(t *testing.T) {
	svc := &netfile.Service{}
	first, err := svc.Load(context.Background(), strings.NewReader(courier))
	require.NoError(t, err)
	second, err := svc.Load(context.Background(), strings.NewReader(courier))
	require.NoError(t, err)
	assert.Equal(t, magnet.CanonicalHash(first), magnet.CanonicalHash(second))
}

func TestRoundTrip(t *testing.T) {
	svc := &netfile.Service{}
	orig, err := svc.Load(context.Background(), strings.NewReader(courier))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Save(context.Background(), &buf, orig))

	back, err := svc.Load(context.Background(), &buf)
	require.NoError(t, err)
	assert.True(t, magnet.IsIsomorphic(orig, back))
	assert.Equal(t, orig.Initial.IDs(), back.Initial.IDs())
	assert.Equal(t, orig.Final.IDs(), back.Final.IDs())
}
