package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/pattern"
)

func TestCatalog(t *testing.T) {
	all := pattern.All()
	require.Len(t, all, 12)
	seen := map[string]bool{}
	for _, p := range all {
		assert.False(t, seen[p.Name], "duplicate pattern %s", p.Name)
		seen[p.Name] = true
		assert.GreaterOrEqual(t, len(p.Roles), 2, "%s needs at least two roles", p.Name)
	}
	assert.True(t, seen["IP-1"])
	assert.True(t, seen["IP-12"])

	_, err := pattern.Get("IP-13")
	assert.Error(t, err)
}

func TestIP1ViewIsChain(t *testing.T) {
	ip1, err := pattern.Get("IP-1")
	require.NoError(t, err)

	b, err := ip1.Bind("painter", "courier")
	require.NoError(t, err)

	// The sender view is a single place -> transition -> place chain.
	net, err := b.Net("painter")
	require.NoError(t, err)
	assert.Len(t, net.Places, 2)
	assert.Len(t, net.Transitions, 1)
	assert.Len(t, net.Arcs, 2)
	assert.Equal(t, "a!", net.Transitions[0].Label)
	assert.Equal(t, []string{"p0"}, net.Initial.IDs())
	assert.Equal(t, []string{"p1"}, net.Final.IDs())
}

func TestBindArity(t *testing.T) {
	ip1, err := pattern.Get("IP-1")
	require.NoError(t, err)

	_, err = ip1.Bind("only-one")
	assert.Error(t, err)
	_, err = ip1.Bind("a", "b", "c")
	assert.Error(t, err)
	_, err = ip1.Bind("twin", "twin")
	assert.Error(t, err)

	b, err := ip1.Bind("a", "b")
	require.NoError(t, err)
	_, err = b.Net("stranger")
	assert.Error(t, err)
}

// Every pattern's views must construct valid nets and compose into one
// connected net with markings.
func TestAllPatternsCompose(t *testing.T) {
	names := []string{"alice", "bob", "carol", "dave"}
	for _, p := range pattern.All() {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			b, err := p.Bind(names[:len(p.Roles)]...)
			require.NoError(t, err)

			var views []*magnet.Net
			for _, id := range b.Participants() {
				net, err := b.Net(id)
				require.NoError(t, err)
				require.NotEmpty(t, net.Initial, "%s view of %s has no initial places", id, p.Name)
				require.NotEmpty(t, net.Final)
				views = append(views, net)
			}

			merged, err := magnet.Merge(views)
			require.NoError(t, err)
			composed := magnet.AddMarkings(merged)
			assert.NotEmpty(t, composed.Initial.IDs())
			assert.NotEmpty(t, composed.Final.IDs())

			// Message exchange must have produced at least one shared
			// interaction point: a channel place or a fused synchronous
			// transition.
			channels := 0
			for _, pl := range composed.Places {
				if pl.Label != "" {
					channels++
				}
			}
			localTransitions := 0
			for _, v := range views {
				localTransitions += len(v.Transitions)
			}
			fused := localTransitions - len(composed.Transitions)
			assert.Positive(t, channels+fused,
				"%s composition shares no interaction point", p.Name)
		})
	}
}

func TestIP4Composition(t *testing.T) {
	ip4, err := pattern.Get("IP-4")
	require.NoError(t, err)
	b, err := ip4.Bind("client", "server")
	require.NoError(t, err)

	cn, err := b.Net("client")
	require.NoError(t, err)
	sn, err := b.Net("server")
	require.NoError(t, err)

	merged, err := magnet.Merge([]*magnet.Net{cn, sn})
	require.NoError(t, err)

	// Two channel places (a, ra) materialize on top of the 3+3 local ones.
	assert.Len(t, merged.Places, 8)
	assert.Len(t, merged.Transitions, 4)
}
