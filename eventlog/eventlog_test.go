package eventlog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jt05610/magnet/eventlog"
)

func sample() eventlog.Log {
	return eventlog.Log{
		{Case: "c1", Activity: "pack", Attributes: map[string]string{"org:resource": "warehouse"}},
		{Case: "c1", Activity: "ship", Attributes: map[string]string{"org:resource": "carrier"}},
		{Case: "c2", Activity: "pack", Attributes: map[string]string{"org:resource": "warehouse"}},
		{Case: "c2", Activity: "ship", Attributes: map[string]string{"org:resource": "carrier"}},
	}
}

func TestPartition(t *testing.T) {
	parts, err := eventlog.Partition(sample(), "org:resource")
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Len(t, parts["warehouse"], 2)
	assert.Len(t, parts["carrier"], 2)
}

func TestPartition_MissingAttribute(t *testing.T) {
	log := sample()
	log = append(log, eventlog.Event{Case: "c3", Activity: "audit"})

	_, err := eventlog.Partition(log, "org:resource")
	var missing *eventlog.MissingAttributeError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, "org:resource", missing.Attribute)
	assert.Equal(t, 4, missing.Index)
	assert.Equal(t, "c3", missing.Case)
}

func TestTraces(t *testing.T) {
	traces := sample().Traces()
	require.Len(t, traces, 2)
	assert.Equal(t, []string{"pack", "ship"}, traces["c1"])
}

func TestExprSelector(t *testing.T) {
	sel, err := eventlog.ExprSelector(`attrs["org:resource"]`)
	require.NoError(t, err)
	parts, err := eventlog.PartitionBy(sample(), sel, "org:resource")
	require.NoError(t, err)
	assert.Len(t, parts, 2)

	_, err = eventlog.ExprSelector(`attrs[`)
	assert.Error(t, err)
}
