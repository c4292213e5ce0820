// Package eventlog models the multi-agent event log handed to the
// compositional orchestrator and its partitioning into per-participant
// sub-logs. Parsing on-disk log formats is out of scope; callers construct
// logs in memory or decode them from their own transport.
package eventlog

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Event is one log record: an activity executed in a case, with arbitrary
// additional attributes (the participant attribute among them).
type Event struct {
	Case       string            `json:"case"`
	Activity   string            `json:"activity"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Log []Event

// Traces groups the log into activity sequences per case, preserving event
// order within each case.
func (l Log) Traces() map[string][]string {
	out := map[string][]string{}
	for _, e := range l {
		out[e.Case] = append(out[e.Case], e.Activity)
	}
	return out
}

// Participants returns the distinct values of the attribute across the
// log, failing like Partition does when a record lacks it.
func (l Log) Participants(attribute string) ([]string, error) {
	parts, err := Partition(l, attribute)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(parts))
	for p := range parts {
		out = append(out, p)
	}
	return out, nil
}

// MissingAttributeError: a record lacks the participant attribute. Raised
// before any downstream mining or search begins.
type MissingAttributeError struct {
	Attribute string
	Index     int
	Case      string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("event %d (case %s) lacks participant attribute %q", e.Index, e.Case, e.Attribute)
}

// Partition splits the log into per-participant sub-logs keyed by the given
// attribute. Every record is checked before any sub-log is returned.
func Partition(l Log, attribute string) (map[string]Log, error) {
	return PartitionBy(l, func(e Event) (string, error) {
		return e.Attributes[attribute], nil
	}, attribute)
}

// Selector derives the participant id for a record.
type Selector func(e Event) (string, error)

// PartitionBy splits the log with an arbitrary selector. An empty selected
// id is treated as a missing attribute.
func PartitionBy(l Log, sel Selector, attribute string) (map[string]Log, error) {
	out := map[string]Log{}
	for i, e := range l {
		id, err := sel(e)
		if err != nil {
			return nil, fmt.Errorf("selecting participant for event %d: %w", i, err)
		}
		if id == "" {
			return nil, &MissingAttributeError{Attribute: attribute, Index: i, Case: e.Case}
		}
		out[id] = append(out[id], e)
	}
	return out, nil
}

// ExprSelector compiles an expr program into a Selector. The program sees
// the record as {case, activity, attrs} and must evaluate to a string, e.g.
// `attrs["org:resource"]` or `activity matches "^wh" ? "warehouse" :
// attrs["agent"]`.
func ExprSelector(program string) (Selector, error) {
	compiled, err := expr.Compile(program, expr.AsKind(reflect.String))
	if err != nil {
		return nil, fmt.Errorf("compiling participant selector: %w", err)
	}
	return func(e Event) (string, error) {
		out, err := runSelector(compiled, e)
		if err != nil {
			return "", err
		}
		return out, nil
	}, nil
}

func runSelector(p *vm.Program, e Event) (string, error) {
	env := map[string]interface{}{
		"case":     e.Case,
		"activity": e.Activity,
		"attrs":    e.Attributes,
	}
	out, err := expr.Run(p, env)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("participant selector returned %T, want string", out)
	}
	return s, nil
}
