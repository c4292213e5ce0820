// Package compose drives compositional discovery: partition the log per
// participant, mine a local model for each, check that every local model
// structurally refines its interface-pattern view, and merge the validated
// models into one architecture-aware net.
package compose

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/eventlog"
	"github.com/jt05610/magnet/mine"
	"github.com/jt05610/magnet/pattern"
	"github.com/jt05610/magnet/rewrite"
	"github.com/jt05610/magnet/search"
)

const (
	DefaultAttribute    = "org:resource"
	DefaultMinerTimeout = 2 * time.Minute
)

type Options struct {
	// Attribute partitions the log per participant. DefaultAttribute when
	// empty.
	Attribute string
	// Selector overrides Attribute with a derived participant id.
	Selector eventlog.Selector
	// Limits bound every per-participant refinement search.
	Limits search.Limits
	// MinerTimeout caps each external miner call.
	MinerTimeout time.Duration
	Logger       *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Attribute == "" {
		o.Attribute = DefaultAttribute
	}
	if o.MinerTimeout <= 0 {
		o.MinerTimeout = DefaultMinerTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Participant is one validated agent of a discovery run.
type Participant struct {
	ID      string
	Role    string
	Local   *magnet.Net
	Witness *search.Witness
}

// Result is the composed multi-agent model with its run metadata.
type Result struct {
	RunID        string
	Pattern      string
	Net          *magnet.Net
	Participants []Participant
}

// MiningError: the external miner failed or timed out for a participant.
// Hard and non-retryable for that participant.
type MiningError struct {
	Participant string
	Err         error
}

func (e *MiningError) Error() string {
	return fmt.Sprintf("mining local model of %s: %v", e.Participant, e.Err)
}

func (e *MiningError) Unwrap() error { return e.Err }

// RefinementError: a participant's local model is refuted or undecided
// against its pattern view. The whole composition aborts; the wrapped
// search error distinguishes the two outcomes.
type RefinementError struct {
	Participant string
	Err         error
}

func (e *RefinementError) Error() string {
	return fmt.Sprintf("local model of %s does not refine its pattern view: %v", e.Participant, e.Err)
}

func (e *RefinementError) Unwrap() error { return e.Err }

// Discover runs the compositional discovery algorithm. Each participant's
// mining and refinement search is independent and runs on its own worker;
// results are combined only after every worker returns. Pattern roles bind
// to participants in sorted participant order.
func Discover(ctx context.Context, log eventlog.Log, miner mine.Miner, p *pattern.Pattern, rules []*rewrite.Rule, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	var (
		parts map[string]eventlog.Log
		err   error
	)
	if opts.Selector != nil {
		parts, err = eventlog.PartitionBy(log, opts.Selector, opts.Attribute)
	} else {
		parts, err = eventlog.Partition(log, opts.Attribute)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parts))
	for id := range parts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	binding, err := p.Bind(ids...)
	if err != nil {
		return nil, fmt.Errorf("binding %d participants to %s: %w", len(ids), p.Name, err)
	}

	timed := mine.WithTimeout(miner, opts.MinerTimeout)
	results := make([]Participant, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			logger := opts.Logger.With(zap.String("participant", id))

			local, err := timed.Mine(gctx, parts[id])
			if err != nil {
				return &MiningError{Participant: id, Err: err}
			}
			logger.Info("mined local model",
				zap.Int("places", len(local.Places)),
				zap.Int("transitions", len(local.Transitions)))

			view, err := binding.Net(id)
			if err != nil {
				return err
			}
			witness, err := search.Refine(view, local, rules, opts.Limits)
			if err != nil {
				return &RefinementError{Participant: id, Err: err}
			}
			logger.Info("validated refinement",
				zap.Int("steps", len(witness.Steps)),
				zap.Int("explored", witness.Explored))

			role, _ := binding.Role(id)
			results[i] = Participant{ID: id, Role: role, Local: local, Witness: witness}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nets := make([]*magnet.Net, len(results))
	for i := range results {
		nets[i] = results[i].Local
	}
	merged, err := magnet.Merge(nets)
	if err != nil {
		return nil, fmt.Errorf("composing validated models: %w", err)
	}
	if len(merged.Initial) == 0 || len(merged.Final) == 0 {
		merged = magnet.AddMarkings(merged)
	}

	opts.Logger.Info("composed multi-agent model",
		zap.String("pattern", p.Name),
		zap.Int("participants", len(results)),
		zap.Int("places", len(merged.Places)),
		zap.Int("transitions", len(merged.Transitions)))

	return &Result{
		RunID:        uuid.NewString(),
		Pattern:      p.Name,
		Net:          merged,
		Participants: results,
	}, nil
}
