// Package mine declares the external process-discovery collaborator. The
// orchestrator assumes any Miner returns a net that replays every trace of
// the sub-log it was given; it does not verify that guarantee.
package mine

import (
	"context"
	"time"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/eventlog"
)

type Miner interface {
	Mine(ctx context.Context, log eventlog.Log) (*magnet.Net, error)
}

type MinerFunc func(ctx context.Context, log eventlog.Log) (*magnet.Net, error)

func (f MinerFunc) Mine(ctx context.Context, log eventlog.Log) (*magnet.Net, error) {
	return f(ctx, log)
}

// WithTimeout caps every Mine call. Miners are the only suspension point
// of the pipeline besides conformance checking, and a timeout is a hard,
// non-retryable failure for that participant.
func WithTimeout(m Miner, d time.Duration) Miner {
	return MinerFunc(func(ctx context.Context, log eventlog.Log) (*magnet.Net, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return m.Mine(ctx, log)
	})
}
