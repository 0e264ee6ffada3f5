package worker

import (
	"context"
	"fmt"

	"github.com/solhawk/sol-vanity-miner/internal/keypair"
	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

// Worker runs one independent search loop: generate a keypair, test it
// against the pattern, repeat. It talks to the outside world only through
// its two channels.
type Worker struct {
	id        int
	pattern   types.Pattern
	gen       keypair.Generator
	batchSize int

	results  chan<- *types.Wallet
	progress chan<- types.ProgressReport
}

// New creates a worker. The results channel must have capacity for this
// worker's single send so a losing match never blocks; progress sends are
// best-effort and dropped when the channel is full.
func New(id int, pattern types.Pattern, gen keypair.Generator, batchSize int, results chan<- *types.Wallet, progress chan<- types.ProgressReport) *Worker {
	return &Worker{
		id:        id,
		pattern:   pattern,
		gen:       gen,
		batchSize: batchSize,
		results:   results,
		progress:  progress,
	}
}

// Run searches until a match is found, the context is cancelled, or the
// generator fails. On a match it sends exactly one wallet and returns nil.
// On cancellation it returns the context error without emitting anything.
// A generator failure is fatal for this worker only and is returned as is.
func (w *Worker) Run(ctx context.Context) error {
	var attempts int64

	for {
		for i := 0; i < w.batchSize; i++ {
			// Keypair generation dwarfs this check, so cancellation is
			// tested every attempt rather than every batch.
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			kp, err := w.gen.Generate()
			if err != nil {
				return fmt.Errorf("worker %d: %w", w.id, err)
			}
			attempts++

			if w.pattern.Matches(kp.Address) {
				select {
				case w.results <- kp.Wallet():
				case <-ctx.Done():
					// The race was lost while the coordinator was
					// already tearing down; the wallet is discarded.
				}
				return nil
			}
		}

		w.report(attempts)
	}
}

// report sends a heartbeat without ever blocking the search loop. A full
// channel means the aggregator is behind; the next report carries the
// absolute count anyway.
func (w *Worker) report(attempts int64) {
	select {
	case w.progress <- types.ProgressReport{WorkerID: w.id, Attempts: attempts}:
	default:
	}
}
