package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/solhawk/sol-vanity-miner/internal/config"
	"github.com/solhawk/sol-vanity-miner/internal/keypair"
	"github.com/solhawk/sol-vanity-miner/internal/logger"
	"github.com/solhawk/sol-vanity-miner/pkg/types"
	"github.com/solhawk/sol-vanity-miner/pkg/worker"
)

// ErrSearchExhausted is returned when every worker has died without a
// match, which only happens if the key generation primitive fails.
var ErrSearchExhausted = errors.New("search exhausted: all workers stopped without a match")

// Searcher owns the worker pool and the progress aggregator for one search.
type Searcher struct {
	cfg *config.Config
	log *logger.Logger
	gen keypair.Generator
	agg *Aggregator
}

// New creates a searcher from a validated configuration.
func New(cfg *config.Config, log *logger.Logger) *Searcher {
	var gen keypair.Generator
	if cfg.Mnemonic {
		gen = keypair.NewMnemonic()
	} else {
		gen = keypair.NewRandom()
	}

	interactive := cfg.LogFile == ""
	interval := time.Duration(cfg.LogInterval) * time.Second

	return &Searcher{
		cfg: cfg,
		log: log,
		gen: gen,
		agg: NewAggregator(cfg.Workers, log, interactive, interval),
	}
}

// Search runs workers until the first wallet matching the pattern arrives,
// the context is cancelled, or all workers die. Exactly one of the return
// values is set. Whatever the outcome, no worker and no aggregator
// goroutine survives the return.
func (s *Searcher) Search(ctx context.Context) (*types.Result, error) {
	if s.cfg.Workers < 1 {
		return nil, config.ErrTooFewWorkers
	}
	pattern := s.cfg.Pattern()
	if pattern.IsEmpty() {
		return nil, config.ErrNoPatternSpecified
	}

	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Result capacity covers one send per worker so a losing match is
	// parked in the buffer and discarded, never blocking its worker.
	results := make(chan *types.Wallet, s.cfg.Workers)
	progress := make(chan types.ProgressReport, 4*s.cfg.Workers)

	var wg sync.WaitGroup
	for id := 1; id <= s.cfg.Workers; id++ {
		w := worker.New(id, pattern, s.gen, s.cfg.BatchSize, results, progress)
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				// Fatal for this worker only; the search goes on as long
				// as any sibling is alive.
				if s.cfg.Verbose {
					s.log.Printf("worker %d stopped: %v", id, err)
				}
			}
		}(id)
	}

	workersDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(workersDone)
	}()

	go s.agg.Run(progress)

	var wallet *types.Wallet
	var outcome error

	select {
	case wallet = <-results:
		// First arrival wins; later sends stay in the buffer unread.
	case <-ctx.Done():
		outcome = ctx.Err()
	case <-workersDone:
		// A single worker that finds a match also exits, so check the
		// buffer once before declaring the search dead.
		select {
		case wallet = <-results:
		default:
			outcome = ErrSearchExhausted
		}
	}

	// Teardown order matters: stop the workers, wait until none can send,
	// then close the progress channel and let the aggregator drain out.
	cancel()
	wg.Wait()
	close(progress)
	<-s.agg.Done()

	if outcome != nil {
		return nil, outcome
	}
	return &types.Result{
		Wallet:   wallet,
		Attempts: s.agg.Total(),
		Duration: time.Since(start),
	}, nil
}
