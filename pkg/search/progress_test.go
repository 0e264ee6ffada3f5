package search

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/solhawk/sol-vanity-miner/internal/logger"
	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

func runAggregator(t *testing.T, workers int, reports []types.ProgressReport) *Aggregator {
	t.Helper()

	agg := NewAggregator(workers, logger.NewWriter(io.Discard), false, time.Hour)
	progress := make(chan types.ProgressReport, len(reports))
	for _, r := range reports {
		progress <- r
	}
	close(progress)

	go agg.Run(progress)

	select {
	case <-agg.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("aggregator did not stop on channel close")
	}
	return agg
}

func TestAggregatorSumsAcrossWorkers(t *testing.T) {
	agg := runAggregator(t, 3, []types.ProgressReport{
		{WorkerID: 1, Attempts: 100},
		{WorkerID: 2, Attempts: 250},
		{WorkerID: 3, Attempts: 50},
	})
	assert.Equal(t, int64(400), agg.Total())
}

func TestAggregatorLastValueWins(t *testing.T) {
	// Reports carry absolute counts, so a later report replaces an earlier
	// one for the same worker instead of adding to it.
	agg := runAggregator(t, 2, []types.ProgressReport{
		{WorkerID: 1, Attempts: 100},
		{WorkerID: 1, Attempts: 300},
		{WorkerID: 2, Attempts: 10},
		{WorkerID: 1, Attempts: 500},
	})
	assert.Equal(t, int64(510), agg.Total())
}

func TestAggregatorStartsAtZero(t *testing.T) {
	agg := runAggregator(t, 4, nil)
	assert.Equal(t, int64(0), agg.Total())
	assert.Len(t, agg.counts, 4)
}
