package search

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhawk/sol-vanity-miner/internal/config"
	"github.com/solhawk/sol-vanity-miner/internal/logger"
	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

func testConfig(prefix, suffix string, workers int) *config.Config {
	cfg := config.NewConfig()
	cfg.Prefix = prefix
	cfg.Suffix = suffix
	cfg.Workers = workers
	// Small batches keep heartbeats flowing in short test runs.
	cfg.BatchSize = 50
	return cfg
}

func newTestSearcher(cfg *config.Config) *Searcher {
	return New(cfg, logger.NewWriter(io.Discard))
}

// brokenGenerator fails every call, as a dead entropy source would.
type brokenGenerator struct{}

func (brokenGenerator) Generate() (types.Keypair, error) {
	return types.Keypair{}, errors.New("entropy source unavailable")
}

func TestNewSearcher(t *testing.T) {
	cfg := testConfig("S", "", 2)
	s := newTestSearcher(cfg)
	require.NotNil(t, s)
	assert.Equal(t, cfg, s.cfg)
	assert.NotNil(t, s.gen)
	assert.NotNil(t, s.agg)
}

func TestSearchFindsPrefix(t *testing.T) {
	cfg := testConfig("S", "", 4)
	s := newTestSearcher(cfg)

	result, err := s.Search(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Wallet)

	assert.True(t, strings.HasPrefix(result.Wallet.PublicKey, "S"),
		"public key %s should start with S", result.Wallet.PublicKey)
	assert.True(t, cfg.Pattern().Matches(result.Wallet.PublicKey))
	assert.NotEmpty(t, result.Wallet.PrivateKey)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestSearchFindsSuffix(t *testing.T) {
	cfg := testConfig("", "a", 4)
	s := newTestSearcher(cfg)

	result, err := s.Search(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Wallet)

	assert.True(t, strings.HasSuffix(result.Wallet.PublicKey, "a"),
		"public key %s should end with a", result.Wallet.PublicKey)
}

func TestSearchSingleWorker(t *testing.T) {
	// One worker finding a match also empties the pool; that must read as
	// success, not exhaustion.
	cfg := testConfig("S", "", 1)
	s := newTestSearcher(cfg)

	result, err := s.Search(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Wallet.PublicKey, "S"))
}

func TestSearchCancellation(t *testing.T) {
	// Twelve fixed characters will not turn up within any test's lifetime.
	cfg := testConfig("zzzzzzzzzzzz", "", 4)
	s := newTestSearcher(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	var result *types.Result
	var err error
	go func() {
		result, err = s.Search(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("search did not return after cancellation")
	}

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)

	// Workers and aggregator must all be gone once Search returns.
	select {
	case <-s.agg.Done():
	default:
		t.Error("aggregator still running after Search returned")
	}
}

func TestSearchExhaustion(t *testing.T) {
	cfg := testConfig("zzzzzzzzzzzz", "", 3)
	s := newTestSearcher(cfg)
	s.gen = brokenGenerator{}

	result, err := s.Search(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSearchExhausted)

	select {
	case <-s.agg.Done():
	default:
		t.Error("aggregator still running after exhaustion")
	}
}

func TestSearchRejectsBadConfig(t *testing.T) {
	t.Run("zero workers", func(t *testing.T) {
		cfg := testConfig("S", "", 0)
		s := newTestSearcher(cfg)
		_, err := s.Search(context.Background())
		assert.ErrorIs(t, err, config.ErrTooFewWorkers)
	})

	t.Run("empty pattern", func(t *testing.T) {
		cfg := testConfig("", "", 2)
		s := newTestSearcher(cfg)
		_, err := s.Search(context.Background())
		assert.ErrorIs(t, err, config.ErrNoPatternSpecified)
	})
}

func TestSearchMnemonicMode(t *testing.T) {
	cfg := testConfig("S", "", 4)
	cfg.Mnemonic = true
	cfg.BatchSize = 10
	s := newTestSearcher(cfg)

	result, err := s.Search(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Wallet.PublicKey, "S"))
	assert.NotEmpty(t, result.Wallet.Mnemonic, "mnemonic mode should carry the phrase")
}
