package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

// Base58Alphabet is the address alphabet: digits and latin letters minus
// the visually ambiguous 0, O, I and l.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// DefaultBatchSize is how many attempts a worker makes between heartbeats.
const DefaultBatchSize = 10_000

// Errors
var (
	ErrNoPatternSpecified = errors.New("must specify either --prefix or --suffix")
	ErrTooFewWorkers      = errors.New("worker count must be at least 1")
	ErrBadBatchSize       = errors.New("batch size must be at least 1")
)

// Config holds the application configuration
type Config struct {
	Workers     int
	Prefix      string
	Suffix      string
	BatchSize   int
	Mnemonic    bool
	Verbose     bool
	LogFile     string
	LogInterval int // Logging interval in seconds, used with --log-file
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		BatchSize:   DefaultBatchSize,
		LogInterval: 5,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Prefix == "" && c.Suffix == "" {
		return ErrNoPatternSpecified
	}
	if err := ValidatePattern(c.Prefix); err != nil {
		return fmt.Errorf("invalid prefix: %w", err)
	}
	if err := ValidatePattern(c.Suffix); err != nil {
		return fmt.Errorf("invalid suffix: %w", err)
	}
	if c.Workers < 1 {
		return ErrTooFewWorkers
	}
	if c.BatchSize < 1 {
		return ErrBadBatchSize
	}
	return nil
}

// Pattern returns the search pattern described by the configuration.
func (c *Config) Pattern() types.Pattern {
	return types.Pattern{Prefix: c.Prefix, Suffix: c.Suffix}
}

// ValidatePattern checks that every character of the pattern belongs to the
// base58 alphabet. The empty pattern is valid; emptiness of the whole
// configuration is checked separately.
func ValidatePattern(pattern string) error {
	if invalid := invalidBase58Chars(pattern); len(invalid) > 0 {
		return fmt.Errorf("characters %q are not in the base58 alphabet (0, O, I and l are excluded)", string(invalid))
	}
	return nil
}

// invalidBase58Chars returns the characters of s outside the base58 alphabet.
func invalidBase58Chars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(Base58Alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
