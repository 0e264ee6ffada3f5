package types

import (
	"strings"
	"time"
)

// Pattern is the vanity constraint a candidate address is tested against.
// It is built once from validated input and shared read-only by every worker.
type Pattern struct {
	Prefix string
	Suffix string
}

// Matches reports whether the address satisfies the pattern: a non-empty
// prefix the address starts with, or a non-empty suffix it ends with.
// A pattern with both parts empty never matches anything.
func (p Pattern) Matches(address string) bool {
	if p.Prefix != "" && strings.HasPrefix(address, p.Prefix) {
		return true
	}
	if p.Suffix != "" && strings.HasSuffix(address, p.Suffix) {
		return true
	}
	return false
}

// IsEmpty reports whether no constraint is set at all.
func (p Pattern) IsEmpty() bool {
	return p.Prefix == "" && p.Suffix == ""
}

// Describe returns a human-readable description of the pattern.
func (p Pattern) Describe() string {
	switch {
	case p.Prefix != "" && p.Suffix != "":
		return "prefix: " + p.Prefix + ", suffix: " + p.Suffix
	case p.Prefix != "":
		return "prefix: " + p.Prefix
	case p.Suffix != "":
		return "suffix: " + p.Suffix
	}
	return "none"
}

// Keypair is one candidate produced by a generator. Address is the
// base58-encoded public key, Secret the base58 encoding of the 64-byte
// private key (seed followed by public key). Mnemonic is set only by the
// mnemonic generator.
type Keypair struct {
	Address  string
	Secret   string
	Mnemonic string
}

// Wallet is the final search result handed back to the caller.
type Wallet struct {
	PublicKey  string
	PrivateKey string
	Mnemonic   string
}

// Wallet converts a matching keypair into the outward result form.
func (k Keypair) Wallet() *Wallet {
	return &Wallet{
		PublicKey:  k.Address,
		PrivateKey: k.Secret,
		Mnemonic:   k.Mnemonic,
	}
}

// ProgressReport is one worker heartbeat: the absolute number of attempts
// that worker has made so far. Reports are last-value-wins per worker, so
// dropping one in transit loses nothing.
type ProgressReport struct {
	WorkerID int
	Attempts int64
}

// Result summarizes a finished search for the CLI layer.
type Result struct {
	Wallet   *Wallet
	Attempts int64
	Duration time.Duration
}

// Rate returns attempts per second over the search duration.
func (r *Result) Rate() float64 {
	if r.Duration.Seconds() <= 0 {
		return 0
	}
	return float64(r.Attempts) / r.Duration.Seconds()
}
