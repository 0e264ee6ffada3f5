package keypair

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

// Generator produces one candidate keypair per call. Implementations must
// be safe for unsynchronized use from multiple goroutines; every call is
// self-contained.
type Generator interface {
	Generate() (types.Keypair, error)
}

// Random generates ed25519 keypairs from the system CSPRNG. The address is
// the base58 encoding of the public key, the secret the base58 encoding of
// the full 64-byte private key (seed followed by public key).
type Random struct{}

// NewRandom creates the default keypair generator.
func NewRandom() *Random {
	return &Random{}
}

// Generate returns one fresh keypair.
func (*Random) Generate() (types.Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return types.Keypair{}, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return types.Keypair{
		Address: base58.Encode(pub),
		Secret:  base58.Encode(priv),
	}, nil
}
