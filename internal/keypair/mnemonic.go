package keypair

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/pbkdf2"

	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

const hardened = 0x80000000

// solanaPath is the standard wallet derivation path m/44'/501'/0'/0'.
var solanaPath = []uint32{44 | hardened, 501 | hardened, 0 | hardened, 0 | hardened}

// Mnemonic generates keypairs derived from fresh random BIP-39 phrases, so
// a found wallet can be restored in any standard Solana wallet app.
type Mnemonic struct {
	entropyBits int
}

// NewMnemonic creates a generator producing 24-word recovery phrases.
func NewMnemonic() *Mnemonic {
	return &Mnemonic{entropyBits: 256}
}

// Generate returns one keypair derived from a new random mnemonic.
func (m *Mnemonic) Generate() (types.Keypair, error) {
	entropy, err := bip39.NewEntropy(m.entropyBits)
	if err != nil {
		return types.Keypair{}, fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return types.Keypair{}, fmt.Errorf("generate mnemonic: %w", err)
	}
	kp := FromMnemonic(mnemonic)
	return kp, nil
}

// FromMnemonic derives the keypair at m/44'/501'/0'/0' for a phrase.
func FromMnemonic(mnemonic string) types.Keypair {
	seed := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), 2048, 64, sha512.New)

	h := hmac.New(sha512.New, []byte("ed25519 seed"))
	h.Write(seed)
	sum := h.Sum(nil)
	key, chainCode := sum[:32], sum[32:]

	for _, index := range solanaPath {
		key, chainCode = deriveChild(key, chainCode, index)
	}

	priv := ed25519.NewKeyFromSeed(key)
	return types.Keypair{
		Address:  base58.Encode(priv[32:]),
		Secret:   base58.Encode(priv),
		Mnemonic: mnemonic,
	}
}

// deriveChild performs one hardened SLIP-10 ed25519 derivation step.
func deriveChild(key, chainCode []byte, index uint32) ([]byte, []byte) {
	data := make([]byte, 37)
	data[0] = 0
	copy(data[1:33], key)
	data[33] = byte(index >> 24)
	data[34] = byte(index >> 16)
	data[35] = byte(index >> 8)
	data[36] = byte(index)

	h := hmac.New(sha512.New, chainCode)
	h.Write(data)
	sum := h.Sum(nil)
	return sum[:32], sum[32:]
}
