// Package crypto provides the key material used to authenticate ledger
// callers. An account address is derived from the condition of the ed25519
// public key that controls it.
package crypto

import (
	"github.com/recpm-network/recpm"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the namespace all signature conditions live under.
const ExtensionName = "sigs"

// PublicKey wraps an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public
// key.
func (p *PublicKey) Verify(message []byte, sig []byte) bool {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a ledger permission.
func (p *PublicKey) Condition() recpm.Condition {
	return recpm.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for Condition().Address().
func (p *PublicKey) Address() recpm.Address {
	return p.Condition().Address()
}

// PrivateKey wraps an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness, or
// for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
