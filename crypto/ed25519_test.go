package crypto

import (
	"bytes"
	"testing"

	"github.com/recpm-network/recpm"
)

func TestSignAndVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("some message to authorize")
	sig := priv.Sign(msg)

	if !pub.Verify(msg, sig) {
		t.Fatal("signature must verify")
	}
	if pub.Verify([]byte("other message"), sig) {
		t.Fatal("signature must not verify a different message")
	}

	other := GenPrivKeyEd25519().PublicKey()
	if other.Verify(msg, sig) {
		t.Fatal("signature must not verify under a different key")
	}
}

func TestDeterministicFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	if !bytes.Equal(a.Ed25519, b.Ed25519) {
		t.Fatal("seeded keys must be deterministic")
	}
}

func TestCondition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	cond := pub.Condition()
	if err := cond.Validate(); err != nil {
		t.Fatalf("invalid condition: %s", err)
	}
	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("cannot parse condition: %s", err)
	}
	if ext != ExtensionName || typ != "ed25519" {
		t.Fatalf("unexpected condition sections: %s/%s", ext, typ)
	}
	if !bytes.Equal(data, pub.Ed25519) {
		t.Fatal("condition data must be the public key")
	}
	if len(pub.Address()) != recpm.AddressLength {
		t.Fatalf("unexpected address length: %d", len(pub.Address()))
	}
}
