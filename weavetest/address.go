package weavetest

import (
	"crypto/rand"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/crypto"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivateKey()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid random weave address generated on the fly.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()
	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := weave.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not a valid weave address: %s", err)
	}
	return a
}

// ParseAddress takes a weave address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// weave.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) weave.Address {
	t.Helper()

	addr, err := weave.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
