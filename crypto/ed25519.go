/*
Package crypto provides the ed25519 keys used to sign transactions. A public
key is turned into a weave.Condition, which in turn gives the account address.
*/
package crypto

import (
	"encoding/hex"
	"io/ioutil"
	"strings"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the condition of a public key.
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey []byte

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a weave permission
func (p PublicKey) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address of the account controlled by this key.
func (p PublicKey) Address() weave.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey []byte

// GenPrivateKey returns a random new private key.
func GenPrivateKey() PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKey(priv)
}

// PrivateKeyFromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) PrivateKey {
	return PrivateKey(ed25519.NewKeyFromSeed(seed))
}

// Sign returns a matching signature for this private key
func (p PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p), message)
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// LoadPrivateKey reads a hex encoded private key from given file.
func LoadPrivateKey(filename string) (PrivateKey, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read key file")
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "key file is not hex encoded")
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid key length %d", len(key))
	}
	return PrivateKey(key), nil
}

// SavePrivateKey writes given key hex encoded into a file that is readable
// only by the owner.
func SavePrivateKey(key PrivateKey, filename string) error {
	enc := hex.EncodeToString(key)
	if err := ioutil.WriteFile(filename, []byte(enc), 0600); err != nil {
		return errors.Wrap(err, "cannot write key file")
	}
	return nil
}
