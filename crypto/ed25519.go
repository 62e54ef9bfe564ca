/*
Package crypto provides the ed25519 keys used to identify the signers of a
transaction. A public key is represented by a condition and the address
derived from it.
*/
package crypto

import (
	"bytes"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	key ed25519.PublicKey
}

// NewPublicKey returns a public key instance from its raw representation.
func NewPublicKey(raw []byte) (*PublicKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return &PublicKey{key: append(ed25519.PublicKey{}, raw...)}, nil
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, signature []byte) bool {
	return ed25519.Verify(p.key, message, signature)
}

// Condition encodes the public key into a condition. Only a signature made
// with the matching private key can fulfil it.
func (p *PublicKey) Condition() lockchain.Condition {
	return lockchain.NewCondition(ExtensionName, "ed25519", p.key)
}

// Address returns the address of the condition of this key.
func (p *PublicKey) Address() lockchain.Address {
	return p.Condition().Address()
}

// Bytes returns the raw representation of this key.
func (p *PublicKey) Bytes() []byte {
	return append([]byte{}, p.key...)
}

// Equals returns true if both keys are the same.
func (p *PublicKey) Equals(o *PublicKey) bool {
	return o != nil && bytes.Equal(p.key, o.key)
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.key) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrState, "malformed private key")
	}
	return ed25519.Sign(p.key, message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return &PublicKey{key: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}
}
