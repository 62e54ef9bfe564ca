package chaintest

import (
	"context"
	"fmt"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/crypto"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer lockchain.Condition

	// Signers represents an authentication of multiple signers.
	Signers []lockchain.Condition
}

func (a *Auth) GetConditions(lockchain.Context) []lockchain.Condition {
	if a.Signer != nil {
		return append([]lockchain.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx lockchain.Context, addr lockchain.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx lockchain.Context, conds ...lockchain.Condition) lockchain.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx lockchain.Context) []lockchain.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]lockchain.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []lockchain.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx lockchain.Context, addr lockchain.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// NewKey returns a new random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a condition of a new random key.
func NewCondition() lockchain.Condition {
	return NewKey().PublicKey().Condition()
}
