package x

import (
	"github.com/iov-one/lockchain"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding signature checks for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(lockchain.Context) []lockchain.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(lockchain.Context, lockchain.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx lockchain.Context) []lockchain.Condition {
	var res []lockchain.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx lockchain.Context, addr lockchain.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx lockchain.Context, auth Authenticator) []lockchain.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]lockchain.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx lockchain.Context, auth Authenticator) lockchain.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// AddressOrMainSigner returns given address if set. Otherwise the address of
// the main signer is returned. Nil is returned when neither is available.
func AddressOrMainSigner(ctx lockchain.Context, auth Authenticator, addr lockchain.Address) lockchain.Address {
	if len(addr) != 0 {
		return addr
	}
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil
	}
	return signer.Address()
}
