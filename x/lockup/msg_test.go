package lockup

import (
	"testing"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/chaintest/assert"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
)

func TestValidateConfigureMsg(t *testing.T) {
	cases := map[string]struct {
		msg      lockchain.Msg
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			msg: &ConfigureMsg{Rates: testRates, Boundaries: testBoundaries},
			wantErrs: map[string]*errors.Error{
				"Rates":      nil,
				"Boundaries": nil,
			},
		},
		"missing rates": {
			msg: &ConfigureMsg{Boundaries: testBoundaries},
			wantErrs: map[string]*errors.Error{
				"Rates":      ErrInvalidConfiguration,
				"Boundaries": nil,
			},
		},
		"decreasing boundaries": {
			msg: &ConfigureMsg{Rates: testRates, Boundaries: []coin.Coin{iht(3), iht(2), iht(1)}},
			wantErrs: map[string]*errors.Error{
				"Rates":        nil,
				"Boundaries.1": ErrInvalidConfiguration,
				"Boundaries.2": ErrInvalidConfiguration,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestValidateDepositMsg(t *testing.T) {
	cases := map[string]struct {
		msg      lockchain.Msg
		wantErrs map[string]*errors.Error
	}{
		"depositor is optional": {
			msg: &DepositMsg{Tier: TierLong},
			wantErrs: map[string]*errors.Error{
				"Depositor": nil,
				"Tier":      nil,
			},
		},
		"explicit depositor": {
			msg: &DepositMsg{Depositor: lockchain.NewAddress([]byte("alice")), Tier: TierShort},
			wantErrs: map[string]*errors.Error{
				"Depositor": nil,
				"Tier":      nil,
			},
		},
		"invalid depositor": {
			msg: &DepositMsg{Depositor: lockchain.Address("short"), Tier: TierShort},
			wantErrs: map[string]*errors.Error{
				"Depositor": errors.ErrInput,
				"Tier":      nil,
			},
		},
		"unknown tier": {
			msg: &DepositMsg{Tier: DurationTier(3)},
			wantErrs: map[string]*errors.Error{
				"Depositor": nil,
				"Tier":      errors.ErrInput,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestValidateWithdrawMsg(t *testing.T) {
	assert.Nil(t, (&WithdrawMsg{}).Validate())
	assert.Nil(t, (&WithdrawMsg{Depositor: lockchain.NewAddress([]byte("alice"))}).Validate())

	err := (&WithdrawMsg{Depositor: lockchain.Address{1, 2, 3}}).Validate()
	assert.FieldError(t, err, "Depositor", errors.ErrInput)
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "lockup/configure", (&ConfigureMsg{}).Path())
	assert.Equal(t, "lockup/open", (&OpenMsg{}).Path())
	assert.Equal(t, "lockup/deposit", (&DepositMsg{}).Path())
	assert.Equal(t, "lockup/withdraw", (&WithdrawMsg{}).Path())
}
