package cash

import (
	"strings"
	"testing"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/chaintest"
	"github.com/iov-one/lockchain/chaintest/assert"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
)

func TestSendMsgValidate(t *testing.T) {
	addr := chaintest.NewCondition().Address()

	cases := map[string]struct {
		msg      lockchain.Msg
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			msg: &SendMsg{Destination: addr, Amount: coin.NewCoin(1, 0, "FOO")},
			wantErrs: map[string]*errors.Error{
				"Source":      nil,
				"Destination": nil,
				"Amount":      nil,
			},
		},
		"empty amount is a notification": {
			msg: &SendMsg{Source: addr, Destination: addr, Amount: coin.Zero("FOO")},
			wantErrs: map[string]*errors.Error{
				"Amount": nil,
			},
		},
		"negative amount": {
			msg: &SendMsg{Destination: addr, Amount: coin.NewCoin(-1, 0, "FOO")},
			wantErrs: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
			},
		},
		"invalid addresses and memo": {
			msg: &SendMsg{
				Source:      []byte{1, 2},
				Destination: nil,
				Amount:      coin.NewCoin(1, 0, "FOO"),
				Memo:        strings.Repeat("x", maxMemoSize+1),
			},
			wantErrs: map[string]*errors.Error{
				"Source":      errors.ErrInput,
				"Destination": errors.ErrInput,
				"Memo":        errors.ErrInput,
			},
		},
		"approve without spender": {
			msg: &ApproveMsg{Amount: coin.NewCoin(1, 0, "FOO")},
			wantErrs: map[string]*errors.Error{
				"Owner":   nil,
				"Spender": errors.ErrInput,
				"Amount":  nil,
			},
		},
		"approve with invalid currency": {
			msg: &ApproveMsg{Spender: addr, Amount: coin.NewCoin(1, 0, "x")},
			wantErrs: map[string]*errors.Error{
				"Spender": nil,
				"Amount":  errors.ErrCurrency,
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
