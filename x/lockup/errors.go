package lockup

import "github.com/iov-one/lockchain/errors"

var (
	// ErrInvalidConfiguration is returned when the bonus strategy or the
	// extension configuration is not valid.
	ErrInvalidConfiguration = errors.Register(1300, "invalid configuration")

	// ErrAlreadyLocked is returned when the bonus strategy is modified
	// after the deposit window was opened.
	ErrAlreadyLocked = errors.Register(1301, "strategy locked")

	// ErrAlreadyOpen is returned when opening the deposit window for the
	// second time.
	ErrAlreadyOpen = errors.Register(1302, "window already open")

	// ErrWindowNotOpen is returned when a deposit is made outside of the
	// deposit window.
	ErrWindowNotOpen = errors.Register(1303, "window not open")

	// ErrDuplicateDeposit is returned when an address deposits for the
	// second time.
	ErrDuplicateDeposit = errors.Register(1304, "duplicate deposit")

	// ErrBelowMinimum is returned when the deposited amount is lower than
	// the lowest amount boundary.
	ErrBelowMinimum = errors.Register(1305, "below minimum")

	// ErrNoRecord is returned when there is no deposit record for an
	// address.
	ErrNoRecord = errors.Register(1306, "no record")

	// ErrAlreadyWithdrawn is returned when withdrawing a deposit for the
	// second time.
	ErrAlreadyWithdrawn = errors.Register(1307, "already withdrawn")

	// ErrAssetTransfer wraps any failure of the asset ledger.
	ErrAssetTransfer = errors.Register(1308, "asset transfer")
)
