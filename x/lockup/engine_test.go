package lockup

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/chaintest"
	"github.com/iov-one/lockchain/chaintest/assert"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/gconf"
	"github.com/iov-one/lockchain/store"
	"github.com/iov-one/lockchain/x/cash"
)

const day = 24 * time.Hour

var (
	now = time.Date(2019, 4, 4, 12, 0, 0, 0, time.UTC)

	testRates      = []uint32{70, 90, 115, 75, 95, 120}
	testBoundaries = []coin.Coin{iht(500), iht(2500), iht(10000)}
)

func iht(whole int64) coin.Coin {
	return coin.NewCoin(whole, 0, "IHT")
}

func atTime(t time.Time) lockchain.Context {
	return lockchain.WithBlockTime(context.Background(), t)
}

// fixture is a lockup engine operating on a cash ledger with funded
// accounts.
type fixture struct {
	db     lockchain.CacheableKVStore
	ctrl   *cash.BaseController
	engine *Engine
	conf   Configuration

	admin lockchain.Address
	pool  lockchain.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	f := &fixture{
		db:    store.MemStore(),
		ctrl:  cash.NewController(),
		admin: chaintest.NewCondition().Address(),
		pool:  chaintest.NewCondition().Address(),
	}
	f.engine = NewEngine(f.ctrl)
	f.conf = Configuration{
		Admin:     f.admin,
		Ticker:    "IHT",
		BonusPool: f.pool,
		LockPeriods: []lockchain.UnixDuration{
			lockchain.AsUnixDuration(90 * day),
			lockchain.AsUnixDuration(180 * day),
			lockchain.AsUnixDuration(360 * day),
		},
	}
	assert.Nil(t, gconf.Save(f.db, confPkg, &f.conf))

	assert.Nil(t, f.ctrl.CoinMint(f.db, f.pool, iht(100000)))
	assert.Nil(t, f.ctrl.Approve(f.db, f.pool, CustodyAddress(), iht(100000)))
	return f
}

// open configures the strategy used by all scenarios and opens the window.
func (f *fixture) open(t testing.TB) {
	t.Helper()
	assert.Nil(t, f.engine.Configure(atTime(now), f.db, testRates, testBoundaries))
	assert.Nil(t, f.engine.Open(atTime(now), f.db))
}

// depositor returns a new address owning given funds that approved the
// custody address to spend given allowance.
func (f *fixture) depositor(t testing.TB, funds, allowance coin.Coin) lockchain.Address {
	t.Helper()
	addr := chaintest.NewCondition().Address()
	if funds.IsPositive() {
		assert.Nil(t, f.ctrl.CoinMint(f.db, addr, funds))
	}
	assert.Nil(t, f.ctrl.Approve(f.db, addr, CustodyAddress(), allowance))
	return addr
}

func (f *fixture) balance(t testing.TB, addr lockchain.Address) coin.Coin {
	t.Helper()
	coins, err := f.ctrl.Balance(f.db, addr)
	assert.Nil(t, err)
	return coins.Get("IHT")
}

func TestScenarioDepositWithinFirstBand(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	alice := f.depositor(t, iht(20000), iht(500))

	rec, err := f.engine.Deposit(atTime(now), f.db, alice, TierMedium)
	assert.Nil(t, err)
	assert.Equal(t, iht(500), rec.Principal)
	assert.Equal(t, uint32(90), rec.BonusRate)
	assert.Equal(t, coin.NewCoin(45, 0, "IHT"), rec.BonusExpected)
	assert.Equal(t, false, rec.BonusReleased)
	assert.Equal(t, lockchain.AsUnixTime(now), rec.LockStart)
	assert.Equal(t, lockchain.AsUnixTime(now.Add(180*day)), rec.LockEnd)
	assert.Equal(t, lockchain.AsUnixTime(now), rec.DepositTime)
	assert.Equal(t, true, rec.WithdrawalTime.IsZero())

	stored, err := f.engine.Record(f.db, alice)
	assert.Nil(t, err)
	assert.Equal(t, rec, stored)

	assert.Equal(t, iht(19500), f.balance(t, alice))
	held, err := f.engine.Holdings(f.db)
	assert.Nil(t, err)
	assert.Equal(t, iht(500), held)
}

func TestScenarioDepositIsCapped(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	bob := f.depositor(t, iht(40000), iht(20000))

	rec, err := f.engine.Deposit(atTime(now), f.db, bob, TierMedium)
	assert.Nil(t, err)
	assert.Equal(t, iht(10000), rec.Principal)
	assert.Equal(t, uint32(95), rec.BonusRate)
	assert.Equal(t, iht(950), rec.BonusExpected)

	// Only the admitted amount is taken, the excess allowance remains.
	assert.Equal(t, iht(30000), f.balance(t, bob))
	left, err := f.ctrl.Allowance(f.db, bob, CustodyAddress(), "IHT")
	assert.Nil(t, err)
	assert.Equal(t, iht(10000), left)
}

func TestDepositNearLargeCap(t *testing.T) {
	f := newFixture(t)
	boundaries := []coin.Coin{iht(1000), iht(10000000000000), iht(100000000000000)}
	assert.Nil(t, f.engine.Configure(atTime(now), f.db, testRates, boundaries))
	assert.Nil(t, f.engine.Open(atTime(now), f.db))
	bob := f.depositor(t, iht(100000000000000), iht(100000000000000))

	rec, err := f.engine.Deposit(atTime(now), f.db, bob, TierMedium)
	assert.Nil(t, err)
	assert.Equal(t, iht(100000000000000), rec.Principal)
	assert.Equal(t, uint32(95), rec.BonusRate)
	assert.Equal(t, iht(9500000000000), rec.BonusExpected)
}

func TestScenarioDepositBelowMinimum(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	carol := f.depositor(t, iht(20000), iht(100))

	_, err := f.engine.Deposit(atTime(now), f.db, carol, TierMedium)
	assert.IsErr(t, ErrBelowMinimum, err)

	_, err = f.engine.Record(f.db, carol)
	assert.IsErr(t, ErrNoRecord, err)
	assert.Equal(t, iht(20000), f.balance(t, carol))

	// No allowance at all is the same as a too small one.
	dave := f.depositor(t, iht(20000), coin.Zero("IHT"))
	_, err = f.engine.Deposit(atTime(now), f.db, dave, TierShort)
	assert.IsErr(t, ErrBelowMinimum, err)
}

func TestScenarioEarlyWithdrawal(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	alice := f.depositor(t, iht(3000), iht(3000))

	rec, err := f.engine.Deposit(atTime(now), f.db, alice, TierLong)
	assert.Nil(t, err)
	assert.Equal(t, uint32(120), rec.BonusRate)

	withdrawAt := now.Add(time.Hour)
	payout, err := f.engine.Withdraw(atTime(withdrawAt), f.db, alice)
	assert.Nil(t, err)
	assert.Equal(t, rec.Principal, payout)

	rec, err = f.engine.Record(f.db, alice)
	assert.Nil(t, err)
	assert.Equal(t, false, rec.BonusReleased)
	assert.Equal(t, lockchain.AsUnixTime(withdrawAt), rec.WithdrawalTime)

	assert.Equal(t, iht(3000), f.balance(t, alice))
	assert.Equal(t, iht(100000), f.balance(t, f.pool))
	held, err := f.engine.Holdings(f.db)
	assert.Nil(t, err)
	assert.Equal(t, coin.Zero("IHT"), held)
}

func TestWithdrawAfterLockEnd(t *testing.T) {
	cases := map[string]time.Time{
		"exactly at the lock end": now.Add(90 * day),
		"after the lock end":      now.Add(400 * day),
	}
	for testName, withdrawAt := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.open(t)
			alice := f.depositor(t, iht(1000), iht(1000))

			rec, err := f.engine.Deposit(atTime(now), f.db, alice, TierShort)
			assert.Nil(t, err)
			assert.Equal(t, uint32(70), rec.BonusRate)
			assert.Equal(t, iht(70), rec.BonusExpected)

			payout, err := f.engine.Withdraw(atTime(withdrawAt), f.db, alice)
			assert.Nil(t, err)
			assert.Equal(t, iht(1070), payout)

			rec, err = f.engine.Record(f.db, alice)
			assert.Nil(t, err)
			assert.Equal(t, true, rec.BonusReleased)

			assert.Equal(t, iht(1070), f.balance(t, alice))
			assert.Equal(t, iht(99930), f.balance(t, f.pool))

			// Second withdrawal moves nothing.
			_, err = f.engine.Withdraw(atTime(withdrawAt.Add(day)), f.db, alice)
			assert.IsErr(t, ErrAlreadyWithdrawn, err)
			assert.Equal(t, iht(1070), f.balance(t, alice))
			assert.Equal(t, iht(99930), f.balance(t, f.pool))
		})
	}
}

func TestWithdrawWithoutRecord(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	_, err := f.engine.Withdraw(atTime(now), f.db, chaintest.NewCondition().Address())
	assert.IsErr(t, ErrNoRecord, err)
}

func TestBonusPoolFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	alice := f.depositor(t, iht(1000), iht(1000))

	_, err := f.engine.Deposit(atTime(now), f.db, alice, TierShort)
	assert.Nil(t, err)

	// The pool no longer allows the custody to take the bonus.
	assert.Nil(t, f.ctrl.Approve(f.db, f.pool, CustodyAddress(), coin.Zero("IHT")))

	_, err = f.engine.Withdraw(atTime(now.Add(100*day)), f.db, alice)
	assert.IsErr(t, ErrAssetTransfer, err)

	rec, err := f.engine.Record(f.db, alice)
	assert.Nil(t, err)
	assert.Equal(t, false, rec.IsWithdrawn())
	assert.Equal(t, false, rec.BonusReleased)
	assert.Equal(t, coin.Zero("IHT"), f.balance(t, alice))

	// Early withdrawal does not need the pool.
	f2 := newFixture(t)
	f2.open(t)
	bob := f2.depositor(t, iht(1000), iht(1000))
	_, err = f2.engine.Deposit(atTime(now), f2.db, bob, TierShort)
	assert.Nil(t, err)
	assert.Nil(t, f2.ctrl.Approve(f2.db, f2.pool, CustodyAddress(), coin.Zero("IHT")))
	payout, err := f2.engine.Withdraw(atTime(now.Add(day)), f2.db, bob)
	assert.Nil(t, err)
	assert.Equal(t, iht(1000), payout)
}

func TestDepositRules(t *testing.T) {
	f := newFixture(t)
	alice := f.depositor(t, iht(20000), iht(1000))

	_, err := f.engine.Deposit(atTime(now), f.db, alice, TierMedium)
	assert.IsErr(t, ErrWindowNotOpen, err)

	f.open(t)

	_, err = f.engine.Deposit(atTime(now), f.db, alice, DurationTier(3))
	assert.IsErr(t, errors.ErrInput, err)
	_, err = f.engine.Deposit(atTime(now), f.db, nil, TierShort)
	assert.IsErr(t, errors.ErrInput, err)

	first, err := f.engine.Deposit(atTime(now), f.db, alice, TierMedium)
	assert.Nil(t, err)

	assert.Nil(t, f.ctrl.Approve(f.db, alice, CustodyAddress(), iht(5000)))
	_, err = f.engine.Deposit(atTime(now.Add(time.Minute)), f.db, alice, TierLong)
	assert.IsErr(t, ErrDuplicateDeposit, err)

	rec, err := f.engine.Record(f.db, alice)
	assert.Nil(t, err)
	assert.Equal(t, first, rec)
	assert.Equal(t, iht(19000), f.balance(t, alice))

	// Withdrawn record still blocks a new deposit.
	_, err = f.engine.Withdraw(atTime(now.Add(time.Hour)), f.db, alice)
	assert.Nil(t, err)
	_, err = f.engine.Deposit(atTime(now.Add(2*time.Hour)), f.db, alice, TierLong)
	assert.IsErr(t, ErrDuplicateDeposit, err)
}

func TestDepositInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.open(t)
	// Allowance is not backed by the balance.
	alice := f.depositor(t, iht(600), iht(1000))

	_, err := f.engine.Deposit(atTime(now), f.db, alice, TierMedium)
	assert.IsErr(t, ErrAssetTransfer, err)

	_, err = f.engine.Record(f.db, alice)
	assert.IsErr(t, ErrNoRecord, err)
	assert.Equal(t, iht(600), f.balance(t, alice))
	left, err := f.ctrl.Allowance(f.db, alice, CustodyAddress(), "IHT")
	assert.Nil(t, err)
	assert.Equal(t, iht(1000), left)
}

func TestBandClassification(t *testing.T) {
	cases := map[string]struct {
		amount   coin.Coin
		tier     DurationTier
		wantRate uint32
		wantPrin coin.Coin
	}{
		"lowest boundary":            {amount: iht(500), tier: TierShort, wantRate: 70, wantPrin: iht(500)},
		"middle boundary":            {amount: iht(2500), tier: TierLong, wantRate: 115, wantPrin: iht(2500)},
		"just above middle boundary": {amount: coin.NewCoin(2500, 1, "IHT"), tier: TierShort, wantRate: 75, wantPrin: coin.NewCoin(2500, 1, "IHT")},
		"second band":                {amount: iht(7000), tier: TierMedium, wantRate: 95, wantPrin: iht(7000)},
		"highest boundary":           {amount: iht(10000), tier: TierLong, wantRate: 120, wantPrin: iht(10000)},
		"above the cap":              {amount: iht(10001), tier: TierShort, wantRate: 75, wantPrin: iht(10000)},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.open(t)
			addr := f.depositor(t, iht(20000), tc.amount)
			rec, err := f.engine.Deposit(atTime(now), f.db, addr, tc.tier)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantRate, rec.BonusRate)
			assert.Equal(t, tc.wantPrin, rec.Principal)
			assert.Equal(t, tc.tier, rec.Tier)
		})
	}
}

func TestWindowLifecycle(t *testing.T) {
	f := newFixture(t)

	open, err := f.engine.IsOpen(atTime(now), f.db)
	assert.Nil(t, err)
	assert.Equal(t, false, open)
	_, err = f.engine.Admit(atTime(now), f.db)
	assert.IsErr(t, ErrWindowNotOpen, err)

	// Without a configured or default strategy the window cannot open.
	err = f.engine.Open(atTime(now), f.db)
	assert.IsErr(t, ErrInvalidConfiguration, err)

	err = f.engine.Configure(atTime(now), f.db, testRates[:5], testBoundaries)
	assert.IsErr(t, ErrInvalidConfiguration, err)
	err = f.engine.Configure(atTime(now), f.db, testRates, []coin.Coin{iht(500), iht(500), iht(10000)})
	assert.IsErr(t, ErrInvalidConfiguration, err)
	err = f.engine.Configure(atTime(now), f.db, testRates, []coin.Coin{coin.NewCoin(500, 0, "ETH"), coin.NewCoin(2500, 0, "ETH"), coin.NewCoin(10000, 0, "ETH")})
	assert.IsErr(t, ErrInvalidConfiguration, err)

	// Strategy can be changed until the window is open.
	assert.Nil(t, f.engine.Configure(atTime(now), f.db, []uint32{1, 2, 3, 4, 5, 6}, testBoundaries))
	assert.Nil(t, f.engine.Configure(atTime(now), f.db, testRates, testBoundaries))

	assert.Nil(t, f.engine.Open(atTime(now), f.db))
	open, err = f.engine.IsOpen(atTime(now), f.db)
	assert.Nil(t, err)
	assert.Equal(t, true, open)

	err = f.engine.Open(atTime(now.Add(time.Hour)), f.db)
	assert.IsErr(t, ErrAlreadyOpen, err)
	err = f.engine.Configure(atTime(now), f.db, []uint32{1, 2, 3, 4, 5, 6}, testBoundaries)
	assert.IsErr(t, ErrAlreadyLocked, err)

	table, err := f.engine.Admit(atTime(now), f.db)
	assert.Nil(t, err)
	assert.Equal(t, Strategy{Rates: testRates, Boundaries: testBoundaries}, table.Strategy())

	// Without a deposit period the window never closes.
	open, err = f.engine.IsOpen(atTime(now.Add(10000*day)), f.db)
	assert.Nil(t, err)
	assert.Equal(t, true, open)
}

func TestDepositPeriod(t *testing.T) {
	f := newFixture(t)
	f.conf.DepositPeriod = lockchain.AsUnixDuration(7 * day)
	assert.Nil(t, gconf.Save(f.db, confPkg, &f.conf))
	f.open(t)

	alice := f.depositor(t, iht(1000), iht(1000))
	bob := f.depositor(t, iht(1000), iht(1000))

	_, err := f.engine.Deposit(atTime(now.Add(7*day-time.Second)), f.db, alice, TierShort)
	assert.Nil(t, err)

	_, err = f.engine.Deposit(atTime(now.Add(7*day)), f.db, bob, TierShort)
	assert.IsErr(t, ErrWindowNotOpen, err)

	// Withdrawal is possible after the window was closed.
	_, err = f.engine.Withdraw(atTime(now.Add(100*day)), f.db, alice)
	assert.Nil(t, err)
}

func TestDefaultStrategy(t *testing.T) {
	f := newFixture(t)
	f.conf.DefaultStrategy = Strategy{
		Rates:      []uint32{10, 20, 30, 40, 50, 60},
		Boundaries: []coin.Coin{iht(1), iht(2), iht(3)},
	}
	assert.Nil(t, gconf.Save(f.db, confPkg, &f.conf))

	assert.Nil(t, f.engine.Open(atTime(now), f.db))
	table, err := f.engine.Admit(atTime(now), f.db)
	assert.Nil(t, err)
	assert.Equal(t, f.conf.DefaultStrategy, table.Strategy())
}

func TestReceive(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RegisterReceiver(CustodyAddress(), f.engine)
	f.open(t)
	alice := f.depositor(t, iht(5000), iht(3000))

	// An empty transfer into the custody is a medium tier deposit.
	assert.Nil(t, f.ctrl.Transfer(atTime(now), f.db, alice, CustodyAddress(), coin.Zero("IHT")))

	rec, err := f.engine.Record(f.db, alice)
	assert.Nil(t, err)
	assert.Equal(t, TierMedium, rec.Tier)
	assert.Equal(t, iht(3000), rec.Principal)
	assert.Equal(t, uint32(95), rec.BonusRate)
	assert.Equal(t, iht(2000), f.balance(t, alice))

	// Pushing value is refused.
	bob := f.depositor(t, iht(5000), iht(3000))
	err = f.ctrl.Transfer(atTime(now), f.db, bob, CustodyAddress(), iht(600))
	assert.IsErr(t, errors.ErrInput, err)
}

// reentrantLedger calls back into the engine while moving assets.
type reentrantLedger struct {
	*cash.BaseController
	engine *Engine

	depositErr  error
	withdrawErr error
}

func (l *reentrantLedger) TransferFrom(ctx lockchain.Context, db lockchain.KVStore, owner, spender lockchain.Address, amount coin.Coin) error {
	if l.depositErr == nil {
		_, l.depositErr = l.engine.Deposit(ctx, db, owner, TierShort)
	}
	return l.BaseController.TransferFrom(ctx, db, owner, spender, amount)
}

func (l *reentrantLedger) Transfer(ctx lockchain.Context, db lockchain.KVStore, src, dest lockchain.Address, amount coin.Coin) error {
	if l.withdrawErr == nil {
		_, l.withdrawErr = l.engine.Withdraw(ctx, db, dest)
	}
	return l.BaseController.Transfer(ctx, db, src, dest, amount)
}

func TestReentrantCallsObserveUpdatedRecord(t *testing.T) {
	f := newFixture(t)
	ledger := &reentrantLedger{BaseController: f.ctrl}
	f.engine = NewEngine(ledger)
	ledger.engine = f.engine
	f.open(t)

	alice := f.depositor(t, iht(5000), iht(5000))
	rec, err := f.engine.Deposit(atTime(now), f.db, alice, TierMedium)
	assert.Nil(t, err)
	assert.IsErr(t, ErrDuplicateDeposit, ledger.depositErr)
	assert.Equal(t, iht(5000), rec.Principal)

	payout, err := f.engine.Withdraw(atTime(now.Add(time.Hour)), f.db, alice)
	assert.Nil(t, err)
	assert.IsErr(t, ErrAlreadyWithdrawn, ledger.withdrawErr)
	assert.Equal(t, iht(5000), payout)
	assert.Equal(t, iht(5000), f.balance(t, alice))
}
