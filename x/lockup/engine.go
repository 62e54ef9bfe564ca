package lockup

import (
	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/coin"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/orm"
	"github.com/iov-one/lockchain/x/utils"
)

// AssetLedger is the asset functionality the engine depends on.
type AssetLedger interface {
	Balance(db lockchain.ReadOnlyKVStore, addr lockchain.Address) (coin.Coins, error)
	Allowance(db lockchain.ReadOnlyKVStore, owner, spender lockchain.Address, ticker string) (coin.Coin, error)
	// TransferFrom moves coins from the owner to the spender, using the
	// allowance granted by the owner.
	TransferFrom(ctx lockchain.Context, db lockchain.KVStore, owner, spender lockchain.Address, amount coin.Coin) error
	Transfer(ctx lockchain.Context, db lockchain.KVStore, src, dest lockchain.Address, amount coin.Coin) error
}

// Condition returns the condition of the custody account.
func Condition() lockchain.Condition {
	return lockchain.NewCondition("lockup", "custody", []byte("main"))
}

// CustodyAddress returns the address holding all deposited funds.
func CustodyAddress() lockchain.Address {
	return Condition().Address()
}

// Engine owns all lockup state: the strategy, the deposit window and the
// deposit records.
//
// Every state changing operation is atomic. Records are always written
// before assets are moved, so that a call reentering the engine from
// within the asset ledger observes the updated state.
type Engine struct {
	ledger     AssetLedger
	records    orm.ModelBucket
	windows    orm.ModelBucket
	strategies orm.ModelBucket
}

// NewEngine returns an engine moving assets using given ledger.
func NewEngine(ledger AssetLedger) *Engine {
	return &Engine{
		ledger:     ledger,
		records:    NewRecordBucket(),
		windows:    NewWindowBucket(),
		strategies: NewStrategyBucket(),
	}
}

// Configure sets the bonus strategy. This is possible only before the
// deposit window is opened.
func (e *Engine) Configure(ctx lockchain.Context, db lockchain.KVStore, rates []uint32, boundaries []coin.Coin) error {
	return utils.Atomically(db, func(db lockchain.KVStore) error {
		if err := e.requireNotOpened(db, ErrAlreadyLocked); err != nil {
			return err
		}

		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		s := Strategy{Rates: rates, Boundaries: boundaries}
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Ticker() != conf.Ticker {
			return errors.Wrapf(ErrInvalidConfiguration, "boundaries in %s, deposits in %s", s.Ticker(), conf.Ticker)
		}
		if err := e.strategies.Put(db, singletonKey, &s); err != nil {
			return errors.Wrap(err, "store strategy")
		}
		lockchain.GetLogger(ctx).Info("lockup strategy configured",
			"rates", rates, "min", boundaries[0].String(), "max", boundaries[NumBoundaries-1].String())
		return nil
	})
}

// Open starts the deposit window and freezes the strategy. If no strategy
// was configured, the default one from the configuration is used.
func (e *Engine) Open(ctx lockchain.Context, db lockchain.KVStore) error {
	return utils.Atomically(db, func(db lockchain.KVStore) error {
		if err := e.requireNotOpened(db, ErrAlreadyOpen); err != nil {
			return err
		}

		now, err := lockchain.BlockTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}
		s, err := e.strategy(db)
		if err != nil {
			return err
		}
		w := Window{
			StartedAt: lockchain.AsUnixTime(now),
			Strategy:  s.clone(),
		}
		if err := e.windows.Put(db, singletonKey, &w); err != nil {
			return errors.Wrap(err, "store window")
		}
		lockchain.GetLogger(ctx).Info("lockup window opened", "started_at", w.StartedAt.String())
		return nil
	})
}

// requireNotOpened returns given error kind if the window was ever opened.
func (e *Engine) requireNotOpened(db lockchain.ReadOnlyKVStore, kind *errors.Error) error {
	switch err := e.windows.Has(db, singletonKey); {
	case err == nil:
		return errors.Wrap(kind, "window was opened")
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}

// strategy returns the configured strategy or the default one.
func (e *Engine) strategy(db lockchain.ReadOnlyKVStore) (*Strategy, error) {
	var s Strategy
	switch err := e.strategies.One(db, singletonKey, &s); {
	case err == nil:
		return &s, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if conf.DefaultStrategy.IsZero() {
		return nil, errors.Wrap(ErrInvalidConfiguration, "no strategy configured")
	}
	return &conf.DefaultStrategy, nil
}

// Admit returns the frozen strategy if deposits are accepted.
// ErrWindowNotOpen is returned if the window was never opened or the
// deposit period has passed.
func (e *Engine) Admit(ctx lockchain.Context, db lockchain.ReadOnlyKVStore) (*Table, error) {
	var w Window
	switch err := e.windows.One(db, singletonKey, &w); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrWindowNotOpen, "window never opened")
	case err != nil:
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if conf.DepositPeriod > 0 && lockchain.IsExpired(ctx, w.StartedAt.AddDuration(conf.DepositPeriod)) {
		return nil, errors.Wrap(ErrWindowNotOpen, "deposit period passed")
	}
	return &Table{s: w.Strategy}, nil
}

// IsOpen returns true if deposits are accepted.
func (e *Engine) IsOpen(ctx lockchain.Context, db lockchain.ReadOnlyKVStore) (bool, error) {
	switch _, err := e.Admit(ctx, db); {
	case err == nil:
		return true, nil
	case ErrWindowNotOpen.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Deposit creates a record of the depositor. The amount is the allowance
// the depositor granted to the custody address.
func (e *Engine) Deposit(ctx lockchain.Context, db lockchain.KVStore, depositor lockchain.Address, tier DurationTier) (*Record, error) {
	if err := depositor.Validate(); err != nil {
		return nil, errors.Wrap(err, "depositor")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	requested, err := e.ledger.Allowance(db, depositor, CustodyAddress(), conf.Ticker)
	if err != nil {
		return nil, errors.Wrap(ErrAssetTransfer, err.Error())
	}
	return e.deposit(ctx, db, depositor, requested, tier)
}

// Receive handles a transfer into the custody address. It must carry no
// value and results in a deposit with the medium tier.
func (e *Engine) Receive(ctx lockchain.Context, db lockchain.KVStore, from lockchain.Address, pushed coin.Coin) error {
	if !pushed.IsZero() {
		return errors.Wrap(errors.ErrInput, "approve the deposit amount and send an empty transfer")
	}
	_, err := e.Deposit(ctx, db, from, TierMedium)
	return err
}

func (e *Engine) deposit(ctx lockchain.Context, db lockchain.KVStore, depositor lockchain.Address, requested coin.Coin, tier DurationTier) (*Record, error) {
	var rec *Record
	err := utils.Atomically(db, func(db lockchain.KVStore) error {
		table, err := e.Admit(ctx, db)
		if err != nil {
			return err
		}
		switch err := e.records.Has(db, depositor); {
		case err == nil:
			return errors.Wrapf(ErrDuplicateDeposit, "%s", depositor)
		case !errors.ErrNotFound.Is(err):
			return err
		}
		if !requested.SameType(table.Min()) {
			return errors.Wrapf(errors.ErrCurrency, "deposits in %s only", table.Ticker())
		}
		if requested.Compare(table.Min()) < 0 {
			return errors.Wrapf(ErrBelowMinimum, "%s is less than %s", requested, table.Min())
		}
		if err := tier.Validate(); err != nil {
			return err
		}

		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		period, err := conf.LockPeriod(tier)
		if err != nil {
			return err
		}
		now, err := lockchain.BlockTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}

		admitted := coin.Min(requested, table.Max())
		rate := table.Lookup(admitted, tier)
		bonus, err := admitted.Scale(int64(rate), RateScale)
		if err != nil {
			return errors.Wrap(err, "bonus")
		}
		start := lockchain.AsUnixTime(now)
		rec = &Record{
			Principal:     admitted,
			Tier:          tier,
			LockStart:     start,
			LockEnd:       start.AddDuration(period),
			BonusRate:     rate,
			BonusExpected: bonus,
			DepositTime:   start,
		}
		if err := e.records.Put(db, depositor, rec); err != nil {
			return errors.Wrap(err, "store record")
		}

		if err := e.ledger.TransferFrom(ctx, db, depositor, CustodyAddress(), admitted); err != nil {
			return errors.Wrap(ErrAssetTransfer, err.Error())
		}

		lockchain.GetLogger(ctx).Info("lockup deposit",
			"depositor", depositor,
			"principal", admitted.String(),
			"tier", tier.String(),
			"rate", rate)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Withdraw releases the deposit of given address. Principal is always
// returned. The bonus is paid only when the lock period has ended.
func (e *Engine) Withdraw(ctx lockchain.Context, db lockchain.KVStore, depositor lockchain.Address) (coin.Coin, error) {
	var payout coin.Coin
	err := utils.Atomically(db, func(db lockchain.KVStore) error {
		rec, err := e.Record(db, depositor)
		if err != nil {
			return err
		}
		if rec.IsWithdrawn() {
			return errors.Wrapf(ErrAlreadyWithdrawn, "at %s", rec.WithdrawalTime)
		}
		now, err := lockchain.BlockTime(ctx)
		if err != nil {
			return errors.Wrap(err, "block time")
		}

		payout = rec.Principal
		if lockchain.IsExpired(ctx, rec.LockEnd) {
			if payout, err = payout.Add(rec.BonusExpected); err != nil {
				return errors.Wrap(err, "payout")
			}
			rec.BonusReleased = true
		}
		rec.WithdrawalTime = lockchain.AsUnixTime(now)
		if err := e.records.Put(db, depositor, rec); err != nil {
			return errors.Wrap(err, "store record")
		}

		if rec.BonusReleased && rec.BonusExpected.IsPositive() {
			conf, err := loadConf(db)
			if err != nil {
				return err
			}
			if err := e.ledger.TransferFrom(ctx, db, conf.BonusPool, CustodyAddress(), rec.BonusExpected); err != nil {
				return errors.Wrapf(ErrAssetTransfer, "bonus pool: %s", err)
			}
		}
		if err := e.ledger.Transfer(ctx, db, CustodyAddress(), depositor, payout); err != nil {
			return errors.Wrap(ErrAssetTransfer, err.Error())
		}

		lockchain.GetLogger(ctx).Info("lockup withdrawal",
			"depositor", depositor,
			"payout", payout.String(),
			"bonus_released", rec.BonusReleased)
		return nil
	})
	if err != nil {
		return coin.Coin{}, err
	}
	return payout, nil
}

// Record returns the deposit record of given address. ErrNoRecord is
// returned if the address never deposited.
func (e *Engine) Record(db lockchain.ReadOnlyKVStore, addr lockchain.Address) (*Record, error) {
	var rec Record
	switch err := e.records.One(db, addr, &rec); {
	case err == nil:
		return &rec, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNoRecord, "%s", addr)
	default:
		return nil, err
	}
}

// Holdings returns the amount of the deposit currency held in custody.
func (e *Engine) Holdings(db lockchain.ReadOnlyKVStore) (coin.Coin, error) {
	conf, err := loadConf(db)
	if err != nil {
		return coin.Coin{}, err
	}
	coins, err := e.ledger.Balance(db, CustodyAddress())
	if err != nil {
		return coin.Coin{}, errors.Wrap(ErrAssetTransfer, err.Error())
	}
	return coins.Get(conf.Ticker), nil
}
