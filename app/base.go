package app

import (
	"context"
	"fmt"
	"time"

	"github.com/iov-one/lockchain"
	"github.com/iov-one/lockchain/errors"
	"github.com/iov-one/lockchain/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Application executes transactions against a single store. Blocks are
// started with BeginBlock that declares the block height and time used by
// all following transactions.
//
// Check never modifies the state. Deliver writes the changes of a
// transaction only if it succeeded.
type Application struct {
	name        string
	logger      log.Logger
	store       lockchain.CacheableKVStore
	handler     lockchain.Handler
	initializer lockchain.Initializer
	debug       bool

	chainID      string
	blockContext lockchain.Context
}

// NewApplication returns an application that is using given store. If the
// store was already initialized, the chain ID is loaded from it.
func NewApplication(
	name string,
	store lockchain.CacheableKVStore,
	handler lockchain.Handler,
	initializer lockchain.Initializer,
) (*Application, error) {
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Application{
		name:        name,
		logger:      log.NewNopLogger(),
		store:       store,
		handler:     handler,
		initializer: initializer,
		chainID:     chainID,
	}, nil
}

// WithLogger sets the logger used by this application and passed to
// all handlers.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger.With("module", a.name)
	return a
}

// WithDebug enables returning internal error details to the client.
func (a *Application) WithDebug(debug bool) *Application {
	a.debug = debug
	return a
}

// ChainID returns the chain ID this application was initialized with.
func (a *Application) ChainID() string {
	return a.chainID
}

// InitChain stores the chain ID and initializes all extensions using the
// genesis options. It can be called only once.
func (a *Application) InitChain(gen Genesis) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "already initialized with chain %q", a.chainID)
	}
	err := utils.Atomically(a.store, func(db lockchain.KVStore) error {
		if err := saveChainID(db, gen.ChainID); err != nil {
			return err
		}
		if a.initializer == nil {
			return nil
		}
		if err := a.initializer.FromGenesis(gen.AppOptions, db); err != nil {
			return errors.Wrap(err, "initialize from genesis")
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.chainID = gen.ChainID
	a.logger.Info("chain initialized", "chain_id", a.chainID)
	return nil
}

// BeginBlock declares the height and time of the block all following
// transactions are executed in.
func (a *Application) BeginBlock(height int64, now time.Time) error {
	if a.chainID == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized")
	}
	if height <= 0 {
		return errors.Wrap(errors.ErrInput, "height must be positive")
	}
	if now.IsZero() {
		return errors.Wrap(errors.ErrInput, "block time required")
	}
	if a.blockContext != nil {
		if prev, _ := lockchain.GetHeight(a.blockContext); height <= prev {
			return errors.Wrapf(errors.ErrInput, "height %d is not after %d", height, prev)
		}
	}

	ctx := lockchain.WithChainID(context.Background(), a.chainID)
	ctx = lockchain.WithHeight(ctx, height)
	ctx = lockchain.WithBlockTime(ctx, now)
	ctx = lockchain.WithLogger(ctx, a.logger.With("height", height))
	a.blockContext = ctx
	return nil
}

// BlockContext returns the context of the current block.
func (a *Application) BlockContext() (lockchain.Context, error) {
	if a.blockContext == nil {
		return nil, errors.Wrap(errors.ErrState, "no block started")
	}
	return a.blockContext, nil
}

// CheckTx validates given transaction against the current state. All
// changes are discarded.
func (a *Application) CheckTx(tx lockchain.Tx) (*lockchain.CheckResult, error) {
	ctx, err := a.BlockContext()
	if err != nil {
		return nil, err
	}
	ctx = lockchain.WithLogInfo(ctx, "call", "check_tx", "path", lockchain.GetPath(tx))

	cache := a.store.CacheWrap()
	defer cache.Discard()

	res, err := a.handler.Check(ctx, cache, tx)
	return res, errors.Redact(err, a.debug)
}

// DeliverTx executes given transaction. State changes are persisted only if
// the execution was successful.
func (a *Application) DeliverTx(tx lockchain.Tx) (*lockchain.DeliverResult, error) {
	ctx, err := a.BlockContext()
	if err != nil {
		return nil, err
	}
	ctx = lockchain.WithLogInfo(ctx, "call", "deliver_tx", "path", lockchain.GetPath(tx))

	var res *lockchain.DeliverResult
	err = utils.Atomically(a.store, func(db lockchain.KVStore) error {
		var err error
		res, err = a.handler.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, errors.Redact(err, a.debug)
	}
	return res, nil
}

// Commit persists the state of all delivered transactions if the store
// supports versioning. Otherwise this is a no-op and an empty CommitID is
// returned.
func (a *Application) Commit() (lockchain.CommitID, error) {
	c, ok := a.store.(lockchain.CommitKVStore)
	if !ok {
		return lockchain.CommitID{}, nil
	}
	id, err := c.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	a.logger.Info("state committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// Store returns the store of this application. Use it for queries.
func (a *Application) Store() lockchain.ReadOnlyKVStore {
	return a.store
}
