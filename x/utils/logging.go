package utils

import (
	"time"

	"github.com/iov-one/lockchain"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ lockchain.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx, next lockchain.Checker) (*lockchain.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx lockchain.Context, store lockchain.KVStore, tx lockchain.Tx, next lockchain.Deliverer) (*lockchain.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx lockchain.Context, tx lockchain.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := lockchain.GetLogger(ctx).With(
		"path", lockchain.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
