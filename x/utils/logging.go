package utils

import (
	"time"

	"github.com/recpm-network/recpm"
)

// Logging is a decorator to log messages as they pass through.
type Logging struct{}

var _ recpm.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug.
func (r Logging) Check(ctx recpm.Context, store recpm.KVStore, tx recpm.Tx, next recpm.Checker) (*recpm.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, tx, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info.
func (r Logging) Deliver(ctx recpm.Context, store recpm.KVStore, tx recpm.Tx, next recpm.Deliverer) (*recpm.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, tx, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger.
func logDuration(ctx recpm.Context, start time.Time, tx recpm.Tx, msg string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := recpm.GetLogger(ctx).With(
		"path", recpm.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	if err != nil {
		logger = logger.With("err", err)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.

	if err != nil {
		logger.Error(msg)
	} else {
		if lowPrio {
			logger.Debug(msg)
		} else {
			logger.Info(msg)
		}
	}
}
