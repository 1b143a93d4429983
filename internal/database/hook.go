package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// queryHook feeds executed statements into the database logger. Failures
// carry the statement and error at error level; routine traffic stays at
// debug so it only surfaces when that logger is turned up.
type queryHook struct {
	logger *zap.Logger
}

func newQueryHook(logger *zap.Logger) *queryHook {
	return &queryHook{logger: logger}
}

func (h *queryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	if event.Err != nil {
		h.logger.Error("Query failed",
			zap.String("operation", event.Operation()),
			zap.String("query", event.Query),
			zap.Duration("elapsed", elapsed),
			zap.Error(event.Err))

		return
	}

	h.logger.Debug("Query executed",
		zap.String("operation", event.Operation()),
		zap.String("query", event.Query),
		zap.Duration("elapsed", elapsed))
}
