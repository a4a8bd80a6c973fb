package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags ctx and its logger with the pipeline run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, RunIDKey, runID)
	l := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	return l.WithContext(ctx)
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs the duration of an operation when the returned func is deferred.
//
//	defer obs.Time(ctx, "pipeline.load")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Error().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("stage failed")
			return
		}
		logger.Debug().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("stage done")
	}
}
