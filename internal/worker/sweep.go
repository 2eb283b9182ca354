package worker

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// UnsettledFlagger reports payments stuck in the recorded state
type UnsettledFlagger interface {
	FlagUnsettled(ctx context.Context) (int, error)
}

// UnsettledSweepJob runs one pass of the unsettled payment sweep
type UnsettledSweepJob struct {
	Flagger UnsettledFlagger
}

func (j *UnsettledSweepJob) Process(ctx context.Context) error {
	n, err := j.Flagger.FlagUnsettled(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Warn(LogMsgSweepFlagged, "count", n)
	} else {
		logger.FromContext(ctx).Debug(LogMsgSweepClean)
	}
	return nil
}
