package worker

import "time"

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// ============================================================================
// Log Messages - Unsettled Payment Sweep
// ============================================================================

const (
	LogMsgSweepFlagged = "Unsettled payment sweep flagged payments"
	LogMsgSweepClean   = "Unsettled payment sweep found nothing"
)
