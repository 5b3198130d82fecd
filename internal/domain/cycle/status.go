package cycle

import "time"

// State identifies where the active cycle currently is in its
// lifecycle.
type State string

const (
	StateIdle         State = "IDLE"
	StateCountingDown State = "COUNTING_DOWN"
	StateCapturing    State = "CAPTURING"
	StateUploading    State = "UPLOADING"
	StateSucceeded    State = "SUCCEEDED"
	StateFailed       State = "FAILED"
)

// Status is the externally observable snapshot of the pipeline. It is
// transient: a fresh value is published at every transition and nothing
// but the last terminal outcome survives past the cycle.
type Status struct {
	State            State
	SecondsRemaining int
	Message          string
	Reason           string // failure detail, set only for StateFailed
	NextCaptureAt    time.Time
}
