package agent

// RunStatus is the lifecycle state of an agent run.
type RunStatus string

// Run statuses reported by the service.
const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCancelling     RunStatus = "cancelling"
	RunCancelled      RunStatus = "cancelled"
	RunFailed         RunStatus = "failed"
	RunCompleted      RunStatus = "completed"
	RunExpired        RunStatus = "expired"
	RunIncomplete     RunStatus = "incomplete"
)

// IsTerminal reports whether polling should stop.
// requires_action counts as terminal: no client-side functions are registered,
// so nothing would ever move the run forward.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunQueued, RunInProgress, RunCancelling:
		return false
	default:
		return true
	}
}

// Run is a snapshot of an agent execution on a thread.
type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	LastError string
}

// Failed reports whether the run ended in the failed state.
func (r Run) Failed() bool { return r.Status == RunFailed }
