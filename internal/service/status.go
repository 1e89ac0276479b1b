package service

import "sync"

// RunState is the lifecycle state of one pipeline run.
type RunState string

const (
	StateStarting  RunState = "starting"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateError     RunState = "error"
)

// StatusSnapshot is an immutable view of a run's progress.
type StatusSnapshot struct {
	State          RunState `json:"status"`
	Step           string   `json:"step"`
	Progress       int      `json:"progress"`
	TotalReels     int      `json:"total_reels"`
	CompletedReels int      `json:"completed_reels"`
	Error          string   `json:"error,omitempty"`
	ReportPath     string   `json:"report_path,omitempty"`
}

// Status tracks one pipeline run: starting → running → completed | error.
// The pipeline goroutine writes while observers read snapshots, so all
// access goes through the mutex. Progress is monotonic.
type Status struct {
	mu   sync.Mutex
	snap StatusSnapshot
}

// NewStatus creates a Status in the starting state.
func NewStatus() *Status {
	return &Status{
		snap: StatusSnapshot{
			State: StateStarting,
			Step:  "Initializing...",
		},
	}
}

// SetStep moves the run to running and records the current step. Progress
// values lower than what was already reported are ignored.
func (s *Status) SetStep(step string, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State == StateCompleted || s.snap.State == StateError {
		return
	}
	s.snap.State = StateRunning
	s.snap.Step = step
	if progress > s.snap.Progress {
		s.snap.Progress = progress
	}
}

// SetTotal records how many items the batch will process.
func (s *Status) SetTotal(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.TotalReels = total
}

// ItemDone increments the completed-item counter.
func (s *Status) ItemDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.CompletedReels++
}

// Complete marks the run finished and records where the report landed.
func (s *Status) Complete(reportPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.State = StateCompleted
	s.snap.Step = "Completed"
	s.snap.Progress = 100
	s.snap.ReportPath = reportPath
}

// Fail marks the run as errored.
func (s *Status) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.State = StateError
	s.snap.Error = err.Error()
}

// Snapshot returns a copy of the current state.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
