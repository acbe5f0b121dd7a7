// Package model defines the wire and storage types shared by the store,
// the judge pipeline, and the HTTP surface.
package model

import "time"

// TimeLayout formats UTC timestamps so that lexical order matches
// chronological order (fixed width, millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z"

// TimeSentinel sorts lexically after every timestamp NowUTC can produce.
const TimeSentinel = "9999-12-31T23:59:59.999Z"

// NowUTC returns the current UTC time in TimeLayout.
func NowUTC() string {
	return time.Now().UTC().Format(TimeLayout)
}

// State is the lifecycle state of a job.
type State string

const (
	StateQueueing State = "Queueing"
	StateRunning  State = "Running"
	StateFinished State = "Finished"
	StateCanceled State = "Canceled"
)

// Valid reports whether the state is a known lifecycle state.
func (s State) Valid() bool {
	switch s {
	case StateQueueing, StateRunning, StateFinished, StateCanceled:
		return true
	}
	return false
}

// CaseResult is a per-case or job-level verdict. The constant values are
// the JSON wire names.
type CaseResult string

const (
	ResultAccepted            CaseResult = "Accepted"
	ResultCompilationSuccess  CaseResult = "Compilation Success"
	ResultWaiting             CaseResult = "Waiting"
	ResultWrongAnswer         CaseResult = "Wrong Answer"
	ResultRuntimeError        CaseResult = "Runtime Error"
	ResultTimeLimitExceeded   CaseResult = "Time Limit Exceeded"
	ResultCompilationError    CaseResult = "Compilation Error"
	ResultRunning             CaseResult = "Running"
	ResultMemoryLimitExceeded CaseResult = "Memory Limit Exceeded"
	ResultSystemError         CaseResult = "System Error"
	ResultSPJError            CaseResult = "SPJ Error"
	ResultSkipped             CaseResult = "Skipped"
)

// Priority returns the aggregation priority of the verdict; the highest
// priority among a job's cases wins. The reporting-only verdicts extend
// the ordered prefix so any of them dominates a job once a case reports
// one.
func (r CaseResult) Priority() int {
	switch r {
	case ResultAccepted:
		return 0
	case ResultCompilationSuccess:
		return 1
	case ResultWaiting, ResultRunning, ResultSkipped:
		return 2
	case ResultWrongAnswer:
		return 3
	case ResultRuntimeError:
		return 4
	case ResultTimeLimitExceeded:
		return 5
	case ResultCompilationError:
		return 6
	case ResultMemoryLimitExceeded:
		return 7
	case ResultSystemError:
		return 8
	case ResultSPJError:
		return 9
	}
	return 8
}

// Valid reports whether the verdict is a known variant.
func (r CaseResult) Valid() bool {
	switch r {
	case ResultAccepted, ResultCompilationSuccess, ResultWaiting,
		ResultWrongAnswer, ResultRuntimeError, ResultTimeLimitExceeded,
		ResultCompilationError, ResultRunning, ResultMemoryLimitExceeded,
		ResultSystemError, ResultSPJError, ResultSkipped:
		return true
	}
	return false
}

// CaseRes is the outcome of one case. ID 0 is the compilation
// pseudo-case; problem cases are 1-based. Time is wall-clock
// microseconds; Memory is kilobytes and always 0.
type CaseRes struct {
	ID     int        `json:"id"`
	Result CaseResult `json:"result"`
	Time   int64      `json:"time"`
	Memory int64      `json:"memory"`
	Info   string     `json:"info"`
}

// Submission is a validated source-code submission.
type Submission struct {
	SourceCode string `json:"source_code"`
	Language   string `json:"language"`
	UserID     int    `json:"user_id"`
	ContestID  int    `json:"contest_id"`
	ProblemID  int    `json:"problem_id"`
}

// Job is one judged submission with its per-case outcomes.
type Job struct {
	ID          int        `json:"id"`
	CreatedTime string     `json:"created_time"`
	UpdatedTime string     `json:"updated_time"`
	Submission  Submission `json:"submission"`
	State       State      `json:"state"`
	Result      CaseResult `json:"result"`
	Score       float64    `json:"score"`
	Cases       []CaseRes  `json:"cases"`
}
