package models

// StatusCode classifies one coursework item for the report views. Raw
// submission states other than the four canonical codes pass through
// unchanged.
type StatusCode string

const (
	StatusAssigned StatusCode = "ASSIGNED"
	StatusMissing  StatusCode = "MISSING"
	StatusTurnedIn StatusCode = "TURNED_IN"
	StatusReturned StatusCode = "RETURNED"
)

// StatusDescriptor is the derived status of one coursework item for one
// student. It is computed fresh per report and never persisted.
type StatusDescriptor struct {
	Code  StatusCode `json:"code"`
	Label string     `json:"label"`
	Late  bool       `json:"late"`
}

// ReportMetrics aggregates per-item statuses into the summary counters.
type ReportMetrics struct {
	TotalAssigned int `json:"total_assigned"`
	TurnedIn      int `json:"turned_in"`
	Returned      int `json:"returned"`
	Graded        int `json:"graded"`
	Missing       int `json:"missing"`
	Late          int `json:"late"`
}
