package domain

import "fmt"

// Stage names a step of the aggregation pipeline
type Stage string

const (
	StageTopology     Stage = "topology"
	StageInventory    Stage = "inventory"
	StageNodeRegistry Stage = "node_registry"
	StageLinkRegistry Stage = "link_registry"
)

// Outcome is what happened to a stage during one aggregation pass
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// FetchError reports that the data source behind a stage did not respond
type FetchError struct {
	Stage Stage
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StageReport records the outcome of one stage
type StageReport struct {
	Stage   Stage   `json:"stage"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// Report collects stage outcomes for one aggregation pass
type Report []StageReport

// Outcome returns the recorded outcome for stage, or OutcomeSkipped
func (r Report) Outcome(stage Stage) Outcome {
	for _, s := range r {
		if s.Stage == stage {
			return s.Outcome
		}
	}
	return OutcomeSkipped
}
