package domain

import "time"

// State is a discovery session's position in the pipeline state machine.
type State string

const (
	StateStart      State = "START"
	StateSearching  State = "SEARCHING"
	StateFiltering  State = "FILTERING"
	StateAssembling State = "ASSEMBLING"
	StateCompleted  State = "COMPLETED"
	StateErrored    State = "ERRORED"
)

// Terminal reports whether the state ends the session.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateErrored
}

// Session is the per-request state threaded through each pipeline stage.
// Each discovery request owns its session exclusively; nothing here is shared
// across requests.
type Session struct {
	ID        string
	AgentID   string
	Intent    IntentMandate
	RiskData  string
	CreatedAt time.Time
}
