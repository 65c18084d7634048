package model

// Phase represents where the result column is in its show/hide cycle
type Phase string

const (
	// PhaseHidden means nothing is displayed and no payload is held
	PhaseHidden Phase = "Hidden"

	// PhasePending means a request is in flight and nothing is displayed
	PhasePending Phase = "Pending"

	// PhaseVisible means an artifact is displayed
	PhaseVisible Phase = "Visible"

	// PhaseExiting means the artifact is animating out; its payload is still held
	PhaseExiting Phase = "Exiting"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsShown returns true if the result column is rendered at full opacity
func (p Phase) IsShown() bool {
	return p == PhaseVisible
}

// HoldsPayload returns true if an artifact payload is retained in this phase
func (p Phase) HoldsPayload() bool {
	return p == PhaseVisible || p == PhaseExiting
}
