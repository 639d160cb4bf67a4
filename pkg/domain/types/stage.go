package types

import "fmt"

// Transition classifies a stage move relative to a pipeline order table.
type Transition int

const (
	// TransitionUnknown means at least one stage has no rank in the table.
	// Unknown moves are treated as forward-eligible so that legacy or custom
	// stage values never silently suppress notifications.
	TransitionUnknown Transition = iota
	TransitionForward
	TransitionBackward
	// TransitionLateral is a move between sibling stages sharing a rank,
	// e.g. the terminal outcome stages.
	TransitionLateral
)

// String returns the string representation of the transition
func (t Transition) String() string {
	switch t {
	case TransitionForward:
		return "forward"
	case TransitionBackward:
		return "backward"
	case TransitionLateral:
		return "lateral"
	default:
		return "unknown"
	}
}

// ForwardEligible reports whether the move should trigger stage-change
// notification and activity logging. Everything that is not provably a
// backward or sideways move qualifies.
func (t Transition) ForwardEligible() bool {
	return t == TransitionForward || t == TransitionUnknown
}

// StageTable is a fixed mapping from stage name to pipeline rank. Terminal
// outcome stages may share the final rank; they are siblings, not sequential.
type StageTable struct {
	ranks  map[string]int
	stages []string
}

type stageRank struct {
	stage string
	rank  int
}

func newStageTable(entries []stageRank) StageTable {
	ranks := make(map[string]int, len(entries))
	stages := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, exists := ranks[e.stage]; exists {
			panic(fmt.Sprintf("duplicate stage in table: %s", e.stage))
		}
		ranks[e.stage] = e.rank
		stages = append(stages, e.stage)
	}
	return StageTable{ranks: ranks, stages: stages}
}

// Rank returns the rank of the stage. The second value is false when the
// stage is not part of the table.
func (t StageTable) Rank(stage string) (int, bool) {
	r, ok := t.ranks[stage]
	return r, ok
}

// Contains reports whether the stage is part of the table
func (t StageTable) Contains(stage string) bool {
	_, ok := t.ranks[stage]
	return ok
}

// Stages returns the stage names in pipeline declaration order
func (t StageTable) Stages() []string {
	out := make([]string, len(t.stages))
	copy(out, t.stages)
	return out
}

// Classify compares two distinct stages against the table. Callers must
// detect prev == next themselves and skip classification: a no-op update is
// not a transition.
func (t StageTable) Classify(prev, next string) Transition {
	prevRank, prevOK := t.ranks[prev]
	nextRank, nextOK := t.ranks[next]
	if !prevOK || !nextOK {
		return TransitionUnknown
	}
	switch {
	case nextRank > prevRank:
		return TransitionForward
	case nextRank < prevRank:
		return TransitionBackward
	default:
		return TransitionLateral
	}
}

// CallStage represents the pipeline stage of an open call
type CallStage string

const (
	CallStageInReview         CallStage = "In Review"
	CallStageReviewing        CallStage = "Reviewing"
	CallStageGoNoGo           CallStage = "Go/No-Go"
	CallStageDrafting         CallStage = "Drafting"
	CallStageInternalApproval CallStage = "Internal Approval"
	CallStageSubmitted        CallStage = "Submitted"
	CallStageContracting      CallStage = "Contracting"
	CallStageAccepted         CallStage = "Accepted"
	CallStageRejected         CallStage = "Rejected"
)

var callStageTable = newStageTable([]stageRank{
	{string(CallStageInReview), 0},
	{string(CallStageReviewing), 1},
	{string(CallStageGoNoGo), 2},
	{string(CallStageDrafting), 3},
	{string(CallStageInternalApproval), 4},
	{string(CallStageSubmitted), 5},
	{string(CallStageContracting), 6},
	{string(CallStageAccepted), 7},
	{string(CallStageRejected), 7},
})

// CallStageTable returns the fixed order table for open call stages
func CallStageTable() StageTable {
	return callStageTable
}

// IsValid checks if the call stage is part of the pipeline
func (s CallStage) IsValid() bool {
	return callStageTable.Contains(string(s))
}

// String returns the string representation of the call stage
func (s CallStage) String() string {
	return string(s)
}

// ParseCallStage parses a string into a CallStage
func ParseCallStage(s string) (CallStage, error) {
	stage := CallStage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("invalid call stage: %s", s)
	}
	return stage, nil
}

// EngagementStage represents the pipeline stage of a bilateral engagement
type EngagementStage string

const (
	EngagementStageProspecting    EngagementStage = "Prospecting"
	EngagementStageFirstContact   EngagementStage = "First Contact"
	EngagementStageQualifying     EngagementStage = "Qualifying"
	EngagementStageNegotiating    EngagementStage = "Negotiating"
	EngagementStagePartner        EngagementStage = "Partner"
	EngagementStageFunder         EngagementStage = "Funder"
	EngagementStageNoRelationship EngagementStage = "No Relationship"
)

var engagementStageTable = newStageTable([]stageRank{
	{string(EngagementStageProspecting), 0},
	{string(EngagementStageFirstContact), 1},
	{string(EngagementStageQualifying), 2},
	{string(EngagementStageNegotiating), 3},
	{string(EngagementStagePartner), 4},
	{string(EngagementStageFunder), 4},
	{string(EngagementStageNoRelationship), 4},
})

// EngagementStageTable returns the fixed order table for engagement stages
func EngagementStageTable() StageTable {
	return engagementStageTable
}

// IsValid checks if the engagement stage is part of the pipeline
func (s EngagementStage) IsValid() bool {
	return engagementStageTable.Contains(string(s))
}

// String returns the string representation of the engagement stage
func (s EngagementStage) String() string {
	return string(s)
}

// ParseEngagementStage parses a string into an EngagementStage
func ParseEngagementStage(s string) (EngagementStage, error) {
	stage := EngagementStage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("invalid engagement stage: %s", s)
	}
	return stage, nil
}
