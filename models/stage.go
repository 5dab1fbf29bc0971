package models

import "fmt"

// Stage is the four-valued garment lifecycle classification. Stages only
// move forward: New -> In Progress -> Ready For Pickup -> Done, with Done
// reachable solely through the explicit pickup action.
type Stage string

const (
	StageNew            Stage = "New"
	StageInProgress     Stage = "In Progress"
	StageReadyForPickup Stage = "Ready For Pickup"
	StageDone           Stage = "Done"
)

// ParseStage validates a stage value coming in over the API.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageNew, StageInProgress, StageReadyForPickup, StageDone:
		return Stage(s), nil
	}
	return "", fmt.Errorf("invalid stage %q", s)
}

// ServiceProgress is the completion summary of a garment's active services.
type ServiceProgress struct {
	CompletedCount int `json:"completedCount"`
	TotalCount     int `json:"totalCount"`
}

// AggregateProgress counts a garment's services, skipping removed lines
// entirely: a removed service contributes to neither total.
func AggregateProgress(services []GarmentService) ServiceProgress {
	var p ServiceProgress
	for i := range services {
		if services[i].IsRemoved {
			continue
		}
		p.TotalCount++
		if services[i].IsDone {
			p.CompletedCount++
		}
	}
	return p
}

// ClassifyStage maps a completion summary to the stage the garment should
// be in. Done is never produced here; it only comes from pickup.
func ClassifyStage(p ServiceProgress) Stage {
	switch {
	case p.TotalCount == 0:
		return StageNew
	case p.CompletedCount == 0:
		return StageNew
	case p.CompletedCount == p.TotalCount:
		return StageReadyForPickup
	default:
		return StageInProgress
	}
}

// ShouldApplyAutomaticStage guards the monotonic end of the lifecycle:
// once a garment is Done, the automatic classifier never reverts it.
func ShouldApplyAutomaticStage(current Stage) bool {
	return current != StageDone
}

// ApplyAutomaticStage returns the stage a garment should carry after a
// service mutation, honoring the Done guard.
func ApplyAutomaticStage(current Stage, computed Stage) Stage {
	if !ShouldApplyAutomaticStage(current) {
		return current
	}
	return computed
}

// ProgressText renders the "1 of 2 completed" indicator, or "" when the
// garment has no active services.
func (p ServiceProgress) ProgressText() string {
	if p.TotalCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d completed", p.CompletedCount, p.TotalCount)
}
