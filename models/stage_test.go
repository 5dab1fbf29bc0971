package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func svc(done, removed bool) GarmentService {
	return GarmentService{IsDone: done, IsRemoved: removed}
}

func TestAggregateProgressEmpty(t *testing.T) {
	p := AggregateProgress(nil)
	assert.Equal(t, 0, p.TotalCount)
	assert.Equal(t, 0, p.CompletedCount)

	p = AggregateProgress([]GarmentService{})
	assert.Equal(t, ServiceProgress{}, p)
}

func TestAggregateProgressSkipsRemoved(t *testing.T) {
	services := []GarmentService{
		svc(false, false),
		svc(true, false),
		svc(false, true),
	}
	p := AggregateProgress(services)
	assert.Equal(t, 2, p.TotalCount)
	assert.Equal(t, 1, p.CompletedCount)
	assert.Equal(t, "1 of 2 completed", p.ProgressText())
}

func TestAggregateProgressRemovedDoneNeverCounts(t *testing.T) {
	// A removed service is excluded regardless of its done flag.
	p := AggregateProgress([]GarmentService{svc(true, true), svc(true, true)})
	assert.Equal(t, ServiceProgress{}, p)
	assert.Equal(t, "", p.ProgressText())
}

func TestAggregateProgressCompletedNeverExceedsTotal(t *testing.T) {
	combos := [][]GarmentService{
		{svc(true, false), svc(true, false)},
		{svc(true, false), svc(false, false), svc(true, true)},
		{svc(false, true)},
		{},
	}
	for _, services := range combos {
		p := AggregateProgress(services)
		assert.LessOrEqual(t, p.CompletedCount, p.TotalCount)
	}
}

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      Stage
	}{
		{"no services", 0, 0, StageNew},
		{"none complete", 0, 5, StageNew},
		{"some complete", 3, 5, StageInProgress},
		{"all complete", 5, 5, StageReadyForPickup},
		{"single complete", 1, 1, StageReadyForPickup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStage(ServiceProgress{CompletedCount: tt.completed, TotalCount: tt.total})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyStageNeverProducesDone(t *testing.T) {
	for completed := 0; completed <= 5; completed++ {
		got := ClassifyStage(ServiceProgress{CompletedCount: completed, TotalCount: 5})
		assert.NotEqual(t, StageDone, got)
	}
}

func TestDoneGuard(t *testing.T) {
	assert.True(t, ShouldApplyAutomaticStage(StageNew))
	assert.True(t, ShouldApplyAutomaticStage(StageInProgress))
	assert.True(t, ShouldApplyAutomaticStage(StageReadyForPickup))
	assert.False(t, ShouldApplyAutomaticStage(StageDone))

	// Once Done, every computed stage is discarded.
	for _, computed := range []Stage{StageNew, StageInProgress, StageReadyForPickup, StageDone} {
		assert.Equal(t, StageDone, ApplyAutomaticStage(StageDone, computed))
	}
	assert.Equal(t, StageInProgress, ApplyAutomaticStage(StageNew, StageInProgress))
	assert.Equal(t, StageReadyForPickup, ApplyAutomaticStage(StageInProgress, StageReadyForPickup))
}

func TestStageAfterAllServicesRemoved(t *testing.T) {
	services := []GarmentService{svc(true, true), svc(false, true)}
	p := AggregateProgress(services)
	assert.Equal(t, ServiceProgress{}, p)
	assert.Equal(t, StageNew, ClassifyStage(p))
}

func TestParseStage(t *testing.T) {
	for _, valid := range []string{"New", "In Progress", "Ready For Pickup", "Done"} {
		got, err := ParseStage(valid)
		assert.NoError(t, err)
		assert.Equal(t, Stage(valid), got)
	}
	_, err := ParseStage("Finished")
	assert.Error(t, err)
	_, err = ParseStage("")
	assert.Error(t, err)
}
