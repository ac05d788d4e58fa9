package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seedRoadmap(t *testing.T) (*RoadmapUsecase, *model.ResumeAnalysis, *model.User) {
	t.Helper()
	analyses, _, db := newAnalysisUsecase(t, &fakeLLM{response: llmResponse})
	user := createUser(t, db, "jane@example.com")
	res, err := analyses.Analyze(context.Background(), user.ID, analyzeRequest())
	require.NoError(t, err)

	uc := NewRoadmapUsecase(repository.NewAnalysisRepository(db), nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	return uc, res.Analysis, user
}

func TestRoadmapUsecase_UpdateStep(t *testing.T) {
	uc, a, user := seedRoadmap(t)
	ctx := context.Background()
	stepID := a.Steps[0].ID.String()

	res, err := uc.UpdateStep(ctx, user.ID, a.ID, dto.UpdateStepRequest{
		StepID:          stepID,
		Status:          "in_progress",
		ProgressPercent: ptr(40),
		Notes:           ptr("halfway through the docs"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, res.Step.Status)
	assert.Equal(t, 40, res.Step.ProgressPercent)
	require.NotNil(t, res.Step.StartedAt)
	assert.Equal(t, model.RoadmapSummary{StepsInProgress: 1, StepsNotStarted: 2, TotalSteps: 3}, res.OverallProgress)

	res, err = uc.UpdateStep(ctx, user.ID, a.ID, dto.UpdateStepRequest{StepID: stepID, Status: "completed", ProgressPercent: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Step.ProgressPercent)
	assert.Equal(t, 33, res.OverallProgress.PercentComplete)

	stored, err := uc.Get(ctx, user.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, stored.Steps[0].Status)
	assert.Equal(t, "halfway through the docs", stored.Steps[0].Notes)
	require.NotNil(t, stored.Steps[0].CompletedAt)
	assert.Equal(t, res.OverallProgress, stored.OverallProgress)
	require.NotNil(t, stored.LastProgressUpdate)
}

func TestRoadmapUsecase_UpdateStepErrors(t *testing.T) {
	uc, a, user := seedRoadmap(t)
	ctx := context.Background()

	_, err := uc.UpdateStep(ctx, user.ID, a.ID, dto.UpdateStepRequest{StepID: uuid.NewString(), Status: "completed"})
	assert.ErrorIs(t, err, ErrStepNotFound)

	_, err = uc.UpdateStep(ctx, uuid.New(), a.ID, dto.UpdateStepRequest{StepID: a.Steps[0].ID.String(), Status: "completed"})
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	_, err = uc.UpdateStep(ctx, user.ID, a.ID, dto.UpdateStepRequest{StepID: a.Steps[0].ID.String(), Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.UpdateStep(ctx, user.ID, a.ID, dto.UpdateStepRequest{StepID: a.Steps[0].ID.String(), Status: "in_progress", ProgressPercent: ptr(101)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRoadmapUsecase_BulkUpdate(t *testing.T) {
	uc, a, user := seedRoadmap(t)
	ctx := context.Background()
	completed := "completed"
	inProgress := "in_progress"

	res, err := uc.BulkUpdate(ctx, user.ID, a.ID, dto.BulkUpdateRequest{Updates: []dto.BulkStepUpdate{
		{StepID: a.Steps[0].ID.String(), Status: &inProgress},
		{StepID: uuid.NewString(), Status: &completed},
		{StepID: a.Steps[1].ID.String(), Status: &completed},
		{StepID: a.Steps[0].ID.String(), ProgressPercent: ptr(70)},
	}})
	require.NoError(t, err)

	require.Len(t, res.UpdatedSteps, 2)
	assert.Equal(t, a.Steps[0].ID, res.UpdatedSteps[0].StepID)
	assert.Equal(t, 70, res.UpdatedSteps[0].ProgressPercent)
	assert.Equal(t, model.StatusCompleted, res.UpdatedSteps[1].Status)
	assert.Equal(t, model.RoadmapSummary{StepsCompleted: 1, StepsInProgress: 1, StepsNotStarted: 1, TotalSteps: 3, PercentComplete: 33}, res.OverallProgress)

	stored, err := uc.Get(ctx, user.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, res.OverallProgress, stored.OverallProgress)
	assert.Equal(t, 70, stored.Steps[0].ProgressPercent)

	_, err = uc.BulkUpdate(ctx, user.ID, a.ID, dto.BulkUpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
