package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/fadilmartias/skillsnap/internal/roadmap"
	"github.com/google/uuid"
)

type RoadmapUsecase struct {
	analysisRepo *repository.AnalysisRepository
	log          *logger.Logger
	now          func() time.Time
}

func NewRoadmapUsecase(analysisRepo *repository.AnalysisRepository, log *logger.Logger) *RoadmapUsecase {
	if log == nil {
		log = logger.Nop()
	}
	return &RoadmapUsecase{analysisRepo: analysisRepo, log: log, now: time.Now}
}

func (uc *RoadmapUsecase) Get(ctx context.Context, userID, analysisID uuid.UUID) (*model.ResumeAnalysis, error) {
	analysis, err := uc.analysisRepo.FindForUser(ctx, analysisID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return analysis, nil
}

func (uc *RoadmapUsecase) UpdateStep(ctx context.Context, userID, analysisID uuid.UUID, req dto.UpdateStepRequest) (*dto.StepUpdateResponse, error) {
	stepID, err := uuid.Parse(req.StepID)
	if err != nil {
		return nil, invalidInput("stepId", err)
	}
	update, err := toStepUpdate(&req.Status, req.ProgressPercent, req.Notes)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.Get(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	step, err := roadmap.ApplyStepUpdate(analysis.Steps, stepID, update, now)
	if err != nil {
		if errors.Is(err, roadmap.ErrStepNotFound) {
			return nil, ErrStepNotFound
		}
		return nil, err
	}

	summary := roadmap.Summarize(analysis.Steps)
	if err := uc.analysisRepo.SaveProgress(ctx, analysisID, []*model.RoadmapStep{step}, summary, now); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	uc.log.Info("roadmap step updated",
		"user_id", userID,
		"analysis_id", analysisID,
		"step_id", stepID,
		"status", step.Status,
		"percent_complete", summary.PercentComplete,
	)
	return &dto.StepUpdateResponse{Step: step, OverallProgress: summary}, nil
}

// BulkUpdate applies the updates in order. Unknown step ids are skipped and a
// step named more than once is reported once, in its final state.
func (uc *RoadmapUsecase) BulkUpdate(ctx context.Context, userID, analysisID uuid.UUID, req dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error) {
	if len(req.Updates) == 0 {
		return nil, invalidInput("updates", errors.New("at least one update is required"))
	}

	updates := make([]roadmap.BulkUpdate, 0, len(req.Updates))
	for i, u := range req.Updates {
		stepID, err := uuid.Parse(u.StepID)
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("updates[%d].stepId", i), err)
		}
		update, err := toStepUpdate(u.Status, u.ProgressPercent, u.Notes)
		if err != nil {
			return nil, err
		}
		updates = append(updates, roadmap.BulkUpdate{StepID: stepID, StepUpdate: update})
	}

	analysis, err := uc.Get(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	changed, summary := roadmap.BulkApply(analysis.Steps, updates, now)
	changed = uniqueSteps(changed)

	if len(changed) > 0 {
		if err := uc.analysisRepo.SaveProgress(ctx, analysisID, changed, summary, now); err != nil {
			return nil, fmt.Errorf("save progress: %w", err)
		}
	}

	res := &dto.BulkUpdateResponse{
		UpdatedSteps:    make([]dto.StepProgress, 0, len(changed)),
		OverallProgress: summary,
	}
	for _, step := range changed {
		res.UpdatedSteps = append(res.UpdatedSteps, dto.NewStepProgress(step))
	}

	uc.log.Info("roadmap bulk update",
		"user_id", userID,
		"analysis_id", analysisID,
		"requested", len(req.Updates),
		"updated", len(changed),
	)
	return res, nil
}

func toStepUpdate(status *string, percent *int, notes *string) (roadmap.StepUpdate, error) {
	var update roadmap.StepUpdate
	if status != nil {
		s := model.StepStatus(*status)
		if !s.Valid() {
			return update, invalidInput("status", fmt.Errorf("unknown status %q", *status))
		}
		update.Status = &s
	}
	if percent != nil {
		if *percent < 0 || *percent > 100 {
			return update, invalidInput("progressPercent", errors.New("must be between 0 and 100"))
		}
		update.ProgressPercent = percent
	}
	update.Notes = notes
	return update, nil
}

func uniqueSteps(steps []*model.RoadmapStep) []*model.RoadmapStep {
	seen := make(map[uuid.UUID]struct{}, len(steps))
	out := steps[:0]
	for _, s := range steps {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
