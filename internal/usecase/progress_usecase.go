package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type ProgressUsecase struct {
	progressRepo *repository.ProgressRepository
	analysisRepo *repository.AnalysisRepository
	log          *logger.Logger
}

func NewProgressUsecase(progressRepo *repository.ProgressRepository, analysisRepo *repository.AnalysisRepository, log *logger.Logger) *ProgressUsecase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressUsecase{progressRepo: progressRepo, analysisRepo: analysisRepo, log: log}
}

// Create records a resource click. The analysis must belong to the user.
func (uc *ProgressUsecase) Create(ctx context.Context, userID uuid.UUID, req dto.CreateProgressRequest) (*model.ProgressEvent, error) {
	analysisID, err := uuid.Parse(req.AnalysisID)
	if err != nil {
		return nil, invalidInput("analysisId", err)
	}
	stepID, err := uuid.Parse(req.StepID)
	if err != nil {
		return nil, invalidInput("stepId", err)
	}
	resourceType := model.ResourceType(req.ResourceType)
	if !resourceType.Valid() {
		return nil, invalidInput("resourceType", fmt.Errorf("unknown resource type %q", req.ResourceType))
	}
	if req.ResourceIndex == nil || *req.ResourceIndex < 0 {
		return nil, invalidInput("resourceIndex", fmt.Errorf("must be a non-negative integer"))
	}

	if err := uc.requireAnalysis(ctx, userID, analysisID); err != nil {
		return nil, err
	}

	event := &model.ProgressEvent{
		UserID:           userID,
		AnalysisID:       analysisID,
		StepID:           stepID,
		ResourceIndex:    *req.ResourceIndex,
		Skill:            strings.TrimSpace(req.Skill),
		StepTitle:        req.StepTitle,
		StepNumber:       req.StepNumber,
		ResourceTitle:    req.ResourceTitle,
		ResourceURL:      req.ResourceURL,
		ResourceType:     resourceType,
		ResourceProvider: req.ResourceProvider,
	}
	if err := uc.progressRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("save progress event: %w", err)
	}

	uc.log.Debug("progress event recorded", "user_id", userID, "analysis_id", analysisID, "resource_type", resourceType)
	return event, nil
}

// Latest returns nil when the user has not clicked anything yet.
func (uc *ProgressUsecase) Latest(ctx context.Context, userID uuid.UUID) (*model.ProgressEvent, error) {
	return uc.progressRepo.Latest(ctx, userID)
}

func (uc *ProgressUsecase) History(ctx context.Context, userID uuid.UUID, limit int) ([]model.ProgressEvent, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	events, err := uc.progressRepo.History(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.ProgressEvent{}
	}
	return events, nil
}

func (uc *ProgressUsecase) ByAnalysis(ctx context.Context, userID, analysisID uuid.UUID) ([]model.ProgressEvent, error) {
	if err := uc.requireAnalysis(ctx, userID, analysisID); err != nil {
		return nil, err
	}
	return uc.progressRepo.ListByAnalysis(ctx, userID, analysisID)
}

func (uc *ProgressUsecase) requireAnalysis(ctx context.Context, userID, analysisID uuid.UUID) error {
	ok, err := uc.analysisRepo.ExistsForUser(ctx, analysisID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAnalysisNotFound
	}
	return nil
}
