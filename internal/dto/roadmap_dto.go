package dto

import (
	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/google/uuid"
)

type UpdateStepRequest struct {
	StepID          string  `json:"stepId" validate:"required,uuid"`
	Status          string  `json:"status" validate:"required,oneof=not_started in_progress completed"`
	ProgressPercent *int    `json:"progressPercent" validate:"omitempty,min=0,max=100"`
	Notes           *string `json:"notes" validate:"omitempty,max=5000"`
}

type BulkStepUpdate struct {
	StepID          string  `json:"stepId" validate:"required,uuid"`
	Status          *string `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	ProgressPercent *int    `json:"progressPercent" validate:"omitempty,min=0,max=100"`
	Notes           *string `json:"notes" validate:"omitempty,max=5000"`
}

type BulkUpdateRequest struct {
	Updates []BulkStepUpdate `json:"updates" validate:"required,min=1,max=500,dive"`
}

type RoadmapResponse struct {
	Roadmap         RoadmapBody          `json:"roadmap"`
	OverallProgress model.RoadmapSummary `json:"overallProgress"`
	Metadata        RoadmapMetadata      `json:"metadata"`
}

type RoadmapBody struct {
	TotalEstimatedDuration string              `json:"totalEstimatedDuration"`
	GeneratedAt            any                 `json:"generatedAt"`
	Steps                  []model.RoadmapStep `json:"steps"`
}

type RoadmapMetadata struct {
	JobRole         string `json:"jobRole"`
	ExperienceLevel string `json:"experienceLevel"`
}

type StepUpdateResponse struct {
	Step            *model.RoadmapStep   `json:"step"`
	OverallProgress model.RoadmapSummary `json:"overallProgress"`
}

// StepProgress is the compact step view returned by bulk updates.
type StepProgress struct {
	StepID          uuid.UUID        `json:"stepId"`
	StepNumber      int              `json:"stepNumber"`
	Title           string           `json:"title"`
	Status          model.StepStatus `json:"status"`
	ProgressPercent int              `json:"progressPercent"`
}

type BulkUpdateResponse struct {
	UpdatedSteps    []StepProgress       `json:"updatedSteps"`
	OverallProgress model.RoadmapSummary `json:"overallProgress"`
}

func NewRoadmapResponse(a *model.ResumeAnalysis) RoadmapResponse {
	steps := a.Steps
	if steps == nil {
		steps = []model.RoadmapStep{}
	}
	return RoadmapResponse{
		Roadmap: RoadmapBody{
			TotalEstimatedDuration: a.TotalEstimatedDuration,
			GeneratedAt:            a.RoadmapGeneratedAt,
			Steps:                  steps,
		},
		OverallProgress: a.OverallProgress,
		Metadata: RoadmapMetadata{
			JobRole:         a.JobRole,
			ExperienceLevel: a.ExperienceLevel,
		},
	}
}

func NewStepProgress(s *model.RoadmapStep) StepProgress {
	return StepProgress{
		StepID:          s.ID,
		StepNumber:      s.StepNumber,
		Title:           s.Title,
		Status:          s.Status,
		ProgressPercent: s.ProgressPercent,
	}
}
