package dto

import (
	"time"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/google/uuid"
)

type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JDText         string `json:"jdText" validate:"required"`
	ResumeFileName string `json:"resumeFileName" validate:"required,max=255"`
	JDFileName     string `json:"jdFileName" validate:"required,max=255"`
	ResumeFileSize int64  `json:"resumeFileSize" validate:"omitempty,min=0"`
	JDFileSize     int64  `json:"jdFileSize" validate:"omitempty,min=0"`
}

type ListAnalysesQuery struct {
	Page    int    `query:"page" validate:"omitempty,min=1"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
	JobRole string `query:"jobRole" validate:"omitempty,max=255"`
	SortBy  string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt matchPercent atsScore jobRole"`
	All     bool   `query:"all"`
}

type AnalysisResultDTO struct {
	ExtractedJobTitle    string             `json:"extractedJobTitle"`
	MatchPercent         float64            `json:"matchPercent"`
	SimilarityPercentage float64            `json:"similarityPercentage"`
	ATSScore             float64            `json:"atsScore"`
	ATSScoreExplanation  string             `json:"atsScoreExplanation"`
	SkillsFound          []string           `json:"skillsFound"`
	MissingSkills        []string           `json:"missingSkills"`
	Suggestions          []model.Suggestion `json:"suggestions"`
	StrengthAreas        []string           `json:"strengthAreas"`
	ImprovementAreas     []string           `json:"improvementAreas"`
}

type RoadmapDTO struct {
	GeneratedAt            time.Time            `json:"generatedAt"`
	TotalEstimatedDuration string               `json:"totalEstimatedDuration"`
	Steps                  []model.RoadmapStep  `json:"steps"`
	OverallProgress        model.RoadmapSummary `json:"overallProgress"`
}

type AnalysisMetadataDTO struct {
	FileName               string     `json:"fileName"`
	ResumeURL              string     `json:"resumeUrl,omitempty"`
	JobDescriptionFileName string     `json:"jobDescriptionFileName,omitempty"`
	JobDescriptionURL      string     `json:"jobDescriptionUrl,omitempty"`
	JobRole                string     `json:"jobRole"`
	ExperienceLevel        string     `json:"experienceLevel"`
	CreatedAt              time.Time  `json:"createdAt"`
	LastProgressUpdate     *time.Time `json:"lastProgressUpdate,omitempty"`
}

type AnalysisResponse struct {
	AnalysisID uuid.UUID           `json:"analysisId"`
	Analysis   AnalysisResultDTO   `json:"analysis"`
	Roadmap    RoadmapDTO          `json:"roadmap"`
	Metadata   AnalysisMetadataDTO `json:"metadata"`
	Warnings   []string            `json:"warnings,omitempty"`
}

type AnalysisListItem struct {
	AnalysisID         uuid.UUID            `json:"analysisId"`
	FileName           string               `json:"fileName"`
	JobRole            string               `json:"jobRole"`
	ExperienceLevel    string               `json:"experienceLevel"`
	MatchPercent       float64              `json:"matchPercent"`
	ATSScore           float64              `json:"atsScore"`
	OverallProgress    model.RoadmapSummary `json:"overallProgress"`
	CreatedAt          time.Time            `json:"createdAt"`
	LastProgressUpdate *time.Time           `json:"lastProgressUpdate"`
}

type ExtractResponse struct {
	Text       string `json:"text"`
	Characters int    `json:"characters"`
	Warning    string `json:"warning,omitempty"`
}

func NewAnalysisResponse(a *model.ResumeAnalysis) AnalysisResponse {
	steps := a.Steps
	if steps == nil {
		steps = []model.RoadmapStep{}
	}
	return AnalysisResponse{
		AnalysisID: a.ID,
		Analysis: AnalysisResultDTO{
			ExtractedJobTitle:    a.ExtractedJobTitle,
			MatchPercent:         a.MatchPercent,
			SimilarityPercentage: a.SimilarityPercentage,
			ATSScore:             a.ATSScore,
			ATSScoreExplanation:  a.ATSScoreExplanation,
			SkillsFound:          nonNil(a.SkillsFound),
			MissingSkills:        nonNil(a.MissingSkills),
			Suggestions:          nonNil(a.Suggestions),
			StrengthAreas:        nonNil(a.StrengthAreas),
			ImprovementAreas:     nonNil(a.ImprovementAreas),
		},
		Roadmap: RoadmapDTO{
			GeneratedAt:            a.RoadmapGeneratedAt,
			TotalEstimatedDuration: a.TotalEstimatedDuration,
			Steps:                  steps,
			OverallProgress:        a.OverallProgress,
		},
		Metadata: AnalysisMetadataDTO{
			FileName:               a.FileName,
			ResumeURL:              a.ResumeURL,
			JobDescriptionFileName: a.JobDescriptionFileName,
			JobDescriptionURL:      a.JobDescriptionURL,
			JobRole:                a.JobRole,
			ExperienceLevel:        a.ExperienceLevel,
			CreatedAt:              a.CreatedAt,
			LastProgressUpdate:     a.LastProgressUpdate,
		},
	}
}

func NewAnalysisListItem(a model.ResumeAnalysis) AnalysisListItem {
	return AnalysisListItem{
		AnalysisID:         a.ID,
		FileName:           a.FileName,
		JobRole:            a.JobRole,
		ExperienceLevel:    a.ExperienceLevel,
		MatchPercent:       a.MatchPercent,
		ATSScore:           a.ATSScore,
		OverallProgress:    a.OverallProgress,
		CreatedAt:          a.CreatedAt,
		LastProgressUpdate: a.LastProgressUpdate,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
