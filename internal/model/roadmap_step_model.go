package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Resource struct {
	Type     ResourceType `json:"type"`
	Title    string       `json:"title"`
	URL      string       `json:"url"`
	Provider string       `json:"provider"`
}

// RoadmapStep is one phase of one skill. Its ID is assigned when the roadmap
// is converted and stays stable for the lifetime of the analysis.
type RoadmapStep struct {
	ID                uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"stepId"`
	AnalysisID        uuid.UUID                     `gorm:"type:uuid;index;not null" json:"-"`
	StepNumber        int                           `gorm:"not null" json:"stepNumber"`
	Title             string                        `gorm:"type:text;not null" json:"title"`
	Description       string                        `gorm:"type:text;not null" json:"description"`
	EstimatedDuration string                        `gorm:"type:varchar(100);not null" json:"estimatedDuration"`
	Skills            datatypes.JSONSlice[string]   `json:"skills"`
	Resources         datatypes.JSONSlice[Resource] `json:"resources"`
	Status            StepStatus                    `gorm:"type:varchar(20);default:not_started" json:"status"` // not_started, in_progress, completed
	ProgressPercent   int                           `gorm:"default:0" json:"progressPercent"`
	Notes             string                        `gorm:"type:text" json:"notes"`
	StartedAt         *time.Time                    `json:"startedAt"`
	CompletedAt       *time.Time                    `json:"completedAt"`
	CreatedAt         time.Time                     `json:"-"`
	UpdatedAt         time.Time                     `json:"-"`
}

func (s *RoadmapStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusNotStarted
	}
	return nil
}

// RoadmapSummary is derived from the steps and must only be written by
// recomputing it from them.
type RoadmapSummary struct {
	StepsCompleted  int `json:"stepsCompleted"`
	StepsInProgress int `json:"stepsInProgress"`
	StepsNotStarted int `json:"stepsNotStarted"`
	TotalSteps      int `json:"totalSteps"`
	PercentComplete int `json:"percentComplete"`
}
