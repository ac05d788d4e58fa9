package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressEvent records a click through to a learning resource. Events are
// append-only and never touch step state.
type ProgressEvent struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"progressId"`
	UserID           uuid.UUID    `gorm:"type:uuid;index:idx_progress_user_clicked,priority:1;not null" json:"-"`
	AnalysisID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"analysisId"`
	StepID           uuid.UUID    `gorm:"type:uuid;not null" json:"stepId"`
	ResourceIndex    int          `gorm:"not null" json:"resourceIndex"`
	Skill            string       `gorm:"type:varchar(255);not null" json:"skill"`
	StepTitle        string       `gorm:"type:text;not null" json:"stepTitle"`
	StepNumber       int          `gorm:"not null" json:"stepNumber"`
	ResourceTitle    string       `gorm:"type:text;not null" json:"resourceTitle"`
	ResourceURL      string       `gorm:"type:text;not null" json:"resourceUrl"`
	ResourceType     ResourceType `gorm:"type:varchar(20);not null" json:"resourceType"`
	ResourceProvider *string      `gorm:"type:varchar(255)" json:"resourceProvider"`
	ClickedAt        time.Time    `gorm:"index:idx_progress_user_clicked,priority:2,sort:desc;not null" json:"clickedAt"`
	CreatedAt        time.Time    `json:"-"`
}

func (e *ProgressEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.ClickedAt.IsZero() {
		e.ClickedAt = time.Now()
	}
	return nil
}
