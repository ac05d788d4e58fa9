package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Suggestion struct {
	Category    string `json:"category"` // formatting, keywords, content, structure, general
	Priority    string `json:"priority"` // high, medium, low
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ResumeAnalysis struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"analysisId"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	FileName                 string `gorm:"type:varchar(255);not null" json:"fileName"`
	ResumeURL                string `gorm:"type:text" json:"resumeUrl"`
	ResumeStorageKey         string `gorm:"type:text" json:"-"`
	JobDescriptionFileName   string `gorm:"type:varchar(255)" json:"jobDescriptionFileName"`
	JobDescriptionURL        string `gorm:"type:text" json:"jobDescriptionUrl"`
	JobDescriptionStorageKey string `gorm:"type:text" json:"-"`
	JobRole                  string `gorm:"type:varchar(255);index;not null" json:"jobRole"`
	ExperienceLevel          string `gorm:"type:varchar(20);default:mid" json:"experienceLevel"`
	JobDescription           string `gorm:"type:text" json:"jobDescription"`

	// generated once by the LLM, never updated afterwards
	ExtractedJobTitle    string                          `gorm:"type:varchar(255)" json:"extractedJobTitle"`
	SimilarityPercentage float64                         `gorm:"type:float" json:"similarityPercentage"`
	MatchPercent         float64                         `gorm:"type:float" json:"matchPercent"`
	ATSScore             float64                         `gorm:"type:float" json:"atsScore"`
	ATSScoreExplanation  string                          `gorm:"type:text" json:"atsScoreExplanation"`
	SkillsFound          datatypes.JSONSlice[string]     `json:"skillsFound"`
	MissingSkills        datatypes.JSONSlice[string]     `json:"missingSkills"`
	Suggestions          datatypes.JSONSlice[Suggestion] `json:"suggestions"`
	StrengthAreas        datatypes.JSONSlice[string]     `json:"strengthAreas"`
	ImprovementAreas     datatypes.JSONSlice[string]     `json:"improvementAreas"`

	RoadmapGeneratedAt     time.Time     `json:"generatedAt"`
	TotalEstimatedDuration string        `gorm:"type:varchar(50)" json:"totalEstimatedDuration"`
	Steps                  []RoadmapStep `gorm:"foreignKey:AnalysisID;constraint:OnDelete:CASCADE" json:"steps"`

	OverallProgress RoadmapSummary `gorm:"embedded;embeddedPrefix:progress_" json:"overallProgress"`

	JobDescriptionEmbedding *pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	LastProgressUpdate      *time.Time       `json:"lastProgressUpdate"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

func (a *ResumeAnalysis) TableName() string {
	return "resume_analyses"
}

func (a *ResumeAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
