package dto

type CreateProgressRequest struct {
	AnalysisID       string  `json:"analysisId" validate:"required,uuid"`
	StepID           string  `json:"stepId" validate:"required,uuid"`
	ResourceIndex    *int    `json:"resourceIndex" validate:"required,min=0"`
	Skill            string  `json:"skill" validate:"required,max=255"`
	StepTitle        string  `json:"stepTitle" validate:"required"`
	StepNumber       int     `json:"stepNumber" validate:"required,min=1"`
	ResourceTitle    string  `json:"resourceTitle" validate:"required"`
	ResourceURL      string  `json:"resourceUrl" validate:"required"`
	ResourceType     string  `json:"resourceType" validate:"required,oneof=course documentation project tutorial book video article"`
	ResourceProvider *string `json:"resourceProvider" validate:"omitempty,max=255"`
}

type HistoryQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
