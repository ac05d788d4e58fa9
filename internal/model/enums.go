package model

type StepStatus string

const (
	StatusNotStarted StepStatus = "not_started"
	StatusInProgress StepStatus = "in_progress"
	StatusCompleted  StepStatus = "completed"
)

func (s StepStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type ResourceType string

const (
	ResourceCourse        ResourceType = "course"
	ResourceDocumentation ResourceType = "documentation"
	ResourceProject       ResourceType = "project"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceBook          ResourceType = "book"
	ResourceVideo         ResourceType = "video"
	ResourceArticle       ResourceType = "article"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceCourse, ResourceDocumentation, ResourceProject, ResourceTutorial,
		ResourceBook, ResourceVideo, ResourceArticle:
		return true
	}
	return false
}

const (
	ExperienceIntern = "intern"
	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
)
