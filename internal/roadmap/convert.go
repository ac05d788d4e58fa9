package roadmap

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrEmptyRoadmap = errors.New("no learning roadmap was generated from the AI analysis")

const (
	UnknownSkill           = "Unknown Skill"
	DefaultPhaseDuration   = "1-2 weeks"
	unknownResourceSource  = "Unknown"
	weeksPerStep           = 2
	weeksPerMonth          = 4
	skillTitleSeparator    = " & "
	skillDescriptionJoiner = ", "
)

// separators: comma, slash, ampersand, the word "and", plus, and a literal
// "&" left behind by double-escaped output
var skillSeparator = regexp.MustCompile(`(?i)[,/&]+|\band\b|\+|\\u0026`)

type Roadmap struct {
	TotalEstimatedDuration string              `json:"totalEstimatedDuration"`
	Steps                  []model.RoadmapStep `json:"steps"`
}

// SplitSkills breaks a composite label such as "HTML & CSS" into atomic skill
// names, dropping duplicates and empty parts.
func SplitSkills(label string) []string {
	parts := skillSeparator.Split(label, -1)
	skills := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		skills = append(skills, p)
	}
	return skills
}

// Convert emits one step per phase, numbered 1..K across all entries.
func Convert(entries []PhasedRoadmapEntry) (*Roadmap, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRoadmap
	}

	steps := make([]model.RoadmapStep, 0, len(entries)*3)
	stepNumber := 1
	for _, entry := range entries {
		skills := SplitSkills(entry.Skill)
		if len(skills) == 0 {
			skills = []string{UnknownSkill}
		}

		for i, phase := range entry.Phases {
			name := strings.TrimSpace(phase.Phase)
			if name == "" {
				name = fmt.Sprintf("Phase %d", i+1)
			}

			description := phase.Goal
			if description == "" {
				description = phase.Description
			}
			if description == "" {
				description = fmt.Sprintf("Complete %s for %s", name, strings.Join(skills, skillDescriptionJoiner))
			}

			duration := phase.Duration
			if duration == "" {
				duration = DefaultPhaseDuration
			}

			steps = append(steps, model.RoadmapStep{
				ID:                uuid.New(),
				StepNumber:        stepNumber,
				Title:             strings.Join(skills, skillTitleSeparator) + ": " + name,
				Description:       description,
				EstimatedDuration: duration,
				Skills:            datatypes.JSONSlice[string](append([]string(nil), skills...)),
				Resources:         datatypes.JSONSlice[model.Resource](flattenResources(phase.LearningResources)),
				Status:            model.StatusNotStarted,
				ProgressPercent:   0,
			})
			stepNumber++
		}
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: %d skill entries contained no phases", ErrEmptyRoadmap, len(entries))
	}

	return &Roadmap{
		TotalEstimatedDuration: EstimateDuration(len(steps)),
		Steps:                  steps,
	}, nil
}

// EstimateDuration assumes two weeks per step. It is a rough display figure,
// not a schedule.
func EstimateDuration(stepCount int) string {
	totalWeeks := stepCount * weeksPerStep
	months := (totalWeeks + weeksPerMonth - 1) / weeksPerMonth
	return fmt.Sprintf("%d-%d months", months, months+1)
}

func flattenResources(lr LearningResources) []model.Resource {
	resources := make([]model.Resource, 0, len(lr.Courses)+len(lr.YouTube)+len(lr.Documentation)+len(lr.Projects))
	resources = appendResources(resources, lr.Courses, "course")
	resources = appendResources(resources, lr.YouTube, "video")
	resources = appendResources(resources, lr.Documentation, "documentation")
	resources = appendResources(resources, lr.Projects, "project")
	return resources
}

func appendResources(dst []model.Resource, items []RawResource, suggestedType string) []model.Resource {
	for _, item := range items {
		// bare strings are kept so the title stays visible even without a link
		if item.Bare {
			dst = append(dst, model.Resource{
				Type:     NormalizeResourceType("", suggestedType),
				Title:    item.Title,
				URL:      "",
				Provider: unknownResourceSource,
			})
			continue
		}
		provider := item.Provider
		if provider == "" {
			provider = unknownResourceSource
		}
		dst = append(dst, model.Resource{
			Type:     NormalizeResourceType(item.Type, suggestedType),
			Title:    item.Title,
			URL:      item.URL,
			Provider: provider,
		})
	}
	return dst
}
