// Package normalizer turns raw LLM output into a validated AnalysisResult.
//
// The text is parsed into a loose gjson tree first; only after the presence
// and type checks pass is the typed result built. Nothing is ever filled in
// with placeholder content.
package normalizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/fadilmartias/skillsnap/internal/roadmap"
	"github.com/tidwall/gjson"
)

const (
	fieldJobTitle       = "extractedJobTitle"
	fieldSimilarity     = "similarityPercentage"
	fieldMatch          = "matchPercent"
	fieldATSScore       = "atsScore"
	fieldATSExplanation = "atsScoreExplanation"
	fieldSkillsFound    = "skillsFound"
	fieldMissingSkills  = "missingSkills"
	fieldSuggestions    = "suggestions"
	fieldPhasedRoadmap  = "phasedRoadmap"
)

var requiredFields = []string{
	fieldJobTitle,
	fieldSimilarity,
	fieldMatch,
	fieldATSScore,
	fieldATSExplanation,
	fieldSkillsFound,
	fieldMissingSkills,
	fieldSuggestions,
	fieldPhasedRoadmap,
}

type AnalysisResult struct {
	ExtractedJobTitle    string                       `json:"extractedJobTitle"`
	SimilarityPercentage float64                      `json:"similarityPercentage"`
	MatchPercent         float64                      `json:"matchPercent"`
	ATSScore             float64                      `json:"atsScore"`
	ATSScoreExplanation  string                       `json:"atsScoreExplanation"`
	SkillsFound          []string                     `json:"skillsFound"`
	MissingSkills        []string                     `json:"missingSkills"`
	Suggestions          []model.Suggestion           `json:"suggestions"`
	StrengthAreas        []string                     `json:"strengthAreas"`
	ImprovementAreas     []string                     `json:"improvementAreas"`
	PhasedRoadmap        []roadmap.PhasedRoadmapEntry `json:"phasedRoadmap"`

	// Repaired is set when the raw text only parsed after bracket repair.
	Repaired bool `json:"-"`
}

func Normalize(rawText string) (*AnalysisResult, error) {
	text := StripFences(rawText)
	repaired := false

	if !gjson.Valid(text) {
		fixed := Repair(text)
		if !gjson.Valid(fixed) {
			return nil, fmt.Errorf("%w: %d characters could not be repaired", ErrTruncatedResponse, len(text))
		}
		text = fixed
		repaired = true
	}

	root := gjson.Parse(text)

	var missing []string
	for _, field := range requiredFields {
		if !root.IsObject() || !root.Get(field).Exists() {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteResponseError{Missing: missing}
	}

	title := root.Get(fieldJobTitle)
	if title.Type != gjson.String || strings.TrimSpace(title.Str) == "" {
		return nil, fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidResponseShape, fieldJobTitle)
	}
	if !root.Get(fieldSkillsFound).IsArray() || !root.Get(fieldMissingSkills).IsArray() {
		return nil, fmt.Errorf("%w: %s and %s must be arrays", ErrInvalidResponseShape, fieldSkillsFound, fieldMissingSkills)
	}

	scores := make(map[string]float64, 3)
	for _, field := range []string{fieldSimilarity, fieldMatch, fieldATSScore} {
		v, ok := parseScore(root.Get(field))
		if !ok {
			return nil, fmt.Errorf("%w: %s must be numeric, got %s", ErrInvalidResponseShape, field, root.Get(field).Raw)
		}
		scores[field] = clampScore(v)
	}

	return &AnalysisResult{
		ExtractedJobTitle:    title.Str,
		SimilarityPercentage: scores[fieldSimilarity],
		MatchPercent:         scores[fieldMatch],
		ATSScore:             scores[fieldATSScore],
		ATSScoreExplanation:  root.Get(fieldATSExplanation).String(),
		SkillsFound:          stringList(root.Get(fieldSkillsFound)),
		MissingSkills:        stringList(root.Get(fieldMissingSkills)),
		Suggestions:          suggestionList(root.Get(fieldSuggestions)),
		StrengthAreas:        stringList(root.Get("strengthAreas")),
		ImprovementAreas:     stringList(root.Get("improvementAreas")),
		PhasedRoadmap:        parsePhasedRoadmap(root.Get(fieldPhasedRoadmap)),
		Repaired:             repaired,
	}, nil
}

// parseScore accepts JSON numbers and numeric strings such as "85" or "85%".
func parseScore(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		s := strings.TrimSuffix(strings.TrimSpace(r.Str), "%")
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// stringList returns an empty, non-nil slice for anything that is not an
// array. Non-scalar items are dropped.
func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		switch item.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func suggestionList(r gjson.Result) []model.Suggestion {
	out := []model.Suggestion{}
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		switch {
		case item.IsObject():
			out = append(out, model.Suggestion{
				Category:    item.Get("category").String(),
				Priority:    item.Get("priority").String(),
				Title:       item.Get("title").String(),
				Description: item.Get("description").String(),
			})
		case item.Type == gjson.String && strings.TrimSpace(item.Str) != "":
			out = append(out, model.Suggestion{Description: item.Str})
		}
	}
	return out
}

func parsePhasedRoadmap(r gjson.Result) []roadmap.PhasedRoadmapEntry {
	if !r.IsArray() {
		return nil
	}

	items := r.Array()
	entries := make([]roadmap.PhasedRoadmapEntry, 0, len(items))
	for _, item := range items {
		entry := roadmap.PhasedRoadmapEntry{Skill: firstString(item, "skill", "name")}
		if phases := item.Get("phases"); item.IsObject() && phases.IsArray() {
			for _, p := range phases.Array() {
				if !p.IsObject() {
					continue
				}
				lr := p.Get("learningResources")
				entry.Phases = append(entry.Phases, roadmap.Phase{
					Phase:       firstString(p, "phase", "name"),
					Goal:        firstString(p, "goal"),
					Description: firstString(p, "description"),
					Duration:    firstString(p, "duration"),
					LearningResources: roadmap.LearningResources{
						Courses:       resourceList(lr.Get("courses")),
						YouTube:       resourceList(lr.Get("youtube")),
						Documentation: resourceList(lr.Get("documentation")),
						Projects:      resourceList(lr.Get("projects")),
					},
				})
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func resourceList(r gjson.Result) []roadmap.RawResource {
	if !r.IsArray() {
		return nil
	}
	var out []roadmap.RawResource
	for _, item := range r.Array() {
		switch {
		case item.IsObject():
			out = append(out, roadmap.RawResource{
				Type:     firstString(item, "type"),
				Title:    firstString(item, "title", "name"),
				URL:      firstString(item, "url", "link"),
				Provider: firstString(item, "provider", "channel"),
			})
		case item.Type == gjson.Null:
		default:
			out = append(out, roadmap.RawResource{Bare: true, Title: item.String()})
		}
	}
	return out
}

// firstString returns the first non-empty scalar among keys.
func firstString(r gjson.Result, keys ...string) string {
	if !r.IsObject() {
		return ""
	}
	for _, k := range keys {
		v := r.Get(k)
		if !v.Exists() || v.IsObject() || v.IsArray() || v.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}
