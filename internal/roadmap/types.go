// Package roadmap flattens the LLM's phased roadmap into ordered learning
// steps and keeps the derived progress summary in line with step mutations.
package roadmap

// PhasedRoadmapEntry is the raw per-skill roadmap produced by the LLM.
type PhasedRoadmapEntry struct {
	Skill  string  `json:"skill"`
	Phases []Phase `json:"phases"`
}

type Phase struct {
	Phase             string            `json:"phase"`
	Goal              string            `json:"goal"`
	Description       string            `json:"description"`
	Duration          string            `json:"duration"`
	LearningResources LearningResources `json:"learningResources"`
}

type LearningResources struct {
	Courses       []RawResource `json:"courses"`
	YouTube       []RawResource `json:"youtube"`
	Documentation []RawResource `json:"documentation"`
	Projects      []RawResource `json:"projects"`
}

// RawResource is a resource as the LLM returned it. Bare is set when the item
// was a plain string rather than an object; Title then holds that string.
type RawResource struct {
	Bare     bool   `json:"-"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Provider string `json:"provider"`
}
