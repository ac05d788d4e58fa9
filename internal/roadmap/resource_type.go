package roadmap

import (
	"strings"

	"github.com/fadilmartias/skillsnap/internal/model"
)

var resourceTypeAliases = map[string]model.ResourceType{
	"doc":           model.ResourceDocumentation,
	"docs":          model.ResourceDocumentation,
	"documentation": model.ResourceDocumentation,
	"article":       model.ResourceDocumentation,
	"youtube":       model.ResourceVideo,
	"video":         model.ResourceVideo,
	"course":        model.ResourceCourse,
	"class":         model.ResourceCourse,
	"tutorial":      model.ResourceCourse,
	"project":       model.ResourceProject,
	"exercise":      model.ResourceProject,
	"book":          model.ResourceBook,
}

// NormalizeResourceType maps a free-form type label onto the closed enum. An
// unknown label falls back to the category's suggested type, then to
// documentation.
func NormalizeResourceType(raw, suggested string) model.ResourceType {
	if t, ok := lookupResourceType(raw); ok {
		return t
	}
	if t, ok := lookupResourceType(suggested); ok {
		return t
	}
	return model.ResourceDocumentation
}

func lookupResourceType(label string) (model.ResourceType, bool) {
	t, ok := resourceTypeAliases[strings.ToLower(strings.TrimSpace(label))]
	return t, ok
}
