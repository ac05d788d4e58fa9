package roadmap

import (
	"errors"
	"math"
	"time"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/google/uuid"
)

var ErrStepNotFound = errors.New("roadmap step not found")

// StepUpdate carries the optional fields of a progress update. Nil means
// "leave unchanged". ProgressPercent must already be within [0,100].
type StepUpdate struct {
	Status          *model.StepStatus
	ProgressPercent *int
	Notes           *string
}

type BulkUpdate struct {
	StepID uuid.UUID
	StepUpdate
}

// ApplyStepUpdate mutates the matching step in place and returns it.
//
// startedAt is stamped on the first not_started -> in_progress transition and
// completedAt on the first transition into completed. Neither is cleared by a
// later backward transition. Completing a step forces progressPercent to 100,
// overriding a percentage supplied in the same update.
func ApplyStepUpdate(steps []model.RoadmapStep, stepID uuid.UUID, update StepUpdate, now time.Time) (*model.RoadmapStep, error) {
	step := findStep(steps, stepID)
	if step == nil {
		return nil, ErrStepNotFound
	}

	forcedComplete := false
	if update.Status != nil {
		previous := step.Status
		next := *update.Status
		step.Status = next

		if next == model.StatusInProgress && previous == model.StatusNotStarted && step.StartedAt == nil {
			ts := now
			step.StartedAt = &ts
		}
		if next == model.StatusCompleted && previous != model.StatusCompleted {
			if step.CompletedAt == nil {
				ts := now
				step.CompletedAt = &ts
			}
			step.ProgressPercent = 100
			forcedComplete = true
		}
	}

	if update.ProgressPercent != nil && !forcedComplete {
		step.ProgressPercent = *update.ProgressPercent
	}

	if update.Notes != nil {
		step.Notes = *update.Notes
	}

	return step, nil
}

// BulkApply applies each update in order. Updates naming an unknown step are
// skipped so one bad entry does not discard the rest of the batch.
func BulkApply(steps []model.RoadmapStep, updates []BulkUpdate, now time.Time) ([]*model.RoadmapStep, model.RoadmapSummary) {
	updated := make([]*model.RoadmapStep, 0, len(updates))
	for _, u := range updates {
		step, err := ApplyStepUpdate(steps, u.StepID, u.StepUpdate, now)
		if err != nil {
			continue
		}
		updated = append(updated, step)
	}
	return updated, Summarize(steps)
}

// Summarize recounts every step. Nothing is carried over between calls.
func Summarize(steps []model.RoadmapStep) model.RoadmapSummary {
	summary := model.RoadmapSummary{TotalSteps: len(steps)}
	if summary.TotalSteps == 0 {
		return summary
	}

	for _, step := range steps {
		switch step.Status {
		case model.StatusCompleted:
			summary.StepsCompleted++
		case model.StatusInProgress:
			summary.StepsInProgress++
		default:
			summary.StepsNotStarted++
		}
	}

	summary.PercentComplete = int(math.Round(100 * float64(summary.StepsCompleted) / float64(summary.TotalSteps)))
	return summary
}

func findStep(steps []model.RoadmapStep, stepID uuid.UUID) *model.RoadmapStep {
	for i := range steps {
		if steps[i].ID == stepID {
			return &steps[i]
		}
	}
	return nil
}
