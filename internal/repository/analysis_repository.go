package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortColumns whitelists the list sort keys.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"matchPercent": "match_percent",
	"atsScore":     "ats_score",
	"jobRole":      "job_role",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ListAnalysesParams struct {
	UserID  uuid.UUID
	JobRole string
	SortBy  string
	Page    int
	Limit   int
	All     bool
}

// SimilarAnalysis is a previous analysis ranked by job description distance.
type SimilarAnalysis struct {
	ID           uuid.UUID `json:"analysisId"`
	JobRole      string    `json:"jobRole"`
	FileName     string    `json:"fileName"`
	MatchPercent float64   `json:"matchPercent"`
	ATSScore     float64   `json:"atsScore"`
	Distance     float64   `json:"distance"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db}
}

// Create stores the analysis, its steps and its summary in one transaction.
func (r *AnalysisRepository) Create(ctx context.Context, analysis *model.ResumeAnalysis) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(analysis).Error; err != nil {
			return fmt.Errorf("create analysis: %w", err)
		}
		if len(analysis.Steps) == 0 {
			return nil
		}
		for i := range analysis.Steps {
			analysis.Steps[i].AnalysisID = analysis.ID
		}
		if err := tx.Create(&analysis.Steps).Error; err != nil {
			return fmt.Errorf("create roadmap steps: %w", err)
		}
		return nil
	})
}

// FindForUser loads an analysis owned by userID with its steps ordered by
// step number. A foreign or missing analysis is ErrNotFound.
func (r *AnalysisRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*model.ResumeAnalysis, error) {
	var a model.ResumeAnalysis
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_number ASC") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ExistsForUser reports whether userID owns the analysis.
func (r *AnalysisRepository) ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ResumeAnalysis{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *AnalysisRepository) List(ctx context.Context, p ListAnalysesParams) ([]model.ResumeAnalysis, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.ResumeAnalysis{}).Where("user_id = ?", p.UserID)
		if role := strings.TrimSpace(p.JobRole); role != "" {
			q = q.Where(`LOWER(job_role) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(role))+"%")
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[p.SortBy]
	if !ok {
		col = sortColumns["createdAt"]
	}
	q := scoped().
		Omit("job_description_embedding", "job_description").
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true})
	if !p.All {
		q = q.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
	}

	var items []model.ResumeAnalysis
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes the analysis with its steps and progress events and returns
// what was deleted so stored documents can be cleaned up.
func (r *AnalysisRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*model.ResumeAnalysis, error) {
	var deleted model.ResumeAnalysis
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&deleted).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("analysis_id = ?", id).Delete(&model.ProgressEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("analysis_id = ?", id).Delete(&model.RoadmapStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ResumeAnalysis{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// SaveProgress writes the changed steps, the recomputed summary and the
// last update time in one transaction. Concurrent writers are last-write-wins.
func (r *AnalysisRepository) SaveProgress(ctx context.Context, analysisID uuid.UUID, steps []*model.RoadmapStep, summary model.RoadmapSummary, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			err := tx.Model(&model.RoadmapStep{}).
				Where("id = ? AND analysis_id = ?", step.ID, analysisID).
				Select("status", "progress_percent", "notes", "started_at", "completed_at", "updated_at").
				Updates(map[string]any{
					"status":           step.Status,
					"progress_percent": step.ProgressPercent,
					"notes":            step.Notes,
					"started_at":       step.StartedAt,
					"completed_at":     step.CompletedAt,
					"updated_at":       at,
				}).Error
			if err != nil {
				return fmt.Errorf("save step %s: %w", step.ID, err)
			}
		}

		res := tx.Model(&model.ResumeAnalysis{}).Where("id = ?", analysisID).Updates(map[string]any{
			"progress_steps_completed":   summary.StepsCompleted,
			"progress_steps_in_progress": summary.StepsInProgress,
			"progress_steps_not_started": summary.StepsNotStarted,
			"progress_total_steps":       summary.TotalSteps,
			"progress_percent_complete":  summary.PercentComplete,
			"last_progress_update":       at,
		})
		if res.Error != nil {
			return fmt.Errorf("save summary: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindSimilar ranks the user's other analyses by job description embedding
// distance. Postgres with pgvector only.
func (r *AnalysisRepository) FindSimilar(ctx context.Context, userID, excludeID uuid.UUID, embedding pgvector.Vector, limit int) ([]SimilarAnalysis, error) {
	var out []SimilarAnalysis
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, job_role, file_name, match_percent, ats_score, created_at,
		       job_description_embedding <-> ? AS distance
		FROM resume_analyses
		WHERE user_id = ? AND id <> ? AND job_description_embedding IS NOT NULL
		ORDER BY job_description_embedding <-> ?
		LIMIT ?
	`, embedding, userID, excludeID, embedding, limit).Scan(&out).Error
	return out, err
}
