package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/skillsnap/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db}
}

// Create appends the event and points the user's last progress at it.
func (r *ProgressRepository) Create(ctx context.Context, event *model.ProgressEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", event.UserID).Update("last_progress_id", event.ID).Error
	})
}

// Latest returns nil without error when the user has no events.
func (r *ProgressRepository) Latest(ctx context.Context, userID uuid.UUID) (*model.ProgressEvent, error) {
	var e model.ProgressEvent
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("clicked_at DESC").First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ProgressRepository) History(ctx context.Context, userID uuid.UUID, limit int) ([]model.ProgressEvent, error) {
	events := []model.ProgressEvent{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("clicked_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *ProgressRepository) ListByAnalysis(ctx context.Context, userID, analysisID uuid.UUID) ([]model.ProgressEvent, error) {
	events := []model.ProgressEvent{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND analysis_id = ?", userID, analysisID).
		Order("clicked_at DESC").
		Find(&events).Error
	return events, err
}
