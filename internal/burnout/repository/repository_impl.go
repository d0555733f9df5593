package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/burnout/internal/burnout/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, assessment *domain.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

// Latest returns nil without error when the user has no assessment yet.
func (r *repo) Latest(ctx context.Context, userID snowflake.ID) (*domain.Assessment, error) {
	var assessment domain.Assessment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assessed_at DESC").
		Order("id DESC").
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// List fetches one row beyond filter.Limit so callers can tell whether another page exists.
func (r *repo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Assessment, error) {
	stmt := r.db.WithContext(ctx).
		Model(&domain.Assessment{}).
		Where("user_id = ?", filter.UserID)

	if filter.Cursor != nil {
		stmt = stmt.Where("(assessed_at < ?) OR (assessed_at = ? AND id < ?)",
			filter.Cursor.AssessedAt,
			filter.Cursor.AssessedAt,
			filter.Cursor.ID,
		)
	}

	stmt = stmt.Order("assessed_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}

	var items []domain.Assessment
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// LatestPerUserAtLeast returns each user's most recent assessment when its risk reaches threshold,
// highest risk first. Assessments sharing an assessed_at are ordered by id.
func (r *repo) LatestPerUserAtLeast(ctx context.Context, threshold float64, limit int) ([]domain.Assessment, error) {
	newer := r.db.
		Table("burnout_assessments AS newer").
		Select("1").
		Where("newer.user_id = burnout_assessments.user_id").
		Where("(newer.assessed_at > burnout_assessments.assessed_at) OR (newer.assessed_at = burnout_assessments.assessed_at AND newer.id > burnout_assessments.id)")

	stmt := r.db.WithContext(ctx).
		Model(&domain.Assessment{}).
		Where("NOT EXISTS (?)", newer).
		Where("burnout_assessments.burnout_risk >= ?", threshold).
		Order("burnout_assessments.burnout_risk DESC").
		Order("burnout_assessments.id DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var items []domain.Assessment
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
