package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/burnout/internal/healthdata/domain"
	"github.com/smallbiznis/burnout/pkg/db"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

// Insert relies on the (user_id, day) unique index so concurrent same-day submissions cannot both land.
func (r *repo) Insert(ctx context.Context, record *domain.Record) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicateSubmission
	}
	return err
}

func (r *repo) ExistsForDay(ctx context.Context, userID snowflake.ID, day string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Record{}).
		Where("user_id = ? AND day = ?", userID, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) ListRecent(ctx context.Context, userID snowflake.ID, limit int) ([]domain.Record, error) {
	var records []domain.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListSince(ctx context.Context, userID snowflake.ID, since time.Time, limit int) ([]domain.Record, error) {
	var records []domain.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ?", userID, since).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
