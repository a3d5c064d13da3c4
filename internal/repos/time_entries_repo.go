// Package repos contains the gorm-backed persistence layer.
package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/model"
)

type TimeEntriesRepo struct {
	db *gorm.DB
}

func NewTimeEntriesRepo(db *gorm.DB) *TimeEntriesRepo {
	return &TimeEntriesRepo{db: db}
}

func (r *TimeEntriesRepo) Create(ctx context.Context, te *model.TimeEntry) error {
	return r.db.WithContext(ctx).Create(te).Error
}

func (r *TimeEntriesRepo) Save(ctx context.Context, te *model.TimeEntry) error {
	return r.db.WithContext(ctx).Save(te).Error
}

func (r *TimeEntriesRepo) Delete(ctx context.Context, te *model.TimeEntry) error {
	return r.db.WithContext(ctx).Delete(te).Error
}

func (r *TimeEntriesRepo) FindByID(ctx context.Context, id int64) (*model.TimeEntry, error) {
	var te model.TimeEntry
	if err := r.db.WithContext(ctx).First(&te, id).Error; err != nil {
		return nil, err
	}
	return &te, nil
}

// FindActiveByUser returns the single open entry for a user, or
// gorm.ErrRecordNotFound when the user is not punched in.
func (r *TimeEntriesRepo) FindActiveByUser(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	var te model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&te).Error
	if err != nil {
		return nil, err
	}
	return &te, nil
}

func (r *TimeEntriesRepo) FindByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND punch_in_time >= ? AND punch_in_time <= ?", userID, start, end).
		Order("punch_in_time DESC").
		Find(&entries).Error
	return entries, err
}

func (r *TimeEntriesRepo) FindPendingApproval(ctx context.Context, userID int64, start, end time.Time) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND punch_in_time >= ? AND punch_in_time <= ? AND is_approved = ?", userID, start, end, false).
		Order("punch_in_time DESC").
		Find(&entries).Error
	return entries, err
}

func (r *TimeEntriesRepo) SumWorkHours(ctx context.Context, userID int64, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("user_id = ? AND punch_in_time >= ? AND punch_in_time <= ?", userID, start, end).
		Select("COALESCE(SUM(total_work_hours), 0)").
		Scan(&total).Error
	return total, err
}

func (r *TimeEntriesRepo) SumOvertimeHours(ctx context.Context, userID int64, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("user_id = ? AND punch_in_time >= ? AND punch_in_time <= ?", userID, start, end).
		Select("COALESCE(SUM(overtime_hours), 0)").
		Scan(&total).Error
	return total, err
}

func (r *TimeEntriesRepo) AverageWorkHours(ctx context.Context, userID int64, start, end time.Time) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("user_id = ? AND punch_in_time >= ? AND punch_in_time <= ?", userID, start, end).
		Select("COALESCE(AVG(total_work_hours), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *TimeEntriesRepo) CountByUserInRange(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("user_id = ? AND punch_in_time >= ? AND punch_in_time <= ?", userID, start, end).
		Count(&count).Error
	return count, err
}
