package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/model"
)

type ScreenshotsRepo struct {
	db *gorm.DB
}

func NewScreenshotsRepo(db *gorm.DB) *ScreenshotsRepo {
	return &ScreenshotsRepo{db: db}
}

func (r *ScreenshotsRepo) Create(ctx context.Context, s *model.Screenshot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScreenshotsRepo) Save(ctx context.Context, s *model.Screenshot) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScreenshotsRepo) Delete(ctx context.Context, s *model.Screenshot) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func (r *ScreenshotsRepo) FindByID(ctx context.Context, id int64) (*model.Screenshot, error) {
	var s model.Screenshot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScreenshotsRepo) FindByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Screenshot, error) {
	var shots []model.Screenshot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND captured_at >= ? AND captured_at <= ?", userID, start, end).
		Order("captured_at DESC").
		Find(&shots).Error
	return shots, err
}

// FindByTimeEntry lists a shift's screenshots in capture order.
func (r *ScreenshotsRepo) FindByTimeEntry(ctx context.Context, timeEntryID int64) ([]model.Screenshot, error) {
	var shots []model.Screenshot
	err := r.db.WithContext(ctx).
		Where("time_entry_id = ?", timeEntryID).
		Order("captured_at ASC").
		Find(&shots).Error
	return shots, err
}

func (r *ScreenshotsRepo) FindLatestByUser(ctx context.Context, userID int64, limit int) ([]model.Screenshot, error) {
	var shots []model.Screenshot
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("captured_at DESC").
		Limit(limit).
		Find(&shots).Error
	return shots, err
}

func (r *ScreenshotsRepo) FindPendingApproval(ctx context.Context, userID int64) ([]model.Screenshot, error) {
	var shots []model.Screenshot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_approved = ?", userID, false).
		Find(&shots).Error
	return shots, err
}

func (r *ScreenshotsRepo) CountByUserInRange(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Screenshot{}).
		Where("user_id = ? AND captured_at >= ? AND captured_at <= ?", userID, start, end).
		Count(&count).Error
	return count, err
}
