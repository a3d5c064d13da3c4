package capture

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/model"
)

// Record management for already-captured screenshots.

func (s *Service) UserScreenshots(ctx context.Context, userID int64, start, end time.Time) ([]model.Screenshot, error) {
	return s.shots.FindByUserInRange(ctx, userID, start, end)
}

func (s *Service) TimeEntryScreenshots(ctx context.Context, timeEntryID int64) ([]model.Screenshot, error) {
	return s.shots.FindByTimeEntry(ctx, timeEntryID)
}

func (s *Service) LatestScreenshots(ctx context.Context, userID int64, limit int) ([]model.Screenshot, error) {
	return s.shots.FindLatestByUser(ctx, userID, limit)
}

// DeleteScreenshot removes the remote object best-effort, then the record.
// A failed remote delete is logged and does not block the row removal.
func (s *Service) DeleteScreenshot(ctx context.Context, screenshotID int64) error {
	shot, err := s.shots.FindByID(ctx, screenshotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("screenshot %d not found", screenshotID)
		}
		return err
	}

	if shot.PublicID != "" {
		if err := s.up.Delete(ctx, shot.PublicID); err != nil {
			s.log.Warn("failed to delete remote screenshot",
				zap.String("public_id", shot.PublicID),
				zap.Error(err))
		}
	}
	return s.shots.Delete(ctx, shot)
}

// ApproveScreenshot annotates the screenshot as reviewed.
func (s *Service) ApproveScreenshot(ctx context.Context, screenshotID, approverID int64) (*model.Screenshot, error) {
	shot, err := s.shots.FindByID(ctx, screenshotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("screenshot %d not found", screenshotID)
		}
		return nil, err
	}

	now := s.now()
	shot.IsApproved = true
	shot.ApprovedBy = &approverID
	shot.ApprovedAt = &now
	if err := s.shots.Save(ctx, shot); err != nil {
		return nil, err
	}
	return shot, nil
}
