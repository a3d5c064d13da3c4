// Package tracking owns the punch-in/punch-out lifecycle of time entries and
// the hour accounting derived from their timestamps.
package tracking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/model"
	"github.com/sahildeshmukh45/tl/internal/repos"
)

// CaptureController starts and stops the per-user screenshot session. Punch-in
// and punch-out drive it; everything else about capture lives in the capture
// package.
type CaptureController interface {
	Start(userID, timeEntryID int64)
	Stop(userID int64)
}

// Notifier dispatches fire-and-forget emails on tracking events. Failures are
// the notifier's problem; the state machine never waits on it.
type Notifier interface {
	TimeEntryApproved(user *model.User, approver *model.User, entry *model.TimeEntry)
	OvertimeAlert(user *model.User, overtimeHours float64)
}

type Service struct {
	log      *zap.Logger
	entries  *repos.TimeEntriesRepo
	users    *repos.UsersRepo
	projects *repos.ProjectsRepo
	tasks    *repos.TasksRepo
	capture  CaptureController
	notify   Notifier

	now func() time.Time
}

func New(log *zap.Logger, entries *repos.TimeEntriesRepo, users *repos.UsersRepo,
	projects *repos.ProjectsRepo, tasks *repos.TasksRepo, capture CaptureController, notify Notifier) *Service {
	return &Service{
		log:      log,
		entries:  entries,
		users:    users,
		projects: projects,
		tasks:    tasks,
		capture:  capture,
		notify:   notify,
		now:      time.Now,
	}
}

// PunchIn opens a new time entry for the user and starts screenshot capture.
func (s *Service) PunchIn(ctx context.Context, userID int64, projectID, taskID *int64, notes string) (*model.TimeEntry, error) {
	if _, err := s.entries.FindActiveByUser(ctx, userID); err == nil {
		return nil, apperror.Conflictf("user %d already has an active time entry", userID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	te := &model.TimeEntry{
		UserID:      userID,
		ProjectID:   projectID,
		TaskID:      taskID,
		PunchInTime: s.now(),
		IsActive:    true,
		Notes:       notes,
	}
	if err := s.entries.Create(ctx, te); err != nil {
		return nil, err
	}

	s.capture.Start(userID, te.ID)
	s.log.Info("punched in",
		zap.Int64("user_id", userID),
		zap.Int64("time_entry_id", te.ID))
	return te, nil
}

// PunchOut closes the user's active entry, recomputes hours and stops capture.
func (s *Service) PunchOut(ctx context.Context, userID int64, notes string) (*model.TimeEntry, error) {
	te, err := s.activeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	te.PunchOutTime = &now
	te.IsActive = false
	if notes != "" {
		if te.Notes != "" {
			te.Notes = te.Notes + "\n" + notes
		} else {
			te.Notes = notes
		}
	}
	te.CalculateHours()

	if err := s.entries.Save(ctx, te); err != nil {
		return nil, err
	}

	s.capture.Stop(userID)
	s.log.Info("punched out",
		zap.Int64("user_id", userID),
		zap.Int64("time_entry_id", te.ID),
		zap.Float64("work_hours", te.TotalWorkHours),
		zap.Float64("overtime_hours", te.OvertimeHours))

	if s.notify != nil && te.OvertimeHours > 0 {
		if user, uerr := s.users.FindByID(ctx, userID); uerr == nil {
			s.notify.OvertimeAlert(user, te.OvertimeHours)
		}
	}
	return te, nil
}

// StartLunch opens the lunch interval. Lunch can be taken once per entry.
func (s *Service) StartLunch(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	te, err := s.activeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if te.LunchInTime != nil {
		return nil, apperror.Conflictf("lunch already started")
	}

	now := s.now()
	te.LunchInTime = &now
	if err := s.entries.Save(ctx, te); err != nil {
		return nil, err
	}
	return te, nil
}

// EndLunch closes the lunch interval and recomputes hours.
func (s *Service) EndLunch(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	te, err := s.activeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if te.LunchInTime == nil {
		return nil, apperror.Conflictf("lunch not started")
	}
	if te.LunchOutTime != nil {
		return nil, apperror.Conflictf("lunch already ended")
	}

	now := s.now()
	te.LunchOutTime = &now
	te.CalculateHours()
	if err := s.entries.Save(ctx, te); err != nil {
		return nil, err
	}
	return te, nil
}

// StartBreak opens a break interval. Starting a new break after a completed
// one replaces the prior interval; only the latest contributes to the break
// total.
func (s *Service) StartBreak(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	te, err := s.activeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if te.IsOnBreak() {
		return nil, apperror.Conflictf("break already started")
	}

	now := s.now()
	te.BreakStartTime = &now
	te.BreakEndTime = nil
	if err := s.entries.Save(ctx, te); err != nil {
		return nil, err
	}
	return te, nil
}

// EndBreak closes the open break interval and recomputes hours.
func (s *Service) EndBreak(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	te, err := s.activeEntry(ctx, userID)
	if err != nil {
		return nil, err
	}
	if te.BreakStartTime == nil {
		return nil, apperror.Conflictf("break not started")
	}
	if te.BreakEndTime != nil {
		return nil, apperror.Conflictf("break already ended")
	}

	now := s.now()
	te.BreakEndTime = &now
	te.CalculateHours()
	if err := s.entries.Save(ctx, te); err != nil {
		return nil, err
	}
	return te, nil
}

// CreateManualEntry records a retroactive entry. It bypasses the
// single-active-entry rule entirely and the produced entry is already closed.
// Overlap with other entries for the same user is not checked.
func (s *Service) CreateManualEntry(ctx context.Context, req *model.ManualEntryRequest) (*model.TimeEntry, error) {
	if _, err := s.findUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, req.ProjectID, req.TaskID); err != nil {
		return nil, err
	}

	te := &model.TimeEntry{
		UserID:         req.UserID,
		ProjectID:      req.ProjectID,
		TaskID:         req.TaskID,
		PunchInTime:    req.PunchInTime,
		PunchOutTime:   &req.PunchOutTime,
		LunchInTime:    req.LunchInTime,
		LunchOutTime:   req.LunchOutTime,
		BreakStartTime: req.BreakStartTime,
		BreakEndTime:   req.BreakEndTime,
		Notes:          req.Notes,
		IsManualEntry:  true,
		IsActive:       false,
	}
	te.CalculateHours()

	if err := s.entries.Create(ctx, te); err != nil {
		return nil, err
	}
	return te, nil
}

// Approve marks an entry approved. There is no state restriction; an entry
// may be approved while still active.
func (s *Service) Approve(ctx context.Context, timeEntryID, approverID int64) (*model.TimeEntry, error) {
	te, err := s.entries.FindByID(ctx, timeEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("time entry %d not found", timeEntryID)
		}
		return nil, err
	}

	now := s.now()
	te.IsApproved = true
	te.ApprovedBy = &approverID
	te.ApprovedAt = &now
	if err := s.entries.Save(ctx, te); err != nil {
		return nil, err
	}

	if s.notify != nil {
		user, uerr := s.users.FindByID(ctx, te.UserID)
		approver, aerr := s.users.FindByID(ctx, approverID)
		if uerr == nil && aerr == nil {
			s.notify.TimeEntryApproved(user, approver, te)
		}
	}
	return te, nil
}

// Delete removes a closed entry. Active entries cannot be deleted.
func (s *Service) Delete(ctx context.Context, timeEntryID int64) error {
	te, err := s.entries.FindByID(ctx, timeEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("time entry %d not found", timeEntryID)
		}
		return err
	}
	if te.IsActive {
		return apperror.Conflictf("cannot delete active time entry")
	}
	return s.entries.Delete(ctx, te)
}

// CurrentEntry returns the user's active entry, or nil when not punched in.
func (s *Service) CurrentEntry(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	te, err := s.entries.FindActiveByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return te, nil
}

// EntriesInRange lists entries whose punch-in falls within [start, end].
func (s *Service) EntriesInRange(ctx context.Context, userID int64, start, end time.Time) ([]model.TimeEntry, error) {
	return s.entries.FindByUserInRange(ctx, userID, start, end)
}

// TotalHours sums recorded work hours in the range.
func (s *Service) TotalHours(ctx context.Context, userID int64, start, end time.Time) (float64, error) {
	return s.entries.SumWorkHours(ctx, userID, start, end)
}

// OvertimeHours sums recorded overtime in the range.
func (s *Service) OvertimeHours(ctx context.Context, userID int64, start, end time.Time) (float64, error) {
	return s.entries.SumOvertimeHours(ctx, userID, start, end)
}

// PendingApproval lists unapproved entries from the last 30 days.
func (s *Service) PendingApproval(ctx context.Context, userID int64) ([]model.TimeEntry, error) {
	end := s.now()
	start := end.AddDate(0, 0, -30)
	return s.entries.FindPendingApproval(ctx, userID, start, end)
}

func (s *Service) activeEntry(ctx context.Context, userID int64) (*model.TimeEntry, error) {
	te, err := s.entries.FindActiveByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundf("no active time entry for user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	return te, nil
}

func (s *Service) findUser(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundf("user %d not found", userID)
	}
	return u, err
}

func (s *Service) resolveRefs(ctx context.Context, projectID, taskID *int64) error {
	if projectID != nil {
		if _, err := s.projects.FindByID(ctx, *projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("project %d not found", *projectID)
			}
			return err
		}
	}
	if taskID != nil {
		if _, err := s.tasks.FindByID(ctx, *taskID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("task %d not found", *taskID)
			}
			return err
		}
	}
	return nil
}
