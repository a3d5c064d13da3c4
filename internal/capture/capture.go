// Package capture runs the per-user periodic screenshot sessions and owns
// screenshot records.
package capture

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/config"
	"github.com/sahildeshmukh45/tl/internal/model"
	"github.com/sahildeshmukh45/tl/internal/repos"
)

// Grabber produces a single screen frame, already scaled to the configured
// quality factor.
type Grabber interface {
	Capture() (image.Image, error)
}

// UploadResult describes a stored image.
type UploadResult struct {
	URL      string
	PublicID string
	Bytes    int64
}

// Uploader pushes an image to remote storage and can remove it again.
type Uploader interface {
	Upload(ctx context.Context, img image.Image, name string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// Service keeps the registry of running sessions, one per user at most.
type Service struct {
	log   *zap.Logger
	cfg   *config.Config
	grab  Grabber
	up    Uploader
	shots *repos.ScreenshotsRepo

	mu       sync.Mutex
	sessions map[int64]*session

	now func() time.Time
}

type session struct {
	userID      int64
	timeEntryID int64
	ticker      *time.Ticker
	quit        chan struct{}
	done        chan struct{}
}

func New(log *zap.Logger, cfg *config.Config, grab Grabber, up Uploader, shots *repos.ScreenshotsRepo) *Service {
	return &Service{
		log:      log,
		cfg:      cfg,
		grab:     grab,
		up:       up,
		shots:    shots,
		sessions: make(map[int64]*session),
		now:      time.Now,
	}
}

// Start registers a capture session for the user and begins the periodic
// loop. A prior session for the same user is stopped first; the registry is
// keyed by user id, so the last writer wins. No-op when capture is disabled.
//
// The lock is held across the whole replace, including old.stop(): run never
// acquires s.mu, so waiting for the displaced loop under the lock cannot
// deadlock, and no concurrent Start can slip a second session in between the
// remove and the insert.
func (s *Service) Start(userID, timeEntryID int64) {
	if !s.cfg.ScreenshotEnabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old := s.sessions[userID]; old != nil {
		delete(s.sessions, userID)
		old.stop()
	}

	sess := &session{
		userID:      userID,
		timeEntryID: timeEntryID,
		ticker:      time.NewTicker(s.cfg.ScreenshotInterval),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	s.sessions[userID] = sess

	go s.run(sess)
	s.log.Info("screenshot session started",
		zap.Int64("user_id", userID),
		zap.Int64("time_entry_id", timeEntryID),
		zap.Duration("interval", s.cfg.ScreenshotInterval))
}

// Stop cancels the user's session and waits for its loop to exit. Calling it
// for a user with no session is a no-op.
func (s *Service) Stop(userID int64) {
	s.mu.Lock()
	sess := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if sess == nil {
		return
	}
	sess.stop()
	s.log.Info("screenshot session stopped", zap.Int64("user_id", userID))
}

// Shutdown cancels every running session and waits for the loops to exit.
func (s *Service) Shutdown() {
	s.mu.Lock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.sessions = make(map[int64]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.stop()
	}
	if len(all) > 0 {
		s.log.Info("all screenshot sessions stopped", zap.Int("count", len(all)))
	}
}

// Running reports whether the user currently has a session.
func (s *Service) Running(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	return ok
}

// CaptureManual is the synchronous one-shot capture. Unlike the periodic
// path, failures are surfaced to the caller as a CaptureError.
func (s *Service) CaptureManual(ctx context.Context, userID, timeEntryID int64, notes string) (*model.Screenshot, error) {
	return s.captureAndStore(ctx, userID, timeEntryID, true, notes)
}

func (s *Service) run(sess *session) {
	defer close(sess.done)
	for {
		select {
		case <-sess.ticker.C:
			// A failed tick must not kill the session; the next tick
			// proceeds independently.
			if _, err := s.captureAndStore(context.Background(), sess.userID, sess.timeEntryID, false, ""); err != nil {
				s.log.Warn("periodic screenshot failed",
					zap.Int64("user_id", sess.userID),
					zap.Int64("time_entry_id", sess.timeEntryID),
					zap.Error(err))
			}
		case <-sess.quit:
			sess.ticker.Stop()
			return
		}
	}
}

func (sess *session) stop() {
	close(sess.quit)
	<-sess.done
}

func (s *Service) captureAndStore(ctx context.Context, userID, timeEntryID int64, manual bool, notes string) (*model.Screenshot, error) {
	img, err := s.grab.Capture()
	if err != nil {
		return nil, &apperror.CaptureError{Step: "capture", Err: err}
	}

	kind := "auto"
	if manual {
		kind = "manual"
	}
	name := fmt.Sprintf("%s_screenshot_%s.png", kind, uuid.NewString())

	res, err := s.up.Upload(ctx, img, name)
	if err != nil {
		return nil, &apperror.CaptureError{Step: "upload", Err: err}
	}

	bounds := img.Bounds()
	shot := &model.Screenshot{
		UserID:      userID,
		TimeEntryID: &timeEntryID,
		URL:         res.URL,
		PublicID:    res.PublicID,
		FileName:    name,
		FileSize:    res.Bytes,
		ImageWidth:  bounds.Dx(),
		ImageHeight: bounds.Dy(),
		CapturedAt:  s.now(),
		IsManual:    manual,
		Notes:       notes,
	}
	if err := s.shots.Create(ctx, shot); err != nil {
		return nil, &apperror.CaptureError{Step: "store", Err: err}
	}
	return shot, nil
}
