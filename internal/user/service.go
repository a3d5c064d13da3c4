// Package user manages accounts: registration, profile updates, passwords
// and online status.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/apperror"
	"github.com/sahildeshmukh45/tl/internal/auth"
	"github.com/sahildeshmukh45/tl/internal/model"
	"github.com/sahildeshmukh45/tl/internal/repos"
)

// ErrInvalidCredentials is returned on a failed login; handlers map it to 401
// without revealing whether the username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Notifier covers the account-related emails.
type Notifier interface {
	Welcome(user *model.User)
	PasswordReset(email, fullName, token string)
}

type Service struct {
	log    *zap.Logger
	users  *repos.UsersRepo
	notify Notifier

	now func() time.Time
}

func New(log *zap.Logger, users *repos.UsersRepo, notify Notifier) *Service {
	return &Service{log: log, users: users, notify: notify, now: time.Now}
}

// Create registers a new account with a unique username and email.
func (s *Service) Create(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperror.Conflictf("username %q already exists", req.Username)
	}
	if taken, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperror.Conflictf("email %q already exists", req.Email)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	u := &model.User{
		Username:        req.Username,
		Email:           req.Email,
		Password:        hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Role:            role,
		IsActive:        true,
		Timezone:        "UTC",
		Language:        "en",
		WorkHoursPerDay: 8,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.notify != nil {
		s.notify.Welcome(u)
	}
	s.log.Info("user created", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Authenticate checks credentials and marks the user online.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive || !auth.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	u.IsOnline = true
	u.LastLogin = &now
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies the non-nil fields of the request.
func (s *Service) Update(ctx context.Context, userID int64, req *model.UpdateUserRequest) (*model.User, error) {
	u, err := s.byID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != u.Email {
		if taken, err := s.users.ExistsByEmail(ctx, *req.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperror.Conflictf("email %q already exists", *req.Email)
		}
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Timezone != nil {
		u.Timezone = *req.Timezone
	}
	if req.Language != nil {
		u.Language = *req.Language
	}
	if req.WorkHoursPerDay != nil {
		u.WorkHoursPerDay = *req.WorkHoursPerDay
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword rotates the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.byID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.Password, current) {
		return apperror.Conflictf("current password is incorrect")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.users.Save(ctx, u)
}

// InitiatePasswordReset issues a 24h reset token and emails it.
func (s *Service) InitiatePasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFoundf("no user with email %q", email)
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiry := s.now().Add(24 * time.Hour)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	if err := s.users.Save(ctx, u); err != nil {
		return err
	}

	if s.notify != nil {
		s.notify.PasswordReset(u.Email, u.FullName(), token)
	}
	return nil
}

// ResetPassword consumes a reset token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.users.FindByResetToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFoundf("invalid reset token")
	}
	if err != nil {
		return err
	}
	if u.ResetTokenExpiry == nil || u.ResetTokenExpiry.Before(s.now()) {
		return apperror.Conflictf("reset token has expired")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return s.users.Save(ctx, u)
}

// SetOnline flips the online flag; going online refreshes last-login.
func (s *Service) SetOnline(ctx context.Context, userID int64, online bool) error {
	u, err := s.byID(ctx, userID)
	if err != nil {
		return err
	}
	u.IsOnline = online
	if online {
		now := s.now()
		u.LastLogin = &now
	}
	return s.users.Save(ctx, u)
}

// Deactivate disables the account and forces it offline.
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	u, err := s.byID(ctx, userID)
	if err != nil {
		return err
	}
	u.IsActive = false
	u.IsOnline = false
	return s.users.Save(ctx, u)
}

// Activate re-enables a deactivated account.
func (s *Service) Activate(ctx context.Context, userID int64) error {
	u, err := s.byID(ctx, userID)
	if err != nil {
		return err
	}
	u.IsActive = true
	return s.users.Save(ctx, u)
}

func (s *Service) ByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.byID(ctx, userID)
}

func (s *Service) All(ctx context.Context) ([]model.User, error) {
	return s.users.FindAll(ctx)
}

func (s *Service) Search(ctx context.Context, term string) ([]model.User, error) {
	return s.users.Search(ctx, term)
}

func (s *Service) byID(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundf("user %d not found", userID)
	}
	return u, err
}
