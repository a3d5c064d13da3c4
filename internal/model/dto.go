package model

import "time"

// Request payloads, validated with go-playground/validator tags.

type RegisterRequest struct {
	Username  string   `json:"username" validate:"required,min=3"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Role      UserRole `json:"role" validate:"omitempty,oneof=USER MANAGER ADMIN"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	Email           *string   `json:"email" validate:"omitempty,email"`
	Role            *UserRole `json:"role" validate:"omitempty,oneof=USER MANAGER ADMIN"`
	Timezone        *string   `json:"timezone"`
	Language        *string   `json:"language"`
	WorkHoursPerDay *int      `json:"workHoursPerDay" validate:"omitempty,gt=0"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type PunchInRequest struct {
	ProjectID *int64 `json:"projectId"`
	TaskID    *int64 `json:"taskId"`
	Notes     string `json:"notes"`
}

type PunchOutRequest struct {
	Notes string `json:"notes"`
}

// ManualEntryRequest creates a retroactive, already-closed time entry.
type ManualEntryRequest struct {
	UserID       int64     `json:"userId" validate:"required,gt=0"`
	ProjectID    *int64    `json:"projectId"`
	TaskID       *int64    `json:"taskId"`
	PunchInTime  time.Time `json:"punchInTime" validate:"required"`
	PunchOutTime time.Time `json:"punchOutTime" validate:"required,gtfield=PunchInTime"`

	LunchInTime  *time.Time `json:"lunchInTime"`
	LunchOutTime *time.Time `json:"lunchOutTime" validate:"omitempty,gtfield=LunchInTime"`

	BreakStartTime *time.Time `json:"breakStartTime"`
	BreakEndTime   *time.Time `json:"breakEndTime" validate:"omitempty,gtfield=BreakStartTime"`

	Notes string `json:"notes"`
}

type ManualCaptureRequest struct {
	Notes string `json:"notes"`
}

type ProjectRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description"`
	Priority    ProjectPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	ManagerID   *int64          `json:"managerId"`
	StartDate   *time.Time      `json:"startDate"`
	Deadline    *time.Time      `json:"deadline"`
	ClientName  string          `json:"clientName"`
}

type TaskRequest struct {
	Title          string          `json:"title" validate:"required,min=2"`
	Description    string          `json:"description"`
	Priority       ProjectPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	ProjectID      *int64          `json:"projectId"`
	AssignedToID   *int64          `json:"assignedToId"`
	DueDate        *time.Time      `json:"dueDate"`
	EstimatedHours *float64        `json:"estimatedHours" validate:"omitempty,gt=0"`
	Tags           string          `json:"tags"`
}
