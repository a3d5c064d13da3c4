package model

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "LOW"
	PriorityMedium ProjectPriority = "MEDIUM"
	PriorityHigh   ProjectPriority = "HIGH"
)

type Project struct {
	ID int64 `gorm:"primaryKey;column:id" json:"id"`

	Name        string          `gorm:"column:name;not null" json:"name"`
	Description string          `gorm:"column:description" json:"description"`
	Priority    ProjectPriority `gorm:"column:priority;default:MEDIUM" json:"priority"`
	Status      ProjectStatus   `gorm:"column:status;default:ACTIVE" json:"status"`

	ManagerID *int64 `gorm:"column:manager_id;index" json:"managerId,omitempty"`

	StartDate *time.Time `gorm:"column:start_date" json:"startDate,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date" json:"endDate,omitempty"`
	Deadline  *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`

	ProgressPercentage int    `gorm:"column:progress_percentage;default:0" json:"progressPercentage"`
	ClientName         string `gorm:"column:client_name" json:"clientName"`
	IsArchived         bool   `gorm:"column:is_archived;default:false" json:"isArchived"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }
