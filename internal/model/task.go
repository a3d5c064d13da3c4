package model

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskBlocked    TaskStatus = "BLOCKED"
)

type Task struct {
	ID int64 `gorm:"primaryKey;column:id" json:"id"`

	Title       string          `gorm:"column:title;not null" json:"title"`
	Description string          `gorm:"column:description" json:"description"`
	Priority    ProjectPriority `gorm:"column:priority;default:MEDIUM" json:"priority"`
	Status      TaskStatus      `gorm:"column:status;default:TODO" json:"status"`

	ProjectID    *int64 `gorm:"column:project_id;index" json:"projectId,omitempty"`
	AssignedToID *int64 `gorm:"column:assigned_to_id;index" json:"assignedToId,omitempty"`
	CreatedByID  *int64 `gorm:"column:created_by_id" json:"createdById,omitempty"`

	DueDate        *time.Time `gorm:"column:due_date" json:"dueDate,omitempty"`
	EstimatedHours *float64   `gorm:"column:estimated_hours" json:"estimatedHours,omitempty"`
	ActualHours    float64    `gorm:"column:actual_hours;default:0" json:"actualHours"`

	ProgressPercentage int    `gorm:"column:progress_percentage;default:0" json:"progressPercentage"`
	Tags               string `gorm:"column:tags" json:"tags"`

	StartedAt   *time.Time `gorm:"column:started_at" json:"startedAt,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }
