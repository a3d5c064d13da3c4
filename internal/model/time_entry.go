package model

import (
	"math"
	"time"
)

// StandardWorkDayHours is the regular working day used for overtime accounting.
const StandardWorkDayHours = 8.0

// TimeEntry is one punch-in/punch-out cycle for a user. Derived hour fields
// are recomputed by CalculateHours and never mutated independently.
type TimeEntry struct {
	ID int64 `gorm:"primaryKey;column:id" json:"id"`

	UserID    int64  `gorm:"column:user_id;index;not null" json:"userId"`
	ProjectID *int64 `gorm:"column:project_id;index" json:"projectId,omitempty"`
	TaskID    *int64 `gorm:"column:task_id;index" json:"taskId,omitempty"`

	PunchInTime  time.Time  `gorm:"column:punch_in_time;not null;index" json:"punchInTime"`
	PunchOutTime *time.Time `gorm:"column:punch_out_time" json:"punchOutTime,omitempty"`

	LunchInTime  *time.Time `gorm:"column:lunch_in_time" json:"lunchInTime,omitempty"`
	LunchOutTime *time.Time `gorm:"column:lunch_out_time" json:"lunchOutTime,omitempty"`

	BreakStartTime *time.Time `gorm:"column:break_start_time" json:"breakStartTime,omitempty"`
	BreakEndTime   *time.Time `gorm:"column:break_end_time" json:"breakEndTime,omitempty"`

	TotalWorkHours  float64 `gorm:"column:total_work_hours;default:0" json:"totalWorkHours"`
	TotalBreakHours float64 `gorm:"column:total_break_hours;default:0" json:"totalBreakHours"`
	TotalLunchHours float64 `gorm:"column:total_lunch_hours;default:0" json:"totalLunchHours"`
	OvertimeHours   float64 `gorm:"column:overtime_hours;default:0" json:"overtimeHours"`

	IsActive      bool   `gorm:"column:is_active;index" json:"isActive"`
	IsManualEntry bool   `gorm:"column:is_manual_entry;default:false" json:"isManualEntry"`
	Notes         string `gorm:"column:notes" json:"notes"`

	IsApproved bool       `gorm:"column:is_approved;default:false" json:"isApproved"`
	ApprovedBy *int64     `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approvedAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (TimeEntry) TableName() string { return "time_entries" }

// CalculateHours recomputes the derived hour fields from the interval
// timestamps. Durations are truncated to whole minutes before converting to
// fractional hours; an interval contributes nothing until both ends are set.
func (te *TimeEntry) CalculateHours() {
	te.TotalWorkHours = 0
	if te.PunchOutTime != nil {
		te.TotalWorkHours = wholeMinuteHours(te.PunchInTime, *te.PunchOutTime)
	}

	te.TotalBreakHours = 0
	if te.BreakStartTime != nil && te.BreakEndTime != nil {
		te.TotalBreakHours = wholeMinuteHours(*te.BreakStartTime, *te.BreakEndTime)
	}

	te.TotalLunchHours = 0
	if te.LunchInTime != nil && te.LunchOutTime != nil {
		te.TotalLunchHours = wholeMinuteHours(*te.LunchInTime, *te.LunchOutTime)
	}

	net := te.TotalWorkHours - te.TotalBreakHours - te.TotalLunchHours
	te.OvertimeHours = math.Max(0, net-StandardWorkDayHours)
}

// IsOnLunch reports whether the lunch interval is currently open.
func (te *TimeEntry) IsOnLunch() bool {
	return te.IsActive && te.LunchInTime != nil && te.LunchOutTime == nil
}

// IsOnBreak reports whether the break interval is currently open.
func (te *TimeEntry) IsOnBreak() bool {
	return te.IsActive && te.BreakStartTime != nil && te.BreakEndTime == nil
}

func wholeMinuteHours(start, end time.Time) float64 {
	return float64(int64(end.Sub(start)/time.Minute)) / 60.0
}
