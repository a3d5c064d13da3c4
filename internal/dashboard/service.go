// Package dashboard aggregates the stats shown on the client's landing view.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/sahildeshmukh45/tl/internal/model"
	"github.com/sahildeshmukh45/tl/internal/repos"
)

type Service struct {
	users    *repos.UsersRepo
	entries  *repos.TimeEntriesRepo
	projects *repos.ProjectsRepo
	tasks    *repos.TasksRepo
	shots    *repos.ScreenshotsRepo

	now func() time.Time
}

func New(users *repos.UsersRepo, entries *repos.TimeEntriesRepo, projects *repos.ProjectsRepo,
	tasks *repos.TasksRepo, shots *repos.ScreenshotsRepo) *Service {
	return &Service{
		users:    users,
		entries:  entries,
		projects: projects,
		tasks:    tasks,
		shots:    shots,
		now:      time.Now,
	}
}

type Stats struct {
	TotalUsers  int64 `json:"totalUsers"`
	ActiveUsers int64 `json:"activeUsers"`
	OnlineUsers int64 `json:"onlineUsers"`

	TotalHoursThisWeek float64 `json:"totalHoursThisWeek"`
	OvertimeHours      float64 `json:"overtimeHours"`

	TotalProjects          int64   `json:"totalProjects"`
	ActiveProjects         int64   `json:"activeProjects"`
	CompletedProjects      int64   `json:"completedProjects"`
	AverageProjectProgress float64 `json:"averageProjectProgress"`

	TotalTasks         int64   `json:"totalTasks"`
	CompletedTasks     int64   `json:"completedTasks"`
	InProgressTasks    int64   `json:"inProgressTasks"`
	OverdueTasks       int64   `json:"overdueTasks"`
	TaskCompletionRate float64 `json:"taskCompletionRate"`

	RecentActivities []Activity `json:"recentActivities"`
	Alerts           []string   `json:"alerts"`
}

// Activity is one row of the recent-activity feed.
type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserName    string    `json:"userName"`
	Timestamp   time.Time `json:"timestamp"`
}

// ChartPoint is one day of the productivity chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Stats collects the global dashboard numbers plus the caller's weekly hours.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	now := s.now()
	weekStart := now.AddDate(0, 0, -7)

	stats := &Stats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.users.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.OnlineUsers, err = s.users.CountOnline(ctx); err != nil {
		return nil, err
	}

	if stats.TotalHoursThisWeek, err = s.entries.SumWorkHours(ctx, userID, weekStart, now); err != nil {
		return nil, err
	}
	if stats.OvertimeHours, err = s.entries.SumOvertimeHours(ctx, userID, weekStart, now); err != nil {
		return nil, err
	}

	if stats.TotalProjects, err = s.projects.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveProjects, err = s.projects.CountByStatus(ctx, model.ProjectActive); err != nil {
		return nil, err
	}
	if stats.CompletedProjects, err = s.projects.CountByStatus(ctx, model.ProjectCompleted); err != nil {
		return nil, err
	}
	if stats.AverageProjectProgress, err = s.projects.AverageProgress(ctx); err != nil {
		return nil, err
	}

	if stats.TotalTasks, err = s.tasks.Count(ctx); err != nil {
		return nil, err
	}
	if stats.CompletedTasks, err = s.tasks.CountByStatus(ctx, model.TaskCompleted); err != nil {
		return nil, err
	}
	if stats.InProgressTasks, err = s.tasks.CountByStatus(ctx, model.TaskInProgress); err != nil {
		return nil, err
	}
	if stats.OverdueTasks, err = s.tasks.CountOverdue(ctx, now); err != nil {
		return nil, err
	}
	if stats.TotalTasks > 0 {
		stats.TaskCompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}

	if stats.RecentActivities, err = s.RecentActivities(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Alerts, err = s.alerts(ctx, userID, stats.OvertimeHours, now); err != nil {
		return nil, err
	}

	return stats, nil
}

// TeamStats aggregates weekly hours across all active users.
func (s *Service) TeamStats(ctx context.Context) (map[string]any, error) {
	now := s.now()
	weekStart := now.AddDate(0, 0, -7)

	active, err := s.users.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	online := 0
	total := 0.0
	byUser := make(map[string]float64, len(active))
	for i := range active {
		u := &active[i]
		if u.IsOnline {
			online++
		}
		hours, err := s.entries.SumWorkHours(ctx, u.ID, weekStart, now)
		if err != nil {
			return nil, err
		}
		byUser[u.FullName()] = hours
		total += hours
	}

	avg := 0.0
	if len(active) > 0 {
		avg = total / float64(len(active))
	}
	return map[string]any{
		"totalTeamMembers":   len(active),
		"onlineTeamMembers":  online,
		"productivityByUser": byUser,
		"teamTotalHours":     total,
		"teamAverageHours":   avg,
	}, nil
}

// ProjectStats breaks the project portfolio down by status.
func (s *Service) ProjectStats(ctx context.Context) (map[string]any, error) {
	total, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.projects.CountByStatus(ctx, model.ProjectActive)
	if err != nil {
		return nil, err
	}
	completed, err := s.projects.CountByStatus(ctx, model.ProjectCompleted)
	if err != nil {
		return nil, err
	}
	onHold, err := s.projects.CountByStatus(ctx, model.ProjectOnHold)
	if err != nil {
		return nil, err
	}
	avgProgress, err := s.projects.AverageProgress(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"totalProjects":          total,
		"activeProjects":         active,
		"completedProjects":      completed,
		"onHoldProjects":         onHold,
		"averageProjectProgress": avgProgress,
	}, nil
}

// RecentActivities lists the user's time entries of the last 7 days as feed
// rows, most recent first, capped at 10.
func (s *Service) RecentActivities(ctx context.Context, userID int64) ([]Activity, error) {
	now := s.now()
	weekStart := now.AddDate(0, 0, -7)

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.FindByUserInRange(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(entries))
	for _, entry := range entries {
		activities = append(activities, Activity{
			Type:        "TIME_ENTRY",
			Description: fmt.Sprintf("Logged %.2f hours", entry.TotalWorkHours),
			UserName:    u.FullName(),
			Timestamp:   entry.PunchInTime,
		})
		if len(activities) == 10 {
			break
		}
	}
	return activities, nil
}

// ProductivityChart returns one data point per day over the period, which is
// "week" (default) or "month".
func (s *Service) ProductivityChart(ctx context.Context, userID int64, period string) (map[string]any, error) {
	days := 7
	if period == "month" {
		days = 30
	} else {
		period = "week"
	}

	now := s.now()
	points := make([]ChartPoint, 0, days+1)
	for offset := -days; offset <= 0; offset++ {
		day := now.AddDate(0, 0, offset)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Second)

		hours, err := s.entries.SumWorkHours(ctx, userID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		label := dayStart.Format("2006-01-02")
		points = append(points, ChartPoint{Label: label, Date: label, Value: hours})
	}

	return map[string]any{
		"dataPoints": points,
		"period":     period,
	}, nil
}

// OnlineUserCount returns how many users are currently flagged online.
func (s *Service) OnlineUserCount(ctx context.Context) (int64, error) {
	return s.users.CountOnline(ctx)
}

// alerts collects the caller's warning strip: heavy overtime and overdue
// tasks.
func (s *Service) alerts(ctx context.Context, userID int64, overtime float64, now time.Time) ([]string, error) {
	alerts := make([]string, 0, 2)
	if overtime > 5.0 {
		alerts = append(alerts, fmt.Sprintf("You have worked %.2f hours of overtime this week", overtime))
	}

	overdue, err := s.tasks.CountOverdueByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if overdue > 0 {
		alerts = append(alerts, fmt.Sprintf("You have %d overdue tasks", overdue))
	}
	return alerts, nil
}

// UserStats collects the per-user numbers for the personal dashboard pane.
func (s *Service) UserStats(ctx context.Context, userID int64) (map[string]any, error) {
	now := s.now()
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, 0, -30)

	weeklyHours, err := s.entries.SumWorkHours(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}
	monthlyHours, err := s.entries.SumWorkHours(ctx, userID, monthStart, now)
	if err != nil {
		return nil, err
	}
	overtime, err := s.entries.SumOvertimeHours(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}
	avgHours, err := s.entries.AverageWorkHours(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}
	activeTasks, err := s.tasks.CountByUserAndStatus(ctx, userID, model.TaskInProgress)
	if err != nil {
		return nil, err
	}
	completedThisWeek, err := s.tasks.CountCompletedByUserInRange(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}
	screenshots, err := s.shots.CountByUserInRange(ctx, userID, weekStart, now)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"weeklyHours":            weeklyHours,
		"monthlyHours":           monthlyHours,
		"overtimeHours":          overtime,
		"averageHoursPerDay":     avgHours,
		"activeTasks":            activeTasks,
		"completedTasksThisWeek": completedThisWeek,
		"screenshotsThisWeek":    screenshots,
	}, nil
}
