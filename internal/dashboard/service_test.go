package dashboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/db"
	"github.com/sahildeshmukh45/tl/internal/model"
	"github.com/sahildeshmukh45/tl/internal/repos"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	svc := New(
		repos.NewUsersRepo(gdb),
		repos.NewTimeEntriesRepo(gdb),
		repos.NewProjectsRepo(gdb),
		repos.NewTasksRepo(gdb),
		repos.NewScreenshotsRepo(gdb),
	)
	return svc, gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string, online bool) *model.User {
	t.Helper()
	u := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		FirstName: "Team",
		LastName:  username,
		IsActive:  true,
		IsOnline:  online,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedEntry(t *testing.T, gdb *gorm.DB, userID int64, punchIn time.Time, workHours, overtime float64) {
	t.Helper()
	out := punchIn.Add(time.Duration(workHours * float64(time.Hour)))
	require.NoError(t, gdb.Create(&model.TimeEntry{
		UserID:         userID,
		PunchInTime:    punchIn,
		PunchOutTime:   &out,
		TotalWorkHours: workHours,
		OvertimeHours:  overtime,
	}).Error)
}

func TestTeamStats(t *testing.T) {
	svc, gdb := newService(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	alice := seedUser(t, gdb, "alice", true)
	bob := seedUser(t, gdb, "bob", false)
	// Deactivated accounts stay out of team stats.
	inactive := seedUser(t, gdb, "carol", false)
	require.NoError(t, gdb.Model(inactive).Update("is_active", false).Error)

	seedEntry(t, gdb, alice.ID, now.AddDate(0, 0, -1), 8, 0)
	seedEntry(t, gdb, alice.ID, now.AddDate(0, 0, -2), 4, 0)
	seedEntry(t, gdb, bob.ID, now.AddDate(0, 0, -3), 6, 0)
	// Outside the trailing week.
	seedEntry(t, gdb, bob.ID, now.AddDate(0, 0, -20), 9, 1)

	stats, err := svc.TeamStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats["totalTeamMembers"])
	assert.Equal(t, 1, stats["onlineTeamMembers"])
	assert.InDelta(t, 18.0, stats["teamTotalHours"], 1e-9)
	assert.InDelta(t, 9.0, stats["teamAverageHours"], 1e-9)

	byUser := stats["productivityByUser"].(map[string]float64)
	assert.InDelta(t, 12.0, byUser[alice.FullName()], 1e-9)
	assert.InDelta(t, 6.0, byUser[bob.FullName()], 1e-9)
}

func TestProjectStats(t *testing.T) {
	svc, gdb := newService(t)

	for _, p := range []*model.Project{
		{Name: "Apollo", Status: model.ProjectActive, ProgressPercentage: 50},
		{Name: "Hermes", Status: model.ProjectActive, ProgressPercentage: 30},
		{Name: "Atlas", Status: model.ProjectCompleted, ProgressPercentage: 100},
		{Name: "Icarus", Status: model.ProjectOnHold, ProgressPercentage: 20},
	} {
		require.NoError(t, gdb.Create(p).Error)
	}

	stats, err := svc.ProjectStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats["totalProjects"])
	assert.Equal(t, int64(2), stats["activeProjects"])
	assert.Equal(t, int64(1), stats["completedProjects"])
	assert.Equal(t, int64(1), stats["onHoldProjects"])
	assert.InDelta(t, 50.0, stats["averageProjectProgress"], 1e-9)
}

func TestRecentActivities(t *testing.T) {
	svc, gdb := newService(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := seedUser(t, gdb, "alice", true)
	for day := 1; day <= 12; day++ {
		seedEntry(t, gdb, u.ID, now.Add(-time.Duration(day)*6*time.Hour), 6, 0)
	}

	activities, err := svc.RecentActivities(ctx, u.ID)
	require.NoError(t, err)

	assert.Len(t, activities, 10, "feed is capped at 10 rows")
	assert.Equal(t, "TIME_ENTRY", activities[0].Type)
	assert.Equal(t, u.FullName(), activities[0].UserName)
	assert.Contains(t, activities[0].Description, "6.00 hours")
	// Most recent first.
	assert.True(t, activities[0].Timestamp.After(activities[1].Timestamp))
}

func TestProductivityChart(t *testing.T) {
	svc, gdb := newService(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := seedUser(t, gdb, "alice", true)
	seedEntry(t, gdb, u.ID, time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC), 7.5, 0)

	chart, err := svc.ProductivityChart(ctx, u.ID, "week")
	require.NoError(t, err)
	assert.Equal(t, "week", chart["period"])

	points := chart["dataPoints"].([]ChartPoint)
	require.Len(t, points, 8, "7 trailing days plus today")
	assert.Equal(t, "2025-03-03", points[0].Date)
	assert.Equal(t, "2025-03-10", points[7].Date)

	byDate := make(map[string]float64, len(points))
	for _, p := range points {
		byDate[p.Date] = p.Value
	}
	assert.InDelta(t, 7.5, byDate["2025-03-08"], 1e-9)
	assert.Zero(t, byDate["2025-03-05"])

	chart, err = svc.ProductivityChart(ctx, u.ID, "month")
	require.NoError(t, err)
	assert.Equal(t, "month", chart["period"])
	assert.Len(t, chart["dataPoints"].([]ChartPoint), 31)

	// Unknown periods fall back to the weekly view.
	chart, err = svc.ProductivityChart(ctx, u.ID, "decade")
	require.NoError(t, err)
	assert.Equal(t, "week", chart["period"])
}

func TestStats_Alerts(t *testing.T) {
	svc, gdb := newService(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := seedUser(t, gdb, "alice", true)

	stats, err := svc.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, stats.Alerts)

	seedEntry(t, gdb, u.ID, now.AddDate(0, 0, -1), 14, 6)
	due := now.AddDate(0, 0, -2)
	require.NoError(t, gdb.Create(&model.Task{
		Title:        "Overdue report",
		Status:       model.TaskInProgress,
		AssignedToID: &u.ID,
		DueDate:      &due,
	}).Error)

	stats, err = svc.Stats(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stats.Alerts, 2)
	assert.Contains(t, stats.Alerts[0], "overtime")
	assert.Contains(t, stats.Alerts[1], "overdue")
	assert.Len(t, stats.RecentActivities, 1)
}

func TestOnlineUserCount(t *testing.T) {
	svc, gdb := newService(t)

	seedUser(t, gdb, "alice", true)
	seedUser(t, gdb, "bob", false)
	seedUser(t, gdb, "carol", true)

	count, err := svc.OnlineUserCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
