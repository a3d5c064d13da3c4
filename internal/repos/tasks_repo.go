package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/model"
)

type TasksRepo struct {
	db *gorm.DB
}

func NewTasksRepo(db *gorm.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

func (r *TasksRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TasksRepo) Save(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TasksRepo) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TasksRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *TasksRepo) FindByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *TasksRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&count).Error
	return count, err
}

func (r *TasksRepo) CountByStatus(ctx context.Context, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *TasksRepo) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("due_date < ? AND status <> ?", now, model.TaskCompleted).
		Count(&count).Error
	return count, err
}

func (r *TasksRepo) CountOverdueByUser(ctx context.Context, userID int64, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to_id = ? AND due_date < ? AND status <> ?", userID, now, model.TaskCompleted).
		Count(&count).Error
	return count, err
}

func (r *TasksRepo) CountByUserAndStatus(ctx context.Context, userID int64, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (r *TasksRepo) CountCompletedByUserInRange(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to_id = ? AND status = ? AND completed_at >= ? AND completed_at <= ?",
			userID, model.TaskCompleted, start, end).
		Count(&count).Error
	return count, err
}
