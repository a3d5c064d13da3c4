package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/sahildeshmukh45/tl/internal/model"
)

type ProjectsRepo struct {
	db *gorm.DB
}

func NewProjectsRepo(db *gorm.DB) *ProjectsRepo {
	return &ProjectsRepo{db: db}
}

func (r *ProjectsRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectsRepo) Save(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectsRepo) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectsRepo) FindAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Where("is_archived = ?", false).Order("id").Find(&projects).Error
	return projects, err
}

func (r *ProjectsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error
	return count, err
}

func (r *ProjectsRepo) CountByStatus(ctx context.Context, status model.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ProjectsRepo) AverageProgress(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("COALESCE(AVG(progress_percentage), 0)").
		Scan(&avg).Error
	return avg, err
}
