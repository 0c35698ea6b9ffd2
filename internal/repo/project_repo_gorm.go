package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio-backend/internal/domain"
)

type ProjectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) List(ctx context.Context, featuredOnly bool) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Model(&domain.Project{})
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	var projects []domain.Project
	err := q.Order("featured desc").Order("sort_order asc").Order("created_at desc").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&n).Error
	return n, err
}
