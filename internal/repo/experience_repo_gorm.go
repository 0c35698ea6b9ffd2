package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio-backend/internal/domain"
)

type ExperienceRepo struct{ db *gorm.DB }

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo { return &ExperienceRepo{db: db} }

func (r *ExperienceRepo) List(ctx context.Context) ([]domain.Experience, error) {
	var items []domain.Experience
	err := r.db.WithContext(ctx).
		Order("current desc").Order("start_date desc").
		Find(&items).Error
	return items, err
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id string) (*domain.Experience, error) {
	var e domain.Experience
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExperienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExperienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ExperienceRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Experience{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
