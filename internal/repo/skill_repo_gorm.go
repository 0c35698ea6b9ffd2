package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio-backend/internal/domain"
)

type SkillRepo struct{ db *gorm.DB }

func NewSkillRepo(db *gorm.DB) *SkillRepo { return &SkillRepo{db: db} }

func (r *SkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).
		Order("category asc").Order("sort_order asc").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id string) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepo) Create(ctx context.Context, s *domain.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SkillRepo) Update(ctx context.Context, s *domain.Skill) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SkillRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Skill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SkillRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Skill{}).Count(&n).Error
	return n, err
}
