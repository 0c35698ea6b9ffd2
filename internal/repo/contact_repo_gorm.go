package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio-backend/internal/domain"
)

type ContactRepo struct{ db *gorm.DB }

func NewContactRepo(db *gorm.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) List(ctx context.Context, unreadOnly bool) ([]domain.Contact, error) {
	q := r.db.WithContext(ctx).Model(&domain.Contact{})
	if unreadOnly {
		q = q.Where(map[string]interface{}{"read": false}) // read 在 MySQL 是保留字，走 map 让方言自行加引号
	}
	var items []domain.Contact
	err := q.Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	var m domain.Contact
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContactRepo) Create(ctx context.Context, m *domain.Contact) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ContactRepo) Update(ctx context.Context, m *domain.Contact) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Contact{})
	if unreadOnly {
		q = q.Where(map[string]interface{}{"read": false}) // read 在 MySQL 是保留字，走 map 让方言自行加引号
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
