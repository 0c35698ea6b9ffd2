package domain

import (
	"context"
	"time"
)

type Experience struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Company     string     `gorm:"size:128;not null" json:"company"`
	Role        string     `gorm:"size:128;not null" json:"role"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     *time.Time `json:"endDate"` // 空表示在职
	Description string     `gorm:"type:text;not null" json:"description"`
	Current     bool       `gorm:"not null;default:false" json:"current"`
	Order       int        `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Experience) TableName() string { return "experiences" }

type ExperienceRepository interface {
	List(ctx context.Context) ([]Experience, error) // current desc, start_date desc
	FindByID(ctx context.Context, id string) (*Experience, error)
	Create(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id string) error
}
