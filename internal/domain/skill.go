package domain

import (
	"context"
	"time"
)

type Skill struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	Category    string    `gorm:"size:64;not null" json:"category"`
	Proficiency int       `gorm:"not null" json:"proficiency"` // 0-100
	Icon        *string   `gorm:"size:128" json:"icon"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Skill) TableName() string { return "skills" }

type SkillRepository interface {
	List(ctx context.Context) ([]Skill, error) // category asc, order asc
	FindByID(ctx context.Context, id string) (*Skill, error)
	Create(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
