package domain

import (
	"context"
	"time"
)

type Project struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Title        string     `gorm:"size:191;not null" json:"title"`
	Slug         string     `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Technologies StringList `gorm:"type:text" json:"technologies"`
	Image        *string    `gorm:"size:512" json:"image"`
	LiveLink     *string    `gorm:"size:512" json:"liveLink"`
	RepoLink     *string    `gorm:"size:512" json:"repoLink"`
	Challenges   *string    `gorm:"type:text" json:"challenges"`
	Improvements *string    `gorm:"type:text" json:"improvements"`
	Featured     bool       `gorm:"not null;default:false" json:"featured"`
	Order        int        `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

type ProjectRepository interface {
	List(ctx context.Context, featuredOnly bool) ([]Project, error) // featured desc, order asc, created_at desc
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
