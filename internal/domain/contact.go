package domain

import (
	"context"
	"time"
)

// Contact 匿名提交的留言
type Contact struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:191;not null" json:"email"`
	Subject   *string   `gorm:"size:191" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Contact) TableName() string { return "contacts" }

type ContactRepository interface {
	List(ctx context.Context, unreadOnly bool) ([]Contact, error) // created_at desc
	FindByID(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, m *Contact) error
	Update(ctx context.Context, m *Contact) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, unreadOnly bool) (int64, error)
}
