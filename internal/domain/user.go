package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SubjectID *string        `gorm:"uniqueIndex;size:128" json:"-"` // 身份提供方 subject id，种子账户可为空
	Email     string         `gorm:"uniqueIndex;size:191" json:"email"`
	Name      *string        `gorm:"size:64" json:"name"`
	PhotoURL  *string        `gorm:"size:512" json:"photoUrl"`
	Role      string         `gorm:"size:16;not null;default:USER" json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// 查找方法约定：未命中返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindBySubject(ctx context.Context, subjectID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}
