package domain

import (
	"context"
	"time"
)

// SocialPlatforms 档案社交链接允许的平台 key
var SocialPlatforms = map[string]struct{}{
	"github":   {},
	"linkedin": {},
	"twitter":  {},
	"facebook": {},
	"youtube":  {},
}

// Profile 站点主人档案，全库至多一行
type Profile struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Email       string    `gorm:"size:191;not null" json:"email"`
	Designation string    `gorm:"size:128;not null" json:"designation"`
	Bio         string    `gorm:"type:text;not null" json:"bio"`
	Phone       *string   `gorm:"size:32" json:"phone"`
	ResumeURL   *string   `gorm:"size:512" json:"resumeUrl"`
	PhotoURL    *string   `gorm:"size:512" json:"photoUrl"`
	SocialLinks StringMap `gorm:"type:text" json:"socialLinks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

type ProfileRepository interface {
	First(ctx context.Context) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
}
