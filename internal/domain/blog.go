package domain

import (
	"context"
	"time"
)

type BlogPost struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Title      string     `gorm:"size:191;not null" json:"title"`
	Slug       string     `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Excerpt    *string    `gorm:"type:text" json:"excerpt"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CoverImage *string    `gorm:"size:512" json:"coverImage"`
	Published  bool       `gorm:"not null;default:false" json:"published"`
	Tags       StringList `gorm:"type:text" json:"tags"`
	ReadTime   int        `gorm:"not null;default:1" json:"readTime"` // 分钟
	AuthorID   string     `gorm:"size:36;not null;index" json:"authorId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// 删除帖子由外键级联清掉评论与点赞
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	LikeCount    int64 `gorm:"-" json:"likeCount"`
	CommentCount int64 `gorm:"-" json:"commentCount"`
}

func (BlogPost) TableName() string { return "blog_posts" }

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"size:36;not null;index" json:"postId"`
	UserID    string    `gorm:"size:36;not null" json:"userId"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Comment) TableName() string { return "comments" }

// Like 的身份就是 (user_id, post_id)，唯一索引是并发切换的兜底
type Like struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    string    `gorm:"size:36;not null;uniqueIndex:idx_like_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }

type PostFilter struct {
	PublishedOnly bool
	Tag           string
	Limit         int
}

type BlogRepository interface {
	ListPosts(ctx context.Context, f PostFilter) ([]BlogPost, error) // created_at desc，带点赞/评论计数
	FindPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	FindPostByID(ctx context.Context, id string) (*BlogPost, error)
	CreatePost(ctx context.Context, p *BlogPost) error
	UpdatePost(ctx context.Context, p *BlogPost) error
	DeletePost(ctx context.Context, id string) error
	CountPosts(ctx context.Context) (int64, error)

	ListComments(ctx context.Context, postID string) ([]Comment, error) // created_at desc，带作者
	CreateComment(ctx context.Context, c *Comment) error
	FindCommentByID(ctx context.Context, id string) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error

	FindLike(ctx context.Context, userID, postID string) (*Like, error)
	CreateLike(ctx context.Context, l *Like) error
	DeleteLike(ctx context.Context, userID, postID string) error
}
