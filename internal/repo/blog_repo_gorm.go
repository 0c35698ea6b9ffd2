package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio-backend/internal/domain"
)

type BlogRepo struct{ db *gorm.DB }

func NewBlogRepo(db *gorm.DB) *BlogRepo { return &BlogRepo{db: db} }

func (r *BlogRepo) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.BlogPost, error) {
	q := r.db.WithContext(ctx).Model(&domain.BlogPost{})
	if f.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if f.Tag != "" {
		// tags 是 JSON 文本，包含判断走 LIKE，命中后在内存里精确过滤
		q = q.Where("tags LIKE ?", "%"+f.Tag+"%")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var posts []domain.BlogPost
	if err := q.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	if f.Tag != "" {
		exact := posts[:0]
		for _, p := range posts {
			if p.Tags.Contains(f.Tag) {
				exact = append(exact, p)
			}
		}
		posts = exact
	}
	if err := r.fillCounts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *BlogRepo) FindPostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	one := []domain.BlogPost{p}
	if err := r.fillCounts(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *BlogRepo) FindPostByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	one := []domain.BlogPost{p}
	if err := r.fillCounts(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *BlogRepo) CreatePost(ctx context.Context, p *domain.BlogPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BlogRepo) UpdatePost(ctx context.Context, p *domain.BlogPost) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *BlogRepo) DeletePost(ctx context.Context, id string) error {
	// 评论与点赞由外键级联删除
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.BlogPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BlogRepo) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BlogPost{}).Count(&n).Error
	return n, err
}

func (r *BlogRepo) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *BlogRepo) CreateComment(ctx context.Context, c *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	// 回读作者投影
	return r.db.WithContext(ctx).Preload("User").First(c, "id = ?", c.ID).Error
}

func (r *BlogRepo) FindCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BlogRepo) DeleteComment(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BlogRepo) FindLike(ctx context.Context, userID, postID string) (*domain.Like, error) {
	var l domain.Like
	err := r.db.WithContext(ctx).First(&l, "user_id = ? AND post_id = ?", userID, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *BlogRepo) CreateLike(ctx context.Context, l *domain.Like) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *BlogRepo) DeleteLike(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Like{}).Error
}

type countRow struct {
	PostID string
	N      int64
}

func (r *BlogRepo) fillCounts(ctx context.Context, posts []domain.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	idx := make(map[string]int, len(posts))
	for i, p := range posts {
		ids = append(ids, p.ID)
		idx[p.ID] = i
	}

	var likeRows []countRow
	if err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Select("post_id, count(*) as n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&likeRows).Error; err != nil {
		return err
	}
	for _, row := range likeRows {
		posts[idx[row.PostID]].LikeCount = row.N
	}

	var commentRows []countRow
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Select("post_id, count(*) as n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return err
	}
	for _, row := range commentRows {
		posts[idx[row.PostID]].CommentCount = row.N
	}
	return nil
}
