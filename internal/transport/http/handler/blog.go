package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/transport/http/middleware"
	"portfolio-backend/internal/transport/http/response"
	"portfolio-backend/pkg/utils"
)

// wordsPerMinute 阅读时长估算基准
const wordsPerMinute = 200

type BlogHandler struct {
	blog domain.BlogRepository
}

func NewBlogHandler(blog domain.BlogRepository) *BlogHandler {
	return &BlogHandler{blog: blog}
}

func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	rt := (words + wordsPerMinute - 1) / wordsPerMinute
	if rt < 1 {
		rt = 1
	}
	return rt
}

// canSeeUnpublished 草稿只有管理员可见
func canSeeUnpublished(p *auth.Principal) bool {
	return p != nil && p.IsAdmin()
}

// List GET /api/blog?tag=&limit=（公开，只出已发布）
func (h *BlogHandler) List(c *gin.Context) {
	f := domain.PostFilter{PublishedOnly: true, Tag: c.Query("tag")}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Fail(c, apperror.Validation(apperror.FieldViolation{Field: "limit", Message: "must be a positive integer"}))
			return
		}
		f.Limit = n
	}
	posts, err := h.blog.ListPosts(c.Request.Context(), f)
	if err != nil {
		response.Fail(c, apperror.Internal("list posts failed", err))
		return
	}
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ListAdmin GET /api/blog/admin（admin，草稿一并返回）
func (h *BlogHandler) ListAdmin(c *gin.Context) {
	posts, err := h.blog.ListPosts(c.Request.Context(), domain.PostFilter{})
	if err != nil {
		response.Fail(c, apperror.Internal("list posts failed", err))
		return
	}
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type commentUserOut struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoUrl"`
}

type commentOut struct {
	ID        string         `json:"id"`
	PostID    string         `json:"postId"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	User      commentUserOut `json:"user"`
}

func projectComment(cm *domain.Comment) commentOut {
	out := commentOut{
		ID:        cm.ID,
		PostID:    cm.PostID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
	}
	if cm.User != nil {
		out.User = commentUserOut{ID: cm.User.ID, Name: cm.User.Name, PhotoURL: cm.User.PhotoURL}
	} else {
		out.User.ID = cm.UserID
	}
	return out
}

// Get GET /api/blog/:slug（OptionalAuth；草稿对非管理员表现为 404）
func (h *BlogHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.blog.FindPostBySlug(ctx, c.Param("slug"))
	if err != nil {
		response.Fail(c, apperror.Internal("load post failed", err))
		return
	}
	p := middleware.Principal(c)
	if post == nil || (!post.Published && !canSeeUnpublished(p)) {
		response.Fail(c, apperror.NotFound("post not found"))
		return
	}
	comments, err := h.blog.ListComments(ctx, post.ID)
	if err != nil {
		response.Fail(c, apperror.Internal("load comments failed", err))
		return
	}
	outComments := make([]commentOut, 0, len(comments))
	for i := range comments {
		outComments = append(outComments, projectComment(&comments[i]))
	}
	userLiked := false
	if p != nil {
		like, err := h.blog.FindLike(ctx, p.UserID, post.ID)
		if err != nil {
			response.Fail(c, apperror.Internal("load like failed", err))
			return
		}
		userLiked = like != nil
	}
	c.JSON(http.StatusOK, gin.H{
		"post":      post,
		"comments":  outComments,
		"userLiked": userLiked,
	})
}

type postCreateIn struct {
	Title      string   `json:"title" binding:"required"`
	Slug       string   `json:"slug" binding:"required"`
	Excerpt    *string  `json:"excerpt"`
	Content    string   `json:"content" binding:"required"`
	CoverImage *string  `json:"coverImage" binding:"omitempty,url"`
	Published  *bool    `json:"published"`
	Tags       []string `json:"tags"`
	ReadTime   *int     `json:"readTime" binding:"omitempty,min=1"`
}

// Create POST /api/blog（admin）
func (h *BlogHandler) Create(c *gin.Context) {
	var in postCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	p := middleware.Principal(c)
	post := &domain.BlogPost{
		ID:         utils.NewID(),
		Title:      in.Title,
		Slug:       in.Slug,
		Excerpt:    optString(in.Excerpt),
		Content:    in.Content,
		CoverImage: optString(in.CoverImage),
		Tags:       in.Tags,
		ReadTime:   estimateReadTime(in.Content),
		AuthorID:   p.UserID,
	}
	if in.ReadTime != nil {
		post.ReadTime = *in.ReadTime
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if err := h.blog.CreatePost(c.Request.Context(), post); err != nil {
		if domain.IsDupKey(err) {
			response.Fail(c, apperror.Conflict("slug already in use"))
			return
		}
		response.Fail(c, apperror.Internal("create post failed", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

type postUpdateIn struct {
	Title      *string  `json:"title" binding:"omitempty,min=1"`
	Slug       *string  `json:"slug" binding:"omitempty,min=1"`
	Excerpt    *string  `json:"excerpt"`
	Content    *string  `json:"content" binding:"omitempty,min=1"`
	CoverImage *string  `json:"coverImage" binding:"omitempty,url"`
	Published  *bool    `json:"published"`
	Tags       []string `json:"tags"`
	ReadTime   *int     `json:"readTime" binding:"omitempty,min=1"`
}

// Update PUT /api/blog/:id（admin；正文变更且未显式给值时重算 readTime）
func (h *BlogHandler) Update(c *gin.Context) {
	post, err := h.blog.FindPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load post failed", err))
		return
	}
	if post == nil {
		response.Fail(c, apperror.NotFound("post not found"))
		return
	}
	var in postUpdateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Slug != nil {
		post.Slug = *in.Slug
	}
	if in.Excerpt != nil {
		post.Excerpt = optString(in.Excerpt)
	}
	if in.Content != nil {
		post.Content = *in.Content
		if in.ReadTime == nil {
			post.ReadTime = estimateReadTime(*in.Content)
		}
	}
	if in.ReadTime != nil {
		post.ReadTime = *in.ReadTime
	}
	if in.CoverImage != nil {
		post.CoverImage = optString(in.CoverImage)
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if err := h.blog.UpdatePost(c.Request.Context(), post); err != nil {
		if domain.IsDupKey(err) {
			response.Fail(c, apperror.Conflict("slug already in use"))
			return
		}
		response.Fail(c, apperror.Internal("update post failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Delete DELETE /api/blog/:id（admin；评论点赞随外键级联）
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blog.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		if err == domain.ErrNotFound {
			response.Fail(c, apperror.NotFound("post not found"))
			return
		}
		response.Fail(c, apperror.Internal("delete post failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

// ToggleLike POST /api/blog/:id/like（登录用户；再点一次取消）
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	ctx := c.Request.Context()
	p := middleware.Principal(c)
	post, err := h.blog.FindPostByID(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load post failed", err))
		return
	}
	if post == nil || (!post.Published && !canSeeUnpublished(p)) {
		response.Fail(c, apperror.NotFound("post not found"))
		return
	}
	existing, err := h.blog.FindLike(ctx, p.UserID, post.ID)
	if err != nil {
		response.Fail(c, apperror.Internal("load like failed", err))
		return
	}
	liked := false
	if existing != nil {
		if err := h.blog.DeleteLike(ctx, p.UserID, post.ID); err != nil && err != domain.ErrNotFound {
			response.Fail(c, apperror.Internal("unlike failed", err))
			return
		}
	} else {
		l := &domain.Like{ID: utils.NewID(), UserID: p.UserID, PostID: post.ID}
		switch err := h.blog.CreateLike(ctx, l); {
		case err == nil:
			liked = true
		case domain.IsDupKey(err):
			// 并发双击：另一请求已点上，这一次按取消处理
			if derr := h.blog.DeleteLike(ctx, p.UserID, post.ID); derr != nil && derr != domain.ErrNotFound {
				response.Fail(c, apperror.Internal("unlike failed", derr))
				return
			}
		default:
			response.Fail(c, apperror.Internal("like failed", err))
			return
		}
	}
	fresh, err := h.blog.FindPostByID(ctx, post.ID)
	if err != nil || fresh == nil {
		response.Fail(c, apperror.Internal("load post failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": fresh.LikeCount})
}

type commentCreateIn struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CreateComment POST /api/blog/:id/comments（登录用户）
func (h *BlogHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	p := middleware.Principal(c)
	post, err := h.blog.FindPostByID(ctx, c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Internal("load post failed", err))
		return
	}
	if post == nil || (!post.Published && !canSeeUnpublished(p)) {
		response.Fail(c, apperror.NotFound("post not found"))
		return
	}
	var in commentCreateIn
	if err := response.BindJSON(c, &in); err != nil {
		response.Fail(c, err)
		return
	}
	cm := &domain.Comment{
		ID:      utils.NewID(),
		PostID:  post.ID,
		UserID:  p.UserID,
		Content: strings.TrimSpace(in.Content),
	}
	if cm.Content == "" {
		response.Fail(c, apperror.Validation(apperror.FieldViolation{Field: "content", Message: "must not be blank"}))
		return
	}
	if err := h.blog.CreateComment(ctx, cm); err != nil {
		response.Fail(c, apperror.Internal("create comment failed", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": projectComment(cm)})
}

// DeleteComment DELETE /api/blog/:id/comments/:commentId（作者本人或管理员）
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	cm, err := h.blog.FindCommentByID(ctx, c.Param("commentId"))
	if err != nil {
		response.Fail(c, apperror.Internal("load comment failed", err))
		return
	}
	if cm == nil || cm.PostID != c.Param("id") {
		response.Fail(c, apperror.NotFound("comment not found"))
		return
	}
	p := middleware.Principal(c)
	if cm.UserID != p.UserID && !p.IsAdmin() {
		response.Fail(c, apperror.Forbidden("cannot delete another user's comment"))
		return
	}
	if err := h.blog.DeleteComment(ctx, cm.ID); err != nil && err != domain.ErrNotFound {
		response.Fail(c, apperror.Internal("delete comment failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
