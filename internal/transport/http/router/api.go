package router

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/core/config"
	"portfolio-backend/internal/transport/http/handler"
	"portfolio-backend/internal/transport/http/middleware"
)

type Deps struct {
	Cfg      *config.Config
	Log      *zap.Logger
	Resolver *auth.Resolver

	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Skill      *handler.SkillHandler
	Project    *handler.ProjectHandler
	Experience *handler.ExperienceHandler
	Blog       *handler.BlogHandler
	Contact    *handler.ContactHandler
	Stats      *handler.StatsHandler
}

// NewAPIEngine 组装中间件与全部路由
func NewAPIEngine(d Deps) *gin.Engine {
	if d.Cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Log))
	r.Use(ginzap.RecoveryWithZap(d.Log, true))
	r.Use(middleware.Metrics())
	r.Use(corsMiddleware(d.Cfg.CORS.AllowOrigins))
	r.Use(middleware.MaxBodyBytes(1 << 20))
	r.Use(middleware.Timeout(15 * time.Second))
	if d.Cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimitPerIP(rate.Limit(d.Cfg.RateLimit.RPS), d.Cfg.RateLimit.Burst))
	}
	r.Use(middleware.ConcurrencyLimit(512))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "portfolio API", "health": "/health"})
	})

	requireAuth := middleware.RequireAuth(d.Resolver)
	optionalAuth := middleware.OptionalAuth(d.Resolver)
	requireAdmin := middleware.RequireAdmin()

	au := api.Group("/auth")
	{
		au.POST("/sync", requireAuth, d.Auth.Sync)
		au.GET("/me", requireAuth, d.Auth.Me)
		au.PUT("/profile", requireAuth, d.Auth.UpdateProfile)
	}

	pr := api.Group("/profile")
	{
		pr.GET("", d.Profile.Get)
		pr.POST("", requireAuth, requireAdmin, d.Profile.Create)
		pr.PUT("", requireAuth, requireAdmin, d.Profile.Update)
	}

	sk := api.Group("/skills")
	{
		sk.GET("", d.Skill.List)
		sk.GET("/:id", d.Skill.Get)
		sk.POST("", requireAuth, requireAdmin, d.Skill.Create)
		sk.PUT("/:id", requireAuth, requireAdmin, d.Skill.Update)
		sk.DELETE("/:id", requireAuth, requireAdmin, d.Skill.Delete)
	}

	pj := api.Group("/projects")
	{
		pj.GET("", d.Project.List)
		pj.GET("/:slug", d.Project.Get)
		pj.POST("", requireAuth, requireAdmin, d.Project.Create)
		pj.PUT("/:id", requireAuth, requireAdmin, d.Project.Update)
		pj.DELETE("/:id", requireAuth, requireAdmin, d.Project.Delete)
	}

	ex := api.Group("/experience")
	{
		ex.GET("", d.Experience.List)
		ex.GET("/:id", d.Experience.Get)
		ex.POST("", requireAuth, requireAdmin, d.Experience.Create)
		ex.PUT("/:id", requireAuth, requireAdmin, d.Experience.Update)
		ex.DELETE("/:id", requireAuth, requireAdmin, d.Experience.Delete)
	}

	bl := api.Group("/blog")
	{
		bl.GET("", d.Blog.List)
		bl.GET("/admin", requireAuth, requireAdmin, d.Blog.ListAdmin)
		bl.GET("/:slug", optionalAuth, d.Blog.Get)
		bl.POST("", requireAuth, requireAdmin, d.Blog.Create)
		bl.PUT("/:id", requireAuth, requireAdmin, d.Blog.Update)
		bl.DELETE("/:id", requireAuth, requireAdmin, d.Blog.Delete)
		bl.POST("/:id/like", requireAuth, d.Blog.ToggleLike)
		bl.POST("/:id/comments", requireAuth, d.Blog.CreateComment)
		bl.DELETE("/:id/comments/:commentId", requireAuth, d.Blog.DeleteComment)
	}

	ct := api.Group("/contact")
	{
		ct.POST("", d.Contact.Submit)
		ct.GET("", requireAuth, requireAdmin, d.Contact.List)
		ct.PUT("/:id/read", requireAuth, requireAdmin, d.Contact.MarkRead)
		ct.DELETE("/:id", requireAuth, requireAdmin, d.Contact.Delete)
	}

	api.GET("/stats", requireAuth, requireAdmin, d.Stats.Get)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

// useJSONFieldNames 校验错误里用 json tag 报字段名
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
