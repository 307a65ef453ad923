package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/api/handler"
	"tec-planning/backend/internal/api/middleware"
)

const (
	authRateLimit       = 20
	authRateWindow      = time.Minute
	defaultMaxBodyBytes = 1 << 20
)

// Setup builds the gin engine. limiter may be nil when redis is not
// configured; auth routes are then not rate limited.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	auth middleware.Authenticator,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS))
	r.Use(middleware.BodyLimit(maxBody))

	r.GET("/health", handler.Health)

	// ── auth ──
	authGroup := r.Group("/auth")
	{
		limited := middleware.RateLimit(limiter, authRateLimit, authRateWindow, logger)
		authGroup.POST("/signup", limited, h.Auth.Signup)
		authGroup.POST("/login", limited, h.Auth.Login)
		authGroup.POST("/logout", middleware.JWTAuth(auth), h.Auth.Logout)
	}

	// ── programs (public) ──
	programs := r.Group("/programs")
	{
		programs.GET("", h.Program.ListPrograms)
		programs.GET("/:code", h.Program.GetProgram)
		programs.GET("/:code/sections", h.Program.ListSections)
	}

	// ── current user ──
	me := r.Group("/users/me")
	me.Use(middleware.JWTAuth(auth))
	{
		me.GET("", h.User.GetProfile)
		me.PUT("", h.User.UpdateProfile)
		me.GET("/course-status", h.User.ListCourseStatuses)
		me.PUT("/course-status/:courseCode", h.User.UpdateCourseStatus)
		me.GET("/dashboard", h.User.GetDashboard)
		me.GET("/schedule", h.User.GetSchedule)
		me.GET("/schedule/export", h.Export.ExportSchedule)
		me.GET("/curriculum", h.User.GetCurriculum)
	}

	return r
}
