package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/intervia/intervia-backend/internal/config"
	"github.com/intervia/intervia-backend/internal/handler"
	"github.com/intervia/intervia-backend/internal/middleware"
	"github.com/intervia/intervia-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Session  *handler.SessionHandler
	Question *handler.QuestionHandler
	Report   *handler.ReportHandler
	Monitor  *handler.MonitorHandler
	WS       *handler.WSHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// Rate limiter for session creation (per IP).
	sessionLimiter := middleware.NewRateLimiter(cfg.SessionRatePerMinute)

	// ─── 1. Question Engine ────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/questions", handlers.Question.ListQuestions)
		api.POST("/question-sets", handlers.Question.BuildQuestionSet)
	}

	// ─── 2. Interview Sessions ─────────────────────────────────────────
	// Session replies carry candidate answers and a ticking clock;
	// nothing here may be cached.
	sessions := api.Group("/sessions")
	sessions.Use(middleware.NoStore())
	{
		sessions.POST("", sessionLimiter.Middleware(), handlers.Session.CreateSession)
		sessions.GET("/:session_id", handlers.Session.GetSession)
		sessions.GET("/:session_id/question", handlers.Session.GetCurrentQuestion)
		sessions.POST("/:session_id/answers", handlers.Session.SubmitAnswer)
		sessions.GET("/:session_id/summary", handlers.Session.GetSummary)
		sessions.POST("/:session_id/report", handlers.Report.BuildReport)
		sessions.GET("/:session_id/monitor", handlers.Monitor.MonitorSessionSSE)
	}

	// ─── 3. WebSocket ──────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/sessions/:session_id/live", handlers.WS.SessionLiveStream)
	}

	// ─── 4. System Monitoring ──────────────────────────────────────────
	router.GET("/api/v1/system/metrics", handlers.System.SystemMetricsSSE)

	return router
}
