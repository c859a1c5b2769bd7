package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/acadex/gradepoint-backend/internal/config"
	"github.com/acadex/gradepoint-backend/internal/handler"
	"github.com/acadex/gradepoint-backend/internal/middleware"
	"github.com/acadex/gradepoint-backend/internal/response"
	"github.com/acadex/gradepoint-backend/internal/service"
)

// scaleCacheSeconds is the Cache-Control max-age for the grade scale.
// The scale is fixed at build time, so a day of caching is safe.
const scaleCacheSeconds = 86400

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Calc   *handler.CalcHandler
	Scale  *handler.ScaleHandler
	Live   *handler.LiveHandler
	WS     *handler.WSHandler
	Usage  *handler.UsageHandler
	System *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	liveService *service.LiveService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Admin-Key"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Unknown routes still answer with the standard envelope.
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Rate limiter for session creation (30 sessions per minute per IP).
	sessionLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Public Calculation Group ───────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/scale", middleware.CacheControl(scaleCacheSeconds), handlers.Scale.GetScale)

		calculations := api.Group("/calculations")
		{
			calculations.POST("/gpa", handlers.Calc.CalculateGPA)
			calculations.POST("/cgpa", handlers.Calc.CalculateCGPA)
		}
	}

	// ─── 2. Live Session Group ─────────────────────────────────────────
	live := router.Group("/api/v1/live")
	{
		live.POST("/sessions", sessionLimiter.Middleware(), handlers.Live.OpenSession)
		live.DELETE("/sessions/current",
			middleware.RequireLiveSession(liveService),
			handlers.Live.CloseSession,
		)
	}

	// ─── 3. WebSocket Group (Live Session Auth) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireLiveSession(liveService))
	{
		ws.GET("/live/stream", handlers.WS.LiveStream)
	}

	// ─── 4. Admin Group (Deployment Key) ───────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminKey(cfg.AdminKeyHash))
	{
		adminAPI.GET("/usage", handlers.Usage.GetUsage)
		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	return router
}
