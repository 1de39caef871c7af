package web

import (
	"context"
	"time"

	"taskboard/pkg/board"
	"taskboard/pkg/task"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// HealthChecker probes the task API for /readyz.
type HealthChecker interface {
	Health(ctx context.Context) (task.HealthResponse, error)
}

type Config struct {
	Board          *board.Controller
	Health         HealthChecker
	AllowedOrigins []string
	// Limiter throttles mutation routes; nil disables throttling.
	Limiter *limiter.Limiter
}

type Server struct {
	board  *board.Controller
	health HealthChecker
}

func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()
	// match on the escaped path so ids containing "/" still hit /tasks/:id
	router.UseRawPath = true
	router.Use(RequestLogger(), Recovery())
	router.SetHTMLTemplate(parseTemplates())

	s := &Server{board: cfg.Board, health: cfg.Health}

	router.GET("/", s.BoardController)
	tasks := router.Group("/tasks")
	{
		tasks.Use(MutationRateLimiter(cfg.Limiter))
		tasks.POST("", s.CreateTaskController)
		tasks.POST("/:id/status", s.UpdateStatusController)
		tasks.POST("/:id/delete", s.DeleteTaskController)
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
		apiGroup.GET("/board", s.BoardJSONController)
	}

	router.GET("/healthz", s.LivenessController)
	router.GET("/readyz", s.ReadinessController)
	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	origins := append([]string{}, allowedOrigins...)
	origins = append(origins, "http://localhost*")
	return cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
		AllowWildcard:    true,
	}
}
