package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	CORSOrigins []string

	HealthHandler      *HealthHandler
	CourseHandler      *CourseHandler
	QuizHandler        *QuizHandler
	PerformanceHandler *PerformanceHandler
	RoadmapHandler     *RoadmapHandler
}

func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(CORS(cfg.CORSOrigins))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}
	if cfg.CourseHandler != nil {
		r.POST("/course", cfg.CourseHandler.Submit)
		r.POST("/course-stream", cfg.CourseHandler.SubmitStream)
		r.GET("/lesson-stream", cfg.CourseHandler.LessonStream)
		r.POST("/doubt", cfg.CourseHandler.Doubt)
	}
	if cfg.QuizHandler != nil {
		r.POST("/quiz/generate", cfg.QuizHandler.Generate)
		r.POST("/quiz/submit", cfg.QuizHandler.Submit)
	}
	if cfg.PerformanceHandler != nil {
		r.GET("/performance/:user", cfg.PerformanceHandler.Dashboard)
	}
	if cfg.RoadmapHandler != nil {
		r.POST("/roadmap", cfg.RoadmapHandler.Generate)
	}
	return r
}
