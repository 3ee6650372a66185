package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/storynest/quiz-service/internal/handlers"
)

type RouterConfig struct {
	QuizHandler  *handlers.QuizHandler
	BookHandler  *handlers.BookHandler
	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	quiz := router.Group("/quiz")
	{
		quiz.POST("/generate", cfg.QuizHandler.Generate)
		quiz.POST("/generate-first", cfg.QuizHandler.GenerateFirst)
		quiz.POST("/generate-remaining", cfg.QuizHandler.GenerateRemaining)
		quiz.GET("/:bookId", cfg.QuizHandler.Get)
		quiz.POST("/:bookId/submit", cfg.QuizHandler.Submit)
		quiz.GET("/:bookId/attempts/:userId", cfg.QuizHandler.Attempts)
		quiz.DELETE("/:bookId/clear", cfg.QuizHandler.Clear)
		quiz.GET("/:bookId/age-groups", cfg.QuizHandler.AgeGroups)
	}

	books := router.Group("/books")
	{
		books.POST("", cfg.BookHandler.Create)
		books.GET("/:id", cfg.BookHandler.Get)
	}

	return router
}
