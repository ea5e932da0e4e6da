package api

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/alcyxob/exercise-tracker/internal/config"
	"github.com/alcyxob/exercise-tracker/internal/service"
	"github.com/alcyxob/exercise-tracker/web"
)

// NewRouter builds a gin engine with the middleware chain and every route
// registered.
func NewRouter(
	cfg config.Config,
	log zerolog.Logger,
	userService service.UserService,
	exerciseService service.ExerciseService,
) (*gin.Engine, error) {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		CORS(cfg.CORS),
		RequestID(),
		RequestLogger(log, cfg.Server.BaseURL),
		Metrics(),
	)

	if err := SetupRoutes(router, userService, exerciseService); err != nil {
		return nil, err
	}
	return router, nil
}

func SetupRoutes(
	router *gin.Engine,
	userService service.UserService,
	exerciseService service.ExerciseService,
) error {
	userHandler := NewUserHandler(userService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	index, err := web.FS.ReadFile("index.html")
	if err != nil {
		return err
	}
	assets, err := fs.Sub(web.FS, "public")
	if err != nil {
		return err
	}

	// Served from bytes: http.FileServer redirects paths ending in /index.html.
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	router.StaticFS("/public", http.FS(assets))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		usersGroup := apiGroup.Group("/users")
		{
			usersGroup.POST("", userHandler.CreateUser)
			usersGroup.GET("", userHandler.ListUsers)
			usersGroup.POST("/:id/exercises", exerciseHandler.LogExercise)
			usersGroup.GET("/:id/logs", exerciseHandler.GetLog)
		}
	}

	return nil
}
