package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellspace/backend/internal/handler"
	"wellspace/backend/internal/middleware"
	"wellspace/backend/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	focusHandler *handler.FocusHandler,
	routineHandler *handler.RoutineHandler,
	progressHandler *handler.ProgressHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(authService))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/session", authHandler.Session)

	focus := authed.Group("/focus")
	focus.GET("/state", focusHandler.State)
	focus.POST("/start", focusHandler.Start)
	focus.POST("/pause", focusHandler.Pause)
	focus.POST("/reset", focusHandler.Reset)

	routine := authed.Group("/routine")
	routine.POST("/generate", routineHandler.Generate)
	routine.GET("/plan", routineHandler.Plan)
	routine.DELETE("/plan", routineHandler.Clear)
	routine.POST("/days/:day/toggle", routineHandler.ToggleDay)

	authed.GET("/steps", progressHandler.Steps)
	authed.PUT("/steps", progressHandler.RecordSteps)
	authed.GET("/workouts", progressHandler.Workouts)
	authed.POST("/workouts/:id/toggle", progressHandler.ToggleWorkout)
	authed.GET("/sounds", progressHandler.Sounds)
	authed.POST("/sounds/:id/play", progressHandler.PlaySound)
	authed.GET("/dashboard", progressHandler.Dashboard)

	return engine
}
