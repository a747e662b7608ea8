package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/projectflow/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                  *config.Config
	transcriptionHandler *Transcription
	projectHandler       *Project
	authMiddleware       echo.MiddlewareFunc
	projectMiddleware    echo.MiddlewareFunc
	gatherer             prometheus.Gatherer
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	transcriptionHandler *Transcription,
	projectHandler *Project,
	authMiddleware echo.MiddlewareFunc,
	projectMiddleware echo.MiddlewareFunc,
	gatherer prometheus.Gatherer,
) *Router {
	return &Router{
		cfg:                  cfg,
		transcriptionHandler: transcriptionHandler,
		projectHandler:       projectHandler,
		authMiddleware:       authMiddleware,
		projectMiddleware:    projectMiddleware,
		gatherer:             gatherer,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group, every route requires a bearer token
	v1 := e.Group("/v1")
	if rt.authMiddleware != nil {
		v1.Use(rt.authMiddleware)
	}

	rt.setupTranscriptionRoutes(v1)
	rt.setupProjectRoutes(v1)
}

// setupTranscriptionRoutes configures the recording-to-tasks workflow routes
func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	group := g.Group("/transcriptions")

	if rt.transcriptionHandler == nil {
		group.POST("", rt.notImplemented)
		group.POST("/status", rt.notImplemented)
		return
	}
	group.POST("", rt.transcriptionHandler.Submit)
	group.POST("/status", rt.transcriptionHandler.Status)
}

// setupProjectRoutes configures project, task and meeting routes
func (rt *Router) setupProjectRoutes(g *echo.Group) {
	if rt.projectHandler == nil {
		g.GET("/projects", rt.notImplemented)
		return
	}

	g.GET("/me", rt.projectHandler.Me)
	g.GET("/projects", rt.projectHandler.ListProjects)
	g.POST("/projects", rt.projectHandler.CreateProject)

	var scoped []echo.MiddlewareFunc
	if rt.projectMiddleware != nil {
		scoped = append(scoped, rt.projectMiddleware)
	}
	projectGroup := g.Group("/projects/:id", scoped...)
	projectGroup.GET("/tasks", rt.projectHandler.ListTasks)
	projectGroup.GET("/meetings", rt.projectHandler.ListMeetings)

	g.GET("/meetings/:id", rt.projectHandler.GetMeeting)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	environment := "unknown"
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": environment,
	})
}
