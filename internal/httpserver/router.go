package httpserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"projecthub/internal/api"
	"projecthub/internal/auth"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *api.AuthHandler,
	projectHandler *api.ProjectHandler,
	taskHandler *api.TaskHandler,
	teamHandler *api.TeamHandler,
	milestoneHandler *api.MilestoneHandler,
	timeHandler *api.TimeTrackingHandler,
	userHandler *api.UserHandler,
	issuer *auth.JWTIssuer,
) *Router {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(TraceMiddleware())
	r.Use(MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	protected := r.Group("/")
	protected.Use(AuthMiddleware(issuer))
	{
		protected.POST("/logout", authHandler.Logout)

		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects", projectHandler.List)
		protected.GET("/projects/:id", projectHandler.Get)
		protected.PATCH("/projects/:id", projectHandler.Update)
		protected.POST("/projects/:id/complete", projectHandler.Complete)
		protected.DELETE("/projects/:id", projectHandler.Delete)

		protected.POST("/tasks", taskHandler.Create)
		protected.GET("/tasks", taskHandler.List)
		protected.GET("/tasks/:id", taskHandler.Get)
		protected.PATCH("/tasks/:id", taskHandler.Update)
		protected.POST("/tasks/:id/status", taskHandler.UpdateStatus)
		protected.POST("/tasks/:id/assign", taskHandler.Assign)
		protected.DELETE("/tasks/:id", taskHandler.Delete)

		protected.POST("/teams", teamHandler.Create)
		protected.GET("/teams", teamHandler.List)
		protected.GET("/teams/:id", teamHandler.Get)
		protected.PATCH("/teams/:id", teamHandler.Update)
		protected.POST("/teams/:id/members", teamHandler.AddMember)
		protected.DELETE("/teams/:id/members/:userId", teamHandler.RemoveMember)
		protected.DELETE("/teams/:id", teamHandler.Delete)

		protected.POST("/milestones", milestoneHandler.Create)
		protected.GET("/milestones", milestoneHandler.List)
		protected.GET("/milestones/:id", milestoneHandler.Get)
		protected.PATCH("/milestones/:id", milestoneHandler.Update)
		protected.DELETE("/milestones/:id", milestoneHandler.Delete)

		protected.POST("/time/start", timeHandler.Start)
		protected.POST("/time/stop", timeHandler.Stop)
		protected.POST("/time/entries", timeHandler.Log)
		protected.GET("/time/entries", timeHandler.List)
		protected.PATCH("/time/entries/:id", timeHandler.Update)
		protected.DELETE("/time/entries/:id", timeHandler.Delete)
		protected.GET("/time/tasks/:id/total", timeHandler.TaskTotal)
		protected.GET("/time/users/:id/total", timeHandler.UserTotal)

		protected.POST("/users", userHandler.Create)
		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.Get)
		protected.POST("/users/:id/role", userHandler.ChangeRole)
		protected.POST("/users/:id/activate", userHandler.Activate)
		protected.POST("/users/:id/deactivate", userHandler.Deactivate)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(":" + port)
}
