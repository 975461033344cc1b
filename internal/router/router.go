package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/config"
	"github.com/andessoft/registro-api/internal/database"
	"github.com/andessoft/registro-api/internal/handlers"
	"github.com/andessoft/registro-api/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Token        *handlers.TokenHandler
	Registration *handlers.RegistrationHandler
	Approval     *handlers.ApprovalHandler
	File         *handlers.FileHandler
}

// Setup creates the gin engine and registers all routes. The public group
// (token validation, form submission, document upload) carries the rate
// limiter; everything under /api requires a bearer token.
func Setup(cfg *config.Config, db *database.DB, h *Handlers, redisClient *redis.Client, logger *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationID())
	engine.Use(middleware.CORS(&cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	public := engine.Group("/")
	public.Use(middleware.RateLimit(redisClient, &cfg.RateLimit, logger))
	{
		public.GET("/tokens/validar/:token", h.Token.ValidateToken)

		public.POST("/registro-publico/empleado/:token", h.Registration.SubmitEmpleado)
		public.POST("/registro-publico/cliente/:token", h.Registration.SubmitCliente)
		public.POST("/registro-publico/proveedor/:token", h.Registration.SubmitProveedor)

		public.POST("/archivos/subir", h.File.Upload)
	}

	api := engine.Group("/api")
	api.Use(middleware.Auth(cfg.Security.JWTSecret))
	{
		api.POST("/tokens/generar", h.Token.GenerateToken)
		api.GET("/tokens/listar", h.Token.ListTokens)
		api.DELETE("/tokens/eliminar/:id", h.Token.DeleteToken)

		api.GET("/aprobaciones/pendientes", h.Approval.ListPendientes)
		api.GET("/aprobaciones/historial", h.Approval.ListHistorial)
		api.GET("/aprobaciones/archivados", h.Approval.ListArchivados)
		api.POST("/aprobaciones/aprobar/:id", h.Approval.Approve)
		api.POST("/aprobaciones/rechazar/:id", h.Approval.Reject)
		api.POST("/aprobaciones/archivar/:id", h.Approval.Archive)
		api.POST("/aprobaciones/restaurar/:id", h.Approval.Restore)
	}

	return engine
}
