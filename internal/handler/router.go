package handler

import (
	"context"
	"net/http"

	"lead_scoring/internal/middleware"
	"lead_scoring/internal/service"
	"lead_scoring/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Pinger reports database reachability for the health check
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds everything NewRouter wires together
type RouterDeps struct {
	Auth  service.AuthService
	Users service.UserService
	Leads service.LeadService
	DB    Pinger
	// JWT enables token mode when set
	JWT *utils.JWTUtil
}

// NewRouter builds the gin engine with middlewares and all API routes
func NewRouter(deps RouterDeps) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestLogger(), middleware.Recovery(), middleware.CORSMiddleware())

	var adminMW gin.HandlerFunc
	var userMW, leadMW []gin.HandlerFunc
	if deps.JWT != nil {
		authMW := middleware.JWTAuthMiddleware(deps.JWT)
		adminMW = middleware.AdminMiddleware()
		userMW = []gin.HandlerFunc{authMW, adminMW}
		leadMW = []gin.HandlerFunc{authMW, middleware.StaffMiddleware()}
		log.Info("Token mode enabled: API routes require a bearer token")
	} else {
		log.Warn("Token mode disabled: caller identity is taken from request parameters")
	}

	api := router.Group("/api")
	NewAuthHandler(deps.Auth).RegisterAuthRoutes(api)
	NewUserHandler(deps.Users).RegisterUserRoutes(api, userMW...)
	NewLeadHandler(deps.Leads).RegisterLeadRoutes(api, adminMW, leadMW...)

	router.GET("/health", func(c *gin.Context) {
		if deps.DB == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			log.WithError(err).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})

	return router
}
