package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/middleware"
	v1 "pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "pantrypal.app/pantry-api-gateway/docs"
)

type HttpServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	db      *gorm.DB
	cache   *cache.RedisCacheService
}

func (s *HttpServer) bindSwagger() {
	g := s.engine.Group("/")

	g.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthcheck reports 503 when the database or redis cannot be reached.
func (s *HttpServer) healthcheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	status := gin.H{"database": "ok", "redis": "ok"}
	healthy := true
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unavailable"
		healthy = false
	}
	if err := s.cache.HealthCheck(ctx); err != nil {
		status["redis"] = "unavailable"
		healthy = false
	}
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

func NewHttpServer(v1Route *v1.V1Route, db *gorm.DB, cacheService *cache.RedisCacheService) *HttpServer {
	if os.Getenv("local_dev") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HttpServer{
		gin.New(),
		v1Route,
		db,
		cacheService,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.CORS())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.RateLimit(cacheService))
	server.engine.Use(middleware.TransactionMiddleware(db))
	server.engine.GET("/healthcheck", server.healthcheck)
	server.bindSwagger()
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := 8080
	root := httpServer.engine.Group("/")
	httpServer.v1Route.RegisterRouter(root)
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
