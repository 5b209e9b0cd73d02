package server

import (
	"net/http"

	authHttp "github.com/Zixzorash/BURN-SUB/internal/auth/delivery/http"
	authRepository "github.com/Zixzorash/BURN-SUB/internal/auth/repository"
	authUsecase "github.com/Zixzorash/BURN-SUB/internal/auth/usecase"
	burnHttp "github.com/Zixzorash/BURN-SUB/internal/burnjobs/delivery/http"
	burnRepository "github.com/Zixzorash/BURN-SUB/internal/burnjobs/repository"
	burnUsecase "github.com/Zixzorash/BURN-SUB/internal/burnjobs/usecase"
	"github.com/Zixzorash/BURN-SUB/internal/middleware"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/labstack/echo/v4"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	aRepo := authRepository.NewAuthRepo(s.db)
	jRepo := burnRepository.NewBurnJobsRepo(s.db)
	jAWSRepo := burnRepository.NewAwsRepository(s.s3Client, s.preSignClient)
	jRedisRepo := burnRepository.NewBurnJobsRedisRepo(s.redisClient, s.logger)

	authUC := authUsecase.NewAuthUseCase(s.cfg, aRepo, s.logger)
	burnUC := burnUsecase.NewBurnJobsUseCase(s.cfg, jRepo, jRedisRepo, jAWSRepo, s.logger)

	authHandlers := authHttp.NewAuthHandler(s.cfg, authUC, s.logger)
	burnHandlers := burnHttp.NewBurnJobsHandler(burnUC)

	mw := middleware.NewMiddlewareManager(authUC, s.cfg, []string{"*"}, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	burnGroup := v1.Group("/burn", mw.AuthJWTMiddleware())

	authHttp.MapAuthRoutes(authGroup, authHandlers, mw)
	burnHttp.MapBurnJobRoutes(burnGroup, burnHandlers, mw)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
