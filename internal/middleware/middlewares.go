package middleware

import (
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/auth"
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/labstack/echo/v4"
)

type MiddlewareManager struct {
	authUC  auth.UseCase
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

func NewMiddlewareManager(authUC auth.UseCase, cfg *config.Config, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{
		authUC:  authUC,
		cfg:     cfg,
		origins: origins,
		logger:  logger,
	}
}

func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()
		mw.logger.Infof("RequestID: %s, Method: %s, URI: %s, Status: %v, Size: %v, Time: %s",
			utils.GetRequestID(c),
			req.Method,
			req.URL,
			res.Status,
			res.Size,
			time.Since(start),
		)
		return err
	}
}
