package http

import (
	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapBurnJobRoutes(burnGroup *echo.Group, h burnjobs.Handler, mw *middleware.MiddlewareManager) {
	burnGroup.POST("/presign", h.GetPresignUpload())
	burnGroup.POST("", h.CreateJob())
	burnGroup.GET("", h.ListJobs())
	burnGroup.GET("/:job_id", h.GetJobByID())
	burnGroup.GET("/:job_id/result", h.GetJobResult())
	burnGroup.DELETE("/:job_id", h.DeleteJob())
}
