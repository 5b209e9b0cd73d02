package http

import (
	"net/http"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/labstack/echo/v4"
)

type burnJobsHandler struct {
	burnUC burnjobs.UseCase
}

func NewBurnJobsHandler(burnUC burnjobs.UseCase) burnjobs.Handler {
	return &burnJobsHandler{
		burnUC: burnUC,
	}
}

func (h *burnJobsHandler) GetPresignUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.UploadInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		presignUrl, err := h.burnUC.GetPresignUrl(c.Request().Context(), input)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"presignUrl": presignUrl})
	}
}

func (h *burnJobsHandler) CreateJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.BurnJobInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		job, err := h.burnUC.CreateJob(c.Request().Context(), input)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, job)
	}
}

func (h *burnJobsHandler) GetJobByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := h.burnUC.GetJob(c.Request().Context(), c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *burnJobsHandler) GetJobResult() echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := h.burnUC.GetResult(c.Request().Context(), c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, result)
	}
}

func (h *burnJobsHandler) ListJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		jobs, err := h.burnUC.ListJobs(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, jobs)
	}
}

func (h *burnJobsHandler) DeleteJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.burnUC.DeleteJob(c.Request().Context(), c.Param("job_id")); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Job deleted successfully"})
	}
}
