package burnjobs

import "github.com/labstack/echo/v4"

type Handler interface {
	GetPresignUpload() echo.HandlerFunc
	CreateJob() echo.HandlerFunc
	GetJobByID() echo.HandlerFunc
	GetJobResult() echo.HandlerFunc
	ListJobs() echo.HandlerFunc
	DeleteJob() echo.HandlerFunc
}
