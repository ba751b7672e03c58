package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rtdacademy/gradebook-api/internal/service"
	appErrors "github.com/rtdacademy/gradebook-api/pkg/errors"
	"github.com/rtdacademy/gradebook-api/pkg/response"
)

// ExportHandler exposes course report downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// CourseReport godoc
// @Summary Download a per-category grade report for a course
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param courseId path string true "Course id"
// @Param format query string false "Report format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /courses/{courseId}/report [get]
func (h *ExportHandler) CourseReport(c *gin.Context) {
	format, err := service.ParseReportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report format"))
		return
	}

	courseID := c.Param("courseId")
	payload, err := h.exports.CourseReport(c.Request.Context(), courseID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("grade-report-%s.%s", courseID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), payload)
}
