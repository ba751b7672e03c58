package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rtdacademy/gradebook-api/internal/dto"
	"github.com/rtdacademy/gradebook-api/internal/service"
	appErrors "github.com/rtdacademy/gradebook-api/pkg/errors"
	"github.com/rtdacademy/gradebook-api/pkg/response"
)

// OverrideHandler exposes manual score override endpoints.
type OverrideHandler struct {
	overrides *service.OverrideService
}

// NewOverrideHandler constructs handler.
func NewOverrideHandler(overrides *service.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrides: overrides}
}

// Apply godoc
// @Summary Apply a manual score override
// @Tags Overrides
// @Accept json
// @Produce json
// @Param courseId path string true "Course id"
// @Param email path string true "Student email"
// @Param itemId path string true "Item id"
// @Param payload body dto.ApplyOverrideRequest true "Override payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{courseId}/students/{email}/items/{itemId}/override [put]
func (h *OverrideHandler) Apply(c *gin.Context) {
	var req dto.ApplyOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	setBy := ""
	if claims := claimsFromContext(c); claims != nil {
		setBy = claims.Email
	}

	item, err := h.overrides.ApplyOverride(c.Request.Context(),
		c.Param("courseId"), c.Param("email"), c.Param("itemId"),
		*req.Score, *req.Total, setBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Remove godoc
// @Summary Remove a manual score override
// @Tags Overrides
// @Produce json
// @Param courseId path string true "Course id"
// @Param email path string true "Student email"
// @Param itemId path string true "Item id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{courseId}/students/{email}/items/{itemId}/override [delete]
func (h *OverrideHandler) Remove(c *gin.Context) {
	item, err := h.overrides.RemoveOverride(c.Request.Context(),
		c.Param("courseId"), c.Param("email"), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
