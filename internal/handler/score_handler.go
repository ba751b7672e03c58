package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rtdacademy/gradebook-api/internal/service"
	"github.com/rtdacademy/gradebook-api/pkg/response"
)

// ScoreHandler exposes computed score endpoints.
type ScoreHandler struct {
	scores *service.ScoreService
}

// NewScoreHandler constructs handler.
func NewScoreHandler(scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// ItemScore godoc
// @Summary Compute one item's score for a student
// @Tags Scores
// @Produce json
// @Param courseId path string true "Course id"
// @Param email path string true "Student email"
// @Param itemId path string true "Item id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{courseId}/students/{email}/items/{itemId}/score [get]
func (h *ScoreHandler) ItemScore(c *gin.Context) {
	item, err := h.scores.ItemScore(c.Request.Context(), c.Param("courseId"), c.Param("email"), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// ItemCompletion godoc
// @Summary Report an item's completion state for a student
// @Tags Scores
// @Produce json
// @Param courseId path string true "Course id"
// @Param email path string true "Student email"
// @Param itemId path string true "Item id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{courseId}/students/{email}/items/{itemId}/completion [get]
func (h *ScoreHandler) ItemCompletion(c *gin.Context) {
	status, err := h.scores.ItemCompletion(c.Request.Context(), c.Param("courseId"), c.Param("email"), c.Param("itemId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Summary godoc
// @Summary Full gradebook summary for a student
// @Tags Scores
// @Produce json
// @Param courseId path string true "Course id"
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{courseId}/students/{email}/summary [get]
func (h *ScoreHandler) Summary(c *gin.Context) {
	summary, err := h.scores.Summary(c.Request.Context(), c.Param("courseId"), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
