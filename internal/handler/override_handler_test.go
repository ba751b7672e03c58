package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtdacademy/gradebook-api/internal/dto"
	"github.com/rtdacademy/gradebook-api/internal/middleware"
	"github.com/rtdacademy/gradebook-api/internal/models"
	"github.com/rtdacademy/gradebook-api/internal/service"
)

type courseStoreMock struct {
	courseReaderMock
	items map[string]models.GradebookItem
}

func (m *courseStoreMock) GetStudentItem(_ context.Context, _, _, itemID string) (models.GradebookItem, bool, error) {
	item, ok := m.items[itemID]
	return item, ok, nil
}

func (m *courseStoreMock) SaveStudentItem(_ context.Context, _, _, itemID string, item models.GradebookItem) error {
	if m.items == nil {
		m.items = map[string]models.GradebookItem{}
	}
	m.items[itemID] = item
	return nil
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateStudent(_ context.Context, _, _ string) {}

func newOverrideHandler(store *courseStoreMock) *OverrideHandler {
	overrides := service.NewOverrideService(store, noopInvalidator{}, nil, nil, nil)
	return NewOverrideHandler(overrides)
}

func overrideRequest(t *testing.T, score, total float64) *http.Request {
	t.Helper()
	body, err := json.Marshal(dto.ApplyOverrideRequest{Score: &score, Total: &total})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, "/override", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestOverrideHandlerApply(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &courseStoreMock{courseReaderMock: courseReaderMock{course: handlerTestCourse()}}
	handler := newOverrideHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = overrideRequest(t, 2, 2)
	c.Params = gin.Params{
		{Key: "courseId", Value: "course-1"},
		{Key: "email", Value: "jane@x.ca"},
		{Key: "itemId", Value: "lesson_1"},
	}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "teacher@x.ca", Role: models.RoleTeacher})

	handler.Apply(c)

	require.Equal(t, http.StatusOK, w.Code)
	saved := store.items["lesson_1"]
	assert.True(t, saved.IsManualOverride)
	assert.Equal(t, "teacher@x.ca", saved.ManualSetBy)
}

func TestOverrideHandlerApplyInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &courseStoreMock{courseReaderMock: courseReaderMock{course: handlerTestCourse()}}
	handler := newOverrideHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/override", bytes.NewReader([]byte(`{"score": 2}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Apply(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverrideHandlerRemoveMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &courseStoreMock{courseReaderMock: courseReaderMock{course: handlerTestCourse()}}
	handler := newOverrideHandler(store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/override", nil)
	c.Request = req
	c.Params = gin.Params{
		{Key: "courseId", Value: "course-1"},
		{Key: "email", Value: "jane@x.ca"},
		{Key: "itemId", Value: "lesson_1"},
	}

	handler.Remove(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
