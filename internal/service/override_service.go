package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rtdacademy/gradebook-api/internal/gradebook"
	"github.com/rtdacademy/gradebook-api/internal/models"
	appErrors "github.com/rtdacademy/gradebook-api/pkg/errors"
)

// courseStore is the repository surface the override service needs.
type courseStore interface {
	GetCourse(ctx context.Context, courseID, studentKey string) (*models.Course, error)
	GetStudentItem(ctx context.Context, courseID, studentKey, itemID string) (models.GradebookItem, bool, error)
	SaveStudentItem(ctx context.Context, courseID, studentKey, itemID string, item models.GradebookItem) error
}

type cacheInvalidator interface {
	InvalidateStudent(ctx context.Context, courseID, studentKey string)
}

// OverrideService applies and reverts manual score overrides on
// individually-scored items. Session-scored items are overridden
// through teacher-created sessions, not here.
type OverrideService struct {
	courses   courseStore
	scores    cacheInvalidator
	engine    *gradebook.Engine
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOverrideService constructs an override service.
func NewOverrideService(courses courseStore, scores cacheInvalidator, engine *gradebook.Engine, validate *validator.Validate, logger *zap.Logger) *OverrideService {
	if engine == nil {
		engine = gradebook.NewEngine(logger)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverrideService{courses: courses, scores: scores, engine: engine, validator: validate, logger: logger}
}

// overrideInput bounds a manual score to its stated total.
type overrideInput struct {
	Score float64 `validate:"gte=0,ltefield=Total"`
	Total float64 `validate:"gt=0"`
}

// ApplyOverride sets a manual score on an item. The pre-override
// computed score and total are captured on the first override only, so
// repeated edits stay revertible to the genuine values.
func (s *OverrideService) ApplyOverride(ctx context.Context, courseID, studentEmail, itemID string, score, total float64, setBy string) (*models.GradebookItem, error) {
	studentKey := gradebook.SanitizeStudentEmail(studentEmail)

	course, err := s.courses.GetCourse(ctx, courseID, studentKey)
	if err != nil {
		return nil, err
	}
	if validation := s.engine.ValidateCourse(course); !validation.Valid {
		return nil, appErrors.ErrCourseNotLoaded
	}

	cfg := s.engine.ResolveItemConfig(itemID, gradebook.ItemStructure(course))
	if cfg == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("item %s is not configured", itemID))
	}
	if s.engine.UseSessionScoring(itemID, course) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session-scored items take overrides via teacher-created sessions")
	}
	if err := s.validator.Struct(overrideInput{Score: score, Total: total}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid override values")
	}

	item, _, err := s.courses.GetStudentItem(ctx, courseID, studentKey, itemID)
	if err != nil {
		return nil, err
	}

	if !item.IsManualOverride {
		// First override: snapshot the computed values once so the
		// override can be reverted losslessly later.
		computed := s.engine.ScoreItem(itemID, course, studentEmail)
		origScore, origTotal := computed.Score, computed.Total
		item.OriginalScore = &origScore
		item.OriginalTotal = &origTotal
	}

	item.IsManualOverride = true
	item.ManualScore = &score
	item.ManualTotal = &total
	item.ManualSetBy = setBy
	item.ManualSetAt = time.Now().UnixMilli()
	item.Score = score
	item.Total = total

	if err := s.courses.SaveStudentItem(ctx, courseID, studentKey, itemID, item); err != nil {
		return nil, err
	}

	s.scores.InvalidateStudent(ctx, courseID, studentKey)
	s.logger.Info("manual override applied",
		zap.String("courseId", courseID),
		zap.String("itemId", itemID),
		zap.String("setBy", setBy),
		zap.Float64("score", score),
		zap.Float64("total", total))
	return &item, nil
}

// RemoveOverride reverts an item to its pre-override computed values.
func (s *OverrideService) RemoveOverride(ctx context.Context, courseID, studentEmail, itemID string) (*models.GradebookItem, error) {
	studentKey := gradebook.SanitizeStudentEmail(studentEmail)

	item, exists, err := s.courses.GetStudentItem(ctx, courseID, studentKey, itemID)
	if err != nil {
		return nil, err
	}
	if !exists || !item.IsManualOverride {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("item %s has no manual override", itemID))
	}

	item.Score, item.Total = 0, 0
	if item.OriginalScore != nil {
		item.Score = *item.OriginalScore
	}
	if item.OriginalTotal != nil {
		item.Total = *item.OriginalTotal
	}
	item.IsManualOverride = false
	item.ManualScore = nil
	item.ManualTotal = nil
	item.OriginalScore = nil
	item.OriginalTotal = nil
	item.ManualSetBy = ""
	item.ManualSetAt = 0

	if err := s.courses.SaveStudentItem(ctx, courseID, studentKey, itemID, item); err != nil {
		return nil, err
	}

	s.scores.InvalidateStudent(ctx, courseID, studentKey)
	s.logger.Info("manual override removed",
		zap.String("courseId", courseID),
		zap.String("itemId", itemID))
	return &item, nil
}
