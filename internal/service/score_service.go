package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rtdacademy/gradebook-api/internal/dto"
	"github.com/rtdacademy/gradebook-api/internal/gradebook"
	"github.com/rtdacademy/gradebook-api/internal/models"
	appErrors "github.com/rtdacademy/gradebook-api/pkg/errors"
)

// courseReader is the repository surface the score service needs.
type courseReader interface {
	GetCourse(ctx context.Context, courseID, studentKey string) (*models.Course, error)
}

// ScoreService serves computed score views over course snapshots,
// fronted by an optional cache. All computation is delegated to the
// engine; the service contributes fetching, caching and shaping.
type ScoreService struct {
	courses courseReader
	cache   *CacheService
	metrics *MetricsService
	engine  *gradebook.Engine
	logger  *zap.Logger
}

// NewScoreService constructs a score service.
func NewScoreService(courses courseReader, cache *CacheService, metrics *MetricsService, engine *gradebook.Engine, logger *zap.Logger) *ScoreService {
	if engine == nil {
		engine = gradebook.NewEngine(logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{courses: courses, cache: cache, metrics: metrics, engine: engine, logger: logger}
}

func itemScoreKey(courseID, studentKey, itemID string) string {
	return fmt.Sprintf("score:%s:%s:%s", courseID, studentKey, itemID)
}

func summaryKey(courseID, studentKey string) string {
	return fmt.Sprintf("summary:%s:%s", courseID, studentKey)
}

// ItemScore computes one item's score and completion for a student.
func (s *ScoreService) ItemScore(ctx context.Context, courseID, studentEmail, itemID string) (*dto.ItemScore, error) {
	studentKey := gradebook.SanitizeStudentEmail(studentEmail)
	cacheKey := itemScoreKey(courseID, studentKey, itemID)

	cached := &dto.ItemScore{}
	if hit, _ := s.cache.Get(ctx, cacheKey, cached); hit {
		return cached, nil
	}

	course, err := s.courses.GetCourse(ctx, courseID, studentKey)
	if err != nil {
		return nil, err
	}

	item, err := s.buildItemScore(course, studentEmail, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, item, 0); err != nil {
		s.logger.Warn("caching item score failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return item, nil
}

// ItemCompletion reports whether a student has completed an item,
// together with the threshold applied.
func (s *ScoreService) ItemCompletion(ctx context.Context, courseID, studentEmail, itemID string) (*dto.CompletionStatus, error) {
	studentKey := gradebook.SanitizeStudentEmail(studentEmail)
	course, err := s.courses.GetCourse(ctx, courseID, studentKey)
	if err != nil {
		return nil, err
	}
	if validation := s.engine.ValidateCourse(course); !validation.Valid {
		return nil, appErrors.ErrCourseNotLoaded
	}
	if s.engine.ResolveItemConfig(itemID, gradebook.ItemStructure(course)) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("item %s is not configured", itemID))
	}

	return &dto.CompletionStatus{
		ItemID:    itemID,
		Completed: s.engine.IsComplete(itemID, course, studentEmail),
		Criteria:  s.engine.CompletionCriteriaFor(itemID, course),
	}, nil
}

// Summary computes the full per-student gradebook view.
func (s *ScoreService) Summary(ctx context.Context, courseID, studentEmail string) (*dto.StudentSummary, error) {
	studentKey := gradebook.SanitizeStudentEmail(studentEmail)
	cacheKey := summaryKey(courseID, studentKey)

	cached := &dto.StudentSummary{}
	if hit, _ := s.cache.Get(ctx, cacheKey, cached); hit {
		return cached, nil
	}

	course, err := s.courses.GetCourse(ctx, courseID, studentKey)
	if err != nil {
		return nil, err
	}
	if validation := s.engine.ValidateCourse(course); !validation.Valid {
		return nil, appErrors.ErrCourseNotLoaded
	}

	structure := gradebook.ItemStructure(course)
	itemIDs := make([]string, 0, len(structure))
	for id := range structure {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	summary := &dto.StudentSummary{
		CourseID:     courseID,
		StudentEmail: studentEmail,
		Items:        make([]dto.ItemScore, 0, len(itemIDs)),
		Categories:   s.engine.RollupByCategory(course, studentEmail, course.Outline),
		GeneratedAt:  time.Now().UnixMilli(),
	}
	for _, id := range itemIDs {
		item, err := s.buildItemScore(course, studentEmail, id)
		if err != nil {
			return nil, err
		}
		summary.Items = append(summary.Items, *item)
	}

	if err := s.cache.Set(ctx, cacheKey, summary, 0); err != nil {
		s.logger.Warn("caching summary failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return summary, nil
}

func (s *ScoreService) buildItemScore(course *models.Course, studentEmail, itemID string) (*dto.ItemScore, error) {
	if validation := s.engine.ValidateCourse(course); !validation.Valid {
		return nil, appErrors.ErrCourseNotLoaded
	}
	cfg := s.engine.ResolveItemConfig(itemID, gradebook.ItemStructure(course))
	if cfg == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("item %s is not configured", itemID))
	}

	result := s.engine.ScoreItem(itemID, course, studentEmail)
	s.metrics.RecordScoreComputation(result.Source)

	return &dto.ItemScore{
		ItemID:    itemID,
		Title:     cfg.Title,
		Type:      cfg.Type,
		Completed: s.engine.IsComplete(itemID, course, studentEmail),
		Result:    result,
	}, nil
}

// InvalidateStudent drops every cached view for one student in one
// course, called after any write that can change a score.
func (s *ScoreService) InvalidateStudent(ctx context.Context, courseID, studentKey string) {
	patterns := []string{
		itemScoreKey(courseID, studentKey, "*"),
		summaryKey(courseID, studentKey),
	}
	for _, pattern := range patterns {
		if err := s.cache.Invalidate(ctx, pattern); err != nil {
			s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
