// Package gradebook computes item scores, completion states and
// category rollups from course document snapshots.
//
// Every method is a pure read-and-compute over its inputs: the engine
// holds no mutable state beyond its logger and never writes to the
// course documents, so concurrent invocations against shared snapshots
// are safe. Liveness belongs to callers, who re-fetch snapshots and
// re-invoke.
package gradebook

import (
	"go.uber.org/zap"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

// Engine derives scores from course snapshots.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs an Engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ItemStructure exposes the configured item map for callers that
// assemble course-wide views. Nil when the snapshot is incomplete.
func ItemStructure(course *models.Course) map[string]models.ItemConfig {
	return itemStructureOf(course)
}

func itemStructureOf(course *models.Course) map[string]models.ItemConfig {
	if course == nil || course.Gradebook == nil || course.Gradebook.CourseConfig == nil ||
		course.Gradebook.CourseConfig.Gradebook == nil {
		return nil
	}
	return course.Gradebook.CourseConfig.Gradebook.ItemStructure
}

func progressionOf(course *models.Course) *models.ProgressionRequirements {
	if course == nil || course.Gradebook == nil || course.Gradebook.CourseConfig == nil {
		return nil
	}
	return course.Gradebook.CourseConfig.ProgressionRequirements
}

func (e *Engine) gradebookItem(course *models.Course, studentEmail, itemID string) (models.GradebookItem, bool) {
	if course == nil || course.Gradebook == nil || len(course.Gradebook.Students) == 0 {
		return models.GradebookItem{}, false
	}
	items, ok := course.Gradebook.Students[SanitizeStudentEmail(studentEmail)]
	if !ok {
		return models.GradebookItem{}, false
	}
	item, ok := items[itemID]
	return item, ok
}
