package gradebook

import (
	"go.uber.org/zap"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

// ScoreItem computes the score for one (student, item) pair, picking
// the session or individual path and applying any persisted item-level
// manual override. It never returns an error: unscorable inputs come
// back as an invalid zero result.
func (e *Engine) ScoreItem(itemID string, course *models.Course, studentEmail string) models.ItemScoreResult {
	if validation := e.ValidateCourse(course); !validation.Valid {
		e.logger.Warn("course snapshot not scoreable",
			zap.Strings("missing", validation.Missing))
		return models.ItemScoreResult{Source: models.SourceUnknown}
	}

	cfg := e.ResolveItemConfig(itemID, itemStructureOf(course))
	if cfg == nil {
		return models.ItemScoreResult{Source: models.SourceUnknown}
	}

	if usesSessionScoring(*cfg) {
		return e.ScoreSession(itemID, course, studentEmail)
	}

	// Item-level overrides only apply on the individual path; session
	// items are overridden through teacher-created sessions instead.
	if item, ok := e.gradebookItem(course, studentEmail, itemID); ok {
		if item.IsManualOverride && item.ManualScore != nil && item.ManualTotal != nil {
			return manualOverrideResult(cfg, item)
		}
	}

	var grades map[string]float64
	if course.Grades != nil {
		grades = course.Grades.Assessments
	}
	return e.ScoreIndividual(cfg, grades, course.Assessments)
}

func manualOverrideResult(cfg *models.ItemConfig, item models.GradebookItem) models.ItemScoreResult {
	result := models.ItemScoreResult{
		Score:           *item.ManualScore,
		Total:           *item.ManualTotal,
		Attempted:       len(cfg.Questions),
		TotalQuestions:  len(cfg.Questions),
		Valid:           true,
		Source:          models.SourceIndividual,
		IsTeacherGraded: true,
	}
	if result.Total > 0 {
		result.Percentage = result.Score / result.Total * 100
	}
	return result
}
