package gradebook

import "github.com/rtdacademy/gradebook-api/internal/models"

// fallbackCriteria applies when neither a per-item override nor a
// per-type default is configured.
var fallbackCriteria = models.CompletionCriteria{MinimumPercentage: 50}

// completionRule inspects one source of completion truth. A rule
// returns (decision, true) to settle the question or (false, false) to
// defer to the next rule.
type completionRule func(e *Engine, itemID string, cfg *models.ItemConfig, course *models.Course, studentEmail string) (bool, bool)

// Ordered by precedence: manual flags bypass all score logic, the
// structure-level flag is a course-author shortcut, and the threshold
// check is the general case.
var completionRules = []completionRule{
	manualStatusRule,
	structureFlagRule,
	thresholdRule,
}

// IsComplete reports whether a student has completed an item.
// Unresolvable items are never complete.
func (e *Engine) IsComplete(itemID string, course *models.Course, studentEmail string) bool {
	cfg := e.ResolveItemConfig(itemID, itemStructureOf(course))
	if cfg == nil {
		return false
	}
	for _, rule := range completionRules {
		if done, ok := rule(e, itemID, cfg, course, studentEmail); ok {
			return done
		}
	}
	return false
}

func manualStatusRule(e *Engine, itemID string, _ *models.ItemConfig, course *models.Course, studentEmail string) (bool, bool) {
	item, ok := e.gradebookItem(course, studentEmail, itemID)
	if !ok {
		return false, false
	}
	switch item.Status {
	case models.ItemStatusCompleted, models.ItemStatusManuallyGraded:
		return true, true
	}
	return false, false
}

func structureFlagRule(_ *Engine, _ string, cfg *models.ItemConfig, _ *models.Course, _ string) (bool, bool) {
	if cfg.Completed {
		return true, true
	}
	return false, false
}

func thresholdRule(e *Engine, itemID string, cfg *models.ItemConfig, course *models.Course, studentEmail string) (bool, bool) {
	result := e.ScoreItem(itemID, course, studentEmail)
	if !result.Valid {
		return false, true
	}

	criteria := criteriaFor(itemID, cfg.Type, progressionOf(course))
	if criteria.RequireAllQuestions {
		if result.TotalQuestions == 0 || result.Attempted < result.TotalQuestions {
			return false, true
		}
	}
	return result.Percentage >= criteria.MinimumPercentage, true
}

// CompletionCriteriaFor reports the effective threshold for an item so
// callers can surface it alongside the completion decision.
func (e *Engine) CompletionCriteriaFor(itemID string, course *models.Course) models.CompletionCriteria {
	cfg := e.ResolveItemConfig(itemID, itemStructureOf(course))
	if cfg == nil {
		return fallbackCriteria
	}
	return criteriaFor(itemID, cfg.Type, progressionOf(course))
}

// criteriaFor resolves the effective completion threshold: per-item
// override, then per-type default, then the hard fallback.
func criteriaFor(itemID string, itemType models.ItemType, reqs *models.ProgressionRequirements) models.CompletionCriteria {
	if reqs != nil {
		if c, ok := reqs.LessonOverrides[itemID]; ok {
			return c
		}
		if c, ok := reqs.DefaultCriteria[itemType]; ok {
			return c
		}
	}
	return fallbackCriteria
}
