package gradebook

import "github.com/rtdacademy/gradebook-api/internal/models"

// UseSessionScoring decides whether an item is scored from exam
// sessions rather than individual question grades. The two paths are
// mutually exclusive per item.
func (e *Engine) UseSessionScoring(itemID string, course *models.Course) bool {
	cfg := e.ResolveItemConfig(itemID, itemStructureOf(course))
	if cfg == nil {
		return false
	}
	return usesSessionScoring(*cfg)
}

func usesSessionScoring(cfg models.ItemConfig) bool {
	if cfg.AssessmentSettings != nil && cfg.AssessmentSettings.SessionScoring != "" {
		return true
	}
	switch cfg.Type {
	case models.ItemTypeAssignment, models.ItemTypeExam, models.ItemTypeQuiz:
		return true
	}
	return false
}

// SessionStrategyFor returns the configured aggregation strategy for an
// item, defaulting to take-highest.
func SessionStrategyFor(cfg *models.ItemConfig) models.SessionStrategy {
	if cfg != nil && cfg.AssessmentSettings != nil {
		switch s := cfg.AssessmentSettings.SessionScoring; s {
		case models.StrategyTakeHighest, models.StrategyLatest, models.StrategyAverage:
			return s
		}
	}
	return models.StrategyTakeHighest
}
