package gradebook

import "github.com/rtdacademy/gradebook-api/internal/models"

// ScoreIndividual sums per-question points against recorded grades and
// submission presence. A grade key counts as attempted even when its
// value is zero; a submission without a grade (labs awaiting grading)
// also counts as attempted but contributes nothing until graded.
func (e *Engine) ScoreIndividual(cfg *models.ItemConfig, grades map[string]float64, assessments map[string]models.Submission) models.ItemScoreResult {
	result := models.ItemScoreResult{Source: models.SourceIndividual}
	if cfg == nil || len(cfg.Questions) == 0 {
		// No questions configured is distinct from a zero score.
		return result
	}

	result.Valid = true
	result.TotalQuestions = len(cfg.Questions)

	for _, q := range cfg.Questions {
		maxPoints := q.Points
		if maxPoints <= 0 {
			maxPoints = 1
		}
		result.Total += maxPoints

		if score, ok := grades[q.QuestionID]; ok {
			result.Attempted++
			result.Score += score
		} else if _, ok := assessments[q.QuestionID]; ok {
			result.Attempted++
		}
	}

	if result.Total > 0 {
		result.Percentage = result.Score / result.Total * 100
	}
	return result
}
