package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

func TestScoreIndividualGradedAndUngraded(t *testing.T) {
	engine := NewEngine(nil)
	cfg := &models.ItemConfig{
		Type: models.ItemTypeLesson,
		Questions: []models.QuestionConfig{
			{QuestionID: "a", Points: 1},
			{QuestionID: "b", Points: 1},
		},
	}

	result := engine.ScoreIndividual(cfg, map[string]float64{"a": 1}, nil)

	assert.True(t, result.Valid)
	assert.Equal(t, models.SourceIndividual, result.Source)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 2.0, result.Total)
	assert.Equal(t, 50.0, result.Percentage)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 2, result.TotalQuestions)
}

func TestScoreIndividualSubmittedButUngraded(t *testing.T) {
	engine := NewEngine(nil)
	cfg := &models.ItemConfig{
		Type:      models.ItemTypeLab,
		Questions: []models.QuestionConfig{{QuestionID: "report", Points: 10}},
	}
	assessments := map[string]models.Submission{
		"report": {Status: "submitted", Attempts: 1},
	}

	result := engine.ScoreIndividual(cfg, nil, assessments)

	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 10.0, result.Total)
}

func TestScoreIndividualZeroGradeCountsAsAttempted(t *testing.T) {
	engine := NewEngine(nil)
	cfg := &models.ItemConfig{
		Questions: []models.QuestionConfig{{QuestionID: "a", Points: 2}},
	}

	result := engine.ScoreIndividual(cfg, map[string]float64{"a": 0}, nil)

	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 0.0, result.Score)
}

func TestScoreIndividualNoQuestionsIsInvalid(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.ScoreIndividual(&models.ItemConfig{}, map[string]float64{"a": 1}, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, 0.0, result.Total)
}

func TestScoreIndividualUnsetPointsDefaultToOne(t *testing.T) {
	engine := NewEngine(nil)
	cfg := &models.ItemConfig{
		Questions: []models.QuestionConfig{
			{QuestionID: "a"},
			{QuestionID: "b", Points: 3},
		},
	}

	result := engine.ScoreIndividual(cfg, map[string]float64{"a": 1, "b": 3}, nil)

	assert.Equal(t, 4.0, result.Total)
	assert.Equal(t, 100.0, result.Percentage)
}

func TestScoreIndividualDeterministic(t *testing.T) {
	engine := NewEngine(nil)
	cfg := &models.ItemConfig{
		Questions: []models.QuestionConfig{
			{QuestionID: "a", Points: 1.5},
			{QuestionID: "b", Points: 2.5},
			{QuestionID: "c", Points: 1},
		},
	}
	grades := map[string]float64{"a": 1.5, "c": 0.5}

	first := engine.ScoreIndividual(cfg, grades, nil)
	second := engine.ScoreIndividual(cfg, grades, nil)

	assert.Equal(t, first, second)
}
