package gradebook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

const testStudent = "student@school.ca"

func sessionCourse(sessions map[string]models.ExamSession) *models.Course {
	return &models.Course{
		Gradebook: &models.GradebookDoc{
			CourseConfig: &models.CourseConfig{
				Gradebook: &models.GradebookStructure{
					ItemStructure: map[string]models.ItemConfig{
						"assignment_l1_1": {
							Type: models.ItemTypeAssignment,
							Questions: []models.QuestionConfig{
								{QuestionID: "q1", Points: 5},
								{QuestionID: "q2", Points: 5},
							},
						},
					},
				},
			},
		},
		ExamSessions: sessions,
	}
}

func completedSession(itemID string, score, max, percentage float64, completedAt int64) models.ExamSession {
	return models.ExamSession{
		ExamItemID:  itemID,
		Status:      models.SessionStatusCompleted,
		CreatedAt:   completedAt - 1000,
		CompletedAt: completedAt,
		FinalResults: &models.SessionResults{
			Score:          score,
			MaxScore:       max,
			Percentage:     percentage,
			TotalQuestions: 2,
			CompletedAt:    completedAt,
		},
	}
}

func TestScoreSessionNoSessions(t *testing.T) {
	engine := NewEngine(nil)
	course := sessionCourse(nil)

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.SessionsCount)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, models.SourceSession, result.Source)
}

func TestScoreSessionInProgress(t *testing.T) {
	engine := NewEngine(nil)
	answer := json.RawMessage(`"b"`)
	course := sessionCourse(map[string]models.ExamSession{
		"student@school,ca_assignment_l1_1_1": {
			ExamItemID: "assignment_l1_1",
			Status:     models.SessionStatusInProgress,
			CreatedAt:  1000,
			Responses:  map[string]json.RawMessage{"q1": answer, "q2": answer},
			Questions: []models.SessionQuestion{
				{QuestionID: "q1"}, {QuestionID: "q2"}, {QuestionID: "q3"}, {QuestionID: "q4"},
			},
		},
	})

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 50.0, result.SessionProgress)
	assert.Equal(t, models.SessionStatusInProgress, result.SessionStatus)
	assert.Equal(t, 1, result.SessionsCount)
	assert.Equal(t, 0, result.CompletedSessionsCount)
}

func TestScoreSessionTakeHighest(t *testing.T) {
	engine := NewEngine(nil)
	course := sessionCourse(map[string]models.ExamSession{
		"student@school,ca_assignment_l1_1_1": completedSession("assignment_l1_1", 7, 10, 70, 1000),
		"student@school,ca_assignment_l1_1_2": completedSession("assignment_l1_1", 9, 10, 90, 2000),
	})

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 90.0, result.Percentage)
	assert.Equal(t, 9.0, result.Score)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, models.StrategyTakeHighest, result.Strategy)
	assert.Equal(t, 2, result.CompletedSessionsCount)
}

func TestScoreSessionTeacherOverrideWins(t *testing.T) {
	engine := NewEngine(nil)
	override := completedSession("assignment_l1_1", 4, 10, 40, 3000)
	override.IsTeacherCreated = true
	override.UseAsManualGrade = true
	course := sessionCourse(map[string]models.ExamSession{
		"student@school,ca_assignment_l1_1_1": completedSession("assignment_l1_1", 9, 10, 90, 1000),
		"student@school,ca_assignment_l1_1_2": completedSession("assignment_l1_1", 10, 10, 100, 2000),
		"student@school,ca_assignment_l1_1_t": override,
	})

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 40.0, result.Percentage)
	assert.Equal(t, models.StrategyTeacherManual, result.Strategy)
	assert.True(t, result.IsTeacherGraded)
	// Attempted still reflects genuine student attempts.
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 3, result.SessionsCount)
}

func TestScoreSessionAverage(t *testing.T) {
	engine := NewEngine(nil)
	course := sessionCourse(map[string]models.ExamSession{
		"student@school,ca_assignment_l1_1_1": completedSession("assignment_l1_1", 6, 10, 60, 1000),
		"student@school,ca_assignment_l1_1_2": completedSession("assignment_l1_1", 8, 10, 80, 2000),
		"student@school,ca_assignment_l1_1_3": completedSession("assignment_l1_1", 10, 10, 100, 3000),
	})
	structure := itemStructureOf(course)
	cfg := structure["assignment_l1_1"]
	cfg.AssessmentSettings = &models.AssessmentSettings{SessionScoring: models.StrategyAverage}
	structure["assignment_l1_1"] = cfg

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 80.0, result.Percentage)
	assert.Equal(t, 8.0, result.Score)
	assert.Equal(t, 10.0, result.Total)
	assert.Equal(t, models.StrategyAverage, result.Strategy)
}

func TestScoreSessionLatest(t *testing.T) {
	engine := NewEngine(nil)
	course := sessionCourse(map[string]models.ExamSession{
		"student@school,ca_assignment_l1_1_1": completedSession("assignment_l1_1", 10, 10, 100, 1000),
		"student@school,ca_assignment_l1_1_2": completedSession("assignment_l1_1", 6, 10, 60, 2000),
	})
	structure := itemStructureOf(course)
	cfg := structure["assignment_l1_1"]
	cfg.AssessmentSettings = &models.AssessmentSettings{SessionScoring: models.StrategyLatest}
	structure["assignment_l1_1"] = cfg

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 60.0, result.Percentage)
	assert.Equal(t, models.StrategyLatest, result.Strategy)
}

func TestScoreSessionExcludesMalformed(t *testing.T) {
	engine := NewEngine(nil)
	malformed := models.ExamSession{
		ExamItemID:  "assignment_l1_1",
		Status:      models.SessionStatusCompleted,
		CompletedAt: 5000,
	}
	course := sessionCourse(map[string]models.ExamSession{
		"student@school,ca_assignment_l1_1_1": completedSession("assignment_l1_1", 7, 10, 70, 1000),
		"student@school,ca_assignment_l1_1_2": malformed,
	})

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 70.0, result.Percentage)
	assert.Equal(t, 1, result.CompletedSessionsCount)
	assert.Equal(t, 2, result.SessionsCount)
}

func TestScoreSessionIgnoresOtherStudentsAndItems(t *testing.T) {
	engine := NewEngine(nil)
	course := sessionCourse(map[string]models.ExamSession{
		"other@school,ca_assignment_l1_1_1":   completedSession("assignment_l1_1", 10, 10, 100, 1000),
		"student@school,ca_assignment_l2_1_1": completedSession("assignment_l2_1", 10, 10, 100, 1000),
	})

	result := engine.ScoreSession("assignment_l1_1", course, testStudent)

	assert.Equal(t, 0, result.SessionsCount)
	assert.Equal(t, 0.0, result.Score)
}
