package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

func rollupCourse() *models.Course {
	return &models.Course{
		Gradebook: &models.GradebookDoc{
			CourseConfig: &models.CourseConfig{
				Gradebook: &models.GradebookStructure{
					ItemStructure: map[string]models.ItemConfig{
						"lesson_1": {
							Type: models.ItemTypeLesson,
							Questions: []models.QuestionConfig{
								{QuestionID: "a", Points: 1},
								{QuestionID: "b", Points: 1},
							},
						},
						"lesson_2": {
							Type: models.ItemTypeLesson,
							Questions: []models.QuestionConfig{
								{QuestionID: "c", Points: 1},
								{QuestionID: "d", Points: 1},
							},
						},
						// Placeholder with no questions yet: must not
						// enter any denominator.
						"lesson_3": {Type: models.ItemTypeLesson},
					},
				},
			},
		},
		Grades: &models.GradesDoc{Assessments: map[string]float64{
			"a": 1, // lesson_1: 1/2, complete at the 50% fallback
			"c": 1, "d": 1, // lesson_2: 2/2
		}},
	}
}

func TestRollupByCategoryTotals(t *testing.T) {
	engine := NewEngine(nil)

	rollup := engine.RollupByCategory(rollupCourse(), testStudent, nil)

	lessons, ok := rollup[models.ItemTypeLesson]
	require.True(t, ok)
	assert.Equal(t, 3.0, lessons.Score)
	assert.Equal(t, 4.0, lessons.Total)
	assert.Equal(t, 2, lessons.ItemCount)
	assert.Equal(t, 2, lessons.TotalCount)
	assert.Equal(t, 2, lessons.AttemptedCount)
	assert.Equal(t, 2, lessons.CompletedCount)
	assert.Equal(t, 75.0, lessons.Percentage)
	require.NotNil(t, lessons.AttemptedPercentage)
	assert.Equal(t, 75.0, *lessons.AttemptedPercentage)
	assert.Equal(t, 100.0, lessons.CompletionPercentage)
}

func TestRollupByCategoryPadsFromOutline(t *testing.T) {
	engine := NewEngine(nil)
	outline := []models.CourseItemRef{
		{ItemID: "lesson_1", Type: models.ItemTypeLesson},
		{ItemID: "lesson_2", Type: models.ItemTypeLesson},
		{ItemID: "lesson_new", Type: models.ItemTypeLesson},
	}

	rollup := engine.RollupByCategory(rollupCourse(), testStudent, outline)

	lessons := rollup[models.ItemTypeLesson]
	// One outline item beyond the configured two: total padded by the
	// category's 2-point average.
	assert.Equal(t, 6.0, lessons.Total)
	assert.Equal(t, 3, lessons.TotalCount)
	assert.Equal(t, 2, lessons.ItemCount)
	assert.Equal(t, 50.0, lessons.Percentage)
	assert.InDelta(t, 66.67, lessons.CompletionPercentage, 0.01)
}

func TestRollupByCategoryDeterministic(t *testing.T) {
	engine := NewEngine(nil)
	course := rollupCourse()

	first := engine.RollupByCategory(course, testStudent, nil)
	second := engine.RollupByCategory(course, testStudent, nil)

	assert.Equal(t, first, second)
}
