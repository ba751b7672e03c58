package gradebook

import "github.com/rtdacademy/gradebook-api/internal/models"

const itemStructurePath = "Gradebook.courseConfig.gradebook.itemStructure"

// ValidateCourse checks that the minimum configuration needed for any
// score calculation is present. Document reads are eventually
// consistent, so a missing subtree usually means the snapshot has not
// finished loading; downstream callers propagate zero-valued invalid
// results instead of failing.
func (e *Engine) ValidateCourse(course *models.Course) models.CourseValidation {
	if itemStructureOf(course) == nil {
		return models.CourseValidation{Missing: []string{itemStructurePath}}
	}
	return models.CourseValidation{Valid: true}
}
