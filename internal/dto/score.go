package dto

import "github.com/rtdacademy/gradebook-api/internal/models"

// ItemScore is one computed item result enriched with its configured
// identity and completion state.
type ItemScore struct {
	ItemID    string          `json:"itemId"`
	Title     string          `json:"title,omitempty"`
	Type      models.ItemType `json:"type"`
	Completed bool            `json:"completed"`

	Result models.ItemScoreResult `json:"result"`
}

// CompletionStatus reports completion for a single item together with
// the threshold that was applied.
type CompletionStatus struct {
	ItemID    string                    `json:"itemId"`
	Completed bool                      `json:"completed"`
	Criteria  models.CompletionCriteria `json:"criteria"`
}

// StudentSummary is the full gradebook view for one student in one
// course: every configured item plus per-category rollups.
type StudentSummary struct {
	CourseID     string                                    `json:"courseId"`
	StudentEmail string                                    `json:"studentEmail"`
	Items        []ItemScore                               `json:"items"`
	Categories   map[models.ItemType]models.CategoryTotals `json:"categories"`
	GeneratedAt  int64                                     `json:"generatedAt"`
}

// ApplyOverrideRequest sets a manual score on a non-session item.
type ApplyOverrideRequest struct {
	Score *float64 `json:"score" binding:"required"`
	Total *float64 `json:"total" binding:"required"`
}
