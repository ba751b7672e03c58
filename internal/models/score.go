package models

// ScoreSource identifies which scoring path produced a result.
type ScoreSource string

const (
	SourceIndividual ScoreSource = "individual"
	SourceSession    ScoreSource = "session"
	SourceUnknown    ScoreSource = "unknown"
)

// ItemScoreResult is the engine's primary output: a derived, ephemeral
// value recomputed on every call and never stored.
type ItemScoreResult struct {
	Score          float64     `json:"score"`
	Total          float64     `json:"total"`
	Percentage     float64     `json:"percentage"`
	Attempted      int         `json:"attempted"`
	TotalQuestions int         `json:"totalQuestions"`
	Valid          bool        `json:"valid"`
	Source         ScoreSource `json:"source"`

	Strategy               SessionStrategy `json:"strategy,omitempty"`
	SessionsCount          int             `json:"sessionsCount,omitempty"`
	CompletedSessionsCount int             `json:"completedSessionsCount,omitempty"`
	SessionStatus          SessionStatus   `json:"sessionStatus,omitempty"`
	SessionProgress        float64         `json:"sessionProgress,omitempty"`
	IsTeacherGraded        bool            `json:"isTeacherGraded,omitempty"`
}

// CompletionCriteria is the threshold configuration for marking an item
// complete.
type CompletionCriteria struct {
	MinimumPercentage   float64 `json:"minimumPercentage"`
	RequireAllQuestions bool    `json:"requireAllQuestions"`
}

// ProgressionRequirements configures completion thresholds per item
// type, with optional per-item overrides.
type ProgressionRequirements struct {
	DefaultCriteria map[ItemType]CompletionCriteria `json:"defaultCriteria,omitempty"`
	LessonOverrides map[string]CompletionCriteria   `json:"lessonOverrides,omitempty"`
}

// GradebookItem is the persisted per-student ledger entry for one item.
// It carries manual completion status and the item-level manual score
// override. OriginalScore/OriginalTotal are captured once, on the first
// override, so the override can be reverted losslessly.
type GradebookItem struct {
	Status           string   `json:"status,omitempty"`
	Score            float64  `json:"score,omitempty"`
	Total            float64  `json:"total,omitempty"`
	IsManualOverride bool     `json:"isManualOverride,omitempty"`
	ManualScore      *float64 `json:"manualScore,omitempty"`
	ManualTotal      *float64 `json:"manualTotal,omitempty"`
	OriginalScore    *float64 `json:"originalScore,omitempty"`
	OriginalTotal    *float64 `json:"originalTotal,omitempty"`
	ManualSetBy      string   `json:"manualSetBy,omitempty"`
	ManualSetAt      int64    `json:"manualSetAt,omitempty"`
}

// Gradebook item statuses that mark an item complete regardless of any
// score threshold.
const (
	ItemStatusCompleted      = "completed"
	ItemStatusManuallyGraded = "manually_graded"
)

// CategoryTotals aggregates item results for one item type.
type CategoryTotals struct {
	Score          float64 `json:"score"`
	Total          float64 `json:"total"`
	ItemCount      int     `json:"itemCount"`
	TotalCount     int     `json:"totalCount"`
	AttemptedCount int     `json:"attemptedCount"`
	CompletedCount int     `json:"completedCount"`

	Percentage           float64  `json:"percentage"`
	AttemptedPercentage  *float64 `json:"attemptedPercentage,omitempty"`
	CompletionPercentage float64  `json:"completionPercentage"`
}
