package models

// ItemType classifies gradable course items.
type ItemType string

const (
	ItemTypeLesson     ItemType = "lesson"
	ItemTypeAssignment ItemType = "assignment"
	ItemTypeExam       ItemType = "exam"
	ItemTypeQuiz       ItemType = "quiz"
	ItemTypeLab        ItemType = "lab"
	ItemTypeProject    ItemType = "project"
)

// Course is an assembled snapshot of the course documents the scoring
// engine reads. The engine never mutates it; callers re-fetch and
// re-invoke when the underlying documents change.
type Course struct {
	Gradebook    *GradebookDoc          `json:"gradebook,omitempty"`
	Grades       *GradesDoc             `json:"grades,omitempty"`
	Assessments  map[string]Submission  `json:"assessments,omitempty"`
	ExamSessions map[string]ExamSession `json:"examSessions,omitempty"`
	Outline      []CourseItemRef        `json:"outline,omitempty"`
}

// GradebookDoc holds course-level gradebook configuration plus the
// per-student item ledger, keyed by sanitized student email.
type GradebookDoc struct {
	CourseConfig *CourseConfig                       `json:"courseConfig,omitempty"`
	Students     map[string]map[string]GradebookItem `json:"students,omitempty"`
}

// CourseConfig mirrors the courseConfig document subtree.
type CourseConfig struct {
	Gradebook               *GradebookStructure      `json:"gradebook,omitempty"`
	ProgressionRequirements *ProgressionRequirements `json:"progressionRequirements,omitempty"`
}

// GradebookStructure contains the authoritative item configuration map.
// An item absent from ItemStructure cannot be scored even if it appears
// in the live course outline.
type GradebookStructure struct {
	ItemStructure map[string]ItemConfig `json:"itemStructure,omitempty"`
}

// ItemConfig describes one configured gradable item.
type ItemConfig struct {
	Type               ItemType            `json:"type"`
	Title              string              `json:"title,omitempty"`
	Questions          []QuestionConfig    `json:"questions,omitempty"`
	AssessmentSettings *AssessmentSettings `json:"assessmentSettings,omitempty"`
	Completed          bool                `json:"completed,omitempty"`
}

// QuestionConfig describes a single question within an item.
type QuestionConfig struct {
	QuestionID string  `json:"questionId"`
	Points     float64 `json:"points"`
	Title      string  `json:"title,omitempty"`
}

// AssessmentSettings carries per-item scoring options.
type AssessmentSettings struct {
	SessionScoring SessionStrategy `json:"sessionScoring,omitempty"`
}

// GradesDoc is the flat per-student grade record. Presence of a
// question key (even with value 0) means grading occurred.
type GradesDoc struct {
	Assessments map[string]float64 `json:"assessments,omitempty"`
}

// Submission is a raw assessment submission record, used both for
// attempt detection and answer review.
type Submission struct {
	Status         string            `json:"status,omitempty"`
	LastSubmission *SubmissionDetail `json:"lastSubmission,omitempty"`
	SubmittedAt    int64             `json:"submittedAt,omitempty"`
	Attempts       int               `json:"attempts,omitempty"`
}

// SubmissionDetail records the latest answer for a question.
type SubmissionDetail struct {
	Answer          string `json:"answer,omitempty"`
	Timestamp       int64  `json:"timestamp,omitempty"`
	IsCorrect       bool   `json:"isCorrect,omitempty"`
	CorrectOptionID string `json:"correctOptionId,omitempty"`
	Feedback        string `json:"feedback,omitempty"`
}

// CourseItemRef identifies an item in the live course outline, which
// may list items not yet present in the gradebook item structure.
type CourseItemRef struct {
	ItemID string   `json:"itemId"`
	Type   ItemType `json:"type"`
	Title  string   `json:"title,omitempty"`
}

// CourseValidation reports whether the minimum configuration needed for
// scoring is present in a course snapshot.
type CourseValidation struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
}
