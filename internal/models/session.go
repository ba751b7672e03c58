package models

import "encoding/json"

// SessionStatus is the lifecycle state of an exam session.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusExited     SessionStatus = "exited"
	SessionStatusCompleted  SessionStatus = "completed"
)

// SessionStrategy is the rule for collapsing multiple completed
// sessions into one score.
type SessionStrategy string

const (
	StrategyTakeHighest SessionStrategy = "takeHighest"
	StrategyLatest      SessionStrategy = "latest"
	StrategyAverage     SessionStrategy = "average"

	// StrategyTeacherManual is only ever reported on results, when a
	// teacher-created override session supplied the score.
	StrategyTeacherManual SessionStrategy = "teacher_manual"
)

// ExamSession is one attempt record at a session-scored item. A session
// belongs to exactly one (student, item) pair: the session key embeds
// the sanitized student email, and ExamItemID names the item.
// Timestamps are epoch milliseconds as stored by the document store.
type ExamSession struct {
	ExamItemID       string                     `json:"examItemId"`
	Status           SessionStatus              `json:"status"`
	CreatedAt        int64                      `json:"createdAt,omitempty"`
	LastUpdated      int64                      `json:"lastUpdated,omitempty"`
	CompletedAt      int64                      `json:"completedAt,omitempty"`
	Responses        map[string]json.RawMessage `json:"responses,omitempty"`
	Questions        []SessionQuestion          `json:"questions,omitempty"`
	FinalResults     *SessionResults            `json:"finalResults,omitempty"`
	IsTeacherCreated bool                       `json:"isTeacherCreated,omitempty"`
	UseAsManualGrade bool                       `json:"useAsManualGrade,omitempty"`
}

// SessionQuestion is one question served within a session.
type SessionQuestion struct {
	QuestionID string  `json:"questionId"`
	Points     float64 `json:"points,omitempty"`
}

// SessionResults holds the graded outcome of a completed session. A
// session whose status is completed but whose results are missing is
// malformed and must not contribute to scoring.
type SessionResults struct {
	Score           float64                 `json:"score"`
	MaxScore        float64                 `json:"maxScore"`
	Percentage      float64                 `json:"percentage"`
	TotalQuestions  int                     `json:"totalQuestions"`
	CompletedAt     int64                   `json:"completedAt,omitempty"`
	QuestionResults []SessionQuestionResult `json:"questionResults,omitempty"`
}

// SessionQuestionResult records a per-question outcome within a
// completed session, kept for answer review.
type SessionQuestionResult struct {
	QuestionID string  `json:"questionId"`
	Points     float64 `json:"points"`
	Earned     float64 `json:"earned"`
	IsCorrect  bool    `json:"isCorrect"`
}

// EffectiveTimestamp returns the timestamp used for recency ordering:
// lastUpdated, falling back to completedAt, then createdAt.
func (s ExamSession) EffectiveTimestamp() int64 {
	if s.LastUpdated > 0 {
		return s.LastUpdated
	}
	if s.CompletedAt > 0 {
		return s.CompletedAt
	}
	return s.CreatedAt
}

// AnsweredCount reports how many questions have a stored response.
func (s ExamSession) AnsweredCount() int {
	return len(s.Responses)
}

// QuestionCount reports the number of questions served in the session.
func (s ExamSession) QuestionCount() int {
	return len(s.Questions)
}
