package gradebook

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rtdacademy/gradebook-api/internal/models"
)

// studentSession pairs a session with its store key and derived answer
// progress so the aggregation steps can stay free of map lookups.
type studentSession struct {
	key      string
	session  models.ExamSession
	progress float64
}

// findSessions collects the sessions belonging to one (student, item)
// pair, newest first. Ties on the effective timestamp fall back to the
// key so repeated calls walk the candidates in the same order.
func findSessions(course *models.Course, itemID, sanitizedEmail string) []studentSession {
	if course == nil || len(course.ExamSessions) == 0 {
		return nil
	}

	var found []studentSession
	for key, s := range course.ExamSessions {
		if s.ExamItemID != itemID || !strings.Contains(key, sanitizedEmail) {
			continue
		}
		var progress float64
		if total := s.QuestionCount(); total > 0 {
			progress = float64(s.AnsweredCount()) / float64(total) * 100
		}
		found = append(found, studentSession{key: key, session: s, progress: progress})
	}

	sort.Slice(found, func(i, j int) bool {
		ti, tj := found[i].session.EffectiveTimestamp(), found[j].session.EffectiveTimestamp()
		if ti != tj {
			return ti > tj
		}
		return found[i].key < found[j].key
	})
	return found
}

// ScoreSession aggregates a student's session attempts at an item into
// a single result. Precedence: a completed teacher-override session
// beats everything; otherwise completed student sessions are collapsed
// by the configured strategy; otherwise the most recent student
// session's raw progress is reported.
func (e *Engine) ScoreSession(itemID string, course *models.Course, studentEmail string) models.ItemScoreResult {
	cfg := e.ResolveItemConfig(itemID, itemStructureOf(course))
	sessions := findSessions(course, itemID, SanitizeStudentEmail(studentEmail))

	result := models.ItemScoreResult{
		Source:        models.SourceSession,
		Valid:         true,
		SessionsCount: len(sessions),
	}
	if cfg != nil {
		result.TotalQuestions = len(cfg.Questions)
		for _, q := range cfg.Questions {
			if q.Points > 0 {
				result.Total += q.Points
			} else {
				result.Total++
			}
		}
	}

	// Never started: a legitimate zero state, not an error.
	if len(sessions) == 0 {
		return result
	}

	// Teacher-override sessions substitute the grade outright, but
	// attempted still reports real student attempts for display.
	if override, ok := latestTeacherOverride(sessions); ok {
		fr := *override.session.FinalResults
		result.Score = fr.Score
		result.Total = fr.MaxScore
		result.Percentage = fr.Percentage
		result.TotalQuestions = fr.TotalQuestions
		result.Attempted = countStudentSessions(sessions)
		result.Strategy = models.StrategyTeacherManual
		result.IsTeacherGraded = true
		result.SessionStatus = models.SessionStatusCompleted
		result.CompletedSessionsCount = len(e.completedWithResults(sessions))
		return result
	}

	students := studentSessionsOf(sessions)
	completed := e.completedWithResults(students)

	result.Attempted = len(students)
	result.CompletedSessionsCount = len(completed)
	if len(students) > 0 {
		result.SessionStatus = students[0].session.Status
		result.SessionProgress = students[0].progress
	}

	// Attempts exist but none graded yet: surface raw progress.
	if len(completed) == 0 {
		return result
	}

	strategy := SessionStrategyFor(cfg)
	fr := applyStrategy(strategy, completed)
	result.Score = fr.Score
	result.Total = fr.MaxScore
	result.Percentage = fr.Percentage
	result.TotalQuestions = fr.TotalQuestions
	result.Strategy = strategy
	return result
}

func latestTeacherOverride(sessions []studentSession) (studentSession, bool) {
	for _, s := range sessions {
		if s.session.IsTeacherCreated && s.session.UseAsManualGrade &&
			s.session.Status == models.SessionStatusCompleted && s.session.FinalResults != nil {
			return s, true
		}
	}
	return studentSession{}, false
}

func countStudentSessions(sessions []studentSession) int {
	n := 0
	for _, s := range sessions {
		if !s.session.IsTeacherCreated {
			n++
		}
	}
	return n
}

func studentSessionsOf(sessions []studentSession) []studentSession {
	var out []studentSession
	for _, s := range sessions {
		if !s.session.IsTeacherCreated {
			out = append(out, s)
		}
	}
	return out
}

// completedWithResults keeps sessions eligible for score aggregation.
// A completed session with no recorded results is malformed upstream
// data: it is logged and dropped, never counted as a zero.
func (e *Engine) completedWithResults(sessions []studentSession) []studentSession {
	var out []studentSession
	for _, s := range sessions {
		if s.session.Status != models.SessionStatusCompleted {
			continue
		}
		if s.session.FinalResults == nil {
			e.logger.Warn("completed session missing final results, excluding from scoring",
				zap.String("sessionKey", s.key),
				zap.String("itemId", s.session.ExamItemID))
			continue
		}
		out = append(out, s)
	}
	return out
}

// applyStrategy collapses completed sessions (newest first) into one
// set of results. Take-highest breaks ties by keeping the first
// candidate encountered in that order, which is the most recent one.
func applyStrategy(strategy models.SessionStrategy, completed []studentSession) models.SessionResults {
	switch strategy {
	case models.StrategyLatest:
		best := completed[0]
		for _, s := range completed[1:] {
			if completedAtOf(s.session) > completedAtOf(best.session) {
				best = s
			}
		}
		return *best.session.FinalResults

	case models.StrategyAverage:
		// A synthetic result, never persisted: arithmetic means with
		// completedAt pinned to the newest of the set.
		synth := models.SessionResults{TotalQuestions: completed[0].session.FinalResults.TotalQuestions}
		for _, s := range completed {
			fr := s.session.FinalResults
			synth.Score += fr.Score
			synth.MaxScore += fr.MaxScore
			synth.Percentage += fr.Percentage
			if at := completedAtOf(s.session); at > synth.CompletedAt {
				synth.CompletedAt = at
			}
		}
		n := float64(len(completed))
		synth.Score /= n
		synth.MaxScore /= n
		synth.Percentage /= n
		return synth

	default: // take highest
		best := completed[0]
		for _, s := range completed[1:] {
			if s.session.FinalResults.Percentage > best.session.FinalResults.Percentage {
				best = s
			}
		}
		return *best.session.FinalResults
	}
}

func completedAtOf(s models.ExamSession) int64 {
	if s.CompletedAt > 0 {
		return s.CompletedAt
	}
	if s.FinalResults != nil {
		return s.FinalResults.CompletedAt
	}
	return 0
}
