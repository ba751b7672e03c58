package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rtdacademy/gradebook-api/internal/models"
	appErrors "github.com/rtdacademy/gradebook-api/pkg/errors"
)

// Document types stored in course_documents. Course-scoped documents use
// an empty student key; student-scoped documents key by sanitized email.
const (
	DocCourseConfig = "course_config"
	DocOutline      = "outline"
	DocStudentItems = "student_items"
	DocGrades       = "grades"
	DocAssessments  = "assessments"
	DocExamSessions = "exam_sessions"
)

type courseDocument struct {
	DocType    string          `db:"doc_type"`
	StudentKey string          `db:"student_key"`
	Payload    json.RawMessage `db:"payload"`
}

// CourseRepository persists course documents as JSONB payloads, one row
// per (course, document type, student) triple.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetCourse assembles the scoring snapshot for one student: the shared
// course-level documents plus the student's own documents.
func (r *CourseRepository) GetCourse(ctx context.Context, courseID, studentKey string) (*models.Course, error) {
	const query = `SELECT doc_type, student_key, payload FROM course_documents
        WHERE course_id = $1 AND (student_key = '' OR student_key = $2)`

	var docs []courseDocument
	if err := r.db.SelectContext(ctx, &docs, query, courseID, studentKey); err != nil {
		return nil, fmt.Errorf("select course documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", courseID))
	}

	course := &models.Course{Gradebook: &models.GradebookDoc{}}
	for _, doc := range docs {
		if err := r.applyDocument(course, doc, studentKey); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", doc.DocType, err)
		}
	}
	return course, nil
}

func (r *CourseRepository) applyDocument(course *models.Course, doc courseDocument, studentKey string) error {
	switch doc.DocType {
	case DocCourseConfig:
		cfg := &models.CourseConfig{}
		if err := json.Unmarshal(doc.Payload, cfg); err != nil {
			return err
		}
		course.Gradebook.CourseConfig = cfg
	case DocOutline:
		return json.Unmarshal(doc.Payload, &course.Outline)
	case DocStudentItems:
		items := map[string]models.GradebookItem{}
		if err := json.Unmarshal(doc.Payload, &items); err != nil {
			return err
		}
		if course.Gradebook.Students == nil {
			course.Gradebook.Students = map[string]map[string]models.GradebookItem{}
		}
		course.Gradebook.Students[studentKey] = items
	case DocGrades:
		grades := &models.GradesDoc{}
		if err := json.Unmarshal(doc.Payload, grades); err != nil {
			return err
		}
		course.Grades = grades
	case DocAssessments:
		return json.Unmarshal(doc.Payload, &course.Assessments)
	case DocExamSessions:
		return json.Unmarshal(doc.Payload, &course.ExamSessions)
	}
	return nil
}

// GetStudentItem loads a single gradebook ledger entry. The second
// return reports whether the entry exists.
func (r *CourseRepository) GetStudentItem(ctx context.Context, courseID, studentKey, itemID string) (models.GradebookItem, bool, error) {
	items, err := r.studentItems(ctx, r.db, courseID, studentKey, false)
	if err != nil {
		return models.GradebookItem{}, false, err
	}
	item, ok := items[itemID]
	return item, ok, nil
}

// SaveStudentItem upserts one ledger entry via read-modify-write on the
// student's items document. The row is locked for the duration of the
// transaction so concurrent override edits serialize.
func (r *CourseRepository) SaveStudentItem(ctx context.Context, courseID, studentKey, itemID string, item models.GradebookItem) error {
	return r.mutateStudentItems(ctx, courseID, studentKey, func(items map[string]models.GradebookItem) {
		items[itemID] = item
	})
}

// DeleteStudentItem removes one ledger entry.
func (r *CourseRepository) DeleteStudentItem(ctx context.Context, courseID, studentKey, itemID string) error {
	return r.mutateStudentItems(ctx, courseID, studentKey, func(items map[string]models.GradebookItem) {
		delete(items, itemID)
	})
}

func (r *CourseRepository) mutateStudentItems(ctx context.Context, courseID, studentKey string, mutate func(map[string]models.GradebookItem)) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	items, err := r.studentItems(ctx, tx, courseID, studentKey, true)
	if err != nil {
		return err
	}
	mutate(items)

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal student items: %w", err)
	}

	const upsert = `INSERT INTO course_documents (course_id, doc_type, student_key, payload, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (course_id, doc_type, student_key)
        DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, courseID, DocStudentItems, studentKey, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert student items: %w", err)
	}
	return tx.Commit()
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (r *CourseRepository) studentItems(ctx context.Context, q queryer, courseID, studentKey string, forUpdate bool) (map[string]models.GradebookItem, error) {
	query := `SELECT payload FROM course_documents
        WHERE course_id = $1 AND doc_type = $2 AND student_key = $3`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var payload json.RawMessage
	err := q.GetContext(ctx, &payload, query, courseID, DocStudentItems, studentKey)
	if err == sql.ErrNoRows {
		return map[string]models.GradebookItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select student items: %w", err)
	}

	items := map[string]models.GradebookItem{}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("unmarshal student items: %w", err)
	}
	return items, nil
}

// ListStudentKeys returns the sanitized email keys with any
// student-scoped document in a course, for report generation.
func (r *CourseRepository) ListStudentKeys(ctx context.Context, courseID string) ([]string, error) {
	const query = `SELECT DISTINCT student_key FROM course_documents
        WHERE course_id = $1 AND student_key <> '' ORDER BY student_key`

	var keys []string
	if err := r.db.SelectContext(ctx, &keys, query, courseID); err != nil {
		return nil, fmt.Errorf("list student keys: %w", err)
	}
	return keys, nil
}
