package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStudentLister struct {
	keys []string
}

func (m *mockStudentLister) ListStudentKeys(_ context.Context, _ string) ([]string, error) {
	return m.keys, nil
}

func TestExportServiceCourseReportCSV(t *testing.T) {
	reader := &mockCourseReader{course: scoreTestCourse()}
	scores := NewScoreService(reader, nil, nil, nil, nil)
	lister := &mockStudentLister{keys: []string{"jane@x,ca"}}
	svc := NewExportService(lister, scores, nil, nil, nil)

	payload, err := svc.CourseReport(context.Background(), "course-1", ReportFormatCSV)
	require.NoError(t, err)

	report := string(payload)
	assert.True(t, strings.HasPrefix(report, "Student,Category,Score,Total,Percentage"))
	assert.Contains(t, report, "jane@x.ca,lesson,2.00,2.00,100.0%")
}

func TestExportServiceCourseReportPDF(t *testing.T) {
	reader := &mockCourseReader{course: scoreTestCourse()}
	scores := NewScoreService(reader, nil, nil, nil, nil)
	lister := &mockStudentLister{keys: []string{"jane@x,ca"}}
	svc := NewExportService(lister, scores, nil, nil, nil)

	payload, err := svc.CourseReport(context.Background(), "course-1", ReportFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestExportServiceSkipsFailingStudents(t *testing.T) {
	// Course fetch fails for every student; the report still renders
	// with headers only.
	reader := &mockCourseReader{}
	scores := NewScoreService(reader, nil, nil, nil, nil)
	lister := &mockStudentLister{keys: []string{"gone@x,ca"}}
	svc := NewExportService(lister, scores, nil, nil, nil)

	payload, err := svc.CourseReport(context.Background(), "course-1", ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(string(payload)), "\n")+1)
}

func TestParseReportFormat(t *testing.T) {
	format, err := ParseReportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ReportFormatCSV, format)

	format, err = ParseReportFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, ReportFormatPDF, format)

	_, err = ParseReportFormat("xlsx")
	require.Error(t, err)
}
