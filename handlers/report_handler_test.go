package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestDateRange(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	start, end := dateRange("today")
	assert.Equal(t, today, start)
	assert.Equal(t, today, end)

	start, end = dateRange("week")
	assert.LessOrEqual(t, start, today)
	assert.GreaterOrEqual(t, end, today)

	start, end = dateRange("month")
	assert.Equal(t, today[:8]+"01", start)
	assert.GreaterOrEqual(t, end, today)

	// unknown periods fall back to today
	start, end = dateRange("year")
	assert.Equal(t, today, start)
	assert.Equal(t, today, end)
}

func TestOverview(t *testing.T) {
	setupDB(t)
	seedSection(t, "TCS-1", "A")
	seedSection(t, "TCS-2", "B")
	s1 := seedStudent(t, "Yassine", "Mansouri", "TCS-1")
	s2 := seedStudent(t, "Amine", "Kaddour", "TCS-1")
	s3 := seedStudent(t, "Nada", "Belkacem", "TCS-2")
	today := time.Now().Format("2006-01-02")

	postAttendance(t,
		map[string]any{"studentId": s1.ID, "sectionId": "TCS-1", "date": today, "isPresent": true},
		map[string]any{"studentId": s2.ID, "sectionId": "TCS-1", "date": today, "isPresent": false},
		map[string]any{"studentId": s3.ID, "sectionId": "TCS-2", "date": today, "isPresent": true},
	)

	e := echo.New()
	h := NewReportHandler()
	ctx, rec := newRequest(e, http.MethodGet, "/api/attendance-reports/overview?period=today")
	assert.NoError(t, h.Overview(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	overview := body["overview"].(map[string]any)
	assert.Equal(t, float64(3), overview["totalRecords"])
	assert.Equal(t, float64(2), overview["presentCount"])
	assert.Equal(t, float64(1), overview["absentCount"])
	assert.Equal(t, float64(67), overview["attendanceRate"])

	sectionStats := body["sectionStats"].([]any)
	assert.Len(t, sectionStats, 2)

	mostAbsent := body["mostAbsentStudents"].([]any)
	assert.Len(t, mostAbsent, 1)
	top := mostAbsent[0].(map[string]any)
	assert.Equal(t, "Amine Kaddour", top["studentName"])
	assert.Equal(t, float64(1), top["absenceCount"])
}

func TestOverviewSectionFilter(t *testing.T) {
	setupDB(t)
	seedSection(t, "TCS-1", "A")
	seedSection(t, "TCS-2", "B")
	s1 := seedStudent(t, "Yassine", "Mansouri", "TCS-1")
	s3 := seedStudent(t, "Nada", "Belkacem", "TCS-2")
	today := time.Now().Format("2006-01-02")

	postAttendance(t,
		map[string]any{"studentId": s1.ID, "sectionId": "TCS-1", "date": today, "isPresent": true},
		map[string]any{"studentId": s3.ID, "sectionId": "TCS-2", "date": today, "isPresent": false},
	)

	e := echo.New()
	h := NewReportHandler()
	ctx, rec := newRequest(e, http.MethodGet, "/api/attendance-reports/overview?period=today&sectionId=A")
	assert.NoError(t, h.Overview(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	overview := decodeBody(t, rec)["overview"].(map[string]any)
	assert.Equal(t, float64(1), overview["totalRecords"])
	assert.Equal(t, float64(100), overview["attendanceRate"])
}

func TestDaily(t *testing.T) {
	setupDB(t)
	seedSection(t, "TCS-1", "A")
	s1 := seedStudent(t, "Yassine", "Mansouri", "TCS-1")
	seedStudent(t, "Amine", "Kaddour", "TCS-1")

	postAttendance(t, map[string]any{"studentId": s1.ID, "sectionId": "TCS-1", "date": "2025-09-25", "isPresent": true})

	e := echo.New()
	h := NewReportHandler()
	ctx, rec := newRequest(e, http.MethodGet, "/api/attendance-reports/daily?date=2025-09-25&sectionId=A")
	assert.NoError(t, h.Daily(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "TCS-1", body["sectionId"])
	rows := body["rows"].([]any)
	assert.Len(t, rows, 2)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["present"])
	assert.Equal(t, float64(0), summary["absent"])
	assert.Equal(t, float64(1), summary["unmarked"])

	t.Run("sectionId required", func(t *testing.T) {
		ctx, rec := newRequest(e, http.MethodGet, "/api/attendance-reports/daily?date=2025-09-25")
		assert.NoError(t, h.Daily(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
