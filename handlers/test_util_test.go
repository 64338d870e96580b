package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

// setupDB points the package-level database handle at a fresh in-memory
// SQLite database.
func setupDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("setupDB() open failed: %v", err)
	}
	// one connection, or each pooled conn would see its own empty :memory: db
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("setupDB() pool access failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("setupDB() migrate failed: %v", err)
	}
	database.DB = db
}

func seedSection(t *testing.T, id, name string) models.Section {
	t.Helper()
	s := models.Section{ID: id, Name: name}
	if err := database.DB.Create(&s).Error; err != nil {
		t.Fatalf("seedSection(%q) failed: %v", id, err)
	}
	return s
}

func seedStudent(t *testing.T, first, last, sectionID string) models.Student {
	t.Helper()
	s := models.Student{FirstName: first, LastName: last, SectionID: sectionID}
	if err := database.DB.Create(&s).Error; err != nil {
		t.Fatalf("seedStudent(%q %q) failed: %v", first, last, err)
	}
	return s
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return b
}

func newRequest(e *echo.Echo, method, path string, data ...[]byte) (echo.Context, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	return ctx, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decodeBody failed: %v (body: %s)", err, rec.Body.String())
	}
	return out
}

func countMarks(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := database.DB.Model(&models.AttendanceMark{}).Count(&n).Error; err != nil {
		t.Fatalf("countMarks failed: %v", err)
	}
	return n
}

func loadMark(t *testing.T, studentID uint, date string) models.AttendanceMark {
	t.Helper()
	var m models.AttendanceMark
	if err := database.DB.Where("student_id = ? AND date = ?", studentID, date).First(&m).Error; err != nil {
		t.Fatalf("loadMark(%d, %s) failed: %v", studentID, date, err)
	}
	return m
}
