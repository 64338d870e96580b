package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/logger"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// attendanceTuple is one submitted mark. Every field arrives loosely typed
// (JSON number, id string, section display name, "true") and is coerced to a
// canonical type before the decision logic sees it, so a malformed value in
// one tuple never fails the bind for the whole batch.
type attendanceTuple struct {
	StudentID          any `json:"studentId"`
	SectionID          any `json:"sectionId"`
	Date               any `json:"date"`
	IsPresent          any `json:"isPresent"`
	ForceSectionUpdate any `json:"forceSectionUpdate"`
}

type attendanceBatch struct {
	Attendance []attendanceTuple `json:"attendance"`
}

type tupleError struct {
	Record attendanceTuple `json:"record"`
	Error  string          `json:"error"`
}

type studentSummary struct {
	ID            uint   `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	ClassOrder    int    `json:"classOrder"`
	PathwayNumber string `json:"pathwayNumber"`
}

type attendanceRecord struct {
	models.AttendanceMark
	Student  *studentSummary `json:"student,omitempty"`
	Absences int64           `json:"absences"`
}

// POST /api/attendance — body {"attendance": [tuple, ...]}.
//
// Tuples are processed independently: the response partitions the batch into
// persisted records and rejected tuples with a reason each. Each tuple's
// read-check-write runs in its own short transaction so that two concurrent
// submissions for the same (student, date) serialize instead of racing to a
// unique-constraint failure.
func (h *AttendanceHandler) Record(c echo.Context) error {
	var req attendanceBatch
	if err := c.Bind(&req); err != nil || len(req.Attendance) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Invalid data format: expected attendance[]"})
	}

	records := make([]models.AttendanceMark, 0, len(req.Attendance))
	tupleErrs := make([]tupleError, 0)
	for _, raw := range req.Attendance {
		mark, err := h.applyTuple(raw)
		if err != nil {
			if errors.Is(err, gorm.ErrInvalidDB) {
				// store unreachable: abort the whole batch
				return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Failed to save attendance", "error": err.Error()})
			}
			tupleErrs = append(tupleErrs, tupleError{Record: raw, Error: err.Error()})
			continue
		}
		records = append(records, *mark)
	}

	if len(tupleErrs) > 0 && len(records) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "No attendance records saved", "errors": tupleErrs})
	}
	status := http.StatusCreated
	if len(tupleErrs) > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, map[string]any{
		"saved":   len(records),
		"errors":  tupleErrs,
		"records": records,
	})
}

// applyTuple validates and persists a single mark. Validation failures come
// back as errors carrying the user-visible reason; the mark is written only
// when every check passes (all-or-nothing per tuple).
func (h *AttendanceHandler) applyTuple(raw attendanceTuple) (*models.AttendanceMark, error) {
	studentID, ok := asID(raw.StudentID)
	if !ok {
		return nil, fmt.Errorf("Invalid studentId: %v", raw.StudentID)
	}
	secRef := strings.TrimSpace(asString(raw.SectionID))
	if secRef == "" {
		return nil, errors.New("sectionId is required")
	}
	date := normalizeDate(asString(raw.Date))
	isPresent := asBool(raw.IsPresent)
	force := asBool(raw.ForceSectionUpdate)

	var mark *models.AttendanceMark
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		sectionID, err := resolveSectionID(tx, secRef)
		if err != nil {
			return err
		}

		var student models.Student
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("Student with id %d not found", studentID)
			}
			return err
		}
		if student.SectionID == "" {
			return fmt.Errorf("Student %d does not have an assigned section", studentID)
		}

		var existing models.AttendanceMark
		err = tx.Where("student_id = ? AND date = ?", studentID, date).First(&existing).Error
		switch {
		case err == nil:
			// Never silently change which section a recorded day is
			// attributed to: a section change must be explicit, and even
			// then only towards the student's current assigned section.
			if existing.SectionID != sectionID {
				if !force {
					logger.Get().Error().
						Uint("attendanceId", existing.ID).
						Uint("studentId", studentID).
						Str("date", date).
						Str("existingSectionId", existing.SectionID).
						Str("attemptedSectionId", sectionID).
						Msg("rejected attendance write: section change without forceSectionUpdate")
					return errors.New("Attempt to change sectionId on existing attendance without forceSectionUpdate")
				}
				if sectionID != student.SectionID {
					logger.Get().Error().
						Uint("studentId", studentID).
						Str("date", date).
						Str("attemptedSectionId", sectionID).
						Str("studentSectionId", student.SectionID).
						Msg("rejected attendance write: forced section does not match student assigned section")
					return errors.New("Requested sectionId does not match student assigned section even with forceSectionUpdate")
				}
			}
			existing.SectionID = sectionID
			existing.IsPresent = isPresent
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			mark = &existing
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			if sectionID != student.SectionID {
				logger.Get().Error().
					Uint("studentId", studentID).
					Str("date", date).
					Str("attemptedSectionId", sectionID).
					Str("studentSectionId", student.SectionID).
					Msg("rejected attendance write: new mark section does not match student assigned section")
				return errors.New("Attendance sectionId does not match student assigned section")
			}
			created := models.AttendanceMark{
				StudentID: studentID,
				SectionID: sectionID,
				Date:      date,
				IsPresent: isPresent,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			mark = &created
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return mark, nil
}

// GET /api/attendance?date=YYYY-MM-DD&sectionId=...
// sectionId also accepts a section display name. Each record is decorated
// with the student's identity and all-time absence count.
func (h *AttendanceHandler) List(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	secRef := strings.TrimSpace(c.QueryParam("sectionId"))

	tx := database.DB.Model(&models.AttendanceMark{})
	if date != "" {
		tx = tx.Where("date = ?", normalizeDate(date))
	}
	if secRef != "" {
		sectionID, err := resolveSectionID(database.DB, secRef)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
		}
		tx = tx.Where("section_id = ?", sectionID)
	}

	var rows []models.AttendanceMark
	if err := tx.Order("date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error fetching attendance"})
	}

	out := make([]attendanceRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := h.decorate(r)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error fetching attendance"})
		}
		out = append(out, rec)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AttendanceHandler) decorate(m models.AttendanceMark) (attendanceRecord, error) {
	rec := attendanceRecord{AttendanceMark: m}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", m.StudentID).Error; err == nil {
		rec.Student = &studentSummary{
			ID:            student.ID,
			FirstName:     student.FirstName,
			LastName:      student.LastName,
			ClassOrder:    student.ClassOrder,
			PathwayNumber: student.PathwayNumber,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, err
	}

	if err := database.DB.Model(&models.AttendanceMark{}).
		Where("student_id = ? AND is_present = ?", m.StudentID, false).
		Count(&rec.Absences).Error; err != nil {
		return rec, err
	}
	return rec, nil
}

// DELETE /api/attendance
// ?deleteAll=true, or ?studentId=(&date=), or ?date=(&sectionId=).
func (h *AttendanceHandler) BulkDelete(c echo.Context) error {
	if c.QueryParam("deleteAll") == "true" {
		var total int64
		if err := database.DB.Model(&models.AttendanceMark{}).Count(&total).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Failed to delete attendance records"})
		}
		if total == 0 {
			return c.JSON(http.StatusOK, map[string]any{"message": "No attendance records found to delete", "deletedCount": 0})
		}
		res := database.DB.Where("1 = 1").Delete(&models.AttendanceMark{})
		if res.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Failed to delete attendance records"})
		}
		logger.Get().Info().Int64("deletedCount", res.RowsAffected).Msg("deleted all attendance records")
		return c.JSON(http.StatusOK, map[string]any{
			"message":      fmt.Sprintf("Successfully deleted %d attendance records", res.RowsAffected),
			"deletedCount": res.RowsAffected,
		})
	}

	studentID := strings.TrimSpace(c.QueryParam("studentId"))
	date := strings.TrimSpace(c.QueryParam("date"))
	secRef := strings.TrimSpace(c.QueryParam("sectionId"))

	if studentID != "" {
		tx := database.DB.Where("student_id = ?", studentID)
		if date != "" {
			tx = tx.Where("date = ?", normalizeDate(date))
		}
		res := tx.Delete(&models.AttendanceMark{})
		if res.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Failed to delete attendance records"})
		}
		return c.JSON(http.StatusOK, map[string]any{"message": "Attendance records deleted for student", "deletedCount": res.RowsAffected})
	}

	if date == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "date is required"})
	}
	tx := database.DB.Where("date = ?", normalizeDate(date))
	msg := "Attendance records deleted for all sections"
	if secRef != "" {
		sectionID, err := resolveSectionID(database.DB, secRef)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
		}
		tx = tx.Where("section_id = ?", sectionID)
		msg = "Attendance records deleted for section"
	}
	res := tx.Delete(&models.AttendanceMark{})
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Failed to delete attendance records"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": msg, "deletedCount": res.RowsAffected})
}

// GET /api/attendance/:id
func (h *AttendanceHandler) Get(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Valid attendance record ID is required"})
	}
	var m models.AttendanceMark
	if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"message": "Attendance record not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error fetching attendance record"})
	}
	rec, err := h.decorate(m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error fetching attendance record"})
	}
	return c.JSON(http.StatusOK, rec)
}

type attendanceUpdatePayload struct {
	IsPresent *bool   `json:"isPresent"`
	SectionID any     `json:"sectionId"`
	Date      *string `json:"date"`
}

// PUT /api/attendance/:id
// A date move that would collide with another row for the same student is a
// 409 conflict.
func (h *AttendanceHandler) Update(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Valid attendance record ID is required"})
	}
	var m models.AttendanceMark
	if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"message": "Attendance record not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error updating attendance record"})
	}

	var p attendanceUpdatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Invalid payload"})
	}

	if p.IsPresent != nil {
		m.IsPresent = *p.IsPresent
	}
	if secRef := strings.TrimSpace(asString(p.SectionID)); secRef != "" {
		sectionID, err := resolveSectionID(database.DB, secRef)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
		}
		m.SectionID = sectionID
	}
	if p.Date != nil {
		newDate := normalizeDate(*p.Date)
		if newDate != m.Date {
			var clash int64
			if err := database.DB.Model(&models.AttendanceMark{}).
				Where("student_id = ? AND date = ? AND id <> ?", m.StudentID, newDate, m.ID).
				Count(&clash).Error; err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error updating attendance record"})
			}
			if clash > 0 {
				return c.JSON(http.StatusConflict, map[string]any{"message": "Attendance record already exists for this student on the specified date"})
			}
		}
		m.Date = newDate
	}

	if err := database.DB.Save(&m).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error updating attendance record"})
	}
	rec, err := h.decorate(m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error updating attendance record"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Attendance record updated successfully", "record": rec})
}

// DELETE /api/attendance/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Valid attendance record ID is required"})
	}
	var m models.AttendanceMark
	if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"message": "Attendance record not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error deleting attendance record"})
	}
	if err := database.DB.Delete(&m).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error deleting attendance record"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Attendance record deleted successfully",
		"deletedRecord": map[string]any{
			"id":        m.ID,
			"studentId": m.StudentID,
			"date":      m.Date,
			"isPresent": m.IsPresent,
		},
	})
}
