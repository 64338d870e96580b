package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	PathwayNumber      string `json:"pathwayNumber"`
	RegistrationNumber string `json:"registrationNumber"`
	ClassOrder         int    `json:"classOrder"`
	Gender             string `json:"gender"`
	BirthDate          string `json:"birthDate"`
	SectionID          string `json:"sectionId"`
}

func (p *studentPayload) normalize() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.PathwayNumber = strings.TrimSpace(p.PathwayNumber)
	p.RegistrationNumber = strings.TrimSpace(p.RegistrationNumber)
	p.Gender = strings.TrimSpace(p.Gender)
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.SectionID = strings.TrimSpace(p.SectionID)
}

func validateStudent(p *studentPayload) map[string]string {
	errs := map[string]string{}
	if p.FirstName == "" {
		errs["firstName"] = "firstName is required"
	}
	if p.LastName == "" {
		errs["lastName"] = "lastName is required"
	}
	if p.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", p.BirthDate); err != nil {
			errs["birthDate"] = "birthDate must be YYYY-MM-DD or empty"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *studentPayload) apply(s *models.Student) {
	s.FirstName = p.FirstName
	s.LastName = p.LastName
	s.PathwayNumber = p.PathwayNumber
	s.RegistrationNumber = p.RegistrationNumber
	s.ClassOrder = p.ClassOrder
	s.Gender = p.Gender
	s.BirthDate = p.BirthDate
	s.SectionID = p.SectionID
}

// resolvePayloadSection lets a student payload carry a section display name
// instead of the canonical id.
func resolvePayloadSection(p *studentPayload) error {
	if p.SectionID == "" {
		return nil
	}
	id, err := resolveSectionID(database.DB, p.SectionID)
	if err != nil {
		return err
	}
	p.SectionID = id
	return nil
}

// pathwayTaken reports whether another student already holds the given
// pathway number. Empty pathway numbers are never considered taken.
func pathwayTaken(tx *gorm.DB, pathway string, excludeID uint) (bool, error) {
	if pathway == "" {
		return false, nil
	}
	var n int64
	q := tx.Model(&models.Student{}).Where("pathway_number = ?", pathway)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// GET /api/students?sectionId=&q=
func (h *StudentHandler) List(c echo.Context) error {
	secRef := strings.TrimSpace(c.QueryParam("sectionId"))
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := database.DB.Model(&models.Student{})
	if secRef != "" {
		sectionID, err := resolveSectionID(database.DB, secRef)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
		}
		tx = tx.Where("section_id = ?", sectionID)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(pathway_number) LIKE ?", like, like, like)
	}

	var students []models.Student
	if err := tx.Order("class_order ASC, id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, students)
}

// GET /api/students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var s models.Student
	if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /api/students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if err := resolvePayloadSection(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"sectionId": err.Error()}})
	}

	if taken, err := pathwayTaken(database.DB, p.PathwayNumber, 0); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	} else if taken {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "DUPLICATE_PATHWAY_NUMBER"})
	}

	var s models.Student
	p.apply(&s)
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.Student
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if err := resolvePayloadSection(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"sectionId": err.Error()}})
	}

	if taken, err := pathwayTaken(database.DB, p.PathwayNumber, existing.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	} else if taken {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "DUPLICATE_PATHWAY_NUMBER"})
	}

	p.apply(&existing)
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	res := database.DB.Delete(&models.Student{}, "id = ?", id)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DELETE /api/students (admin)
func (h *StudentHandler) DeleteAll(c echo.Context) error {
	res := database.DB.Where("1 = 1").Delete(&models.Student{})
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deletedCount": res.RowsAffected})
}

// POST /api/students/bulk — JSON array of student payloads.
// Validation failures are reported per index; nothing is inserted unless the
// whole batch is clean.
func (h *StudentHandler) BulkCreate(c echo.Context) error {
	var arr []studentPayload
	if err := c.Bind(&arr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if len(arr) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "EMPTY_BATCH"})
	}

	inserted := make([]models.Student, 0, len(arr))
	issues := []map[string]any{}
	seenPathways := map[string]bool{}
	for i := range arr {
		p := arr[i]
		p.normalize()
		if errs := validateStudent(&p); errs != nil {
			issues = append(issues, map[string]any{"index": i, "fields": errs})
			continue
		}
		if err := resolvePayloadSection(&p); err != nil {
			issues = append(issues, map[string]any{"index": i, "fields": map[string]string{"sectionId": err.Error()}})
			continue
		}
		if p.PathwayNumber != "" {
			taken, err := pathwayTaken(database.DB, p.PathwayNumber, 0)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
			}
			if taken || seenPathways[p.PathwayNumber] {
				issues = append(issues, map[string]any{"index": i, "fields": map[string]string{"pathwayNumber": "DUPLICATE_PATHWAY_NUMBER"}})
				continue
			}
			seenPathways[p.PathwayNumber] = true
		}
		var s models.Student
		p.apply(&s)
		inserted = append(inserted, s)
	}
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "BULK_VALIDATION_ERROR", "issues": issues})
	}
	if err := database.DB.Create(&inserted).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"inserted": len(inserted)})
}
