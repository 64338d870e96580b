package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type SectionHandler struct{}

func NewSectionHandler() *SectionHandler { return &SectionHandler{} }

var nonDigit = regexp.MustCompile(`\D`)

// resolveSectionID turns a human-entered section reference (canonical id,
// numeric id, or display name) into the canonical section id.
// Resolution order: exact primary key first; then, if the reference contains
// a non-digit, exact display-name match; an all-digit reference that matches
// no primary key is carried through as a canonical id string.
func resolveSectionID(tx *gorm.DB, ref string) (string, error) {
	var sec models.Section
	err := tx.First(&sec, "id = ?", ref).Error
	if err == nil {
		return sec.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if nonDigit.MatchString(ref) {
		err = tx.First(&sec, "name = ?", ref).Error
		if err == nil {
			return sec.ID, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("Section %q not found", ref)
		}
		return "", err
	}
	return ref, nil
}

type sectionPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Level     string `json:"level"`
	Specialty string `json:"specialty"`
}

func (p *sectionPayload) normalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Level = strings.TrimSpace(p.Level)
	p.Specialty = strings.TrimSpace(p.Specialty)
}

// GET /api/sections
func (h *SectionHandler) List(c echo.Context) error {
	var sections []models.Section
	if err := database.DB.Order("id ASC").Find(&sections).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	type sectionWithCount struct {
		models.Section
		StudentCount int64 `json:"studentCount"`
	}
	out := make([]sectionWithCount, 0, len(sections))
	for _, s := range sections {
		var n int64
		if err := database.DB.Model(&models.Student{}).Where("section_id = ?", s.ID).Count(&n).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
		}
		out = append(out, sectionWithCount{Section: s, StudentCount: n})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/sections/:id
func (h *SectionHandler) Get(c echo.Context) error {
	var s models.Section
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /api/sections
func (h *SectionHandler) Create(c echo.Context) error {
	var p sectionPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"name": "name is required"}})
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	s := models.Section{ID: p.ID, Name: p.Name, Level: p.Level, Specialty: p.Specialty}
	if err := database.DB.Create(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "SECTION_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /api/sections/:id
func (h *SectionHandler) Update(c echo.Context) error {
	var existing models.Section
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p sectionPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"name": "name is required"}})
	}
	existing.Name = p.Name
	existing.Level = p.Level
	existing.Specialty = p.Specialty
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/sections/:id
// Refused while students are still assigned; reassign or delete them first.
func (h *SectionHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	var n int64
	if err := database.DB.Model(&models.Student{}).Where("section_id = ?", id).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "SECTION_HAS_STUDENTS", "studentCount": n})
	}
	res := database.DB.Delete(&models.Section{}, "id = ?", id)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DELETE /api/sections (admin)
func (h *SectionHandler) DeleteAll(c echo.Context) error {
	res := database.DB.Where("1 = 1").Delete(&models.Section{})
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deletedCount": res.RowsAffected})
}

// GET /api/sections/:id/students
func (h *SectionHandler) Students(c echo.Context) error {
	id := c.Param("id")
	var sec models.Section
	if err := database.DB.First(&sec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var students []models.Student
	if err := database.DB.Where("section_id = ?", id).Order("class_order ASC, id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, students)
}
