package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type LessonTemplateHandler struct{}

func NewLessonTemplateHandler() *LessonTemplateHandler { return &LessonTemplateHandler{} }

type lessonTemplatePayload struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	EstimatedSessions int            `json:"estimatedSessions"`
	Stages            datatypes.JSON `json:"stages"`
	CourseName        string         `json:"courseName"`
	Level             string         `json:"level"`
	WeekNumber        *int           `json:"weekNumber"`
	ScheduledSections datatypes.JSON `json:"scheduledSections"`
}

func (p *lessonTemplatePayload) apply(t *models.LessonTemplate) {
	t.Title = strings.TrimSpace(p.Title)
	t.Description = p.Description
	if p.EstimatedSessions > 0 {
		t.EstimatedSessions = p.EstimatedSessions
	} else {
		t.EstimatedSessions = 1
	}
	t.Stages = p.Stages
	t.CourseName = strings.TrimSpace(p.CourseName)
	t.Level = strings.TrimSpace(p.Level)
	t.WeekNumber = p.WeekNumber
	t.ScheduledSections = p.ScheduledSections
}

// GET /api/lesson-templates
func (h *LessonTemplateHandler) List(c echo.Context) error {
	var templates []models.LessonTemplate
	if err := database.DB.Order("course_name ASC, level ASC, title ASC").Find(&templates).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, templates)
}

// GET /api/lesson-templates/:id
func (h *LessonTemplateHandler) Get(c echo.Context) error {
	var t models.LessonTemplate
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

// POST /api/lesson-templates
func (h *LessonTemplateHandler) Create(c echo.Context) error {
	var p lessonTemplatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if strings.TrimSpace(p.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"title": "title is required"}})
	}
	t := models.LessonTemplate{ID: strings.TrimSpace(p.ID)}
	if t.ID == "" {
		t.ID = "tpl-" + uuid.NewString()
	}
	p.apply(&t)
	if err := database.DB.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "TEMPLATE_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

// PUT /api/lesson-templates/:id
func (h *LessonTemplateHandler) Update(c echo.Context) error {
	var existing models.LessonTemplate
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p lessonTemplatePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if strings.TrimSpace(p.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"title": "title is required"}})
	}
	p.apply(&existing)
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/lesson-templates/:id
func (h *LessonTemplateHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.LessonTemplate{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
