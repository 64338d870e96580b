package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type ScheduleHandler struct{}

func NewScheduleHandler() *ScheduleHandler { return &ScheduleHandler{} }

type scheduleEntryPayload struct {
	ID          string `json:"id"`
	Day         string `json:"day"`
	StartTime   string `json:"startTime"`
	Duration    int    `json:"duration"`
	SectionID   string `json:"sectionId"`
	Subject     string `json:"subject"`
	Teacher     string `json:"teacher"`
	Classroom   string `json:"classroom"`
	SessionType string `json:"sessionType"`
}

func (p *scheduleEntryPayload) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Day) == "" {
		errs["day"] = "day is required"
	}
	if strings.TrimSpace(p.StartTime) == "" {
		errs["startTime"] = "startTime is required"
	}
	if p.Duration <= 0 {
		errs["duration"] = "duration must be positive"
	}
	if strings.TrimSpace(p.SectionID) == "" {
		errs["sectionId"] = "sectionId is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /api/admin-schedule
func (h *ScheduleHandler) List(c echo.Context) error {
	var entries []models.ScheduleEntry
	if err := database.DB.Order("day ASC, start_time ASC").Find(&entries).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, entries)
}

// GET /api/admin-schedule/:id
func (h *ScheduleHandler) Get(c echo.Context) error {
	var e models.ScheduleEntry
	if err := database.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, e)
}

// POST /api/admin-schedule
func (h *ScheduleHandler) Create(c echo.Context) error {
	var p scheduleEntryPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	sectionID, err := resolveSectionID(database.DB, strings.TrimSpace(p.SectionID))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"sectionId": err.Error()}})
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	e := models.ScheduleEntry{
		ID: p.ID, Day: p.Day, StartTime: p.StartTime, Duration: p.Duration,
		SectionID: sectionID, Subject: p.Subject, Teacher: p.Teacher,
		Classroom: p.Classroom, SessionType: p.SessionType,
	}
	if err := database.DB.Create(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "ENTRY_EXISTS"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, e)
}

// PUT /api/admin-schedule/:id
func (h *ScheduleHandler) Update(c echo.Context) error {
	var existing models.ScheduleEntry
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p scheduleEntryPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	sectionID, err := resolveSectionID(database.DB, strings.TrimSpace(p.SectionID))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{"sectionId": err.Error()}})
	}
	existing.Day = p.Day
	existing.StartTime = p.StartTime
	existing.Duration = p.Duration
	existing.SectionID = sectionID
	existing.Subject = p.Subject
	existing.Teacher = p.Teacher
	existing.Classroom = p.Classroom
	existing.SessionType = p.SessionType
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/admin-schedule/:id
func (h *ScheduleHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.ScheduleEntry{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DELETE /api/admin-schedule (admin)
func (h *ScheduleHandler) DeleteAll(c echo.Context) error {
	res := database.DB.Where("1 = 1").Delete(&models.ScheduleEntry{})
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deletedCount": res.RowsAffected})
}
