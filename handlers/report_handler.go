package handlers

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler { return &ReportHandler{} }

// dateRange maps a report period to an inclusive [start, end] day range.
// Weeks start on Sunday.
func dateRange(period string) (string, string) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	const day = "2006-01-02"

	switch period {
	case "week":
		start := today.AddDate(0, 0, -int(today.Weekday()))
		end := start.AddDate(0, 0, 6)
		return start.Format(day), end.Format(day)
	case "month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := start.AddDate(0, 1, -1)
		return start.Format(day), end.Format(day)
	default: // "today"
		return today.Format(day), today.Format(day)
	}
}

func rate(present, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// GET /api/attendance-reports/overview?period=today|week|month&sectionId=
func (h *ReportHandler) Overview(c echo.Context) error {
	period := strings.TrimSpace(c.QueryParam("period"))
	if period == "" {
		period = "today"
	}
	secRef := strings.TrimSpace(c.QueryParam("sectionId"))
	start, end := dateRange(period)

	tx := database.DB.Model(&models.AttendanceMark{}).Where("date >= ? AND date <= ?", start, end)
	sectionFilter := ""
	if secRef != "" && secRef != "all" {
		sectionID, err := resolveSectionID(database.DB, secRef)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
		}
		sectionFilter = sectionID
		tx = tx.Where("section_id = ?", sectionID)
	}

	var marks []models.AttendanceMark
	if err := tx.Find(&marks).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error generating attendance overview"})
	}

	var sections []models.Section
	if err := database.DB.Find(&sections).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error generating attendance overview"})
	}
	sectionNames := make(map[string]string, len(sections))
	for _, s := range sections {
		sectionNames[s.ID] = s.Name
	}

	totalRecords := int64(len(marks))
	var presentCount int64
	type counter struct{ total, present int64 }
	perSection := map[string]*counter{}
	for _, m := range marks {
		if m.IsPresent {
			presentCount++
		}
		cnt, ok := perSection[m.SectionID]
		if !ok {
			cnt = &counter{}
			perSection[m.SectionID] = cnt
		}
		cnt.total++
		if m.IsPresent {
			cnt.present++
		}
	}

	type sectionStat struct {
		SectionID   string `json:"sectionId"`
		SectionName string `json:"sectionName"`
		Total       int64  `json:"total"`
		Present     int64  `json:"present"`
		Absent      int64  `json:"absent"`
		Rate        int    `json:"rate"`
	}
	sectionStats := make([]sectionStat, 0, len(perSection))
	for id, cnt := range perSection {
		name := sectionNames[id]
		if name == "" {
			name = id
		}
		sectionStats = append(sectionStats, sectionStat{
			SectionID:   id,
			SectionName: name,
			Total:       cnt.total,
			Present:     cnt.present,
			Absent:      cnt.total - cnt.present,
			Rate:        rate(cnt.present, cnt.total),
		})
	}

	// top absentees, counted over the whole history like the dashboard shows
	type absenceRow struct {
		StudentID    uint  `json:"studentId"`
		AbsenceCount int64 `json:"absenceCount"`
	}
	var absences []absenceRow
	atx := database.DB.Model(&models.AttendanceMark{}).
		Select("student_id, COUNT(*) AS absence_count").
		Where("is_present = ?", false)
	if sectionFilter != "" {
		atx = atx.Where("section_id = ?", sectionFilter)
	}
	if err := atx.Group("student_id").Order("absence_count DESC").Limit(10).Scan(&absences).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error generating attendance overview"})
	}

	type absentStudent struct {
		StudentID    uint   `json:"studentId"`
		StudentName  string `json:"studentName"`
		AbsenceCount int64  `json:"absenceCount"`
	}
	mostAbsent := make([]absentStudent, 0, len(absences))
	for _, a := range absences {
		var s models.Student
		name := ""
		if err := database.DB.First(&s, "id = ?", a.StudentID).Error; err == nil {
			name = s.FirstName + " " + s.LastName
		}
		mostAbsent = append(mostAbsent, absentStudent{StudentID: a.StudentID, StudentName: name, AbsenceCount: a.AbsenceCount})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"period":    period,
		"dateRange": map[string]string{"start": start, "end": end},
		"overview": map[string]any{
			"totalRecords":   totalRecords,
			"presentCount":   presentCount,
			"absentCount":    totalRecords - presentCount,
			"attendanceRate": rate(presentCount, totalRecords),
		},
		"sectionStats":       sectionStats,
		"mostAbsentStudents": mostAbsent,
		"lastUpdated":        time.Now().Format(time.RFC3339),
	})
}

// GET /api/attendance-reports/daily?date=YYYY-MM-DD&sectionId=
// One row per student of the section, with the day's mark when present.
func (h *ReportHandler) Daily(c echo.Context) error {
	date := normalizeDate(c.QueryParam("date"))
	secRef := strings.TrimSpace(c.QueryParam("sectionId"))
	if secRef == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "sectionId is required"})
	}
	sectionID, err := resolveSectionID(database.DB, secRef)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	var students []models.Student
	if err := database.DB.Where("section_id = ?", sectionID).Order("class_order ASC, id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error generating daily report"})
	}

	var marks []models.AttendanceMark
	if err := database.DB.Where("section_id = ? AND date = ?", sectionID, date).Find(&marks).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "Error generating daily report"})
	}
	markByStudent := make(map[uint]models.AttendanceMark, len(marks))
	for _, m := range marks {
		markByStudent[m.StudentID] = m
	}

	type dailyRow struct {
		StudentID   uint   `json:"studentId"`
		StudentName string `json:"studentName"`
		ClassOrder  int    `json:"classOrder"`
		IsPresent   *bool  `json:"isPresent"` // null when no mark was recorded
	}
	rows := make([]dailyRow, 0, len(students))
	var present, absent, unmarked int
	for _, s := range students {
		row := dailyRow{StudentID: s.ID, StudentName: s.FirstName + " " + s.LastName, ClassOrder: s.ClassOrder}
		if m, ok := markByStudent[s.ID]; ok {
			v := m.IsPresent
			row.IsPresent = &v
			if v {
				present++
			} else {
				absent++
			}
		} else {
			unmarked++
		}
		rows = append(rows, row)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":      date,
		"sectionId": sectionID,
		"rows":      rows,
		"summary": map[string]int{
			"present":  present,
			"absent":   absent,
			"unmarked": unmarked,
		},
	})
}
