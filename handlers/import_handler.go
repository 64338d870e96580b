package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/logger"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

type ImportHandler struct{}

func NewImportHandler() *ImportHandler { return &ImportHandler{} }

// Expected roster columns (header row, case-insensitive):
// firstName, lastName, pathwayNumber, registrationNumber, classOrder, gender,
// birthDate, sectionId. sectionId may be a section display name.
var requiredRosterColumns = []string{"firstname", "lastname"}

// POST /api/students/import — multipart upload, field "file", .xlsx roster.
// Rows are validated independently; the response partitions them into
// inserted students and per-row errors.
func (h *ImportHandler) StudentsExcel(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FILE"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "UNREADABLE_FILE"})
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_XLSX"})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "EMPTY_WORKBOOK"})
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "EMPTY_SHEET"})
	}

	columnMap := make(map[string]int)
	for i, col := range rows[0] {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredRosterColumns {
		if _, ok := columnMap[col]; !ok {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_COLUMN", "column": col})
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columnMap[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	inserted := 0
	issues := []map[string]any{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		p := studentPayload{
			FirstName:          cell(row, "firstname"),
			LastName:           cell(row, "lastname"),
			PathwayNumber:      cell(row, "pathwaynumber"),
			RegistrationNumber: cell(row, "registrationnumber"),
			ClassOrder:         atoiOr(cell(row, "classorder"), 0),
			Gender:             cell(row, "gender"),
			BirthDate:          cell(row, "birthdate"),
			SectionID:          cell(row, "sectionid"),
		}
		p.normalize()
		if errs := validateStudent(&p); errs != nil {
			issues = append(issues, map[string]any{"row": rowNum, "fields": errs})
			continue
		}
		if err := resolvePayloadSection(&p); err != nil {
			issues = append(issues, map[string]any{"row": rowNum, "error": err.Error()})
			continue
		}
		if taken, err := pathwayTaken(database.DB, p.PathwayNumber, 0); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		} else if taken {
			issues = append(issues, map[string]any{"row": rowNum, "error": "DUPLICATE_PATHWAY_NUMBER"})
			continue
		}
		var s models.Student
		p.apply(&s)
		if err := database.DB.Create(&s).Error; err != nil {
			issues = append(issues, map[string]any{"row": rowNum, "error": err.Error()})
			continue
		}
		inserted++
	}

	logger.Get().Info().
		Str("file", fh.Filename).
		Int("inserted", inserted).
		Int("rejected", len(issues)).
		Msg("student roster import finished")

	status := http.StatusCreated
	if len(issues) > 0 {
		if inserted == 0 {
			status = http.StatusBadRequest
		} else {
			status = http.StatusMultiStatus
		}
	}
	return c.JSON(status, map[string]any{"inserted": inserted, "issues": issues})
}
