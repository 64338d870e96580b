package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStudentCreate(t *testing.T) {
	setupDB(t)
	seedSection(t, "TCS-1", "A")
	e := echo.New()
	h := NewStudentHandler()

	t.Run("section may be given by display name", func(t *testing.T) {
		ctx, rec := newRequest(e, http.MethodPost, "/api/students", marshal(t, map[string]any{
			"firstName":     "Yassine",
			"lastName":      "Mansouri",
			"pathwayNumber": "PN-001",
			"sectionId":     "A",
		}))
		assert.NoError(t, h.Create(ctx))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "TCS-1", decodeBody(t, rec)["sectionId"])
	})

	t.Run("names required", func(t *testing.T) {
		ctx, rec := newRequest(e, http.MethodPost, "/api/students", marshal(t, map[string]any{"firstName": "Solo"}))
		assert.NoError(t, h.Create(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body["error"])
	})

	t.Run("duplicate pathway number", func(t *testing.T) {
		ctx, rec := newRequest(e, http.MethodPost, "/api/students", marshal(t, map[string]any{
			"firstName":     "Amine",
			"lastName":      "Kaddour",
			"pathwayNumber": "PN-001",
		}))
		assert.NoError(t, h.Create(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "DUPLICATE_PATHWAY_NUMBER", decodeBody(t, rec)["error"])
	})

	t.Run("bad birth date", func(t *testing.T) {
		ctx, rec := newRequest(e, http.MethodPost, "/api/students", marshal(t, map[string]any{
			"firstName": "Amine",
			"lastName":  "Kaddour",
			"birthDate": "25/09/2010",
		}))
		assert.NoError(t, h.Create(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStudentListFilterBySection(t *testing.T) {
	setupDB(t)
	seedSection(t, "TCS-1", "A")
	seedSection(t, "TCS-2", "B")
	seedStudent(t, "Yassine", "Mansouri", "TCS-1")
	seedStudent(t, "Amine", "Kaddour", "TCS-2")

	e := echo.New()
	h := NewStudentHandler()
	ctx, rec := newRequest(e, http.MethodGet, "/api/students?sectionId=B")
	assert.NoError(t, h.List(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "Amine", rows[0]["firstName"])
}

func TestStudentBulkCreateAllOrNothing(t *testing.T) {
	setupDB(t)
	seedSection(t, "TCS-1", "A")
	e := echo.New()
	h := NewStudentHandler()

	ctx, rec := newRequest(e, http.MethodPost, "/api/students/bulk", marshal(t, []map[string]any{
		{"firstName": "Yassine", "lastName": "Mansouri", "sectionId": "TCS-1"},
		{"firstName": "", "lastName": "Kaddour"},
	}))
	assert.NoError(t, h.BulkCreate(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "BULK_VALIDATION_ERROR", body["error"])

	// nothing inserted
	ctx, rec = newRequest(e, http.MethodGet, "/api/students")
	assert.NoError(t, h.List(ctx))
	var rows []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 0)
}
