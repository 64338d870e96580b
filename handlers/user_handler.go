package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Nabilbach/Classroom-Management-System-sub000/database"
	"github.com/Nabilbach/Classroom-Management-System-sub000/models"
)

// Staff account management, admin scope only.
type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// GET /api/admin/users
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, users)
}

type userPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// POST /api/admin/users
func (h *UserHandler) Create(c echo.Context) error {
	var p userPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Username = strings.TrimSpace(p.Username)
	p.Role = strings.ToLower(strings.TrimSpace(p.Role))
	if p.Username == "" || p.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	if p.Role != "admin" && p.Role != "teacher" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ROLE"})
	}

	var dup models.User
	if err := database.DB.Where("username = ?", p.Username).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "USERNAME_EXISTS"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	u := models.User{Username: p.Username, Password: string(hash), Role: p.Role, Name: strings.TrimSpace(p.Name)}
	if err := database.DB.Create(&u).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}
