package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Nabilbach/Classroom-Management-System-sub000/config"
	"github.com/Nabilbach/Classroom-Management-System-sub000/handlers"
	"github.com/Nabilbach/Classroom-Management-System-sub000/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	sec := handlers.NewSectionHandler()
	std := handlers.NewStudentHandler()
	imp := handlers.NewImportHandler()
	att := handlers.NewAttendanceHandler()
	sch := handlers.NewScheduleHandler()
	tpl := handlers.NewLessonTemplateHandler()
	rep := handlers.NewReportHandler()
	usr := handlers.NewUserHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	// ===== Staff scope =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("/api", authMW, middlewares.RequireRole("teacher", "admin"))

	api.GET("/sections", sec.List)
	api.POST("/sections", sec.Create)
	api.GET("/sections/:id", sec.Get)
	api.PUT("/sections/:id", sec.Update)
	api.DELETE("/sections/:id", sec.Delete)
	api.GET("/sections/:id/students", sec.Students)

	api.GET("/students", std.List)
	api.POST("/students", std.Create)
	api.POST("/students/bulk", std.BulkCreate)
	api.POST("/students/import", imp.StudentsExcel)
	api.GET("/students/:id", std.Get)
	api.PUT("/students/:id", std.Update)
	api.DELETE("/students/:id", std.Delete)

	api.GET("/attendance", att.List)
	api.POST("/attendance", att.Record)
	api.DELETE("/attendance", att.BulkDelete)
	api.GET("/attendance/:id", att.Get)
	api.PUT("/attendance/:id", att.Update)
	api.DELETE("/attendance/:id", att.Delete)

	api.GET("/admin-schedule", sch.List)
	api.POST("/admin-schedule", sch.Create)
	api.GET("/admin-schedule/:id", sch.Get)
	api.PUT("/admin-schedule/:id", sch.Update)
	api.DELETE("/admin-schedule/:id", sch.Delete)

	api.GET("/lesson-templates", tpl.List)
	api.POST("/lesson-templates", tpl.Create)
	api.GET("/lesson-templates/:id", tpl.Get)
	api.PUT("/lesson-templates/:id", tpl.Update)
	api.DELETE("/lesson-templates/:id", tpl.Delete)

	api.GET("/attendance-reports/overview", rep.Overview)
	api.GET("/attendance-reports/daily", rep.Daily)

	// ===== Admin scope (destructive bulk operations, account management) =====
	admin := e.Group("/api/admin", authMW, middlewares.RequireRole("admin"))
	admin.DELETE("/sections", sec.DeleteAll)
	admin.DELETE("/students", std.DeleteAll)
	admin.DELETE("/admin-schedule", sch.DeleteAll)
	admin.GET("/users", usr.List)
	admin.POST("/users", usr.Create)
}
