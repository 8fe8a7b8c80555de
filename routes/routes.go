package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/lmarchou/BENounou/config"
	"github.com/lmarchou/BENounou/handlers"
	"github.com/lmarchou/BENounou/middlewares"
	"github.com/lmarchou/BENounou/storage"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	child := handlers.NewChildHandler(storage.NewClient(cfg))
	ct := handlers.NewContractHandler()
	att := handlers.NewAttendanceHandler()
	dr := handlers.NewDailyRecordHandler()
	msg := handlers.NewMessageHandler()
	dash := handlers.NewDashboardHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	// ===== Authenticated =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("", authMW)

	api.GET("/auth/session", auth.Session)

	api.GET("/children", child.List)
	api.GET("/children/:id", child.Get)
	api.POST("/children", child.Create)
	api.PUT("/children/:id", child.Update)
	api.POST("/children/photo", child.UploadPhoto)

	api.GET("/contracts", ct.List)
	api.GET("/contracts/:id", ct.Get)
	api.POST("/contracts", ct.Create)
	api.PUT("/contracts/:id", ct.Update)
	api.GET("/contracts/:id/calendar", ct.Calendar)
	api.POST("/contracts/:id/planning/toggle", ct.TogglePlanning)
	api.GET("/planning", ct.MonthPlanning)

	api.GET("/attendance", att.List)
	api.POST("/attendance", att.Create)
	api.PUT("/attendance/:id", att.Update)
	api.GET("/attendance/report", att.Report)

	api.GET("/daily-records", dr.List)
	api.GET("/daily-records/:id", dr.Get)
	api.POST("/daily-records", dr.Create)
	api.PUT("/daily-records/:id", dr.Update)

	api.GET("/messages", msg.List)
	api.POST("/messages", msg.Create)
	api.POST("/messages/:id/read", msg.MarkRead)
	api.GET("/messages/unread-count", msg.UnreadCount)

	api.GET("/dashboard/today", dash.Today)

	// ===== Admin only (destructive) =====
	admin := e.Group("", authMW, middlewares.RequireRole("admin"))
	admin.DELETE("/children/:id", child.Delete)
	admin.DELETE("/contracts/:id", ct.Delete)
	admin.DELETE("/attendance/:id", att.Delete)
	admin.DELETE("/daily-records/:id", dr.Delete)
}
