package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/emirkaya/ChoirSystem/config"
	"github.com/emirkaya/ChoirSystem/handlers"
	"github.com/emirkaya/ChoirSystem/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler()
	mem := handlers.NewMemberHandler()
	ev := handlers.NewEventHandler()
	att := handlers.NewAttendanceHandler()
	fee := handlers.NewFeeHandler()
	sum := handlers.NewSummaryHandler()
	mnt := handlers.NewMaintenanceHandler()

	// ===== Public =====
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Member routes (any authenticated role) =====
	me := e.Group("", authMW, middlewares.RequireRole("member", "admin"))
	me.GET("/events", ev.List)
	me.GET("/attendance/mine", att.Mine)
	me.POST("/attendance/:id/excuse", att.SubmitExcuse)
	me.GET("/fees/mine", fee.Mine)

	// ===== Admin routes =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))

	admin.GET("/members", mem.List)
	admin.POST("/members", mem.Create)
	admin.PUT("/members/:id", mem.Update)
	admin.GET("/members/:id/attendance-percentage", sum.MemberPercentage)

	admin.GET("/events", ev.List)
	admin.POST("/events", ev.Create)
	admin.DELETE("/events/:id", ev.Delete)

	admin.GET("/attendance", att.List)
	admin.PUT("/attendance/:id/status", att.SetStatus)
	admin.PUT("/attendance/:id/approve-excuse", att.ApproveExcuse)

	admin.GET("/fees", fee.List)
	admin.PUT("/fees/:id/paid", fee.TogglePaid)

	admin.GET("/summary", sum.Summary)

	// Operator maintenance; purge is destructive, use dryRun=1 first.
	admin.POST("/maintenance/relink", mnt.Relink)
	admin.POST("/maintenance/purge-ghosts", mnt.PurgeGhosts)
	admin.POST("/maintenance/backfill-fees", mnt.BackfillFees)
}
