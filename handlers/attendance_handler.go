package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/ledger"
	"github.com/emirkaya/ChoirSystem/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// GET /admin/attendance?memberId=&start=&end=&statuses=PENDING,ABSENT
func (h *AttendanceHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.AttendanceRecord{})

	if memberID := strings.TrimSpace(c.QueryParam("memberId")); memberID != "" {
		tx = tx.Where("member_id = ?", memberID)
	}
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}
	if statuses := strings.TrimSpace(c.QueryParam("statuses")); statuses != "" {
		parts := splitCSV(statuses)
		if len(parts) > 0 {
			tx = tx.Where("status IN ?", parts)
		}
	}

	var rows []models.AttendanceRecord
	if err := tx.Order("date ASC, member_id ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /attendance/mine — the member's own rows plus their attendance percentage.
func (h *AttendanceHandler) Mine(c echo.Context) error {
	memberID, ok := authMemberID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_MEMBER_LINK"})
	}

	var rows []models.AttendanceRecord
	if err := database.DB.Where("member_id = ?", memberID).
		Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	pct, err := ledger.AttendancePercentage(database.DB, memberID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"records": rows, "percentage": pct})
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
	Excuse string `json:"excuse"`
}

// PUT /admin/attendance/:id/status
func (h *AttendanceHandler) SetStatus(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	if err := ledger.SetStatus(database.DB, id, req.Status, req.Excuse); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

type excuseReq struct {
	Excuse string `json:"excuse" validate:"required"`
}

// POST /attendance/:id/excuse — member self-service.
func (h *AttendanceHandler) SubmitExcuse(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	memberID, ok := authMemberID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_MEMBER_LINK"})
	}

	var req excuseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "EXCUSE_REQUIRED"})
	}

	if err := ledger.SubmitExcuse(database.DB, id, memberID, req.Excuse); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// PUT /admin/attendance/:id/approve-excuse
func (h *AttendanceHandler) ApproveExcuse(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	if err := ledger.ApproveExcuse(database.DB, id); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
