package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/ledger"
	"github.com/emirkaya/ChoirSystem/models"
)

type SummaryHandler struct{}

func NewSummaryHandler() *SummaryHandler { return &SummaryHandler{} }

// GET /admin/summary?absenceWindow=4&overdueMonths=2
//
// The management dashboard: members repeatedly absent from recent rehearsals
// and members with old unpaid fees, plus headline counts.
func (h *SummaryHandler) Summary(c echo.Context) error {
	window := atoiOr(c.QueryParam("absenceWindow"), 4)
	threshold := atoiOr(c.QueryParam("overdueMonths"), 2)

	absentees, err := ledger.RepeatedAbsentees(database.DB, window)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	overdue, err := ledger.OverdueFeePayers(database.DB, threshold)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var cntMembers, cntEvents, cntUnpaid int64
	database.DB.Model(&models.Member{}).Where("active = ?", true).Count(&cntMembers)
	database.DB.Model(&models.Event{}).Where("date >= ?", ledger.Today()).Count(&cntEvents)
	database.DB.Model(&models.FeeRecord{}).Where("paid = ?", false).Count(&cntUnpaid)

	return c.JSON(http.StatusOK, map[string]any{
		"repeated_absentees": absentees,
		"overdue_fee_payers": overdue,
		"active_members":     cntMembers,
		"upcoming_events":    cntEvents,
		"unpaid_fees":        cntUnpaid,
	})
}

// GET /admin/members/:id/attendance-percentage
func (h *SummaryHandler) MemberPercentage(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	pct, err := ledger.AttendancePercentage(database.DB, id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"member_id": id, "percentage": pct})
}
