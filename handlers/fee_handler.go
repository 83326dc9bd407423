package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/ledger"
	"github.com/emirkaya/ChoirSystem/models"
)

type FeeHandler struct{}

func NewFeeHandler() *FeeHandler { return &FeeHandler{} }

// feeRow adds the display period; the stored key stays numeric.
type feeRow struct {
	models.FeeRecord
	Period string `json:"period"` // e.g. "Eylül 2024"
}

func renderFees(rows []models.FeeRecord) []feeRow {
	out := make([]feeRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, feeRow{FeeRecord: r, Period: ledger.MonthName(r.Month) + " " + strconv.Itoa(r.Year)})
	}
	return out
}

// GET /admin/fees?memberId=&year=&paid=
func (h *FeeHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.FeeRecord{})

	if memberID := strings.TrimSpace(c.QueryParam("memberId")); memberID != "" {
		tx = tx.Where("member_id = ?", memberID)
	}
	if year := atoiOr(c.QueryParam("year"), 0); year > 0 {
		tx = tx.Where("year = ?", year)
	}
	switch strings.TrimSpace(c.QueryParam("paid")) {
	case "true":
		tx = tx.Where("paid = ?", true)
	case "false":
		tx = tx.Where("paid = ?", false)
	}

	var rows []models.FeeRecord
	if err := tx.Order("year DESC, month DESC, member_id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, renderFees(rows))
}

// GET /fees/mine — the member's rows for the trailing six months plus the
// full history.
func (h *FeeHandler) Mine(c echo.Context) error {
	memberID, ok := authMemberID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NO_MEMBER_LINK"})
	}

	var all []models.FeeRecord
	if err := database.DB.Where("member_id = ?", memberID).
		Order("year DESC, month DESC").Find(&all).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	year, month := ledger.CurrentPeriod()
	cutoff := ledger.MonthIndex(year, month) - 5
	recent := make([]models.FeeRecord, 0, 6)
	for _, r := range all {
		if ledger.MonthIndex(r.Year, r.Month) >= cutoff {
			recent = append(recent, r)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"recent": renderFees(recent),
		"all":    renderFees(all),
	})
}

type paidReq struct {
	Paid *bool `json:"paid" validate:"required"`
}

// PUT /admin/fees/:id/paid
func (h *FeeHandler) TogglePaid(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var req paidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	if err := ledger.ToggleFeePaid(database.DB, id, *req.Paid); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
