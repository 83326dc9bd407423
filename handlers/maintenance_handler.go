package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/ledger"
)

// MaintenanceHandler exposes the reconciliation and backfill jobs to
// operators. Admin-gated; the purge is destructive, so dryRun=1 is the way to
// preview it.
type MaintenanceHandler struct{}

func NewMaintenanceHandler() *MaintenanceHandler { return &MaintenanceHandler{} }

func dryRunParam(c echo.Context) bool {
	switch strings.TrimSpace(c.QueryParam("dryRun")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// POST /admin/maintenance/relink?dryRun=
func (h *MaintenanceHandler) Relink(c echo.Context) error {
	rep, err := ledger.RelinkOrphanedAttendance(database.DB, dryRunParam(c))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rep)
}

// POST /admin/maintenance/purge-ghosts?dryRun=
func (h *MaintenanceHandler) PurgeGhosts(c echo.Context) error {
	rep, err := ledger.PurgeGhostAttendance(database.DB, dryRunParam(c))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rep)
}

// POST /admin/maintenance/backfill-fees?months=6
func (h *MaintenanceHandler) BackfillFees(c echo.Context) error {
	months := atoiOr(c.QueryParam("months"), 6)
	if months < 1 || months > 24 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MONTHS_OUT_OF_RANGE"})
	}
	rep, err := ledger.BackfillPastMonths(database.DB, months)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rep)
}
