package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/emirkaya/ChoirSystem/database"
	"github.com/emirkaya/ChoirSystem/ledger"
	"github.com/emirkaya/ChoirSystem/models"
)

type EventHandler struct{}

func NewEventHandler() *EventHandler { return &EventHandler{} }

// GET /events?type=&from=&to=
func (h *EventHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Event{})

	if typ := strings.TrimSpace(c.QueryParam("type")); typ != "" {
		tx = tx.Where("type = ?", typ)
	}
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))
	if from != "" && to != "" {
		tx = tx.Where("date >= ? AND date <= ?", from, to)
	}

	var rows []models.Event
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type eventReq struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Type  string `json:"type" validate:"required,oneof=rehearsal concert special"`
}

// POST /admin/events
//
// Creating a rehearsal is a generation trigger: every obligated member gets a
// PENDING attendance row dated like the event.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	ev := models.Event{Title: strings.TrimSpace(req.Title), Date: req.Date, Type: req.Type}
	if err := database.DB.Create(&ev).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	rep, err := ledger.GeneratePendingForEvent(database.DB, &ev)
	if err != nil {
		return c.JSON(http.StatusCreated, map[string]any{"event": ev, "generation_error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"event": ev, "generated": rep})
}

// DELETE /admin/events/:id
//
// Attendance rows sharing the event's date are bulk-deleted with it, matched
// by the denormalized date so unlinked rows go too.
func (h *EventHandler) Delete(c echo.Context) error {
	var ev models.Event
	if err := database.DB.First(&ev, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := database.DB.Delete(&models.Event{}, ev.ID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var deleted int64
	if ev.Type == models.EventRehearsal {
		n, err := ledger.DeleteForEventDate(database.DB, ev.Date)
		if err != nil {
			return c.JSON(http.StatusOK, map[string]any{"ok": true, "ledger_error": err.Error()})
		}
		deleted = n
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "attendance_deleted": deleted})
}
