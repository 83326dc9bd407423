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

type MemberHandler struct{}

func NewMemberHandler() *MemberHandler { return &MemberHandler{} }

// GET /admin/members?part=&active=
func (h *MemberHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Member{})

	if part := strings.TrimSpace(c.QueryParam("part")); part != "" {
		tx = tx.Where("part = ?", part)
	}
	switch strings.TrimSpace(c.QueryParam("active")) {
	case "true":
		tx = tx.Where("active = ?", true)
	case "false":
		tx = tx.Where("active = ?", false)
	}

	var rows []models.Member
	if err := tx.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type memberReq struct {
	Name   string `json:"name" validate:"required"`
	Role   string `json:"role" validate:"omitempty,oneof=admin conductor member"`
	Part   string `json:"part" validate:"omitempty,oneof=soprano alto tenor bass"`
	Active *bool  `json:"active"`
	Frozen *bool  `json:"frozen"`
}

// POST /admin/members
//
// Registration is a generation trigger: the new member gets a PENDING
// attendance row for every future rehearsal.
func (h *MemberHandler) Create(c echo.Context) error {
	var req memberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	m := models.Member{
		Name:   strings.TrimSpace(req.Name),
		Role:   req.Role,
		Part:   req.Part,
		Active: true,
	}
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	if req.Active != nil {
		m.Active = *req.Active
	}
	if req.Frozen != nil {
		m.Frozen = *req.Frozen
	}

	if err := database.DB.Create(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	rep, err := ledger.GeneratePendingForMember(database.DB, &m)
	if err != nil {
		// member exists; generation is retryable via the event triggers
		return c.JSON(http.StatusCreated, map[string]any{"member": m, "generation_error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"member": m, "generated": rep})
}

// PUT /admin/members/:id
func (h *MemberHandler) Update(c echo.Context) error {
	var m models.Member
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req memberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	updates := map[string]any{"name": strings.TrimSpace(req.Name)}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Part != "" {
		updates["part"] = req.Part
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Frozen != nil {
		updates["frozen"] = *req.Frozen
	}

	if err := database.DB.Model(&models.Member{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
