package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/emirkaya/ChoirSystem/ledger"
)

var validate = validator.New()

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// authMemberID reads the roster id the JWT middleware attached.
func authMemberID(c echo.Context) (uint, bool) {
	switch v := c.Get("member_id").(type) {
	case uint:
		return v, v > 0
	case int:
		return uint(v), v > 0
	default:
		return 0, false
	}
}

// ledgerError maps the ledger's sentinel errors onto the API's error codes.
func ledgerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, ledger.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	case errors.Is(err, ledger.ErrInvalidState):
		return c.JSON(http.StatusConflict, map[string]any{"error": "INVALID_STATE"})
	case errors.Is(err, ledger.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]any{"error": "CONFLICT"})
	case errors.Is(err, ledger.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED"})
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
}
