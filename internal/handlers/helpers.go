package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/middleware"
)

func barbershopIDFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBarbershopID).(uint)
}

func userIDFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// uintParam reads a positive numeric path parameter, answering 400 when it
// is malformed.
func uintParam(c *gin.Context, name, code, message string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, code, message)
		return 0, false
	}
	return uint(v), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return false
	}
	return true
}

// nullable maps "" to nil so optional text columns are cleared, not blanked.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
