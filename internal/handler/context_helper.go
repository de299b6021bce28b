package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/leave-alteration-api/internal/middleware"
	"github.com/noah-isme/leave-alteration-api/internal/models"
	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims
}

// actorEmpID returns the authenticated employee id or an empty string.
func actorEmpID(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.EmpID
	}
	return ""
}

func int64Param(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+": "+raw)
	}
	return id, nil
}
