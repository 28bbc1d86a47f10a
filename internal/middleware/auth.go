package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/usecase/auth"
)

const (
	ContextUserID       = "userID"
	ContextIssuedAt     = "tokenIssuedAt"
	ContextBarbershopID = "barbershopID"
)

func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação necessária.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIssuedAt, claims.IssuedAt)

		c.Next()
	}
}

// AdminLookup is the part of the account store the admin guard needs.
type AdminLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindAdminBarbershopID(ctx context.Context, userID uint) (uint, error)
}

// RequireBarbershopAdmin resolves the barbershop the caller administers and
// rejects sessions issued at or before the user's last password change.
// Must run after AuthMiddleware.
func RequireBarbershopAdmin(lookup AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uint)
		issuedAt := c.MustGet(ContextIssuedAt).(time.Time)
		ctx := c.Request.Context()

		user, err := lookup.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
				return
			}
			httperr.Respond(c, err, "auth_lookup_failed", "Erro ao validar sessão.")
			return
		}

		if user.PasswordChangedAt != nil &&
			!issuedAt.After(user.PasswordChangedAt.Truncate(time.Millisecond)) {
			httperr.Unauthorized(c, "session_revoked", "Sua senha foi alterada. Entre novamente.")
			return
		}

		shopID, err := lookup.FindAdminBarbershopID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Forbidden(c, "not_barbershop_admin", "Você não administra nenhuma barbearia.")
				return
			}
			httperr.Respond(c, err, "auth_lookup_failed", "Erro ao validar sessão.")
			return
		}

		c.Set(ContextBarbershopID, shopID)
		c.Next()
	}
}
