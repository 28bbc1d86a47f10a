package account

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-hub/internal/models"
)

// MinPasswordLength applies to registration and password reset.
const MinPasswordLength = 6

type Repository interface {
	// CreateOwner stores a new barbershop, its first user and the admin
	// role in one transaction.
	CreateOwner(ctx context.Context, shop *models.Barbershop, user *models.User) error

	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListRoles(ctx context.Context, userID uint) ([]models.UserRole, error)
	FindAdminBarbershopID(ctx context.Context, userID uint) (uint, error)

	CreateResetToken(ctx context.Context, t *models.PasswordResetToken) error
	FindResetToken(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	// ResetPassword saves the new hash, consumes the token and revokes every
	// other open token of the user.
	ResetPassword(ctx context.Context, token *models.PasswordResetToken, passwordHash string, at time.Time) error
	PurgeResetTokens(ctx context.Context, now time.Time) (int64, error)
}
