package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/domain/account"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Users and roles
// --------------------------------------------------

func (r *AccountGormRepository) CreateOwner(
	ctx context.Context,
	shop *models.Barbershop,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slug_already_exists")
			}
			return err
		}

		if err := tx.Create(user).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("email_already_exists")
			}
			return err
		}

		return tx.Create(&models.UserRole{
			UserID:       user.ID,
			BarbershopID: shop.ID,
			Role:         models.RoleAdmin,
		}).Error
	})
}

func (r *AccountGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) ListRoles(
	ctx context.Context,
	userID uint,
) ([]models.UserRole, error) {

	roles := []models.UserRole{}
	if err := r.db.WithContext(ctx).
		Preload("Barbershop").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// FindAdminBarbershopID returns the first barbershop the user administers.
func (r *AccountGormRepository) FindAdminBarbershopID(
	ctx context.Context,
	userID uint,
) (uint, error) {

	var role models.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, models.RoleAdmin).
		Order("id ASC").
		First(&role).Error; err != nil {
		return 0, err
	}
	return role.BarbershopID, nil
}

// --------------------------------------------------
// Password reset
// --------------------------------------------------

func (r *AccountGormRepository) CreateResetToken(
	ctx context.Context,
	t *models.PasswordResetToken,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *AccountGormRepository) FindResetToken(
	ctx context.Context,
	tokenHash string,
) (*models.PasswordResetToken, error) {

	var t models.PasswordResetToken
	if err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *AccountGormRepository) ResetPassword(
	ctx context.Context,
	token *models.PasswordResetToken,
	passwordHash string,
	at time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used_at IS NULL", token.ID).
			Update("used_at", at)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// consumed concurrently
			return httperr.ErrBusiness("invalid_reset_token")
		}

		if err := tx.Model(&models.PasswordResetToken{}).
			Where("user_id = ? AND used_at IS NULL", token.UserID).
			Update("used_at", at).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Updates(map[string]any{
				"password_hash":       passwordHash,
				"password_changed_at": at,
			}).Error
	})
}

// PurgeResetTokens removes tokens that can no longer be used.
func (r *AccountGormRepository) PurgeResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", now).
		Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}

var _ account.Repository = (*AccountGormRepository)(nil)
