package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-hub/internal/domain/account"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/theme"
	"github.com/BruksfildServices01/barber-hub/internal/timezone"
	"github.com/BruksfildServices01/barber-hub/internal/validators"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	BarbershopName string
	BarbershopSlug string
	WhatsappNumber string
	BusinessType   string
	Timezone       string

	Name     string
	Email    string
	Password string
}

type Session struct {
	Token string            `json:"token"`
	User  *models.User      `json:"user"`
	Roles []models.UserRole `json:"roles"`
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo             account.Repository
	tokens           *Tokens
	checkEmailDomain bool
	now              func() time.Time
}

func NewRegister(repo account.Repository, tokens *Tokens, checkEmailDomain bool) *Register {
	return &Register{
		repo:             repo,
		tokens:           tokens,
		checkEmailDomain: checkEmailDomain,
		now:              time.Now,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	slug := tenant.NormalizeSlug(in.BarbershopSlug)
	if !slugPattern.MatchString(slug) {
		return nil, httperr.ErrBusiness("invalid_slug")
	}

	email := NormalizeEmail(in.Email)
	if uc.checkEmailDomain && !validators.IsEmailDomainValid(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	if len(in.Password) < account.MinPasswordLength {
		return nil, httperr.ErrBusiness("password_too_short")
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, httperr.ErrBusiness("invalid_timezone")
	}

	businessType := strings.TrimSpace(in.BusinessType)
	if businessType == "" {
		businessType = models.BusinessTypeBarbershop
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	shop := &models.Barbershop{
		Slug:            slug,
		Name:            strings.TrimSpace(in.BarbershopName),
		PrimaryColor:    theme.DefaultColors.Primary,
		SecondaryColor:  theme.DefaultColors.Secondary,
		BackgroundColor: theme.DefaultColors.Background,
		TextColor:       theme.DefaultColors.Text,
		BusinessType:    businessType,
		Timezone:        tz,
		Active:          true,
	}
	if w := strings.TrimSpace(in.WhatsappNumber); w != "" {
		shop.WhatsappNumber = &w
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := uc.repo.CreateOwner(ctx, shop, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{
		Token: token,
		User:  user,
		Roles: []models.UserRole{{
			UserID:       user.ID,
			BarbershopID: shop.ID,
			Role:         models.RoleAdmin,
			Barbershop:   *shop,
		}},
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
