package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/domain/account"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

// HashResetToken is how reset tokens are stored; the raw value only
// exists in the link sent to the user.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ======================================================
// FORGOT PASSWORD
// ======================================================

type ForgotPassword struct {
	repo    account.Repository
	mailer  Mailer
	ttl     time.Duration
	urlBase string
	now     func() time.Time
}

func NewForgotPassword(repo account.Repository, mailer Mailer, ttl time.Duration, urlBase string) *ForgotPassword {
	return &ForgotPassword{
		repo:    repo,
		mailer:  mailer,
		ttl:     ttl,
		urlBase: strings.TrimRight(urlBase, "/"),
		now:     time.Now,
	}
}

// Execute never reveals whether the e-mail is registered: lookup, store and
// delivery failures are logged and the caller sees success either way.
func (uc *ForgotPassword) Execute(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	user, err := uc.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.ErrorContext(ctx, "forgot password lookup failed", "error", err)
		}
		return nil
	}

	raw := uuid.NewString()
	t := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: HashResetToken(raw),
		ExpiresAt: uc.now().Add(uc.ttl),
	}
	if err := uc.repo.CreateResetToken(ctx, t); err != nil {
		slog.ErrorContext(ctx, "create reset token failed", "user_id", user.ID, "error", err)
		return nil
	}

	link := uc.urlBase + "?token=" + raw
	if err := uc.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		slog.ErrorContext(ctx, "send reset link failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ======================================================
// CHECK TOKEN
// ======================================================

type SessionState string

const (
	StateValid   SessionState = "valid"
	StateInvalid SessionState = "invalid"
	StateError   SessionState = "error"
)

const (
	msgLinkExpired = "O link de recuperação é inválido ou expirou."
	msgLinkUnknown = "Nenhum link de recuperação válido encontrado. Solicite um novo link."
	msgLinkError   = "Ocorreu um erro ao processar o link de recuperação."
)

type ResetSession struct {
	State   SessionState `json:"state"`
	Message string       `json:"message,omitempty"`
}

type CheckResetToken struct {
	repo account.Repository
	now  func() time.Time
}

func NewCheckResetToken(repo account.Repository) *CheckResetToken {
	return &CheckResetToken{repo: repo, now: time.Now}
}

func (uc *CheckResetToken) Execute(ctx context.Context, raw string) ResetSession {
	_, err := findUsableToken(ctx, uc.repo, raw, uc.now())
	switch {
	case err == nil:
		return ResetSession{State: StateValid}
	case errors.Is(err, errTokenUnknown):
		return ResetSession{State: StateInvalid, Message: msgLinkUnknown}
	case errors.Is(err, errTokenSpent):
		return ResetSession{State: StateInvalid, Message: msgLinkExpired}
	default:
		slog.ErrorContext(ctx, "check reset token failed", "error", err)
		return ResetSession{State: StateError, Message: msgLinkError}
	}
}

var (
	errTokenUnknown = errors.New("reset token unknown")
	errTokenSpent   = errors.New("reset token expired or used")
)

func findUsableToken(
	ctx context.Context,
	repo account.Repository,
	raw string,
	now time.Time,
) (*models.PasswordResetToken, error) {

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errTokenUnknown
	}

	t, err := repo.FindResetToken(ctx, HashResetToken(raw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errTokenUnknown
		}
		return nil, err
	}
	if t.UsedAt != nil || !now.Before(t.ExpiresAt) {
		return nil, errTokenSpent
	}
	return t, nil
}

// ======================================================
// RESET PASSWORD
// ======================================================

type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

type ResetPassword struct {
	repo  account.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewResetPassword(repo account.Repository, audit audit.Recorder) *ResetPassword {
	return &ResetPassword{repo: repo, audit: audit, now: time.Now}
}

// Execute sets the new password and signs the user out everywhere: tokens
// issued before the change are rejected by the auth middleware.
func (uc *ResetPassword) Execute(ctx context.Context, in ResetPasswordInput) error {
	if strings.TrimSpace(in.Password) == "" || strings.TrimSpace(in.ConfirmPassword) == "" {
		return httperr.ErrBusiness("missing_fields")
	}
	if len(in.Password) < account.MinPasswordLength {
		return httperr.ErrBusiness("password_too_short")
	}
	if in.Password != in.ConfirmPassword {
		return httperr.ErrBusiness("password_mismatch")
	}

	now := uc.now()
	t, err := findUsableToken(ctx, uc.repo, in.Token, now)
	if err != nil {
		if errors.Is(err, errTokenUnknown) || errors.Is(err, errTokenSpent) {
			return httperr.ErrBusiness("invalid_reset_token")
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// session tokens carry millisecond issue times
	if err := uc.repo.ResetPassword(ctx, t, string(hashed), now.Truncate(time.Millisecond)); err != nil {
		return err
	}

	if shopID, err := uc.repo.FindAdminBarbershopID(ctx, t.UserID); err == nil {
		userID := t.UserID
		uc.audit.Dispatch(audit.Event{
			BarbershopID: shopID,
			UserID:       &userID,
			Action:       audit.ActionPasswordReset,
			Entity:       "user",
			EntityID:     &userID,
		})
	}
	return nil
}
