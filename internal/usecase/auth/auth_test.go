package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/infra/repository"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/testutil"
)

type captureMailer struct {
	mu    sync.Mutex
	links map[string]string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.links == nil {
		m.links = map[string]string{}
	}
	m.links[email] = link
	return nil
}

type failingMailer struct{}

func (failingMailer) SendPasswordReset(context.Context, string, string) error {
	return errors.New("smtp unavailable")
}

func (m *captureMailer) token(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[email]
	require.True(t, ok, "no link sent to %s", email)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func newTokens() *Tokens {
	return NewTokens("test-secret", time.Hour)
}

func registerOwner(t *testing.T, db *gorm.DB) *Session {
	t.Helper()

	s, err := NewRegister(repository.NewAccountGormRepository(db), newTokens(), false).
		Execute(context.Background(), RegisterInput{
			BarbershopName: "Corte Fino",
			BarbershopSlug: " Corte-Fino ",
			Name:           "Ana",
			Email:          " Ana@Example.com ",
			Password:       "secret1",
		})
	require.NoError(t, err)
	return s
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := newTokens()
	now := time.Now().Truncate(time.Second)

	raw, err := tokens.Issue(42, now)
	require.NoError(t, err)

	c, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), c.UserID)
	assert.True(t, c.IssuedAt.Equal(now))

	precise := now.Add(1234 * time.Millisecond)
	raw, err = tokens.Issue(42, precise)
	require.NoError(t, err)
	c, err = tokens.Parse(raw)
	require.NoError(t, err)
	assert.True(t, c.IssuedAt.Equal(precise), "issue time keeps milliseconds")

	_, err = NewTokens("other-secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := tokens.Issue(42, now.Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = tokens.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterCreatesBarbershopOwner(t *testing.T) {
	db := testutil.NewDB(t)
	s := registerOwner(t, db)

	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "ana@example.com", s.User.Email)
	require.Len(t, s.Roles, 1)
	assert.Equal(t, models.RoleAdmin, s.Roles[0].Role)

	var shop models.Barbershop
	require.NoError(t, db.First(&shop, s.Roles[0].BarbershopID).Error)
	assert.Equal(t, "corte-fino", shop.Slug)
	assert.Equal(t, "#D4A017", shop.PrimaryColor)
	assert.Equal(t, models.BusinessTypeBarbershop, shop.BusinessType)
	assert.True(t, shop.Active)

	var roles int64
	require.NoError(t, db.Model(&models.UserRole{}).Where("user_id = ?", s.User.ID).Count(&roles).Error)
	assert.Equal(t, int64(1), roles)
}

func TestRegisterConflictsAndValidation(t *testing.T) {
	db := testutil.NewDB(t)
	registerOwner(t, db)
	uc := NewRegister(repository.NewAccountGormRepository(db), newTokens(), false)
	ctx := context.Background()

	base := RegisterInput{BarbershopName: "X", BarbershopSlug: "outra", Name: "B", Email: "b@example.com", Password: "secret1"}

	in := base
	in.BarbershopSlug = "corte-fino"
	_, err := uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "slug_already_exists"), "got %v", err)

	in = base
	in.Email = "ANA@example.com"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "email_already_exists"), "got %v", err)

	var shops int64
	require.NoError(t, db.Model(&models.Barbershop{}).Count(&shops).Error)
	assert.Equal(t, int64(1), shops, "failed registration leaves no barbershop behind")

	in = base
	in.BarbershopSlug = "no spaces!"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_slug"))

	in = base
	in.Password = "123"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "password_too_short"))

	in = base
	in.Timezone = "Mars/Olympus"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_timezone"))
}

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	registerOwner(t, db)
	uc := NewLogin(repository.NewAccountGormRepository(db), newTokens())
	ctx := context.Background()

	s, err := uc.Execute(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	require.Len(t, s.Roles, 1)
	assert.Equal(t, "corte-fino", s.Roles[0].Barbershop.Slug)

	_, err = uc.Execute(ctx, "ana@example.com", "wrong")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = uc.Execute(ctx, "nobody@example.com", "secret1")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

func TestPasswordResetFlow(t *testing.T) {
	db := testutil.NewDB(t)
	owner := registerOwner(t, db)
	repo := repository.NewAccountGormRepository(db)
	mailer := &captureMailer{}
	rec := &testutil.AuditRecorder{}
	ctx := context.Background()

	forgot := NewForgotPassword(repo, mailer, time.Hour, "https://app.example/reset-password/")
	require.NoError(t, forgot.Execute(ctx, "ana@example.com"))
	require.NoError(t, forgot.Execute(ctx, "ana@example.com"))
	require.NoError(t, forgot.Execute(ctx, "ghost@example.com"), "unknown e-mails are not revealed")

	raw := mailer.token(t, "ana@example.com")
	assert.True(t, strings.HasPrefix(mailer.links["ana@example.com"], "https://app.example/reset-password?token="))

	var stored models.PasswordResetToken
	require.NoError(t, db.Where("token_hash = ?", HashResetToken(raw)).First(&stored).Error)
	assert.NotEqual(t, raw, stored.TokenHash)

	check := NewCheckResetToken(repo)
	assert.Equal(t, StateValid, check.Execute(ctx, raw).State)
	assert.Equal(t, ResetSession{State: StateInvalid, Message: msgLinkUnknown}, check.Execute(ctx, "nope"))

	reset := NewResetPassword(repo, rec)
	err := reset.Execute(ctx, ResetPasswordInput{Token: raw, Password: "newpass1", ConfirmPassword: "newpass1"})
	require.NoError(t, err)

	assert.Equal(t, ResetSession{State: StateInvalid, Message: msgLinkExpired}, check.Execute(ctx, raw))

	var open int64
	require.NoError(t, db.Model(&models.PasswordResetToken{}).Where("used_at IS NULL").Count(&open).Error)
	assert.Zero(t, open, "every other token of the user is revoked")

	var user models.User
	require.NoError(t, db.First(&user, owner.User.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass1")))
	require.NotNil(t, user.PasswordChangedAt)

	err = reset.Execute(ctx, ResetPasswordInput{Token: raw, Password: "another1", ConfirmPassword: "another1"})
	assert.True(t, httperr.IsBusiness(err, "invalid_reset_token"))

	assert.Equal(t, []string{audit.ActionPasswordReset}, rec.Actions())
}

func TestResetPasswordValidation(t *testing.T) {
	db := testutil.NewDB(t)
	reset := NewResetPassword(repository.NewAccountGormRepository(db), &testutil.AuditRecorder{})
	ctx := context.Background()

	tests := []struct {
		in   ResetPasswordInput
		code string
	}{
		{ResetPasswordInput{Token: "x", Password: " ", ConfirmPassword: "abcdef"}, "missing_fields"},
		{ResetPasswordInput{Token: "x", Password: "abc", ConfirmPassword: "abc"}, "password_too_short"},
		{ResetPasswordInput{Token: "x", Password: "abcdef", ConfirmPassword: "abcdeg"}, "password_mismatch"},
		{ResetPasswordInput{Token: "x", Password: "abcdef", ConfirmPassword: "abcdef"}, "invalid_reset_token"},
	}
	for _, tt := range tests {
		err := reset.Execute(ctx, tt.in)
		assert.True(t, httperr.IsBusiness(err, tt.code), "want %s got %v", tt.code, err)
	}
}

func TestExpiredResetToken(t *testing.T) {
	db := testutil.NewDB(t)
	registerOwner(t, db)
	repo := repository.NewAccountGormRepository(db)
	mailer := &captureMailer{}
	ctx := context.Background()

	forgot := NewForgotPassword(repo, mailer, time.Hour, "https://app.example/reset-password")
	forgot.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	require.NoError(t, forgot.Execute(ctx, "ana@example.com"))

	raw := mailer.token(t, "ana@example.com")
	assert.Equal(t, StateInvalid, NewCheckResetToken(repo).Execute(ctx, raw).State)

	n, err := repo.PurgeResetTokens(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestForgotPasswordHidesDeliveryFailures(t *testing.T) {
	db := testutil.NewDB(t)
	registerOwner(t, db)
	repo := repository.NewAccountGormRepository(db)
	ctx := context.Background()

	forgot := NewForgotPassword(repo, failingMailer{}, time.Hour, "https://app.example/reset-password")
	assert.NoError(t, forgot.Execute(ctx, "ana@example.com"))
	assert.NoError(t, forgot.Execute(ctx, "ghost@example.com"))

	var n int64
	require.NoError(t, db.Model(&models.PasswordResetToken{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.NoError(t, forgot.Execute(ctx, "ana@example.com"), "store failures are not surfaced either")
}
