package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/domain/account"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
)

type Login struct {
	repo   account.Repository
	tokens *Tokens
	now    func() time.Time
}

func NewLogin(repo account.Repository, tokens *Tokens) *Login {
	return &Login{repo: repo, tokens: tokens, now: time.Now}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.repo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	roles, err := uc.repo.ListRoles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	token, err := uc.tokens.Issue(user.ID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{Token: token, User: user, Roles: roles}, nil
}
