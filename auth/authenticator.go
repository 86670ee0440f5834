package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/apperr"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

type UserProvider interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator resolves the user behind a request's bearer token.
type Authenticator struct {
	tokens *Tokens
	users  UserProvider
	log    *zap.Logger
}

func NewAuthenticator(tokens *Tokens, users UserProvider, log *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth fails with apperr.Unauthenticated when the header is missing,
// the token is invalid or expired, or its user no longer exists.
func (a *Authenticator) RequireAuth(r *http.Request) (*models.User, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, apperr.Unauthenticated
	}
	claims, ok := a.tokens.Verify(token)
	if !ok {
		return nil, apperr.Unauthenticated
	}

	user, err := a.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, apperr.Unauthenticated
		}
		return nil, apperr.Wrap(apperr.CodeInternal, "load authenticated user", err)
	}
	return user, nil
}

// RequireAdmin is RequireAuth plus a role check.
func (a *Authenticator) RequireAdmin(r *http.Request) (*models.User, error) {
	user, err := a.RequireAuth(r)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, apperr.Forbidden
	}
	return user, nil
}
