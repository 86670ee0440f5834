package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/app/respond"
	"github.com/xiuxian-wiki/encyclopedia/apperr"
	"github.com/xiuxian-wiki/encyclopedia/auth"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

var errBadCredentials = apperr.New(apperr.CodeUnauthenticated, "Invalid username or password")

type SessionHandler struct {
	users  UserProvider
	tokens TokenIssuer
	log    *zap.Logger
}

func NewSessionHandler(users UserProvider, tokens TokenIssuer, log *zap.Logger) *SessionHandler {
	return &SessionHandler{users: users, tokens: tokens, log: log}
}

func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		respond.Error(w, h.log, apperr.MissingField("username"), "login")
		return
	}
	if input.Password == "" {
		respond.Error(w, h.log, apperr.MissingField("password"), "login")
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			respond.Error(w, h.log, errBadCredentials, "login")
			return
		}
		respond.Error(w, h.log, err, "failed to load user")
		return
	}
	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		h.log.Info("rejected login", zap.String("username", input.Username))
		respond.Error(w, h.log, errBadCredentials, "login")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		respond.Error(w, h.log, err, "failed to issue token")
		return
	}

	respond.JSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserResponse(user)})
}

// HandleMe must run behind auth.Authenticator.Middleware.
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, h.log, apperr.Unauthenticated, "me")
		return
	}
	respond.JSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
