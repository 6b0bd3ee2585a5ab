package api

import (
	"log/slog"
	"net/http"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/service"
)

const msgSignedIn = "user signed in successfully"

// AuthHandler handles sign-up, sign-in and password checks.
type AuthHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts service.AccountService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, service.MsgCodeSent, nil)
}

// VerifySignUp handles POST /auth/verify-sign-up.
func (h *AuthHandler) VerifySignUp(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.accounts.ConfirmRegistration(r.Context(), req.Code)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("account created", slog.String("user_id", user.ID.String()))
	shared.RespondSuccess(w, r, http.StatusOK, service.MsgAccountCreated, nil)
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, msgSignedIn, res)
}

// PasswordCheck handles POST /auth/password-check.
func (h *AuthHandler) PasswordCheck(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	var req PasswordCheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.accounts.CheckPassword(r.Context(), p, req.Password); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, service.MsgPasswordOK, nil)
}
