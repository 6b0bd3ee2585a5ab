package api

import (
	"log/slog"
	"net/http"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const msgNotImplemented = "not implemented"

// UserHandler handles the account management endpoints.
type UserHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts service.AccountService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	users, err := h.accounts.ListAccounts(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", users)
}

// SingleUser handles GET /users/single-user and returns the caller's account.
func (h *UserHandler) SingleUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.GetProfile(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, "", user)
}

// VerifyEmail handles POST /users/verify-email. The body carries the new
// address and the current password; a code goes to the current address.
func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	var req VerifyEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.accounts.RequestEmailChange(r.Context(), p, req.Password, req.Email); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, service.MsgPasswordOK, nil)
}

// UpdateEmail handles PATCH /users/update-email.
func (h *UserHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	var req UpdateEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.accounts.ConfirmEmailChange(r.Context(), p, req.Code); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, service.MsgEmailChanged, nil)
}

// ChangePassword handles PATCH /users/change-password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), p, req.Password, req.NewPassword); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, service.MsgPasswordChanged, nil)
}

// Update handles PUT /users/{userId}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrAbort(w, r)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, service.MsgInvalidID, err)
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.accounts.UpdateProfile(r.Context(), p, accountID, req.Username); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, service.MsgInfoUpdated, nil)
}

// Delete handles DELETE /users/{userId}. Account deletion is not offered.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotImplemented, msgNotImplemented)
}
