package api

import (
	"net/http"
	"testing"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/mocks"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserRouter(accounts *mocks.MockAccountService, p *service.Principal) chi.Router {
	h := NewUserHandler(accounts, nil)
	r := chi.NewRouter()
	r.Use(asPrincipal(p))
	r.Get("/users", h.List)
	r.Get("/users/single-user", h.SingleUser)
	r.Post("/users/verify-email", h.VerifyEmail)
	r.Patch("/users/update-email", h.UpdateEmail)
	r.Patch("/users/change-password", h.ChangePassword)
	r.Put("/users/{userId}", h.Update)
	r.Delete("/users/{userId}", h.Delete)
	return r
}

func TestUserList(t *testing.T) {
	p := service.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}
	user, err := domain.NewUser("alice", "alice@example.com", "hashed")
	require.NoError(t, err)

	accounts := new(mocks.MockAccountService)
	accounts.On("ListAccounts", mock.Anything, p).Return([]*domain.User{user}, nil)

	rec, env := serve(t, newUserRouter(accounts, &p), http.MethodGet, "/users", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "alice@example.com")
	assert.NotContains(t, rec.Body.String(), "hashed")
}

func TestSingleUser(t *testing.T) {
	p := testPrincipal()
	user, err := domain.NewUser("alice", "alice@example.com", "hashed")
	require.NoError(t, err)

	accounts := new(mocks.MockAccountService)
	accounts.On("GetProfile", mock.Anything, p).Return(user, nil)

	rec, env := serve(t, newUserRouter(accounts, &p), http.MethodGet, "/users/single-user", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"username":"alice"`)
}

func TestVerifyEmail(t *testing.T) {
	p := testPrincipal()

	t.Run("code sent", func(t *testing.T) {
		accounts := new(mocks.MockAccountService)
		accounts.On("RequestEmailChange", mock.Anything, p, "pw", "new@example.com").Return(nil)

		rec, env := serve(t, newUserRouter(accounts, &p), http.MethodPost, "/users/verify-email",
			VerifyEmailRequest{Email: "new@example.com", Password: "pw"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.MsgPasswordOK, env.Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		accounts := new(mocks.MockAccountService)

		rec, env := serve(t, newUserRouter(accounts, &p), http.MethodPost, "/users/verify-email",
			VerifyEmailRequest{Email: "nope", Password: "pw"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email format", env.Error)
	})

	t.Run("wrong password", func(t *testing.T) {
		accounts := new(mocks.MockAccountService)
		accounts.On("RequestEmailChange", mock.Anything, p, "bad", "new@example.com").
			Return(service.NewError(service.KindValidation, "account.request_email_change", service.MsgWrongPassword, nil))

		rec, env := serve(t, newUserRouter(accounts, &p), http.MethodPost, "/users/verify-email",
			VerifyEmailRequest{Email: "new@example.com", Password: "bad"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, service.MsgWrongPassword, env.Error)
	})
}

func TestUpdateEmail(t *testing.T) {
	p := testPrincipal()
	user, err := domain.NewUser("alice", "new@example.com", "hashed")
	require.NoError(t, err)

	accounts := new(mocks.MockAccountService)
	accounts.On("ConfirmEmailChange", mock.Anything, p, "042137").Return(user, nil)
	accounts.On("ConfirmEmailChange", mock.Anything, p, "000000").
		Return(nil, service.NewError(service.KindValidation, "account.confirm_email_change", service.MsgWrongCode, nil))
	router := newUserRouter(accounts, &p)

	rec, env := serve(t, router, http.MethodPatch, "/users/update-email", UpdateEmailRequest{Code: "042137"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.MsgEmailChanged, env.Message)

	rec, env = serve(t, router, http.MethodPatch, "/users/update-email", UpdateEmailRequest{Code: "000000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgWrongCode, env.Error)
}

func TestChangePassword(t *testing.T) {
	p := testPrincipal()

	accounts := new(mocks.MockAccountService)
	accounts.On("ChangePassword", mock.Anything, p, "old", "new").Return(nil)
	accounts.On("ChangePassword", mock.Anything, p, "bad", "new").
		Return(service.NewError(service.KindForbidden, "account.change_password", service.MsgWrongPassword, nil))
	router := newUserRouter(accounts, &p)

	rec, env := serve(t, router, http.MethodPatch, "/users/change-password",
		ChangePasswordRequest{Password: "old", NewPassword: "new"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.MsgPasswordChanged, env.Message)

	rec, env = serve(t, router, http.MethodPatch, "/users/change-password",
		ChangePasswordRequest{Password: "bad", NewPassword: "new"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, service.MsgWrongPassword, env.Error)

	rec, env = serve(t, router, http.MethodPatch, "/users/change-password",
		map[string]string{"password": "old"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "newPassword field is required", env.Error)
}

func TestUpdateUser(t *testing.T) {
	p := testPrincipal()
	user, err := domain.NewUser("bob", "alice@example.com", "hashed")
	require.NoError(t, err)

	accounts := new(mocks.MockAccountService)
	accounts.On("UpdateProfile", mock.Anything, p, p.AccountID, "bob").Return(user, nil)
	router := newUserRouter(accounts, &p)

	rec, env := serve(t, router, http.MethodPut, "/users/"+p.AccountID.String(), UpdateUserRequest{Username: "bob"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.MsgInfoUpdated, env.Message)

	rec, env = serve(t, router, http.MethodPut, "/users/nope", UpdateUserRequest{Username: "bob"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgInvalidID, env.Error)
}

func TestDeleteUserNotImplemented(t *testing.T) {
	p := service.Principal{AccountID: uuid.New(), Role: domain.RoleAdmin}

	rec, env := serve(t, newUserRouter(new(mocks.MockAccountService), &p), http.MethodDelete, "/users/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.False(t, env.Success)
}
