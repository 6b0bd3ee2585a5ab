package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/Msdoshack/2do/internal/domain"
	"github.com/Msdoshack/2do/internal/notify"
	"github.com/Msdoshack/2do/internal/platform/logger"
	"github.com/Msdoshack/2do/internal/service/auth"
	"github.com/Msdoshack/2do/internal/store"
	"github.com/google/uuid"
)

// Messages returned on successful account operations.
const (
	MsgCodeSent        = "code sent"
	MsgAccountCreated  = "account created"
	MsgPasswordOK      = "ok"
	MsgPasswordChanged = "password changed"
	MsgEmailChanged    = "email changed"
	MsgInfoUpdated     = "info updated"
)

// Input validation messages.
const (
	msgPasswordRequired    = "password field is required"
	msgNewPasswordRequired = "newPassword field is required"
	msgCodeRequired        = "code field is required"
	msgSameEmail           = "new email must differ from the current one"
	msgPasswordTooLong     = "password must be at most 72 bytes"
)

// maxCodeAttempts bounds how often a colliding confirmation code is regenerated.
const maxCodeAttempts = 3

// SignInResult is the outcome of a successful sign-in.
type SignInResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AccountService provides registration, sign-in and account management.
type AccountService interface {
	// Register emails a confirmation code and stores a pending registration.
	Register(ctx context.Context, username, email, password string) error

	// ConfirmRegistration promotes the pending registration holding code into an account.
	ConfirmRegistration(ctx context.Context, code string) (*domain.User, error)

	// SignIn verifies credentials and issues an access token.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// CheckPassword verifies the caller's password.
	CheckPassword(ctx context.Context, p Principal, password string) error

	// ChangePassword replaces the caller's password after checking the current one.
	ChangePassword(ctx context.Context, p Principal, current, newPassword string) error

	// RequestEmailChange emails a code to the caller's current address and
	// records newEmail as pending.
	RequestEmailChange(ctx context.Context, p Principal, password, newEmail string) error

	// ConfirmEmailChange commits the pending email when code matches.
	ConfirmEmailChange(ctx context.Context, p Principal, code string) (*domain.User, error)

	// GetProfile returns the caller's account.
	GetProfile(ctx context.Context, p Principal) (*domain.User, error)

	// UpdateProfile changes the username of accountID, which must be the caller.
	UpdateProfile(ctx context.Context, p Principal, accountID uuid.UUID, username string) (*domain.User, error)

	// ListAccounts returns every account. Admin only.
	ListAccounts(ctx context.Context, p Principal) ([]*domain.User, error)

	// ResolvePrincipal loads the principal for an authenticated account ID.
	ResolvePrincipal(ctx context.Context, accountID uuid.UUID) (Principal, error)
}

// AccountDeps groups the collaborators of the account service.
type AccountDeps struct {
	Users         store.UserStore
	Registrations store.RegistrationStore
	Tx            store.Transactor
	Hasher        auth.PasswordHasher
	Tokens        auth.JWTService
	Codes         auth.CodeGenerator
	Notifier      notify.Notifier
}

type accountServiceImpl struct {
	AccountDeps
	logger *slog.Logger
}

var _ AccountService = (*accountServiceImpl)(nil)

// NewAccountService creates an AccountService.
// It returns an error if any dependency is nil.
func NewAccountService(deps AccountDeps, logger *slog.Logger) (AccountService, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"users", deps.Users == nil},
		{"registrations", deps.Registrations == nil},
		{"tx", deps.Tx == nil},
		{"hasher", deps.Hasher == nil},
		{"tokens", deps.Tokens == nil},
		{"codes", deps.Codes == nil},
		{"notifier", deps.Notifier == nil},
	}
	for _, r := range required {
		if r.missing {
			return nil, domain.NewValidationError(r.name, "cannot be nil", domain.ErrValidation)
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		AccountDeps: deps,
		logger:      logger.With(slog.String("component", "account_service")),
	}, nil
}

// Register implements AccountService.Register
func (s *accountServiceImpl) Register(ctx context.Context, username, email, password string) error {
	const op = "account.register"
	log := logger.FromContextOrDefault(ctx, s.logger)

	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateUsername(username); err != nil {
		return validationError(op, err.Error(), err)
	}
	if err := domain.ValidateEmail(email); err != nil {
		return validationError(op, err.Error(), err)
	}
	if password == "" {
		return validationError(op, msgPasswordRequired, nil)
	}
	if len(password) > auth.MaxPasswordBytes {
		return validationError(op, msgPasswordTooLong, auth.ErrPasswordTooLong)
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		log.Debug("sign-up for registered email rejected")
		return NewError(KindConflict, op, MsgEmailTaken, store.ErrEmailExists)
	} else if !store.IsNotFoundError(err) {
		return internalError(op, err)
	}

	hashed, err := s.hashPassword(op, password)
	if err != nil {
		return err
	}

	// A code already held by another registration is replaced and mailed again;
	// the earlier code was never stored, so it cannot confirm anything.
	for attempt := 1; ; attempt++ {
		code, err := s.Codes.Generate()
		if err != nil {
			return internalError(op, err)
		}

		pending, err := domain.NewPendingRegistration(username, email, hashed, code)
		if err != nil {
			return validationError(op, err.Error(), err)
		}

		if err := s.Notifier.SendSignUpCode(ctx, email, username, code); err != nil {
			log.Error("failed to send sign-up code", slog.String("error", err.Error()))
			return internalError(op, err)
		}

		err = s.Registrations.Upsert(ctx, pending)
		if errors.Is(err, store.ErrCodeExists) && attempt < maxCodeAttempts {
			log.Warn("sign-up code collided, regenerating", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return internalError(op, err)
		}

		log.Info("pending registration created", slog.String("registration_id", pending.ID.String()))
		return nil
	}
}

// ConfirmRegistration implements AccountService.ConfirmRegistration.
// Creating the account and deleting the pending registration happen in one transaction.
func (s *accountServiceImpl) ConfirmRegistration(ctx context.Context, code string) (*domain.User, error) {
	const op = "account.confirm_registration"
	log := logger.FromContextOrDefault(ctx, s.logger)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError(op, msgCodeRequired, domain.ErrEmptyCode)
	}

	var user *domain.User
	err := s.Tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		regs := s.Registrations.WithTx(tx)
		users := s.Users.WithTx(tx)

		pending, err := regs.GetByCode(ctx, code)
		if err != nil {
			if store.IsNotFoundError(err) {
				return validationError(op, MsgInvalidCode, err)
			}
			return err
		}

		user, err = pending.Promote()
		if err != nil {
			return validationError(op, err.Error(), err)
		}

		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				return NewError(KindConflict, op, MsgEmailTaken, err)
			}
			return err
		}

		return regs.Delete(ctx, pending.ID)
	})
	if err != nil {
		return nil, asServiceError(op, err)
	}

	log.Info("account created", slog.String("user_id", user.ID.String()))
	return user, nil
}

// SignIn implements AccountService.SignIn.
// Unknown email and wrong password fail with the same message.
func (s *accountServiceImpl) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	const op = "account.sign_in"
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, validationError(op, domain.ErrEmptyEmail.Error(), domain.ErrEmptyEmail)
	}
	if password == "" {
		return nil, validationError(op, msgPasswordRequired, nil)
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("sign-in for unknown email")
			return nil, NewError(KindUnauthenticated, op, MsgWrongCredentials, err)
		}
		return nil, internalError(op, err)
	}

	if err := s.Hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("sign-in with wrong password", slog.String("user_id", user.ID.String()))
			return nil, NewError(KindUnauthenticated, op, MsgWrongCredentials, err)
		}
		return nil, internalError(op, err)
	}

	token, err := s.Tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, internalError(op, err)
	}

	log.Info("user signed in", slog.String("user_id", user.ID.String()))
	return &SignInResult{User: user, Token: token}, nil
}

// CheckPassword implements AccountService.CheckPassword
func (s *accountServiceImpl) CheckPassword(ctx context.Context, p Principal, password string) error {
	const op = "account.check_password"

	if password == "" {
		return validationError(op, msgPasswordRequired, nil)
	}

	user, err := s.loadAccount(ctx, op, p)
	if err != nil {
		return err
	}

	return s.comparePassword(op, user, password, KindValidation, MsgIncorrectPassword)
}

// ChangePassword implements AccountService.ChangePassword
func (s *accountServiceImpl) ChangePassword(ctx context.Context, p Principal, current, newPassword string) error {
	const op = "account.change_password"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if current == "" {
		return validationError(op, msgPasswordRequired, nil)
	}
	if newPassword == "" {
		return validationError(op, msgNewPasswordRequired, nil)
	}
	if len(newPassword) > auth.MaxPasswordBytes {
		return validationError(op, msgPasswordTooLong, auth.ErrPasswordTooLong)
	}

	user, err := s.loadAccount(ctx, op, p)
	if err != nil {
		return err
	}

	if err := s.comparePassword(op, user, current, KindForbidden, MsgWrongPassword); err != nil {
		return err
	}

	hashed, err := s.hashPassword(op, newPassword)
	if err != nil {
		return err
	}
	user.HashedPassword = hashed
	user.Touch()

	if err := s.Users.Update(ctx, user); err != nil {
		return internalError(op, err)
	}

	log.Info("password changed", slog.String("user_id", user.ID.String()))
	return nil
}

// RequestEmailChange implements AccountService.RequestEmailChange.
// The code goes to the current address so the owner of the account approves the change.
func (s *accountServiceImpl) RequestEmailChange(ctx context.Context, p Principal, password, newEmail string) error {
	const op = "account.request_email_change"
	log := logger.FromContextOrDefault(ctx, s.logger)

	newEmail = domain.NormalizeEmail(newEmail)
	if err := domain.ValidateEmail(newEmail); err != nil {
		return validationError(op, err.Error(), err)
	}
	if password == "" {
		return validationError(op, msgPasswordRequired, nil)
	}

	user, err := s.loadAccount(ctx, op, p)
	if err != nil {
		return err
	}

	if err := s.comparePassword(op, user, password, KindValidation, MsgWrongPassword); err != nil {
		return err
	}

	if newEmail == user.Email {
		return validationError(op, msgSameEmail, nil)
	}
	if other, err := s.Users.GetByEmail(ctx, newEmail); err == nil && other.ID != user.ID {
		return NewError(KindConflict, op, MsgEmailTaken, store.ErrEmailExists)
	} else if err != nil && !store.IsNotFoundError(err) {
		return internalError(op, err)
	}

	var code string
	for attempt := 1; ; attempt++ {
		code, err = s.Codes.Generate()
		if err != nil {
			return internalError(op, err)
		}

		user.PendingEmail = newEmail
		user.VerificationCode = code
		user.Touch()
		err = s.Users.Update(ctx, user)
		if errors.Is(err, store.ErrCodeExists) && attempt < maxCodeAttempts {
			log.Warn("email change code collided, regenerating",
				slog.Int("attempt", attempt),
				slog.String("user_id", user.ID.String()))
			continue
		}
		if err != nil {
			return internalError(op, err)
		}
		break
	}

	if err := s.Notifier.SendEmailChangeCode(ctx, user.Email, user.Username, code); err != nil {
		log.Error("failed to send email change code",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return internalError(op, err)
	}

	log.Info("email change requested", slog.String("user_id", user.ID.String()))
	return nil
}

// ConfirmEmailChange implements AccountService.ConfirmEmailChange.
// The code is cleared on success so it cannot be replayed.
func (s *accountServiceImpl) ConfirmEmailChange(ctx context.Context, p Principal, code string) (*domain.User, error) {
	const op = "account.confirm_email_change"
	log := logger.FromContextOrDefault(ctx, s.logger)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError(op, msgCodeRequired, domain.ErrEmptyCode)
	}

	user, err := s.Users.GetByVerificationCode(ctx, code)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, validationError(op, MsgWrongCode, err)
		}
		return nil, internalError(op, err)
	}
	if user.ID != p.AccountID || user.PendingEmail == "" {
		log.Warn("email change code presented by another account",
			slog.String("caller_id", p.AccountID.String()))
		return nil, validationError(op, MsgWrongCode, nil)
	}

	user.Email = user.PendingEmail
	user.PendingEmail = ""
	user.VerificationCode = ""
	user.Touch()

	if err := s.Users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, NewError(KindConflict, op, MsgEmailTaken, err)
		}
		return nil, internalError(op, err)
	}

	log.Info("email changed", slog.String("user_id", user.ID.String()))
	return user, nil
}

// GetProfile implements AccountService.GetProfile
func (s *accountServiceImpl) GetProfile(ctx context.Context, p Principal) (*domain.User, error) {
	return s.loadAccount(ctx, "account.get_profile", p)
}

// UpdateProfile implements AccountService.UpdateProfile
func (s *accountServiceImpl) UpdateProfile(
	ctx context.Context,
	p Principal,
	accountID uuid.UUID,
	username string,
) (*domain.User, error) {
	const op = "account.update_profile"

	if accountID != p.AccountID {
		return nil, NewError(KindForbidden, op, MsgNotPermitted, nil)
	}

	username = strings.TrimSpace(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, validationError(op, err.Error(), err)
	}

	user, err := s.loadAccount(ctx, op, p)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Touch()
	if err := s.Users.Update(ctx, user); err != nil {
		return nil, internalError(op, err)
	}
	return user, nil
}

// ListAccounts implements AccountService.ListAccounts
func (s *accountServiceImpl) ListAccounts(ctx context.Context, p Principal) ([]*domain.User, error) {
	const op = "account.list"

	if !p.IsAdmin() {
		return nil, NewError(KindForbidden, op, MsgAdminOnly, nil)
	}

	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, internalError(op, err)
	}
	return users, nil
}

// ResolvePrincipal implements AccountService.ResolvePrincipal.
// A token for an account that no longer exists is unauthenticated.
func (s *accountServiceImpl) ResolvePrincipal(ctx context.Context, accountID uuid.UUID) (Principal, error) {
	const op = "account.resolve_principal"

	user, err := s.Users.GetByID(ctx, accountID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return Principal{}, NewError(KindUnauthenticated, op, MsgUnauthorized, err)
		}
		return Principal{}, internalError(op, err)
	}
	return PrincipalFor(user), nil
}

// loadAccount fetches the caller's account. A principal whose account is gone
// is treated as unauthenticated.
func (s *accountServiceImpl) loadAccount(ctx context.Context, op string, p Principal) (*domain.User, error) {
	user, err := s.Users.GetByID(ctx, p.AccountID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewError(KindUnauthenticated, op, MsgUnauthorized, err)
		}
		return nil, internalError(op, err)
	}
	return user, nil
}

// comparePassword checks password against the account hash and reports a
// mismatch as the given kind and message.
func (s *accountServiceImpl) comparePassword(op string, user *domain.User, password string, kind Kind, msg string) error {
	err := s.Hasher.Compare(user.HashedPassword, password)
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrPasswordMismatch) {
		return NewError(kind, op, msg, err)
	}
	return internalError(op, err)
}

// hashPassword hashes a new password, reporting an over-long one as invalid input.
func (s *accountServiceImpl) hashPassword(op, password string) (string, error) {
	hashed, err := s.Hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", validationError(op, msgPasswordTooLong, err)
	}
	if err != nil {
		return "", internalError(op, err)
	}
	return hashed, nil
}

// asServiceError passes *Error values through and wraps anything else as internal.
func asServiceError(op string, err error) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return internalError(op, err)
}
