package api

// SignUpRequest is the payload for POST /auth/sign-up.
type SignUpRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// VerifyCodeRequest is the payload for POST /auth/verify-sign-up.
type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// SignInRequest is the payload for POST /auth/sign-in.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordCheckRequest is the payload for POST /auth/password-check.
type PasswordCheckRequest struct {
	Password string `json:"password" validate:"required"`
}

// CreateTodoRequest is the payload for POST /todos.
type CreateTodoRequest struct {
	Title            string `json:"title"            validate:"required"`
	Description      string `json:"description"      validate:"required"`
	Reminder         *bool  `json:"reminder"`
	ReminderInterval string `json:"reminderInterval"`
}

// UpdateTodoRequest is the payload for PUT /todos/{todoId}.
// Absent fields are left unchanged.
type UpdateTodoRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	IsDone           *bool   `json:"isDone"`
	ReminderInterval *string `json:"reminderInterval"`
}

// VerifyEmailRequest is the payload for POST /users/verify-email.
type VerifyEmailRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateEmailRequest is the payload for PATCH /users/update-email.
type UpdateEmailRequest struct {
	Code string `json:"code" validate:"required"`
}

// ChangePasswordRequest is the payload for PATCH /users/change-password.
type ChangePasswordRequest struct {
	Password    string `json:"password"    validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max=72"`
}

// UpdateUserRequest is the payload for PUT /users/{userId}.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
}
