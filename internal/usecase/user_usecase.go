// Package usecase defines the application's business interfaces and the
// request/response records exchanged with the delivery layer.
package usecase

import "context"

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput carries a validated login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateInput carries a partial profile update. Nil fields are left
// unchanged; present fields are validated individually.
type UpdateInput struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image" validate:"omitempty,url"`
}

// RegisterRequest is the wire envelope for RegisterInput.
type RegisterRequest struct {
	User RegisterInput `json:"user" validate:"required"`
}

// LoginRequest is the wire envelope for LoginInput.
type LoginRequest struct {
	User LoginInput `json:"user" validate:"required"`
}

// UpdateRequest is the wire envelope for UpdateInput.
type UpdateRequest struct {
	User UpdateInput `json:"user"`
}

// UserBody is the public projection of an account plus a freshly issued
// token. It never carries the password hash.
type UserBody struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"`
}

// UserResponse is the wire envelope for UserBody.
type UserResponse struct {
	User UserBody `json:"user"`
}

// UserUsecase defines the authenticated account-management workflow.
// Business-rule failures (account exists, unauthorized, validation) are
// returned as domain error values, never panics.
type UserUsecase interface {
	// Register creates a new account and returns it with a fresh token.
	Register(ctx context.Context, input *RegisterInput) (*UserResponse, error)

	// Login authenticates by email and password and returns a fresh token.
	// Unknown email and password mismatch fail identically.
	Login(ctx context.Context, input *LoginInput) (*UserResponse, error)

	// GetCurrent resolves the account behind a bearer token.
	GetCurrent(ctx context.Context, token string) (*UserResponse, error)

	// Update applies a partial profile update to the account behind the
	// token and returns it with a token re-signed for the resulting email.
	Update(ctx context.Context, token string, input *UpdateInput) (*UserResponse, error)
}
