// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	"github.com/taibuivan/addressbook/internal/platform/ctxutil"
	"github.com/taibuivan/addressbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/addressbook/internal/platform/request"
	"github.com/taibuivan/addressbook/internal/platform/respond"
	"github.com/taibuivan/addressbook/internal/platform/validate"
)

// Messages returned regardless of whether the account exists.
const (
	forgotPasswordMessage = "If an account exists for that email, a reset link has been sent"
	resetPasswordMessage  = "Password has been reset"
	changePasswordMessage = "Password has been changed"
)

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// # Definitions & Constructors

// Handler implements the account HTTP endpoints.
type Handler struct {
	repository *Repository
}

// NewHandler constructs a new account [Handler].
func NewHandler(repository *Repository) *Handler {
	return &Handler{repository: repository}
}

// Routes returns a [chi.Router] for /api/v1/auth.
//
// # Endpoints
//   - POST /register, /login, /forgot-password, /reset-password : public
//   - POST /change-password, GET /me : authenticated
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

/*
POST /api/v1/auth/register

Response:
  - 201: Profile
  - 400: Validation
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := (&validate.Validator{}).
		Required("first_name", input.FirstName).
		MaxLen("first_name", input.FirstName, 100).
		Required("last_name", input.LastName).
		MaxLen("last_name", input.LastName, 100).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, minPasswordLength).
		MaxLen("password", input.Password, maxPasswordLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.repository.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

/*
POST /api/v1/auth/login

Response:
  - 200: sessionResponse
  - 401: ErrUnauthorized: Unknown email or wrong password, indistinguishably
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := (&validate.Validator{}).
		Required("email", input.Email).
		Required("password", input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.repository.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if token == "" {
		respond.Error(writer, request, apperr.Unauthorized("Invalid email or password"))
		return
	}

	respond.OK(writer, sessionResponse{Token: token})
}

/*
POST /api/v1/auth/forgot-password

Always answers 200 with the same message so callers cannot probe which
emails are registered.
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).Required("email", input.Email).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.repository.ForgotPassword(request.Context(), input.Email); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "forgot_password_failed",
			slog.Any("error", err),
		)
	}

	respond.Message(writer, forgotPasswordMessage)
}

/*
POST /api/v1/auth/reset-password

Response:
  - 200: Message
  - 400: Validation: Mismatch, invalid or expired token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := (&validate.Validator{}).
		Required("token", input.Token).
		Required("password", input.Password).
		MinLen("password", input.Password, minPasswordLength).
		MaxLen("password", input.Password, maxPasswordLength).
		Custom("confirm_password", input.Password != input.ConfirmPassword, "Passwords do not match").
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	done, err := handler.repository.ResetPassword(request.Context(), input.Token, input.Password, input.ConfirmPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !done {
		respond.Error(writer, request, apperr.ValidationError("Invalid or expired reset token"))
		return
	}

	respond.Message(writer, resetPasswordMessage)
}

/*
POST /api/v1/auth/change-password

Response:
  - 200: Message
  - 400: Validation: Wrong current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = (&validate.Validator{}).
		Required("current_password", input.CurrentPassword).
		Required("new_password", input.NewPassword).
		MinLen("new_password", input.NewPassword, minPasswordLength).
		MaxLen("new_password", input.NewPassword, maxPasswordLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	changed, err := handler.repository.ChangePassword(request.Context(), claims.Email, input.CurrentPassword, input.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !changed {
		respond.Error(writer, request, validate.RequiredError("current_password", "Current password is incorrect"))
		return
	}

	respond.Message(writer, changePasswordMessage)
}

// GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.repository.GetUserProfile(request.Context(), claims.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if profile == nil {
		respond.Error(writer, request, apperr.NotFound("Account"))
		return
	}

	respond.OK(writer, profile)
}
