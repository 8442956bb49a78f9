package response

import (
	"errors"
	"net/http"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/auth"
	"github.com/bizprofile/bizprofile-backend-go/internal/domain/profile"
	"github.com/bizprofile/bizprofile-backend-go/internal/domain/user"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserMobileExists):
		Conflict(w, "Mobile number already registered")
	case errors.Is(err, user.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, user.ErrInvalidVerifyCode):
		BadRequest(w, "Invalid or expired verification code", nil)

	// Company profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Company profile not found")
	case errors.Is(err, profile.ErrProfileExists):
		Conflict(w, "Company profile already exists for this user")
	case errors.Is(err, profile.ErrCompanyNameExists):
		Conflict(w, "Company name already taken")
	case errors.Is(err, profile.ErrNoUpdatableFields):
		BadRequest(w, "No updatable fields provided", nil)
	case errors.Is(err, profile.ErrInvalidImageField):
		BadRequest(w, "Image field must be logo_url or banner_url", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
