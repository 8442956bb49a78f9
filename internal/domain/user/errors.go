package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailExists   = errors.New("email already registered")
	ErrUserMobileExists  = errors.New("mobile number already registered")
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrInvalidVerifyCode = errors.New("invalid or expired verification code")
)
