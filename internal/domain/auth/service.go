package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, sessionReq SessionTrackingRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
}
