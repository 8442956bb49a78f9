package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/auth"
	"github.com/bizprofile/bizprofile-backend-go/internal/domain/user"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/database"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/identity"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/jwt"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/otp"
	"github.com/bizprofile/bizprofile-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const verifyEmailPurpose = "verify-email"

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
	mirror identity.Mirror
	codes  *otp.Store
}

// NewAuthService wires the auth flow. mirror and codes may be nil; identity
// mirroring and email verification degrade gracefully without them.
func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository, mirror identity.Mirror, codes *otp.Store) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
		mirror:         mirror,
		codes:          codes,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.RegisterResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	exists, err := a.UserRepository.ExistsByEmailOrMobile(ctx, &registerReq.Email, nil)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return auth.RegisterResponse{}, user.ErrUserEmailExists
	}
	if registerReq.MobileNo != nil && *registerReq.MobileNo != "" {
		exists, err = a.UserRepository.ExistsByEmailOrMobile(ctx, nil, registerReq.MobileNo)
		if err != nil {
			return auth.RegisterResponse{}, fmt.Errorf("failed to check existing mobile number: %w", err)
		}
		if exists {
			return auth.RegisterResponse{}, user.ErrUserMobileExists
		}
	}

	hashedPassword, err := a.hashPassword(registerReq.Password)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var mobileNo *string
	if registerReq.MobileNo != nil && *registerReq.MobileNo != "" {
		mobileNo = registerReq.MobileNo
	}

	newUser, err := a.UserRepository.Create(ctx, user.User{
		Email:        registerReq.Email,
		MobileNo:     mobileNo,
		PasswordHash: &hashedPassword,
	})
	if err != nil {
		return auth.RegisterResponse{}, mapUserConstraintError(err)
	}

	// The local account is the source of truth; a provider outage only
	// costs the mirrored copy
	if a.mirror != nil {
		uid, err := a.mirror.MirrorAccount(ctx, identity.Account{
			Email:    newUser.Email,
			MobileNo: newUser.MobileNo,
			LocalID:  newUser.ID,
		})
		if err != nil {
			slog.Warn("failed to mirror account to identity provider", "user_id", newUser.ID, "error", err)
		} else if err := a.UserRepository.SetIdentityUID(ctx, newUser.ID, uid); err != nil {
			slog.Warn("failed to store identity uid", "user_id", newUser.ID, "error", err)
		}
	}

	if a.codes != nil {
		if _, err := a.codes.Issue(ctx, verifyEmailPurpose, newUser.Email); err != nil {
			slog.Warn("failed to issue email verification code", "user_id", newUser.ID, "error", err)
		}
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(newUser.ID, newUser.Email)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(newUser.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, newUser.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		UserID:        newUser.ID,
		Email:         newUser.Email,
		TokenResponse: tokenResponse,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService. Tokens rotate: the presented
// refresh token is revoked and a new pair is issued in the same transaction.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userID, err := a.Service.DecodeUserID(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.RevokeRefreshToken(txCtx, req.RefreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.RevokeRefreshToken(txCtx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		return nil
	})
}

// VerifyEmail implements auth.AuthService. The code is consumed on success
// so it cannot be replayed.
func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if a.codes == nil {
		return user.ErrInvalidVerifyCode
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if userData.EmailVerified {
		return nil
	}

	ok, err := a.codes.Verify(ctx, verifyEmailPurpose, userData.Email, req.Code)
	if err != nil {
		return fmt.Errorf("failed to verify code: %w", err)
	}
	if !ok {
		return user.ErrInvalidVerifyCode
	}

	if err := a.UserRepository.SetEmailVerified(ctx, userData.ID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// mapUserConstraintError translates unique violations on the users table
// into their domain errors.
func mapUserConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_users_email":
			return user.ErrUserEmailExists
		case "uq_users_mobile_no":
			return user.ErrUserMobileExists
		}
	}
	return err
}
