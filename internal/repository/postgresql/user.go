package postgresql

import (
	"context"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/user"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, mobile_no, password_hash, email_verified, mobile_verified, identity_uid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, mobile_no, password_hash, email_verified, mobile_verified, identity_uid,
				  created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Email,
		newUser.MobileNo,
		newUser.PasswordHash,
		newUser.EmailVerified,
		newUser.MobileVerified,
		newUser.IdentityUID,
	).Scan(
		&created.ID,
		&created.Email,
		&created.MobileNo,
		&created.PasswordHash,
		&created.EmailVerified,
		&created.MobileVerified,
		&created.IdentityUID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, mobile_no, password_hash, email_verified, mobile_verified, identity_uid,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Email,
		&found.MobileNo,
		&found.PasswordHash,
		&found.EmailVerified,
		&found.MobileVerified,
		&found.IdentityUID,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, mobile_no, password_hash, email_verified, mobile_verified, identity_uid,
			   created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.Email,
		&found.MobileNo,
		&found.PasswordHash,
		&found.EmailVerified,
		&found.MobileVerified,
		&found.IdentityUID,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// ExistsByEmailOrMobile implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmailOrMobile(ctx context.Context, email, mobileNo *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}

	switch {
	case email != nil && mobileNo != nil:
		query = `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) OR mobile_no = $2)`
		args = []interface{}{*email, *mobileNo}
	case email != nil:
		query = `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
		args = []interface{}{*email}
	case mobileNo != nil:
		query = `SELECT EXISTS(SELECT 1 FROM users WHERE mobile_no = $1)`
		args = []interface{}{*mobileNo}
	default:
		return false, nil
	}

	var exists bool
	err := q.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SetEmailVerified implements user.UserRepository.
func (r *userRepositoryImpl) SetEmailVerified(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email_verified = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	_, err := q.Exec(ctx, query, id)
	return err
}

// SetIdentityUID implements user.UserRepository.
func (r *userRepositoryImpl) SetIdentityUID(ctx context.Context, id string, identityUID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET identity_uid = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := q.Exec(ctx, query, identityUID, id)
	return err
}
