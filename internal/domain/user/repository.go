package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobileNo *string) (bool, error)
	SetEmailVerified(ctx context.Context, id string) error
	SetIdentityUID(ctx context.Context, id string, identityUID string) error
}
