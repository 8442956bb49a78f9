package user

import "time"

type User struct {
	ID             string
	Email          string
	MobileNo       *string
	PasswordHash   *string
	EmailVerified  bool
	MobileVerified bool
	IdentityUID    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
