package profile

import "errors"

var (
	ErrProfileNotFound   = errors.New("company profile not found")
	ErrProfileExists     = errors.New("company profile already exists for this user")
	ErrCompanyNameExists = errors.New("company name already taken")
	ErrNoUpdatableFields = errors.New("no updatable fields provided")
	ErrInvalidImageField = errors.New("image field must be logo_url or banner_url")
)
