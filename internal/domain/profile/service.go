package profile

import "context"

type ProfileService interface {
	Create(ctx context.Context, ownerID string, req CreateProfileRequest) (ProfileResponse, error)
	GetByOwner(ctx context.Context, ownerID string) (ProfileResponse, error)
	GetByID(ctx context.Context, id string) (ProfileResponse, error)
	Update(ctx context.Context, ownerID string, req UpdateProfileRequest) (ProfileResponse, error)
	UploadImage(ctx context.Context, ownerID string, req UploadImageRequest) (UploadImageResponse, error)
	Delete(ctx context.Context, ownerID string) error
	Search(ctx context.Context, filter SearchFilter) ([]ProfileResponse, Meta, error)
	NameAvailable(ctx context.Context, name string, excludeOwnerID *string) (bool, error)
	GetStats(ctx context.Context) (Stats, error)
}
