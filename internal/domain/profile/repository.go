package profile

import "context"

type ProfileRepository interface {
	Create(ctx context.Context, newProfile Profile) (Profile, error)
	GetByOwnerID(ctx context.Context, ownerID string) (ProfileWithOwner, error)
	GetByID(ctx context.Context, id string) (ProfileWithOwner, error)
	ExistsByOwnerID(ctx context.Context, ownerID string) (bool, error)
	Update(ctx context.Context, ownerID string, req UpdateProfileRequest) (Profile, error)
	UpdateImageField(ctx context.Context, ownerID, field, url string) (string, error)
	Delete(ctx context.Context, ownerID string) (ImagePair, error)
	List(ctx context.Context, filter SearchFilter) ([]ProfileWithOwner, int64, error)
	NameAvailable(ctx context.Context, name string, excludeOwnerID *string) (bool, error)
	GetStats(ctx context.Context) (Stats, error)
}
