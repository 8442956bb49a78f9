package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/profile"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/database"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/media"
	"github.com/bizprofile/bizprofile-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ProfileServiceImpl struct {
	db          *database.DB
	profileRepo profile.ProfileRepository
	uploader    media.Uploader
	cleaner     *media.Cleaner
}

func NewProfileService(db *database.DB, profileRepo profile.ProfileRepository, uploader media.Uploader, cleaner *media.Cleaner) profile.ProfileService {
	return &ProfileServiceImpl{
		db:          db,
		profileRepo: profileRepo,
		uploader:    uploader,
		cleaner:     cleaner,
	}
}

// Create implements profile.ProfileService.
func (s *ProfileServiceImpl) Create(ctx context.Context, ownerID string, req profile.CreateProfileRequest) (profile.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	newProfile := profile.Profile{
		OwnerID:     ownerID,
		CompanyName: req.CompanyName,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Website:     req.Website,
		Industry:    req.Industry,
		Description: req.Description,
		SocialLinks: req.SocialLinks,
	}
	if req.FoundedDate != nil && *req.FoundedDate != "" {
		date, err := time.Parse("2006-01-02", *req.FoundedDate)
		if err != nil {
			return profile.ProfileResponse{}, fmt.Errorf("invalid founded_date: %w", err)
		}
		newProfile.FoundedDate = &date
	}

	var created profile.Profile
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		exists, err := s.profileRepo.ExistsByOwnerID(txCtx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to check existing profile: %w", err)
		}
		if exists {
			return profile.ErrProfileExists
		}

		available, err := s.profileRepo.NameAvailable(txCtx, req.CompanyName, nil)
		if err != nil {
			return fmt.Errorf("failed to check company name: %w", err)
		}
		if !available {
			return profile.ErrCompanyNameExists
		}

		created, err = s.profileRepo.Create(txCtx, newProfile)
		if err != nil {
			return mapConstraintError(err)
		}
		return nil
	})
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.NewProfileResponseFromProfile(created), nil
}

// GetByOwner implements profile.ProfileService.
func (s *ProfileServiceImpl) GetByOwner(ctx context.Context, ownerID string) (profile.ProfileResponse, error) {
	found, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.ProfileResponse{}, profile.ErrProfileNotFound
		}
		return profile.ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile.NewProfileResponse(found), nil
}

// GetByID implements profile.ProfileService.
func (s *ProfileServiceImpl) GetByID(ctx context.Context, id string) (profile.ProfileResponse, error) {
	found, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.ProfileResponse{}, profile.ErrProfileNotFound
		}
		return profile.ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile.NewProfileResponse(found), nil
}

// Update implements profile.ProfileService. Only the fields present in the
// request are written; the whole update commits or rolls back as one unit.
func (s *ProfileServiceImpl) Update(ctx context.Context, ownerID string, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	var updated profile.Profile
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if req.CompanyName != nil {
			available, err := s.profileRepo.NameAvailable(txCtx, *req.CompanyName, &ownerID)
			if err != nil {
				return fmt.Errorf("failed to check company name: %w", err)
			}
			if !available {
				return profile.ErrCompanyNameExists
			}
		}

		var err error
		updated, err = s.profileRepo.Update(txCtx, ownerID, req)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return profile.ErrProfileNotFound
			}
			return mapConstraintError(err)
		}
		return nil
	})
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.NewProfileResponseFromProfile(updated), nil
}

// UploadImage implements profile.ProfileService. The replaced image is
// deleted from the media host after the new URL is stored; a failed cleanup
// never fails the upload.
func (s *ProfileServiceImpl) UploadImage(ctx context.Context, ownerID string, req profile.UploadImageRequest) (profile.UploadImageResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.UploadImageResponse{}, err
	}

	current, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.UploadImageResponse{}, profile.ErrProfileNotFound
		}
		return profile.UploadImageResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}

	uploaded, err := s.uploader.UploadImage(ctx, req.File, req.FileHeader.Filename)
	if err != nil {
		return profile.UploadImageResponse{}, fmt.Errorf("failed to upload image: %w", err)
	}

	profileID, err := s.profileRepo.UpdateImageField(ctx, ownerID, req.Field, uploaded.URL)
	if err != nil {
		// The fresh upload is orphaned now; clean it up too
		s.cleaner.Enqueue(uploaded.URL)
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.UploadImageResponse{}, profile.ErrProfileNotFound
		}
		return profile.UploadImageResponse{}, fmt.Errorf("failed to store image URL: %w", err)
	}

	var oldURL *string
	switch req.Field {
	case profile.ImageFieldLogo:
		oldURL = current.LogoURL
	case profile.ImageFieldBanner:
		oldURL = current.BannerURL
	}
	if oldURL != nil {
		s.cleaner.Enqueue(*oldURL)
	}

	return profile.UploadImageResponse{ID: profileID, URL: uploaded.URL}, nil
}

// Delete implements profile.ProfileService. Image cleanup is enqueued only
// after the delete commits.
func (s *ProfileServiceImpl) Delete(ctx context.Context, ownerID string) error {
	var images profile.ImagePair
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		images, err = s.profileRepo.Delete(txCtx, ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return profile.ErrProfileNotFound
			}
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if images.LogoURL != nil {
		s.cleaner.Enqueue(*images.LogoURL)
	}
	if images.BannerURL != nil {
		s.cleaner.Enqueue(*images.BannerURL)
	}

	return nil
}

// Search implements profile.ProfileService.
func (s *ProfileServiceImpl) Search(ctx context.Context, filter profile.SearchFilter) ([]profile.ProfileResponse, profile.Meta, error) {
	filter.Normalize()

	profiles, total, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, profile.Meta{}, fmt.Errorf("failed to search profiles: %w", err)
	}

	responses := make([]profile.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, profile.NewProfileResponse(p))
	}

	return responses, profile.NewMeta(filter.Page, filter.Limit, total), nil
}

// NameAvailable implements profile.ProfileService.
func (s *ProfileServiceImpl) NameAvailable(ctx context.Context, name string, excludeOwnerID *string) (bool, error) {
	available, err := s.profileRepo.NameAvailable(ctx, name, excludeOwnerID)
	if err != nil {
		return false, fmt.Errorf("failed to check company name: %w", err)
	}
	return available, nil
}

// GetStats implements profile.ProfileService.
func (s *ProfileServiceImpl) GetStats(ctx context.Context) (profile.Stats, error) {
	stats, err := s.profileRepo.GetStats(ctx)
	if err != nil {
		return profile.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// mapConstraintError translates unique violations raised by the storage
// constraints into their domain errors. The constraints stay authoritative
// even when the pre-checks race.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_company_profiles_owner":
			return profile.ErrProfileExists
		case "uq_company_profiles_name":
			return profile.ErrCompanyNameExists
		}
	}
	return err
}
