package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/profile"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileColumns = `
	id, owner_id, company_name, address, city, state, country, postal_code,
	website, logo_url, banner_url, industry, founded_date, description,
	social_links, created_at, updated_at
`

// imageColumns is the fixed set of columns UpdateImageField may touch. The
// field name is mapped through this table, never interpolated from input.
var imageColumns = map[string]string{
	profile.ImageFieldLogo:   "logo_url",
	profile.ImageFieldBanner: "banner_url",
}

// Create implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, newProfile profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_profiles (
			owner_id, company_name, address, city, state, country, postal_code,
			website, industry, founded_date, description, social_links
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + profileColumns

	var created profile.Profile
	err := q.QueryRow(ctx, query,
		newProfile.OwnerID,
		newProfile.CompanyName,
		newProfile.Address,
		newProfile.City,
		newProfile.State,
		newProfile.Country,
		newProfile.PostalCode,
		newProfile.Website,
		newProfile.Industry,
		newProfile.FoundedDate,
		newProfile.Description,
		newProfile.SocialLinks,
	).Scan(profileFields(&created)...)
	if err != nil {
		return profile.Profile{}, err
	}

	return created, nil
}

// GetByOwnerID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByOwnerID(ctx context.Context, ownerID string) (profile.ProfileWithOwner, error) {
	return r.getJoined(ctx, "p.owner_id = $1", ownerID)
}

// GetByID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (profile.ProfileWithOwner, error) {
	return r.getJoined(ctx, "p.id = $1", id)
}

func (r *profileRepositoryImpl) getJoined(ctx context.Context, condition string, arg interface{}) (profile.ProfileWithOwner, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.owner_id, p.company_name, p.address, p.city, p.state, p.country, p.postal_code,
			   p.website, p.logo_url, p.banner_url, p.industry, p.founded_date, p.description,
			   p.social_links, p.created_at, p.updated_at,
			   u.email, u.mobile_no, u.email_verified
		FROM company_profiles p
		JOIN users u ON u.id = p.owner_id
		WHERE ` + condition

	var found profile.ProfileWithOwner
	fields := profileFields(&found.Profile)
	fields = append(fields, &found.OwnerEmail, &found.OwnerMobileNo, &found.OwnerEmailVerified)

	if err := q.QueryRow(ctx, query, arg).Scan(fields...); err != nil {
		return profile.ProfileWithOwner{}, err
	}

	return found, nil
}

// ExistsByOwnerID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) ExistsByOwnerID(ctx context.Context, ownerID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM company_profiles WHERE owner_id = $1)`, ownerID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements profile.ProfileRepository. Only fields present in the
// request are written; everything else keeps its current value.
func (r *profileRepositoryImpl) Update(ctx context.Context, ownerID string, req profile.UpdateProfileRequest) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	setClauses := map[string]interface{}{}

	if req.CompanyName != nil {
		setClauses["company_name"] = *req.CompanyName
	}
	if req.Address != nil {
		setClauses["address"] = *req.Address
	}
	if req.City != nil {
		setClauses["city"] = *req.City
	}
	if req.State != nil {
		setClauses["state"] = *req.State
	}
	if req.Country != nil {
		setClauses["country"] = *req.Country
	}
	if req.PostalCode != nil {
		setClauses["postal_code"] = *req.PostalCode
	}
	if req.Website != nil {
		setClauses["website"] = *req.Website
	}
	if req.Industry != nil {
		setClauses["industry"] = *req.Industry
	}
	if req.FoundedDate != nil {
		date, err := time.Parse("2006-01-02", *req.FoundedDate)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("invalid founded_date: %w", err)
		}
		setClauses["founded_date"] = date
	}
	if req.Description != nil {
		setClauses["description"] = *req.Description
	}
	if req.SocialLinks != nil {
		setClauses["social_links"] = req.SocialLinks
	}

	if len(setClauses) == 0 {
		return profile.Profile{}, profile.ErrNoUpdatableFields
	}

	setParts := []string{}
	args := []interface{}{}
	argIndex := 1

	for column, value := range setClauses {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}
	setParts = append(setParts, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE company_profiles
		SET %s
		WHERE owner_id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), argIndex, profileColumns)
	args = append(args, ownerID)

	var updated profile.Profile
	if err := q.QueryRow(ctx, query, args...).Scan(profileFields(&updated)...); err != nil {
		return profile.Profile{}, err
	}

	return updated, nil
}

// UpdateImageField implements profile.ProfileRepository. It sets the given
// image slot and returns the profile ID, or ErrInvalidImageField for an
// unknown slot.
func (r *profileRepositoryImpl) UpdateImageField(ctx context.Context, ownerID, field, url string) (string, error) {
	q := GetQuerier(ctx, r.db)

	column, ok := imageColumns[field]
	if !ok {
		return "", profile.ErrInvalidImageField
	}

	query := fmt.Sprintf(`
		UPDATE company_profiles
		SET %s = $1, updated_at = NOW()
		WHERE owner_id = $2
		RETURNING id
	`, column)

	var id string
	if err := q.QueryRow(ctx, query, url, ownerID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Delete implements profile.ProfileRepository. The image URLs of the deleted
// row are returned for media cleanup.
func (r *profileRepositoryImpl) Delete(ctx context.Context, ownerID string) (profile.ImagePair, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM company_profiles
		WHERE owner_id = $1
		RETURNING logo_url, banner_url
	`

	var images profile.ImagePair
	if err := q.QueryRow(ctx, query, ownerID).Scan(&images.LogoURL, &images.BannerURL); err != nil {
		return profile.ImagePair{}, err
	}
	return images, nil
}

// List implements profile.ProfileRepository. The data page and the total
// count are fetched concurrently on separate pool connections.
func (r *profileRepositoryImpl) List(ctx context.Context, filter profile.SearchFilter) ([]profile.ProfileWithOwner, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.company_name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}
	if filter.Industry != nil && *filter.Industry != "" {
		conditions = append(conditions, fmt.Sprintf("p.industry ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.Industry+"%")
		argIndex++
	}
	if filter.City != nil && *filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("p.city ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.City+"%")
		argIndex++
	}
	if filter.State != nil && *filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("p.state ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.State+"%")
		argIndex++
	}
	if filter.Country != nil && *filter.Country != "" {
		conditions = append(conditions, fmt.Sprintf("p.country ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.Country+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM company_profiles p
		%s
	`, whereClause)

	// Stable ordering: ties on the sort column are broken by id
	dataQuery := fmt.Sprintf(`
		SELECT p.id, p.owner_id, p.company_name, p.address, p.city, p.state, p.country, p.postal_code,
			   p.website, p.logo_url, p.banner_url, p.industry, p.founded_date, p.description,
			   p.social_links, p.created_at, p.updated_at,
			   u.email, u.mobile_no, u.email_verified
		FROM company_profiles p
		JOIN users u ON u.id = p.owner_id
		%s
		ORDER BY p.%s %s, p.id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, filter.SortColumn(), filter.SortOrder, argIndex, argIndex+1)
	dataArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset())

	var (
		profiles []profile.ProfileWithOwner
		total    int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.Pool.QueryRow(gCtx, countQuery, args...).Scan(&total)
	})

	g.Go(func() error {
		rows, err := r.db.Pool.Query(gCtx, dataQuery, dataArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p profile.ProfileWithOwner
			fields := profileFields(&p.Profile)
			fields = append(fields, &p.OwnerEmail, &p.OwnerMobileNo, &p.OwnerEmailVerified)
			if err := rows.Scan(fields...); err != nil {
				return err
			}
			profiles = append(profiles, p)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// NameAvailable implements profile.ProfileRepository. Comparison is
// case-insensitive; the owner's own profile can be excluded so renaming to
// the current name reads as available.
func (r *profileRepositoryImpl) NameAvailable(ctx context.Context, name string, excludeOwnerID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	var err error
	if excludeOwnerID != nil {
		query := `SELECT EXISTS(SELECT 1 FROM company_profiles WHERE LOWER(company_name) = LOWER($1) AND owner_id <> $2)`
		err = q.QueryRow(ctx, query, name, *excludeOwnerID).Scan(&exists)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM company_profiles WHERE LOWER(company_name) = LOWER($1))`
		err = q.QueryRow(ctx, query, name).Scan(&exists)
	}
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// GetStats implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetStats(ctx context.Context) (profile.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total_profiles,
			COUNT(DISTINCT LOWER(industry)) AS industries,
			COUNT(DISTINCT LOWER(country)) AS countries,
			COALESCE(SUM(CASE WHEN created_at >= NOW() - INTERVAL '30 days' THEN 1 ELSE 0 END), 0) AS created_last_30_days,
			COALESCE(SUM(CASE WHEN logo_url IS NOT NULL AND logo_url <> '' THEN 1 ELSE 0 END), 0) AS with_logo,
			COALESCE(SUM(CASE WHEN banner_url IS NOT NULL AND banner_url <> '' THEN 1 ELSE 0 END), 0) AS with_banner
		FROM company_profiles
	`

	var stats profile.Stats
	err := q.QueryRow(ctx, query).Scan(
		&stats.TotalProfiles,
		&stats.Industries,
		&stats.Countries,
		&stats.CreatedLast30Days,
		&stats.WithLogo,
		&stats.WithBanner,
	)
	if err != nil {
		return profile.Stats{}, err
	}

	stats.WithoutLogo = stats.TotalProfiles - stats.WithLogo
	stats.WithoutBanner = stats.TotalProfiles - stats.WithBanner

	return stats, nil
}

// profileFields returns scan destinations in profileColumns order.
func profileFields(p *profile.Profile) []interface{} {
	return []interface{}{
		&p.ID,
		&p.OwnerID,
		&p.CompanyName,
		&p.Address,
		&p.City,
		&p.State,
		&p.Country,
		&p.PostalCode,
		&p.Website,
		&p.LogoURL,
		&p.BannerURL,
		&p.Industry,
		&p.FoundedDate,
		&p.Description,
		&p.SocialLinks,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
