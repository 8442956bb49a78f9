package profile

import "time"

// SocialLinks maps a platform name to a profile URL. Only platforms in
// SocialPlatforms are accepted; the value is stored as JSONB.
type SocialLinks map[string]string

// SocialPlatforms is the closed set of accepted social link keys.
var SocialPlatforms = []string{"linkedin", "twitter", "facebook", "instagram", "youtube"}

type Profile struct {
	ID          string
	OwnerID     string
	CompanyName string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
	Website     *string
	LogoURL     *string
	BannerURL   *string
	Industry    *string
	FoundedDate *time.Time
	Description *string
	SocialLinks SocialLinks
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileWithOwner carries the profile plus denormalized owner fields from the
// users join, for display purposes.
type ProfileWithOwner struct {
	Profile
	OwnerEmail         string
	OwnerMobileNo      *string
	OwnerEmailVerified bool
}

// ImagePair holds the image URLs returned by Delete so the caller can schedule
// their removal from the media host.
type ImagePair struct {
	LogoURL   *string
	BannerURL *string
}

// Image field names accepted by UpdateImageField.
const (
	ImageFieldLogo   = "logo_url"
	ImageFieldBanner = "banner_url"
)

// CompletionPercent reports how much of the profile is filled in, over the
// same field set that partial updates may touch.
func (p Profile) CompletionPercent() int {
	present := func(s *string) bool { return s != nil && *s != "" }

	total := 13
	filled := 0
	if p.CompanyName != "" {
		filled++
	}
	for _, f := range []*string{
		p.Address, p.City, p.State, p.Country, p.PostalCode,
		p.Website, p.LogoURL, p.BannerURL, p.Industry, p.Description,
	} {
		if present(f) {
			filled++
		}
	}
	if p.FoundedDate != nil {
		filled++
	}
	if len(p.SocialLinks) > 0 {
		filled++
	}

	return filled * 100 / total
}
