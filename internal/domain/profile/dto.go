package profile

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/validator"
)

type CreateProfileRequest struct {
	CompanyName string            `json:"company_name"`
	Address     *string           `json:"address,omitempty"`
	City        *string           `json:"city,omitempty"`
	State       *string           `json:"state,omitempty"`
	Country     *string           `json:"country,omitempty"`
	PostalCode  *string           `json:"postal_code,omitempty"`
	Website     *string           `json:"website,omitempty"`
	Industry    *string           `json:"industry,omitempty"`
	FoundedDate *string           `json:"founded_date,omitempty"`
	Description *string           `json:"description,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	} else {
		errs = append(errs, validateCompanyName(r.CompanyName)...)
	}

	errs = append(errs, validateOptionalFields(
		r.Website, r.FoundedDate, r.Description, r.SocialLinks)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	CompanyName *string           `json:"company_name,omitempty"`
	Address     *string           `json:"address,omitempty"`
	City        *string           `json:"city,omitempty"`
	State       *string           `json:"state,omitempty"`
	Country     *string           `json:"country,omitempty"`
	PostalCode  *string           `json:"postal_code,omitempty"`
	Website     *string           `json:"website,omitempty"`
	Industry    *string           `json:"industry,omitempty"`
	FoundedDate *string           `json:"founded_date,omitempty"`
	Description *string           `json:"description,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CompanyName != nil {
		if validator.IsEmpty(*r.CompanyName) {
			errs = append(errs, validator.ValidationError{
				Field:   "company_name",
				Message: "company_name cannot be empty",
			})
		} else {
			errs = append(errs, validateCompanyName(*r.CompanyName)...)
		}
	}

	errs = append(errs, validateOptionalFields(
		r.Website, r.FoundedDate, r.Description, r.SocialLinks)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCompanyName(name string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if len(name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}
	if !validator.IsValidCompanyName(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name may only contain letters, numbers, spaces, and . , & ' ( ) -",
		})
	}
	return errs
}

func validateOptionalFields(website, foundedDate, description *string, socialLinks map[string]string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if website != nil && *website != "" && !validator.IsValidURL(*website) {
		errs = append(errs, validator.ValidationError{
			Field:   "website",
			Message: "website must be a valid http(s) URL",
		})
	}

	if foundedDate != nil && *foundedDate != "" {
		date, ok := validator.IsValidDate(*foundedDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "founded_date",
				Message: "founded_date must be in YYYY-MM-DD format",
			})
		} else if date.After(time.Now()) {
			errs = append(errs, validator.ValidationError{
				Field:   "founded_date",
				Message: "founded_date cannot be in the future",
			})
		}
	}

	if description != nil && len(*description) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	for platform, link := range socialLinks {
		if !validator.IsInSlice(platform, SocialPlatforms) {
			errs = append(errs, validator.ValidationError{
				Field:   "social_links",
				Message: "unsupported platform: " + platform,
			})
			continue
		}
		if !validator.IsValidURL(link) {
			errs = append(errs, validator.ValidationError{
				Field:   "social_links",
				Message: "invalid URL for platform: " + platform,
			})
		}
	}

	return errs
}

type UploadImageRequest struct {
	Field      string                `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadImageRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Field != ImageFieldLogo && r.Field != ImageFieldBanner {
		errs = append(errs, validator.ValidationError{
			Field:   "field",
			Message: "field must be logo_url or banner_url",
		})
	}
	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "image file is required",
		})
		return errs
	}

	filename := r.FileHeader.Filename
	idx := strings.LastIndex(filename, ".")
	ext := ""
	if idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	}
	if r.FileHeader.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "image size must not exceed 10MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID                 string            `json:"id"`
	OwnerID            string            `json:"owner_id"`
	CompanyName        string            `json:"company_name"`
	Address            *string           `json:"address,omitempty"`
	City               *string           `json:"city,omitempty"`
	State              *string           `json:"state,omitempty"`
	Country            *string           `json:"country,omitempty"`
	PostalCode         *string           `json:"postal_code,omitempty"`
	Website            *string           `json:"website,omitempty"`
	LogoURL            *string           `json:"logo_url,omitempty"`
	BannerURL          *string           `json:"banner_url,omitempty"`
	Industry           *string           `json:"industry,omitempty"`
	FoundedDate        *string           `json:"founded_date,omitempty"`
	Description        *string           `json:"description,omitempty"`
	SocialLinks        map[string]string `json:"social_links,omitempty"`
	CompletionPercent  int               `json:"completion_percent"`
	OwnerEmail         string            `json:"owner_email,omitempty"`
	OwnerEmailVerified bool              `json:"owner_email_verified,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func NewProfileResponse(p ProfileWithOwner) ProfileResponse {
	resp := newProfileResponse(p.Profile)
	resp.OwnerEmail = p.OwnerEmail
	resp.OwnerEmailVerified = p.OwnerEmailVerified
	return resp
}

func NewProfileResponseFromProfile(p Profile) ProfileResponse {
	return newProfileResponse(p)
}

func newProfileResponse(p Profile) ProfileResponse {
	var foundedDate *string
	if p.FoundedDate != nil {
		formatted := p.FoundedDate.Format("2006-01-02")
		foundedDate = &formatted
	}
	return ProfileResponse{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		CompanyName:       p.CompanyName,
		Address:           p.Address,
		City:              p.City,
		State:             p.State,
		Country:           p.Country,
		PostalCode:        p.PostalCode,
		Website:           p.Website,
		LogoURL:           p.LogoURL,
		BannerURL:         p.BannerURL,
		Industry:          p.Industry,
		FoundedDate:       foundedDate,
		Description:       p.Description,
		SocialLinks:       p.SocialLinks,
		CompletionPercent: p.CompletionPercent(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

type UploadImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type NameAvailableResponse struct {
	Available bool `json:"available"`
}

// Stats aggregates platform-wide profile counts.
type Stats struct {
	TotalProfiles     int64 `json:"total_profiles"`
	Industries        int64 `json:"industries"`
	Countries         int64 `json:"countries"`
	CreatedLast30Days int64 `json:"created_last_30_days"`
	WithLogo          int64 `json:"with_logo"`
	WithoutLogo       int64 `json:"without_logo"`
	WithBanner        int64 `json:"with_banner"`
	WithoutBanner     int64 `json:"without_banner"`
}
