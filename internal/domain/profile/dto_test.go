package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestCreateProfileRequestValidate(t *testing.T) {
	req := CreateProfileRequest{
		CompanyName: "Acme Corp",
		Website:     strPtr("https://acme.example.com"),
		FoundedDate: strPtr("2015-04-01"),
		SocialLinks: map[string]string{"linkedin": "https://linkedin.com/company/acme"},
	}
	assert.NoError(t, req.Validate())
}

func TestCreateProfileRequestRequiresCompanyName(t *testing.T) {
	req := CreateProfileRequest{}
	fields := validationFields(t, req.Validate())
	assert.Contains(t, fields, "company_name")
}

func TestCreateProfileRequestRejectsBadValues(t *testing.T) {
	longDescription := strings.Repeat("x", 2001)
	req := CreateProfileRequest{
		CompanyName: "Acme <script>",
		Website:     strPtr("not-a-url"),
		FoundedDate: strPtr("01-04-2015"),
		Description: &longDescription,
		SocialLinks: map[string]string{"myspace": "https://myspace.com/acme"},
	}

	fields := validationFields(t, req.Validate())
	assert.Contains(t, fields, "company_name")
	assert.Contains(t, fields, "website")
	assert.Contains(t, fields, "founded_date")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "social_links")
}

func TestCreateProfileRequestRejectsFutureFoundedDate(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	req := CreateProfileRequest{CompanyName: "Acme Corp", FoundedDate: &future}

	fields := validationFields(t, req.Validate())
	assert.Contains(t, fields, "founded_date")
}

func TestUpdateProfileRequestAllowsEmptyBody(t *testing.T) {
	// Presence is checked later; an empty update fails at the repository
	req := UpdateProfileRequest{}
	assert.NoError(t, req.Validate())
}

func TestUpdateProfileRequestRejectsEmptyCompanyName(t *testing.T) {
	req := UpdateProfileRequest{CompanyName: strPtr("   ")}
	fields := validationFields(t, req.Validate())
	assert.Contains(t, fields, "company_name")
}

func TestUploadImageRequestValidate(t *testing.T) {
	req := UploadImageRequest{Field: "description"}
	fields := validationFields(t, req.Validate())
	assert.Contains(t, fields, "field")
	assert.Contains(t, fields, "file")
}

func TestProfileResponseFormatsFoundedDate(t *testing.T) {
	founded := time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC)
	resp := NewProfileResponseFromProfile(Profile{
		ID:          "id-1",
		CompanyName: "Acme Corp",
		FoundedDate: &founded,
	})

	require.NotNil(t, resp.FoundedDate)
	assert.Equal(t, "2015-04-01", *resp.FoundedDate)
}
