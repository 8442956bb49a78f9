package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionPercentEmptyProfile(t *testing.T) {
	p := Profile{}
	assert.Equal(t, 0, p.CompletionPercent())
}

func TestCompletionPercentCountsFilledFields(t *testing.T) {
	p := Profile{CompanyName: "Acme Corp"}
	assert.Equal(t, 100/13, p.CompletionPercent())

	p.City = strPtr("Jakarta")
	p.Country = strPtr("Indonesia")
	assert.Equal(t, 3*100/13, p.CompletionPercent())
}

func TestCompletionPercentFullProfile(t *testing.T) {
	founded := time.Date(2015, 4, 1, 0, 0, 0, 0, time.UTC)
	p := Profile{
		CompanyName: "Acme Corp",
		Address:     strPtr("Jl. Sudirman 1"),
		City:        strPtr("Jakarta"),
		State:       strPtr("DKI Jakarta"),
		Country:     strPtr("Indonesia"),
		PostalCode:  strPtr("12190"),
		Website:     strPtr("https://acme.example.com"),
		LogoURL:     strPtr("https://media.example.com/logo.png"),
		BannerURL:   strPtr("https://media.example.com/banner.png"),
		Industry:    strPtr("Software"),
		FoundedDate: &founded,
		Description: strPtr("We make things."),
		SocialLinks: SocialLinks{"linkedin": "https://linkedin.com/company/acme"},
	}
	assert.Equal(t, 100, p.CompletionPercent())
}

func TestCompletionPercentIgnoresEmptyStrings(t *testing.T) {
	p := Profile{
		CompanyName: "Acme Corp",
		City:        strPtr(""),
	}
	assert.Equal(t, 100/13, p.CompletionPercent())
}
