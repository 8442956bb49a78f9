package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"user.name+tag@example.co.id",
		"u_1%2@sub.example.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidMobileNumber(t *testing.T) {
	assert.True(t, IsValidMobileNumber("+6281234567890"))
	assert.True(t, IsValidMobileNumber("08123456789"))
	assert.True(t, IsValidMobileNumber("0812-3456-789"))
	assert.False(t, IsValidMobileNumber("12345"))
	assert.False(t, IsValidMobileNumber("not-a-number"))
	assert.False(t, IsValidMobileNumber(""))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com"))
	assert.True(t, IsValidURL("http://example.com/path?q=1"))
	assert.False(t, IsValidURL("ftp://example.com"))
	assert.False(t, IsValidURL("example.com"))
	assert.False(t, IsValidURL("//example.com"))
	assert.False(t, IsValidURL(""))
}

func TestIsValidCompanyName(t *testing.T) {
	valid := []string{
		"Acme Corp",
		"O'Reilly & Associates",
		"3M",
		"Ben-Gurion Systems (EU)",
		"Stripe, Inc.",
	}
	for _, name := range valid {
		assert.True(t, IsValidCompanyName(name), name)
	}

	invalid := []string{
		"",
		" leading space",
		"-leading dash",
		"name;drop table",
		"tab\tname",
	}
	for _, name := range invalid {
		assert.False(t, IsValidCompanyName(name), name)
	}
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2020-05-17")
	assert.True(t, ok)
	_, ok = IsValidDate("17-05-2020")
	assert.False(t, ok)
	_, ok = IsValidDate("2020-13-01")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	platforms := []string{"linkedin", "twitter", "facebook"}
	assert.True(t, IsInSlice("twitter", platforms))
	assert.False(t, IsInSlice("myspace", platforms))
	assert.False(t, IsInSlice("", platforms))
}
