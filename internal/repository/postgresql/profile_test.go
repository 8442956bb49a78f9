package postgresql_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/profile"
	"github.com/bizprofile/bizprofile-backend-go/internal/pkg/database"
	"github.com/bizprofile/bizprofile-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSetup *TestDatabaseSetup

func initTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testSetup == nil {
		var err error
		testSetup, err = NewTestDatabase()
		if err != nil {
			t.Fatalf("failed to set up test database: %v", err)
		}
	}
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
	return testSetup.DB
}

func createTestUser(t *testing.T, ctx context.Context, db *database.DB, email string) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, email_verified)
		VALUES ($1, 'not-a-real-hash', TRUE)
		RETURNING id
	`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }

func TestProfileRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "owner@example.com")

	created, err := repo.Create(ctx, profile.Profile{
		OwnerID:     ownerID,
		CompanyName: "Acme Corp",
		City:        strPtr("Jakarta"),
		Country:     strPtr("Indonesia"),
		Industry:    strPtr("Software"),
		Website:     strPtr("https://acme.example.com"),
		SocialLinks: profile.SocialLinks{"linkedin": "https://linkedin.com/company/acme"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme Corp", created.CompanyName)

	found, err := repo.GetByOwnerID(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Acme Corp", found.CompanyName)
	assert.Equal(t, "Jakarta", *found.City)
	assert.Equal(t, "https://linkedin.com/company/acme", found.SocialLinks["linkedin"])
	assert.Equal(t, "owner@example.com", found.OwnerEmail)
	assert.True(t, found.OwnerEmailVerified)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, found.Profile, byID.Profile)
}

func TestProfileRepository_GetMissingProfile(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "no-profile@example.com")

	_, err := repo.GetByOwnerID(ctx, ownerID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestProfileRepository_OwnerUniqueConstraint(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "owner@example.com")

	_, err := repo.Create(ctx, profile.Profile{OwnerID: ownerID, CompanyName: "First Co"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, profile.Profile{OwnerID: ownerID, CompanyName: "Second Co"})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "uq_company_profiles_owner", pgErr.ConstraintName)
}

func TestProfileRepository_NameUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	firstOwner := createTestUser(t, ctx, db, "first@example.com")
	secondOwner := createTestUser(t, ctx, db, "second@example.com")

	_, err := repo.Create(ctx, profile.Profile{OwnerID: firstOwner, CompanyName: "Acme Corp"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, profile.Profile{OwnerID: secondOwner, CompanyName: "ACME CORP"})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "uq_company_profiles_name", pgErr.ConstraintName)
}

func TestProfileRepository_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "owner@example.com")
	_, err := repo.Create(ctx, profile.Profile{
		OwnerID:     ownerID,
		CompanyName: "Acme Corp",
		City:        strPtr("Jakarta"),
		Country:     strPtr("Indonesia"),
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, ownerID, profile.UpdateProfileRequest{
		City: strPtr("Bandung"),
	})
	require.NoError(t, err)

	// Untouched fields keep their values
	assert.Equal(t, "Bandung", *updated.City)
	assert.Equal(t, "Acme Corp", updated.CompanyName)
	assert.Equal(t, "Indonesia", *updated.Country)
}

func TestProfileRepository_UpdateWithNoFields(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "owner@example.com")
	_, err := repo.Create(ctx, profile.Profile{OwnerID: ownerID, CompanyName: "Acme Corp"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, ownerID, profile.UpdateProfileRequest{})
	assert.ErrorIs(t, err, profile.ErrNoUpdatableFields)
}

func TestProfileRepository_UpdateImageFieldAndDelete(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "owner@example.com")
	created, err := repo.Create(ctx, profile.Profile{OwnerID: ownerID, CompanyName: "Acme Corp"})
	require.NoError(t, err)

	logoURL := "https://media.example.com/company-profiles/logo.png"
	id, err := repo.UpdateImageField(ctx, ownerID, profile.ImageFieldLogo, logoURL)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, err = repo.UpdateImageField(ctx, ownerID, "description", "https://media.example.com/x.png")
	assert.ErrorIs(t, err, profile.ErrInvalidImageField)

	images, err := repo.Delete(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, images.LogoURL)
	assert.Equal(t, logoURL, *images.LogoURL)
	assert.Nil(t, images.BannerURL)

	_, err = repo.GetByOwnerID(ctx, ownerID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func seedProfiles(t *testing.T, ctx context.Context, db *database.DB, repo profile.ProfileRepository, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		ownerID := createTestUser(t, ctx, db, fmt.Sprintf("owner%02d@example.com", i))
		industry := "Software"
		if i%2 == 0 {
			industry = "Finance"
		}
		_, err := repo.Create(ctx, profile.Profile{
			OwnerID:     ownerID,
			CompanyName: fmt.Sprintf("Company %02d", i),
			City:        strPtr("Jakarta"),
			Country:     strPtr("Indonesia"),
			Industry:    strPtr(industry),
		})
		require.NoError(t, err)
	}
}

func TestProfileRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	seedProfiles(t, ctx, db, repo, 25)

	page := func(n int) ([]profile.ProfileWithOwner, int64) {
		filter := profile.SearchFilter{Page: n, Limit: 10, SortBy: "company_name", SortOrder: "asc"}
		filter.Normalize()
		rows, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		return rows, total
	}

	first, total := page(1)
	assert.Equal(t, int64(25), total)
	require.Len(t, first, 10)
	assert.Equal(t, "Company 01", first[0].CompanyName)

	third, _ := page(3)
	require.Len(t, third, 5)
	assert.Equal(t, "Company 25", third[4].CompanyName)

	fourth, total := page(4)
	assert.Equal(t, int64(25), total)
	assert.Empty(t, fourth)
}

func TestProfileRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	seedProfiles(t, ctx, db, repo, 10)

	// Filters apply together and match case-insensitively
	filter := profile.SearchFilter{
		Industry: strPtr("finance"),
		City:     strPtr("JAKARTA"),
	}
	filter.Normalize()
	rows, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	for _, row := range rows {
		assert.Equal(t, "Finance", *row.Industry)
	}

	filter = profile.SearchFilter{Search: strPtr("company 07")}
	filter.Normalize()
	rows, total, err = repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Company 07", rows[0].CompanyName)
}

func TestProfileRepository_NameAvailable(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	ownerID := createTestUser(t, ctx, db, "owner@example.com")
	_, err := repo.Create(ctx, profile.Profile{OwnerID: ownerID, CompanyName: "Acme Corp"})
	require.NoError(t, err)

	available, err := repo.NameAvailable(ctx, "acme corp", nil)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = repo.NameAvailable(ctx, "Fresh Name", nil)
	require.NoError(t, err)
	assert.True(t, available)

	// The owner keeping their current name counts as available
	available, err = repo.NameAvailable(ctx, "ACME CORP", &ownerID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestProfileRepository_GetStats(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewProfileRepository(db)

	seedProfiles(t, ctx, db, repo, 4)

	for _, email := range []string{"owner01@example.com", "owner02@example.com"} {
		var ownerID string
		err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&ownerID)
		require.NoError(t, err)
		_, err = repo.UpdateImageField(ctx, ownerID, profile.ImageFieldLogo, "https://media.example.com/logo.png")
		require.NoError(t, err)
	}

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProfiles)
	assert.Equal(t, int64(2), stats.Industries)
	assert.Equal(t, int64(1), stats.Countries)
	assert.Equal(t, int64(4), stats.CreatedLast30Days)
	assert.Equal(t, int64(2), stats.WithLogo)
	assert.Equal(t, int64(2), stats.WithoutLogo)
	assert.Equal(t, int64(0), stats.WithBanner)
	assert.Equal(t, int64(4), stats.WithoutBanner)
}
