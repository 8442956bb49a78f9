package postgresql_test

import (
	"context"
	"testing"

	"github.com/bizprofile/bizprofile-backend-go/internal/domain/user"
	"github.com/bizprofile/bizprofile-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewUserRepository(db)

	created, err := repo.Create(ctx, user.User{
		Email:        "new@example.com",
		MobileNo:     strPtr("+6281234567890"),
		PasswordHash: strPtr("hashed"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.EmailVerified)

	found, err := repo.GetByEmail(ctx, "NEW@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "+6281234567890", *found.MobileNo)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, found, byID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepository_ExistsByEmailOrMobile(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewUserRepository(db)

	_, err := repo.Create(ctx, user.User{
		Email:        "taken@example.com",
		MobileNo:     strPtr("+6281234567890"),
		PasswordHash: strPtr("hashed"),
	})
	require.NoError(t, err)

	email := "taken@example.com"
	exists, err := repo.ExistsByEmailOrMobile(ctx, &email, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	mobile := "+6281234567890"
	exists, err = repo.ExistsByEmailOrMobile(ctx, nil, &mobile)
	require.NoError(t, err)
	assert.True(t, exists)

	other := "free@example.com"
	exists, err = repo.ExistsByEmailOrMobile(ctx, &other, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmailOrMobile(ctx, nil, nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_SetEmailVerifiedAndIdentityUID(t *testing.T) {
	ctx := context.Background()
	db := initTestDB(t)
	repo := postgresql.NewUserRepository(db)

	created, err := repo.Create(ctx, user.User{
		Email:        "verify@example.com",
		PasswordHash: strPtr("hashed"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetEmailVerified(ctx, created.ID))
	require.NoError(t, repo.SetIdentityUID(ctx, created.ID, "provider-uid-123"))

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found.EmailVerified)
	require.NotNil(t, found.IdentityUID)
	assert.Equal(t, "provider-uid-123", *found.IdentityUID)
}
