package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	admin := &models.User{Name: "Admin", Username: "admin", Email: "admin@example.com"}
	require.NoError(t, Create(db, admin, "secret123"))

	return admin
}

func TestCreateHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	// never stored in the clear
	assert.NotEqual(t, "secret123", admin.Password)
	assert.True(t, admin.VerifyPassword("secret123"))
	assert.False(t, admin.VerifyPassword("wrong"))
}

func TestByUsername(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		username      string
		expectedError error
	}{
		{name: "Existing user", dbParam: db, username: "admin", expectedError: nil},
		{name: "Missing user", dbParam: db, username: "ghost", expectedError: ErrUserNotFound},
		{name: "Nil database", dbParam: nil, username: "admin", expectedError: ErrDBNil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := ByUsername(tc.dbParam, tc.username)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.username, u.Username)
		})
	}
}

func TestByID(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	u, err := ByID(db, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.Username, u.Username)

	_, err = ByID(db, admin.ID+999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	t.Run("Partial update leaves other fields alone", func(t *testing.T) {
		name := "New Name"
		require.NoError(t, Update(db, admin.ID, UpdateParams{Name: &name}))

		u, err := ByID(db, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Name", u.Name)
		assert.Equal(t, "admin@example.com", u.Email)
	})

	t.Run("Password update is hashed", func(t *testing.T) {
		password := "newpass456"
		require.NoError(t, Update(db, admin.ID, UpdateParams{Password: &password}))

		u, err := ByID(db, admin.ID)
		require.NoError(t, err)
		assert.NotEqual(t, password, u.Password)
		assert.True(t, u.VerifyPassword(password))
	})

	t.Run("No fields", func(t *testing.T) {
		assert.ErrorIs(t, Update(db, admin.ID, UpdateParams{}), ErrNoFieldsToUpdate)
	})

	t.Run("Missing user", func(t *testing.T) {
		name := "x"
		assert.ErrorIs(t, Update(db, admin.ID+999, UpdateParams{Name: &name}), ErrUserNotFound)
	})
}
