package setting

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

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()
	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingName   string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingName:   "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			settingName:   "",
			expectedError: ErrSettingNameEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			settingName:   "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:        "successful get",
			dbParam:     db,
			settingName: "comments",
			seedData: []models.Setting{
				{Name: "comments", Value: []byte(`{"enableComments":true}`)},
			},
			expectedValue: []byte(`{"enableComments":true}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Get(tc.dbParam, tc.settingName)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, setting)
				assert.Equal(t, tc.settingName, setting.Name)
				assert.Equal(t, tc.expectedValue, setting.Value)
			}
		})
	}
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		_, err := Set(nil, "analytics", []byte(`{}`))
		require.ErrorIs(t, err, ErrDBNil)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := Set(db, "", []byte(`{}`))
		require.ErrorIs(t, err, ErrSettingNameEmpty)
	})

	t.Run("creates when absent", func(t *testing.T) {
		db.Exec("DELETE FROM settings")

		setting, err := Set(db, "analytics", []byte(`{"enabled":false}`))
		require.NoError(t, err)
		assert.Equal(t, "analytics", setting.Name)

		stored, err := Get(db, "analytics")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"enabled":false}`), stored.Value)
	})

	t.Run("updates when present", func(t *testing.T) {
		db.Exec("DELETE FROM settings")
		seedSettings(t, db, []models.Setting{{Name: "analytics", Value: []byte(`{"enabled":false}`)}})

		_, err := Set(db, "analytics", []byte(`{"enabled":true}`))
		require.NoError(t, err)

		stored, err := Get(db, "analytics")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"enabled":true}`), stored.Value)

		var count int64
		db.Model(&models.Setting{}).Count(&count)
		assert.Equal(t, int64(1), count, "upsert must not create a second row")
	})
}

func TestDeleteByName(t *testing.T) {
	db := setupTestDB(t)

	t.Run("missing setting", func(t *testing.T) {
		err := DeleteByName(db, "nope")
		require.ErrorIs(t, err, ErrSettingNotFound)
	})

	t.Run("deletes existing", func(t *testing.T) {
		seedSettings(t, db, []models.Setting{{Name: "obsolete", Value: []byte(`{}`)}})

		require.NoError(t, DeleteByName(db, "obsolete"))

		_, err := Get(db, "obsolete")
		require.ErrorIs(t, err, ErrSettingNotFound)
	})
}
