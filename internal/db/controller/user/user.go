// Package user provides database operations for the administrator account.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/models"
)

var (
	// ErrUserNotFound is returned when no matching user row exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoFieldsToUpdate is returned when an update carries no changed fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// UpdateParams carries the profile fields of a partial update. Only non-nil
// fields are written; presence is decided by the pointer, not by truthiness.
type UpdateParams struct {
	Name     *string
	Email    *string
	Avatar   *string
	Bio      *string
	Password *string // plaintext; hashed before storage
}

// ByUsername retrieves a user by username.
func ByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// ByID retrieves a user by its ID.
func ByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// Update applies a partial profile update to the user with the given ID.
// The password, when present, is stored as an Argon2id hash.
func Update(db *gorm.DB, id uint64, params UpdateParams) error {
	if db == nil {
		return ErrDBNil
	}

	fields := map[string]interface{}{}

	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Email != nil {
		fields["email"] = *params.Email
	}
	if params.Avatar != nil {
		fields["avatar"] = *params.Avatar
	}
	if params.Bio != nil {
		fields["bio"] = *params.Bio
	}
	if params.Password != nil {
		fields["password"] = models.HashPassword(*params.Password)
	}

	if len(fields) == 0 {
		return ErrNoFieldsToUpdate
	}

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Create inserts a new user. The password is hashed before storage.
func Create(db *gorm.DB, u *models.User, plainPassword string) error {
	if db == nil {
		return ErrDBNil
	}

	u.Password = models.HashPassword(plainPassword)

	return db.Create(u).Error
}
