// Package configstate holds an in-process mirror of the settings the public
// endpoints read on every request, so they never have to hit the database.
// It is loaded once at startup and refreshed synchronously by the admin
// settings handlers; reads happen concurrently but writes only ever come
// from a single request at a time, guarded here with a read-write lock.
package configstate

import (
	"sync"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/chao-eng/mdblog/internal/db/controller/analytics"
	"github.com/chao-eng/mdblog/internal/db/controller/comments"
	"github.com/chao-eng/mdblog/internal/db/controller/setting"
)

var (
	mu       sync.RWMutex
	comment  comments.Settings
	analytic analytics.Settings
)

// Load populates the mirror from the database. Settings that have never
// been saved stay at their zero values. Called once at startup.
func Load(db *gorm.DB) error {
	var c comments.Settings
	if err := c.Load(db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		return errors.Wrap(err, "loading comment settings")
	}

	var a analytics.Settings
	if err := a.Load(db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		return errors.Wrap(err, "loading analytics settings")
	}

	mu.Lock()
	comment = c
	analytic = a
	mu.Unlock()

	return nil
}

// Comments returns the current comments settings.
func Comments() comments.Settings {
	mu.RLock()
	defer mu.RUnlock()

	return comment
}

// SetComments replaces the mirrored comments settings.
func SetComments(s comments.Settings) {
	mu.Lock()
	comment = s
	mu.Unlock()
}

// Analytics returns the current analytics settings.
func Analytics() analytics.Settings {
	mu.RLock()
	defer mu.RUnlock()

	return analytic
}

// SetAnalytics replaces the mirrored analytics settings.
func SetAnalytics(s analytics.Settings) {
	mu.Lock()
	analytic = s
	mu.Unlock()
}
