package article

import (
	"github.com/rs/zerolog/log"
)

// unknownAuthor is the placeholder used when the author row or link is missing.
const unknownAuthor = "Unknown"

// Author returns the author name and avatar for the article at path.
// Left-join semantics: a missing article, user row or link yields the
// placeholder instead of an error, so the public article page never fails
// on a dangling author reference.
func (e *Engine) Author(path string) AuthorInfo {
	fallback := AuthorInfo{Name: unknownAuthor, Avatar: nil}

	if path == "" {
		log.Warn().Msg("author lookup without a path")
		return fallback
	}

	var result struct {
		Name   *string
		Avatar *string
	}

	err := e.db.Model(&rowModel{}).
		Select("users.name AS name, users.avatar AS avatar").
		Joins("LEFT JOIN users ON users.id = articles.user_id").
		Where("articles.path = ?", path).
		Limit(1).
		Scan(&result).Error
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("author lookup failed")
		return fallback
	}

	if result.Name == nil || *result.Name == "" {
		return fallback
	}

	avatar := result.Avatar
	if avatar != nil && *avatar == "" {
		avatar = nil
	}

	return AuthorInfo{Name: *result.Name, Avatar: avatar}
}
