package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chao-eng/mdblog/internal/db/models"
)

func TestAuthor(t *testing.T) {
	e := newTestEngine(t)

	author := models.User{ID: 1, Name: "Jane Doe", Username: "jane", Avatar: "/avatar.png"}
	require.NoError(t, e.db.Create(&author).Error)

	saveArticle(t, e, "post", "Title", "2024-01-01", nil)

	info := e.Author("post")
	assert.Equal(t, "Jane Doe", info.Name)
	require.NotNil(t, info.Avatar)
	assert.Equal(t, "/avatar.png", *info.Avatar)
}

func TestAuthorFallsBackToUnknown(t *testing.T) {
	e := newTestEngine(t)

	// article whose user id points nowhere
	saveArticle(t, e, "orphan", "Orphan", "2024-01-01", nil)

	testCases := []struct {
		name string
		path string
	}{
		{name: "Dangling author reference", path: "orphan"},
		{name: "Missing article", path: "no-such-article"},
		{name: "Empty path", path: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := e.Author(tc.path)
			assert.Equal(t, "Unknown", info.Name)
			assert.Nil(t, info.Avatar)
		})
	}
}

func TestAuthorEmptyAvatarIsNil(t *testing.T) {
	e := newTestEngine(t)

	author := models.User{ID: 1, Name: "Jane Doe", Username: "jane"}
	require.NoError(t, e.db.Create(&author).Error)

	saveArticle(t, e, "post", "Title", "2024-01-01", nil)

	info := e.Author("post")
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Nil(t, info.Avatar)
}
