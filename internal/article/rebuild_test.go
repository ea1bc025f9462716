package article

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildIndexesDrafts(t *testing.T) {
	e := newTestEngine(t)

	// a draft can never enter the index through Save, but Rebuild indexes it
	// as unpublished
	writeTree(t, e, "draft", doc([]string{
		"title: My Draft",
		"date: 2024-01-01",
		"published: false",
	}, "draft body\n"))

	count, err := e.Rebuild(1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	art, err := e.ByPath("draft")
	require.NoError(t, err)
	assert.False(t, art.Published)
	assert.Equal(t, "My Draft", art.Title)
	assert.Equal(t, "draft body\n", art.Content)

	// drafts stay invisible publicly
	page, err := e.QueryPublished(QueryOptions{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestRebuildIdempotent(t *testing.T) {
	e := newTestEngine(t)
	seedMany(t, e, 4)
	writeTree(t, e, "unindexed", doc([]string{
		"title: Unindexed",
		"date: 2024-02-01",
	}, "x\n"))

	first, err := e.Rebuild(1)
	require.NoError(t, err)

	listFirst, err := e.ListAdmin()
	require.NoError(t, err)

	second, err := e.Rebuild(1)
	require.NoError(t, err)

	listSecond, err := e.ListAdmin()
	require.NoError(t, err)

	assert.Equal(t, 5, first)
	assert.Equal(t, first, second)
	assert.Equal(t, listFirst, listSecond)
}

func TestRebuildSkipsBadDirectories(t *testing.T) {
	e := newTestEngine(t)

	writeTree(t, e, "good", doc([]string{
		"title: Good",
		"date: 2024-01-01",
		"published: true",
	}, "x\n"))

	// no index.md at all
	require.NoError(t, os.MkdirAll(filepath.Join(e.BasePath(), "no-doc"), 0o750))

	// unparseable front matter
	writeTree(t, e, "broken", doc([]string{
		"title: [unterminated",
	}, "x\n"))

	// missing required fields
	writeTree(t, e, "untitled", doc([]string{
		"date: 2024-01-01",
	}, "x\n"))

	count, err := e.Rebuild(1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	paths, err := e.AllPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, paths)
}

func TestRebuildWipesStaleRows(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "kept", "Kept", "2024-01-01", nil)
	saveArticle(t, e, "removed", "Removed", "2024-01-02", nil)

	// the directory disappears behind the index's back
	require.NoError(t, e.DeleteTree("removed"))

	count, err := e.Rebuild(1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = e.ByPath("removed")
	assert.ErrorIs(t, err, ErrNotFound)
}
