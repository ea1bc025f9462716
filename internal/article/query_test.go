package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chao-eng/mdblog/internal/shortid"
)

func TestQueryPublishedPagination(t *testing.T) {
	e := newTestEngine(t)
	seedMany(t, e, 25)

	seen := map[string]bool{}
	pageSize := 10

	for page := 1; page <= 3; page++ {
		result, err := e.QueryPublished(QueryOptions{Page: page, PageSize: pageSize})
		require.NoError(t, err)
		assert.Equal(t, int64(25), result.Total)

		for _, art := range result.List {
			assert.False(t, seen[art.Path], "article %s appeared on two pages", art.Path)
			seen[art.Path] = true
		}
	}

	// pages partition the result set: no duplicates, no gaps
	assert.Len(t, seen, 25)

	// past the end is empty, not an error
	result, err := e.QueryPublished(QueryOptions{Page: 4, PageSize: pageSize})
	require.NoError(t, err)
	assert.Empty(t, result.List)
	assert.Equal(t, int64(25), result.Total)
}

func TestQueryPublishedNormalization(t *testing.T) {
	e := newTestEngine(t)
	seedMany(t, e, 3)

	testCases := []struct {
		name string
		opts QueryOptions
	}{
		{name: "Zero page", opts: QueryOptions{Page: 0}},
		{name: "Negative page", opts: QueryOptions{Page: -5}},
		{name: "Zero page size", opts: QueryOptions{PageSize: 0}},
		{name: "Oversized page size", opts: QueryOptions{PageSize: 100000}},
		{name: "Unknown sort column", opts: QueryOptions{SortBy: "password; DROP TABLE articles"}},
		{name: "Unknown sort order", opts: QueryOptions{SortOrder: "sideways"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := e.QueryPublished(tc.opts)
			require.NoError(t, err)
			assert.Equal(t, int64(3), result.Total)
			assert.Len(t, result.List, 3)
		})
	}
}

func TestQueryPublishedDefaultOrder(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "a", "A", "2024-01-01", nil)
	saveArticle(t, e, "b", "B", "2024-01-02", nil)
	saveArticle(t, e, "c", "C", "2024-01-01", nil)

	result, err := e.QueryPublished(QueryOptions{})
	require.NoError(t, err)

	// date desc, tie-broken by path in the same direction
	paths := []string{}
	for _, art := range result.List {
		paths = append(paths, art.Path)
	}
	assert.Equal(t, []string{"b", "c", "a"}, paths)

	// ascending flips the tie-break too
	result, err = e.QueryPublished(QueryOptions{SortOrder: "asc"})
	require.NoError(t, err)

	paths = paths[:0]
	for _, art := range result.List {
		paths = append(paths, art.Path)
	}
	assert.Equal(t, []string{"a", "c", "b"}, paths)
}

func TestQueryPublishedTagExactToken(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "js-post", "JS", "2024-01-01", []string{"js"})
	saveArticle(t, e, "json-post", "JSON", "2024-01-02", []string{"json"})
	saveArticle(t, e, "both", "Both", "2024-01-03", []string{"js", "json"})

	result, err := e.QueryPublished(QueryOptions{Tag: "js"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	for _, art := range result.List {
		assert.Contains(t, art.Tags, "js")
	}

	// "s" is a substring of both tags but a token of neither
	result, err = e.QueryPublished(QueryOptions{Tag: "s"})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestQueryPublishedSearch(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "go-post", "Learning Go", "2024-01-01", nil)
	saveArticle(t, e, "rust-post", "Learning Rust", "2024-01-02", nil)

	result, err := e.QueryPublished(QueryOptions{Search: "GO"})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, "go-post", result.List[0].Path)
}

func TestQueryPublishedStickyFilter(t *testing.T) {
	e := newTestEngine(t)

	err := e.SaveContent("pinned", "", doc([]string{
		"title: Pinned",
		"date: 2024-01-01",
		"published: true",
		"isSticky: true",
	}, "x\n"), 1)
	require.NoError(t, err)
	saveArticle(t, e, "plain", "Plain", "2024-01-02", nil)

	sticky := true
	result, err := e.QueryPublished(QueryOptions{IsSticky: &sticky})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, "pinned", result.List[0].Path)

	sticky = false
	result, err = e.QueryPublished(QueryOptions{IsSticky: &sticky})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, "plain", result.List[0].Path)

	// unset means no filter
	result, err = e.QueryPublished(QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestByPath(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "post", "Title", "2024-01-01", nil)

	art, err := e.ByPath("post")
	require.NoError(t, err)
	assert.Equal(t, "post", art.Path)
	assert.Equal(t, shortid.FromSlug("post"), art.ShortID)

	_, err = e.ByPath("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.ByPath("")
	assert.ErrorIs(t, err, ErrSlugEmpty)
}

func TestByShortID(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "hello-world", "Hello", "2024-01-01", nil)
	saveArticle(t, e, "other", "Other", "2024-01-02", nil)

	art, err := e.ByShortID(shortid.FromSlug("hello-world"))
	require.NoError(t, err)
	assert.Equal(t, "hello-world", art.Path)

	_, err = e.ByShortID("AAAAAAAAAAA")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.ByShortID("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryPublishedToleratesMalformedTagsColumn(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "good", "Good", "2024-01-01", []string{"go"})
	saveArticle(t, e, "bad", "Bad", "2024-01-02", nil)

	// corrupt one row's tags column behind the engine's back
	err := e.db.Model(&rowModel{}).
		Where("path = ?", "bad").
		Update("tags", "not json at all").Error
	require.NoError(t, err)

	result, err := e.QueryPublished(QueryOptions{})
	require.NoError(t, err)
	require.Len(t, result.List, 2)

	for _, art := range result.List {
		require.NotNil(t, art.Tags, "article %s", art.Path)
		if art.Path == "bad" {
			assert.Empty(t, art.Tags)
		}
	}

	// the single-article lookup runs the same decoration
	art, err := e.ByPath("bad")
	require.NoError(t, err)
	require.NotNil(t, art.Tags)
	assert.Empty(t, art.Tags)
}

func TestContent(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "post", "Title", "2024-01-01", nil)

	fm, body, err := e.Content("post")
	require.NoError(t, err)
	require.NotNil(t, fm.Title)
	assert.Equal(t, "Title", *fm.Title)
	assert.Equal(t, "body of post\n", body)

	_, _, err = e.Content("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = e.Content("../escape")
	assert.ErrorIs(t, err, ErrPathOutsideBase)
}
