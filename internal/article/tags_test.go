package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsWithCount(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "one", "One", "2024-01-01", []string{"go", "blog"})
	saveArticle(t, e, "two", "Two", "2024-01-02", []string{"go"})
	saveArticle(t, e, "three", "Three", "2024-01-03", []string{"go", "sqlite"})

	tags, err := e.TagsWithCount()
	require.NoError(t, err)
	require.Len(t, tags, 3)

	assert.Equal(t, TagCount{Tag: "go", Count: 3}, tags[0])

	counts := map[string]int{}
	for _, tc := range tags {
		counts[tc.Tag] = tc.Count
	}
	assert.Equal(t, map[string]int{"go": 3, "blog": 1, "sqlite": 1}, counts)
}

func TestTagsWithCountSkipsDraftsAndEmpties(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "published", "P", "2024-01-01", []string{"visible"})

	// drafts enter the index through rebuild but stay out of the aggregate
	writeTree(t, e, "draft", doc([]string{
		"title: Draft",
		"date: 2024-01-02",
		"published: false",
		"tags: [hidden]",
	}, "x\n"))

	_, err := e.Rebuild(1)
	require.NoError(t, err)

	tags, err := e.TagsWithCount()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "visible", tags[0].Tag)
}

func TestTagsWithCountToleratesMalformedColumn(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "good", "Good", "2024-01-01", []string{"go"})
	saveArticle(t, e, "bad", "Bad", "2024-01-02", nil)

	// corrupt one row's tags column behind the engine's back
	err := e.db.Model(&rowModel{}).
		Where("path = ?", "bad").
		Update("tags", "not json at all").Error
	require.NoError(t, err)

	tags, err := e.TagsWithCount()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, TagCount{Tag: "go", Count: 1}, tags[0])
}

func TestTagsWithCountTrimsWhitespace(t *testing.T) {
	e := newTestEngine(t)

	err := e.SaveContent("post", "", doc([]string{
		"title: Post",
		"date: 2024-01-01",
		"published: true",
		`tags: [" go ", "", "go"]`,
	}, "x\n"), 1)
	require.NoError(t, err)

	tags, err := e.TagsWithCount()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, TagCount{Tag: "go", Count: 2}, tags[0])
}
