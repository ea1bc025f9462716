package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacent(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "a", "A", "2024-01-01", nil)
	saveArticle(t, e, "b", "B", "2024-01-02", nil)
	saveArticle(t, e, "c", "C", "2024-01-01", nil)

	// timeline order (date desc, path desc): b, c, a

	neighbors, err := e.Adjacent("2024-01-01", "c")
	require.NoError(t, err)
	require.NotNil(t, neighbors.Prev)
	require.NotNil(t, neighbors.Next)
	assert.Equal(t, "b", neighbors.Prev.Path)
	assert.Equal(t, "B", neighbors.Prev.Title)
	assert.Equal(t, "a", neighbors.Next.Path)

	// newest article has no prev
	neighbors, err = e.Adjacent("2024-01-02", "b")
	require.NoError(t, err)
	assert.Nil(t, neighbors.Prev)
	require.NotNil(t, neighbors.Next)
	assert.Equal(t, "c", neighbors.Next.Path)

	// oldest article has no next
	neighbors, err = e.Adjacent("2024-01-01", "a")
	require.NoError(t, err)
	require.NotNil(t, neighbors.Prev)
	assert.Equal(t, "c", neighbors.Prev.Path)
	assert.Nil(t, neighbors.Next)
}

func TestAdjacentSkipsDrafts(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "first", "First", "2024-01-01", nil)
	saveArticle(t, e, "last", "Last", "2024-01-03", nil)

	// an unpublished article between the two must be invisible to adjacency
	writeTree(t, e, "middle", doc([]string{
		"title: Middle",
		"date: 2024-01-02",
		"published: false",
	}, "x\n"))
	_, err := e.Rebuild(1)
	require.NoError(t, err)

	neighbors, err := e.Adjacent("2024-01-01", "first")
	require.NoError(t, err)
	require.NotNil(t, neighbors.Prev)
	assert.Equal(t, "last", neighbors.Prev.Path)
}

func TestAdjacentSingleArticle(t *testing.T) {
	e := newTestEngine(t)
	saveArticle(t, e, "only", "Only", "2024-01-01", nil)

	neighbors, err := e.Adjacent("2024-01-01", "only")
	require.NoError(t, err)
	assert.Nil(t, neighbors.Prev)
	assert.Nil(t, neighbors.Next)
}
