package utils

import (
	"fmt"
	"testing"

	"github.com/Luismorlan/blogmux/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("abc"))
	assert.Equal(t, 1, ParsePageNumber("0"))
	assert.Equal(t, 1, ParsePageNumber("-3"))
	assert.Equal(t, 7, ParsePageNumber("7"))
}

func TestClampPage(t *testing.T) {
	// 14 items at page size 10 make 2 pages.
	page, total := ClampPage(1, 14, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 2, total)

	page, _ = ClampPage(99, 14, 10)
	assert.Equal(t, 2, page)

	page, _ = ClampPage(-1, 14, 10)
	assert.Equal(t, 1, page)

	// An empty collection still has one page.
	page, total = ClampPage(5, 0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, total)
}

func TestPaginatePostListing(t *testing.T) {
	db, _ := CreateTempDB(t)

	author := TestCreateUserAndValidate(t, db, "paginator", "password")
	for i := 0; i < 14; i++ {
		TestCreatePostAndValidate(t, db, author, nil, fmt.Sprintf("post number %d", i))
	}

	query := db.Model(&model.Post{}).Order("pub_date desc")

	var posts []*model.Post
	page, err := Paginate(query, 1, &posts)
	require.NoError(t, err)
	assert.Len(t, posts, 10)
	assert.Equal(t, 14, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)
	// Newest first.
	assert.Equal(t, "post number 13", posts[0].Text)

	page, err = Paginate(query, 2, &posts)
	require.NoError(t, err)
	assert.Len(t, posts, 4)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)

	// Out-of-range page clamps to the last page.
	page, err = Paginate(query, 9, &posts)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Len(t, posts, 4)
}
