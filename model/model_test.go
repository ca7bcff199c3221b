package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostStringTruncatesTo15(t *testing.T) {
	post := Post{Text: "a very long post text that keeps going"}
	assert.Equal(t, "a very long pos", post.String())

	short := Post{Text: "short"}
	assert.Equal(t, "short", short.String())

	// Truncation counts characters, not bytes.
	cyrillic := Post{Text: "тестовый пост про правду"}
	assert.Equal(t, "тестовый пост п", cyrillic.String())
}

func TestGroupStringIsTitle(t *testing.T) {
	group := Group{Title: "travel", Slug: "travel-notes"}
	assert.Equal(t, "travel", group.String())
}

func TestUserPassword(t *testing.T) {
	user := User{Username: "leo"}
	assert.NoError(t, user.SetPassword("hunter2"))
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.True(t, user.CheckPassword("hunter2"))
	assert.False(t, user.CheckPassword("hunter3"))
}
