package utils

import (
	"testing"
	"time"

	"github.com/Luismorlan/blogmux/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Shared fixture helpers for handler and model tests. Each helper persists
// the entity, does sanity checks, and returns it for further assertions.

// TestCreateUserAndValidate creates a user with the given name and password,
// do sanity checks and returns it.
func TestCreateUserAndValidate(t *testing.T, db *gorm.DB, username string, password string) *model.User {
	t.Helper()

	user := &model.User{
		Id:       uuid.New().String(),
		Username: username,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	require.True(t, user.CheckPassword(password))
	require.False(t, user.CheckPassword(password+"_wrong"))

	return user
}

// TestCreateGroupAndValidate creates a group, do sanity checks and returns it.
func TestCreateGroupAndValidate(t *testing.T, db *gorm.DB, title string, slug string, description string) *model.Group {
	t.Helper()

	group := &model.Group{
		Id:          uuid.New().String(),
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	require.NoError(t, db.Create(group).Error)
	require.Equal(t, title, group.String())

	return group
}

// TestCreatePostAndValidate creates a post authored by the given user,
// optionally filed under a group, and returns it. Posts created back to back
// get strictly increasing PubDate so listing order is deterministic.
func TestCreatePostAndValidate(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, text string) *model.Post {
	t.Helper()

	post := &model.Post{
		Id:       uuid.New().String(),
		PubDate:  nextPubDate(),
		Text:     text,
		AuthorID: author.Id,
	}
	if group != nil {
		post.GroupID = &group.Id
	}
	require.NoError(t, db.Create(post).Error)

	return post
}

// TestCreateCommentAndValidate attaches a comment to the given post.
func TestCreateCommentAndValidate(t *testing.T, db *gorm.DB, author *model.User, post *model.Post, text string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		Id:       uuid.New().String(),
		Text:     text,
		AuthorID: author.Id,
		PostID:   post.Id,
	}
	require.NoError(t, db.Create(comment).Error)

	return comment
}

// TestCreateFollowAndValidate creates a follow edge from user to author and
// checks it is visible through the Following association.
func TestCreateFollowAndValidate(t *testing.T, db *gorm.DB, user *model.User, author *model.User) {
	t.Helper()

	require.NoError(t, db.Create(&model.UserFollow{UserID: user.Id, AuthorID: author.Id}).Error)

	var following []*model.User
	require.NoError(t, db.Model(user).Association("Following").Find(&following))
	found := false
	for _, f := range following {
		if f.Id == author.Id {
			found = true
		}
	}
	require.True(t, found)
}

var lastPubDate time.Time

// nextPubDate hands out strictly increasing timestamps. time.Now alone is not
// enough, two posts created in the same test can land on the same tick.
func nextPubDate() time.Time {
	now := time.Now()
	if !now.After(lastPubDate) {
		now = lastPubDate.Add(time.Microsecond)
	}
	lastPubDate = now
	return now
}
