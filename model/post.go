package model

import "time"

/*

Post is a single blog entry authored by a user

Id: primary key, uuid generated at creation
PubDate: time when the post was published, set once at creation and never
updated afterwards. All post listings order by this field descending.
Text: post's content in plain text
AuthorID:
Author: user who wrote this post, "belongs-to" relation, required
GroupID:
Group: optional group this post was filed under, "belongs-to" relation
ImageKey: optional key into the upload file store for an attached image,
empty when the post has no image
Comments: comments left on this post, "has-many" relation, removed together
with the post

*/

type Post struct {
	Id       string    `gorm:"primaryKey"`
	PubDate  time.Time `gorm:"index"`
	Text     string
	AuthorID string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID  *string
	Group    *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	ImageKey string
	Comments []*Comment `json:"comments" gorm:"constraint:OnDelete:CASCADE;"`
}

// String renders the post as its text truncated to 15 characters, enough to
// recognize it in listings and admin views.
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) <= 15 {
		return p.Text
	}
	return string(runes[:15])
}
